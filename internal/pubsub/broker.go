// Package pubsub distributes newly added books to live subscribers.
//
// The broker carries a single topic. Every subscriber receives every
// published book independently, in publish order (broadcast, not
// work-queue semantics). Publishing never blocks on a slow subscriber:
// each subscription has a small buffer and events are dropped for that
// subscriber once the buffer is full.
package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alexandriaapp/alexandria-server/internal/domain"
	"github.com/alexandriaapp/alexandria-server/internal/id"
)

// Topic is the single topic this broker carries.
const Topic = "book.added"

// subscriberBuffer bounds how far one subscriber may lag before it starts
// losing events.
const subscriberBuffer = 16

type subscriber struct {
	id string
	ch chan domain.Book
}

// Broker fans published books out to all active subscriptions.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]*subscriber
	closed bool
	logger *slog.Logger
}

// NewBroker creates a broker with no subscribers.
func NewBroker(logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broker{
		subs:   make(map[string]*subscriber),
		logger: logger,
	}
}

// Publish delivers a book to all current subscribers. It is fire-and-forget:
// the caller does not learn whether any subscriber received it, and a full
// subscriber buffer drops the event for that subscriber only.
func (b *Broker) Publish(book domain.Book) {
	// Sends happen under the read lock; unsubscription closes channels
	// under the write lock, so a send can never hit a closed channel.
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	var delivered, dropped int
	for _, sub := range b.subs {
		select {
		case sub.ch <- book:
			delivered++
		default:
			dropped++
			b.logger.Warn("dropped event for slow subscriber",
				slog.String("topic", Topic),
				slog.String("subscriber_id", sub.id),
				slog.String("book_id", book.ID))
		}
	}

	b.logger.Debug("event published",
		slog.String("topic", Topic),
		slog.String("book_id", book.ID),
		slog.Int("delivered", delivered),
		slog.Int("dropped", dropped))
}

// Subscribe registers a new subscription and returns its event channel.
// The channel closes when ctx is canceled or the broker shuts down. The
// sequence is infinite in principle, bounded only by the subscription's
// lifetime.
func (b *Broker) Subscribe(ctx context.Context) <-chan domain.Book {
	sub := &subscriber{
		id: id.MustGenerate("sub"),
		ch: make(chan domain.Book, subscriberBuffer),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		closed := make(chan domain.Book)
		close(closed)
		return closed
	}
	b.subs[sub.id] = sub
	total := len(b.subs)
	b.mu.Unlock()

	b.logger.Info("subscriber connected",
		slog.String("topic", Topic),
		slog.String("subscriber_id", sub.id),
		slog.Int("total_subscribers", total))

	go func() {
		<-ctx.Done()
		b.unsubscribe(sub.id)
	}()

	return sub.ch
}

// SubscriberCount returns the number of active subscriptions.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Shutdown closes all subscriber channels and rejects future publishes.
// It implements do.Shutdownable so the DI container drives it.
func (b *Broker) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, sub := range b.subs {
		close(sub.ch)
	}
	b.subs = make(map[string]*subscriber)

	b.logger.Info("broker shut down", slog.String("topic", Topic))
	return nil
}

func (b *Broker) unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subs[subID]
	if !ok {
		return
	}
	delete(b.subs, subID)
	close(sub.ch)

	b.logger.Info("subscriber disconnected",
		slog.String("topic", Topic),
		slog.String("subscriber_id", subID),
		slog.Int("total_subscribers", len(b.subs)))
}
