package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandriaapp/alexandria-server/internal/domain"
)

func testBook(id string) domain.Book {
	return domain.Book{ID: id, Title: "Book " + id, Author: "Author"}
}

func recv(t *testing.T, ch <-chan domain.Book) domain.Book {
	t.Helper()
	select {
	case b := <-ch:
		return b
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return domain.Book{}
	}
}

func TestBroker_BroadcastToAllSubscribersInOrder(t *testing.T) {
	b := NewBroker(nil)
	defer func() { _ = b.Shutdown() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub1 := b.Subscribe(ctx)
	sub2 := b.Subscribe(ctx)
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(testBook("1"))
	b.Publish(testBook("2"))

	// Every subscriber receives every book, in publish order.
	for _, sub := range []<-chan domain.Book{sub1, sub2} {
		assert.Equal(t, "1", recv(t, sub).ID)
		assert.Equal(t, "2", recv(t, sub).ID)
	}
}

func TestBroker_SlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	b := NewBroker(nil)
	defer func() { _ = b.Shutdown() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slow := b.Subscribe(ctx)

	// Overfill the subscriber buffer without draining. Publish must
	// return promptly every time, dropping the overflow.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			b.Publish(testBook(string(rune('a' + i%26))))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}

	// The buffered prefix is still delivered.
	assert.Len(t, slow, subscriberBuffer)
}

func TestBroker_UnsubscribeOnContextCancel(t *testing.T) {
	b := NewBroker(nil)
	defer func() { _ = b.Shutdown() }()

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx)
	require.Equal(t, 1, b.SubscriberCount())

	cancel()

	// The channel closes once the cancellation is observed.
	require.Eventually(t, func() bool {
		select {
		case _, open := <-sub:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBroker_ShutdownClosesSubscribers(t *testing.T) {
	b := NewBroker(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := b.Subscribe(ctx)

	require.NoError(t, b.Shutdown())

	_, open := <-sub
	assert.False(t, open)

	// Publishing after shutdown is a no-op, and late subscribers get a
	// closed channel instead of a hang.
	b.Publish(testBook("late"))
	late := b.Subscribe(ctx)
	_, open = <-late
	assert.False(t, open)
}
