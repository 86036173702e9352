// Package metrics provides Prometheus metric collection and exposure.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes recorded by RecordLogin.
const (
	LoginOutcomeSuccess   = "success"
	LoginOutcomeRejected  = "rejected"
	LoginOutcomeThrottled = "throttled"
)

// Recorder is the interface services use to record metrics.
type Recorder interface {
	RecordBookAdded()
	RecordUserCreated()
	RecordLogin(outcome string)
	SubscriberConnected()
	SubscriberDisconnected()
}

// Collector implements Recorder on a Prometheus registry.
type Collector struct {
	booksAdded   prometheus.Counter
	usersCreated prometheus.Counter
	logins       *prometheus.CounterVec
	subscribers  prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		booksAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alexandria_books_added_total",
			Help: "Total books added to the catalog.",
		}),
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alexandria_users_created_total",
			Help: "Total users registered.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alexandria_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "alexandria_subscribers",
			Help: "Currently connected bookAdded subscribers.",
		}),
	}

	reg.MustRegister(
		c.booksAdded,
		c.usersCreated,
		c.logins,
		c.subscribers,
	)

	return c
}

// RecordBookAdded records a successful addBook mutation.
func (c *Collector) RecordBookAdded() {
	c.booksAdded.Inc()
}

// RecordUserCreated records a successful createUser mutation.
func (c *Collector) RecordUserCreated() {
	c.usersCreated.Inc()
}

// RecordLogin records a login attempt.
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// SubscriberConnected records a new bookAdded subscription.
func (c *Collector) SubscriberConnected() {
	c.subscribers.Inc()
}

// SubscriberDisconnected records the end of a bookAdded subscription.
func (c *Collector) SubscriberDisconnected() {
	c.subscribers.Dec()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// noop discards all recordings. Used by tests.
type noop struct{}

func (noop) RecordBookAdded()        {}
func (noop) RecordUserCreated()      {}
func (noop) RecordLogin(string)      {}
func (noop) SubscriberConnected()    {}
func (noop) SubscriberDisconnected() {}

// NewNoop returns a Recorder that discards everything.
func NewNoop() Recorder {
	return noop{}
}
