// Package visibility decides when a preview consumer is close enough to the
// viewport that rendering should start. Pages push intersection reports in;
// the Gate turns them into a per-consumer "became visible" trigger. Hosts
// without any visibility source degrade to treating every consumer as
// immediately visible.
//
// Files:
//   - visibility.go: Provider/Subscription contract and delivery plumbing
//   - push.go: report-driven provider fed by the HTTP layer
//   - immediate.go: always-visible fallback provider
//   - gate.go: threshold filtering and the one-shot trigger channel
//   - metrics.go: Prometheus collectors
package visibility

import "sync"

// Event is one observed intersection change for a consumer.
type Event struct {
	// Visible reports whether any part of the consumer's region intersects
	// the (margin-expanded) viewport.
	Visible bool
	// Ratio is the intersection ratio in [0,1].
	Ratio float64
}

// Provider yields visibility events for observed consumers.
type Provider interface {
	// Subscribe starts observation of one consumer. The caller owns the
	// subscription and must Close it when done.
	Subscribe(consumerID string) *Subscription
	// Name identifies the provider in status output.
	Name() string
}

// Subscription is one consumer's event stream. Delivery is latest-wins: a
// subscriber that lags only ever misses superseded intermediate states,
// never the current one.
type Subscription struct {
	ch     chan Event
	once   sync.Once
	detach func()
}

func newSubscription(detach func()) *Subscription {
	return &Subscription{ch: make(chan Event, 1), detach: detach}
}

// Events returns the event channel. It is never closed; receivers should
// select against their own context.
func (s *Subscription) Events() <-chan Event { return s.ch }

// Close detaches the subscription from its provider. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(s.detach)
}

// deliver replaces any undelivered event with ev.
func (s *Subscription) deliver(ev Event) {
	for {
		select {
		case s.ch <- ev:
			return
		default:
			select {
			case <-s.ch:
			default:
			}
		}
	}
}
