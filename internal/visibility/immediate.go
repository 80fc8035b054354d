package visibility

// Immediate is the fallback provider for hosts with no visibility source:
// every consumer is reported visible the moment it is observed, so previews
// render eagerly instead of never.
type Immediate struct{}

func (Immediate) Name() string { return "immediate" }

func (Immediate) Subscribe(consumerID string) *Subscription {
	sub := newSubscription(func() {})
	sub.deliver(Event{Visible: true, Ratio: 1})
	return sub
}
