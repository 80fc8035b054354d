package visibility

import (
	"sync"

	"github.com/rs/zerolog"
)

// PushProvider is fed by the page: the HTTP layer calls Report each time the
// client-side observer sees a consumer's intersection change. The last report
// per consumer is retained so a subscription opened after the report still
// sees the current state.
type PushProvider struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
	last map[string]Event
	log  zerolog.Logger
}

// NewPush constructs an empty push provider.
func NewPush(log zerolog.Logger) *PushProvider {
	return &PushProvider{
		subs: make(map[string]map[*Subscription]struct{}),
		last: make(map[string]Event),
		log:  log,
	}
}

func (p *PushProvider) Name() string { return "push" }

// Subscribe registers interest in consumerID and replays the last known
// state, if any.
func (p *PushProvider) Subscribe(consumerID string) *Subscription {
	var sub *Subscription
	sub = newSubscription(func() { p.remove(consumerID, sub) })

	p.mu.Lock()
	set, ok := p.subs[consumerID]
	if !ok {
		set = make(map[*Subscription]struct{})
		p.subs[consumerID] = set
	}
	set[sub] = struct{}{}
	last, seen := p.last[consumerID]
	p.mu.Unlock()

	if seen {
		sub.deliver(last)
	}
	watchersActive.Inc()
	return sub
}

// Report records a fresh intersection observation and fans it out to the
// consumer's subscribers.
func (p *PushProvider) Report(consumerID string, visible bool, ratio float64) {
	ev := Event{Visible: visible, Ratio: ratio}

	p.mu.Lock()
	p.last[consumerID] = ev
	targets := make([]*Subscription, 0, len(p.subs[consumerID]))
	for sub := range p.subs[consumerID] {
		targets = append(targets, sub)
	}
	p.mu.Unlock()

	for _, sub := range targets {
		sub.deliver(ev)
	}
	reportsTotal.Inc()
	p.log.Debug().Str("consumer", consumerID).Bool("visible", visible).Float64("ratio", ratio).Msg("visibility report")
}

// Forget drops the retained state for a consumer, typically on session end.
func (p *PushProvider) Forget(consumerID string) {
	p.mu.Lock()
	delete(p.last, consumerID)
	p.mu.Unlock()
}

func (p *PushProvider) remove(consumerID string, sub *Subscription) {
	p.mu.Lock()
	if set, ok := p.subs[consumerID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(p.subs, consumerID)
		}
	}
	p.mu.Unlock()
	watchersActive.Dec()
}
