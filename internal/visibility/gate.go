package visibility

import (
	"context"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Options fields are unset.
const (
	// DefaultMarginPx expands the viewport for intersection purposes so a
	// render starts slightly before the consumer scrolls into view.
	DefaultMarginPx = 200
	// DefaultThreshold is the minimum intersection ratio that counts as
	// visible.
	DefaultThreshold = 0.1
)

// Options carries gate tunables.
type Options struct {
	// MarginPx is advertised to clients as the observer root margin. The
	// gate itself only sees the resulting reports; margin is applied where
	// the geometry lives.
	MarginPx int
	// Threshold is the minimum intersection ratio for a report to count.
	Threshold float64
	// KeepObserving controls what happens after the first trigger. Off, the
	// subscription is torn down once a consumer has been seen (the trigger
	// is one-shot). On, observation continues and later transitions are
	// forwarded, for consumers that want to react to going off-screen.
	// Upstream behavior differs between variants, so this stays an explicit
	// switch rather than a baked-in choice.
	KeepObserving bool
}

// Gate filters a Provider's raw events into per-consumer visibility
// triggers.
type Gate struct {
	provider Provider
	opts     Options
	log      zerolog.Logger
}

// NewGate wires a gate over provider. A nil provider degrades to Immediate,
// logged once, so consumers are never gated on a capability the host lacks.
func NewGate(provider Provider, opts Options, log zerolog.Logger) *Gate {
	if provider == nil {
		log.Warn().Msg("no visibility provider available; previews render immediately")
		provider = Immediate{}
	}
	if opts.MarginPx <= 0 {
		opts.MarginPx = DefaultMarginPx
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	return &Gate{provider: provider, opts: opts, log: log}
}

// Options returns the effective tunables, for status and client config.
func (g *Gate) Options() Options { return g.opts }

// ProviderName identifies the underlying provider.
func (g *Gate) ProviderName() string { return g.provider.Name() }

// Watch observes consumerID until ctx is cancelled. The returned channel
// delivers the first above-threshold event; with KeepObserving set it then
// also delivers every later transition (including hidden ones). The channel
// is closed when observation stops. Delivery is latest-wins and never blocks
// the gate.
func (g *Gate) Watch(ctx context.Context, consumerID string) <-chan Event {
	out := make(chan Event, 1)
	sub := g.provider.Subscribe(consumerID)

	go func() {
		defer close(out)
		defer sub.Close()
		triggered := false
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-sub.Events():
				seen := ev.Visible && ev.Ratio >= g.opts.Threshold
				if !triggered {
					if !seen {
						continue
					}
					triggered = true
					triggersTotal.Inc()
					g.log.Debug().Str("consumer", consumerID).Float64("ratio", ev.Ratio).Msg("consumer became visible")
					forward(out, Event{Visible: true, Ratio: ev.Ratio})
					if !g.opts.KeepObserving {
						return
					}
					continue
				}
				forward(out, Event{Visible: seen, Ratio: ev.Ratio})
			}
		}
	}()
	return out
}

// forward mirrors Subscription.deliver for the gate's output channel.
func forward(ch chan Event, ev Event) {
	for {
		select {
		case ch <- ev:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
