package preview

import "github.com/rs/zerolog"

// Event represents a preview lifecycle event.
// Minimal and stable: name + session ID and optional fields via key/values.
type Event struct {
	Name      string
	SessionID string
	Key       string
	Fields    map[string]any
}

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// LogPublisher forwards events to a zerolog logger at debug level. It never
// blocks, so it is safe to hand to NewWithConfig in production.
type LogPublisher struct {
	Log zerolog.Logger
}

func (p LogPublisher) Publish(e Event) {
	ev := p.Log.Debug().Str("event", e.Name)
	if e.SessionID != "" {
		ev = ev.Str("session", e.SessionID)
	}
	if e.Key != "" {
		ev = ev.Str("key", e.Key)
	}
	if len(e.Fields) > 0 {
		ev = ev.Fields(e.Fields)
	}
	ev.Msg("pipeline event")
}
