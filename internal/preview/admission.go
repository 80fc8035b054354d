package preview

import (
	"time"

	"previewd/internal/scheduler"
	"previewd/internal/visibility"
)

// watchVisibility consumes one session's gate events. The first visible
// event drives admission; later ones (keep-observing mode) only refresh the
// session's activity clock.
func (m *Manager) watchVisibility(id string, ch <-chan visibility.Event) {
	for ev := range ch {
		if ev.Visible {
			m.onVisible(id)
		}
	}
}

// onVisible moves a waiting session toward the queue. Repeat triggers for a
// session that is already queued, rendering, or terminal change nothing, so
// duplicate visibility events never enqueue a second request.
func (m *Manager) onVisible(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok || s.unmounted {
		m.mu.Unlock()
		return
	}
	s.lastActive = time.Now()
	if s.phase != PhaseAwaitingVisible {
		m.mu.Unlock()
		return
	}

	// Re-check the cache: another consumer may have rendered the same
	// descriptor while this one was off-screen.
	if m.cache.Has(s.desc.SourceKey) {
		s.phase = PhaseCached
		key := s.desc.SourceKey
		m.mu.Unlock()
		m.publish(Event{Name: "preview_cached", SessionID: id, Key: key, Fields: map[string]any{"via": "concurrent_render"}})
		return
	}

	desc := s.desc
	reqID, err := m.sched.Enqueue(desc.SourceKey, func(rid scheduler.RequestID) {
		go m.render(id, rid, desc)
	})
	if err != nil {
		s.phase = PhaseErrored
		s.hasError = true
		s.errMsg = err.Error()
		m.mu.Unlock()
		m.publish(Event{Name: "queue_rejected", SessionID: id, Key: desc.SourceKey})
		m.log.Warn().Str("session", id).Str("key", desc.SourceKey).Err(err).Msg("render request rejected")
		return
	}
	s.requestID = reqID
	s.phase = PhaseQueued
	m.mu.Unlock()

	m.publish(Event{Name: "render_enqueued", SessionID: id, Key: desc.SourceKey, Fields: map[string]any{"request_id": uint64(reqID)}})
}
