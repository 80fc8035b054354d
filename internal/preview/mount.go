package preview

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"previewd/pkg/types"
)

// RequestPreview mounts a new consumer session for the requested descriptor.
// A snapshot already in the cache short-circuits to the ready state without
// ever touching the render path; otherwise the session waits on the
// visibility gate.
func (m *Manager) RequestPreview(req types.PreviewRequest) (types.PreviewResource, error) {
	key := strings.TrimSpace(req.SourceKey)
	if key == "" {
		return types.PreviewResource{}, ErrInvalidRequest("source_key is required")
	}
	if req.SizeHint < 0 {
		return types.PreviewResource{}, ErrInvalidRequest("size_hint must not be negative")
	}

	now := time.Now()
	s := &session{
		id:         uuid.NewString(),
		desc:       types.Descriptor{SourceKey: key, SizeHint: req.SizeHint},
		phase:      PhaseIdle,
		createdAt:  now,
		lastActive: now,
	}

	m.mu.Lock()
	switch {
	case m.cache.Has(key):
		s.phase = PhaseCached
	case !m.capable:
		// No renderer on this host: terminal immediately, nothing enqueued.
		s.phase = PhaseErrored
		s.hasError = true
		s.errMsg = "render capability unavailable"
	default:
		s.phase = PhaseAwaitingVisible
		watchCtx, cancel := context.WithCancel(m.runCtx)
		s.cancel = cancel
		go m.watchVisibility(s.id, m.gate.Watch(watchCtx, s.id))
	}
	m.sessions[s.id] = s
	sessionsActive.Set(float64(len(m.sessions)))
	res := s.resource(m.cache.Has(key))
	m.mu.Unlock()

	previewsRequested.Inc()
	m.publish(Event{Name: "preview_requested", SessionID: s.id, Key: key, Fields: map[string]any{"phase": res.Phase}})
	m.log.Debug().Str("session", s.id).Str("key", key).Str("phase", res.Phase).Msg("preview requested")
	return res, nil
}

// CancelPreview unmounts a consumer session. A queued render request leaves
// the queue; an admitted one runs to completion with its result dropped.
func (m *Manager) CancelPreview(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return ErrSessionNotFound(id)
	}
	s.unmounted = true
	if s.cancel != nil {
		s.cancel()
	}
	if s.requestID != 0 {
		m.sched.Cancel(s.requestID)
	}
	delete(m.sessions, id)
	if m.push != nil {
		m.push.Forget(id)
	}
	sessionsActive.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	previewsCancelled.Inc()
	m.publish(Event{Name: "preview_cancelled", SessionID: id, Key: s.desc.SourceKey})
	m.log.Debug().Str("session", id).Str("key", s.desc.SourceKey).Msg("preview cancelled")
	return nil
}
