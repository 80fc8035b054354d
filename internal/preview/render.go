package preview

import (
	"strings"

	"previewd/internal/capture"
	"previewd/internal/scheduler"
	"previewd/pkg/types"
)

// captureErrorKind labels a capture failure for logs and events.
func captureErrorKind(err error) string {
	switch {
	case capture.IsAssetLoad(err):
		return "asset"
	case capture.IsCapabilityUnsupported(err):
		return "capability"
	case capture.IsCaptureFailed(err):
		return "render"
	}
	return "unknown"
}

// render runs one admitted request to completion. The queue slot is released
// on every path, exactly once, via the deferred Finish; a missed release
// here would starve every later request in the process.
func (m *Manager) render(sessionID string, reqID scheduler.RequestID, desc types.Descriptor) {
	defer m.sched.Finish(reqID)

	m.mu.Lock()
	if s, ok := m.sessions[sessionID]; ok && !s.unmounted && s.phase == PhaseQueued {
		s.phase = PhaseRendering
	}
	m.mu.Unlock()

	res, err := m.unit.Capture(m.runCtx, desc)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.renders++
	s, ok := m.sessions[sessionID]
	alive := ok && !s.unmounted

	if err != nil {
		m.renderErrors++
		kind := captureErrorKind(err)
		if alive {
			s.phase = PhaseErrored
			s.hasError = true
			s.errMsg = err.Error()
			s.requestID = 0
			m.publish(Event{Name: "render_error", SessionID: sessionID, Key: desc.SourceKey, Fields: map[string]any{"error": err.Error(), "kind": kind}})
		}
		m.log.Warn().Str("session", sessionID).Str("key", desc.SourceKey).Str("kind", kind).Err(err).Msg("render failed")
		return
	}

	if !alive {
		// The consumer unmounted after admission; per the cancellation
		// contract the render ran to completion and only its effect is
		// dropped.
		resultsSuppressed.Inc()
		m.publish(Event{Name: "render_suppressed", SessionID: sessionID, Key: desc.SourceKey})
		m.log.Debug().Str("session", sessionID).Str("key", desc.SourceKey).Msg("render result dropped for unmounted consumer")
		return
	}

	m.cache.Set(desc.SourceKey, res.PNG)
	s.phase = PhaseCached
	s.requestID = 0
	m.publish(Event{Name: "render_done", SessionID: sessionID, Key: desc.SourceKey, Fields: map[string]any{"bytes": len(res.PNG), "elapsed_ms": res.Elapsed.Milliseconds()}})
	m.log.Info().Str("session", sessionID).Str("key", desc.SourceKey).Int("bytes", len(res.PNG)).Dur("elapsed", res.Elapsed).Msg("snapshot ready")
}

// Warm renders a descriptor into the cache without a consumer session,
// through the same admission queue as everything else. It reports whether
// the snapshot was already cached.
func (m *Manager) Warm(desc types.Descriptor) (bool, error) {
	key := strings.TrimSpace(desc.SourceKey)
	if key == "" {
		return false, ErrInvalidRequest("source_key is required")
	}
	if !m.capable {
		return false, ErrRendererUnavailable()
	}
	if m.cache.Has(key) {
		return true, nil
	}
	desc.SourceKey = key
	reqID, err := m.sched.Enqueue(key, func(rid scheduler.RequestID) {
		go m.warmRender(rid, desc)
	})
	if err != nil {
		return false, err
	}
	m.publish(Event{Name: "warm_requested", Key: key, Fields: map[string]any{"request_id": uint64(reqID)}})
	return false, nil
}

// warmRender is the sessionless render job behind Warm.
func (m *Manager) warmRender(reqID scheduler.RequestID, desc types.Descriptor) {
	defer m.sched.Finish(reqID)

	res, err := m.unit.Capture(m.runCtx, desc)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.renders++
	if err != nil {
		m.renderErrors++
		m.log.Warn().Str("key", desc.SourceKey).Str("kind", captureErrorKind(err)).Err(err).Msg("warm render failed")
		return
	}
	m.cache.Set(desc.SourceKey, res.PNG)
	m.log.Info().Str("key", desc.SourceKey).Int("bytes", len(res.PNG)).Msg("snapshot warmed")
}
