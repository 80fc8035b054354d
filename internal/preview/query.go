package preview

import (
	"time"

	"previewd/pkg/types"
)

// GetPreview reports a session's current state.
func (m *Manager) GetPreview(id string) (types.PreviewResource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return types.PreviewResource{}, ErrSessionNotFound(id)
	}
	return s.resource(m.cache.Has(s.desc.SourceKey)), nil
}

// GetImage returns the encoded snapshot for a session's descriptor. It also
// counts as consumer activity for session expiry purposes.
func (m *Manager) GetImage(id string) ([]byte, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrSessionNotFound(id)
	}
	s.lastActive = time.Now()
	key := s.desc.SourceKey
	failed, msg := s.hasError, s.errMsg
	m.mu.Unlock()

	if img, ok := m.cache.Get(key); ok {
		return img, nil
	}
	if failed {
		return nil, ErrRenderFailed(msg)
	}
	return nil, ErrNotReady(id)
}

// ReportVisibility feeds one page-side intersection observation into the
// gate. Only meaningful in push mode.
func (m *Manager) ReportVisibility(id string, upd types.VisibilityUpdate) error {
	if m.push == nil {
		return ErrVisibilityUnsupported()
	}
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return ErrSessionNotFound(id)
	}
	if upd.Visible {
		s.lastActive = time.Now()
	}
	m.mu.Unlock()

	m.push.Report(id, upd.Visible, upd.Ratio)
	return nil
}

// ListAssets returns the renderable asset catalog.
func (m *Manager) ListAssets() []types.Asset {
	out := make([]types.Asset, len(m.catalog))
	copy(out, m.catalog)
	return out
}
