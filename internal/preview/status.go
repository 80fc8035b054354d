package preview

import (
	"sort"
	"time"

	"previewd/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	sessions := make([]types.SessionStatus, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, types.SessionStatus{
			ID:             s.id,
			SourceKey:      s.desc.SourceKey,
			State:          s.phase.apiState(),
			Phase:          s.phase.String(),
			LastActiveUnix: s.lastActive.Unix(),
		})
	}
	renders, renderErrors := m.renders, m.renderErrors
	m.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	hits, misses, evictions := m.cache.Counters()
	var poolSize, poolInUse int
	if m.backend != nil {
		poolSize = m.backend.Contexts()
		poolInUse = m.backend.InUse()
	}
	return types.StatusResponse{
		Sessions:          sessions,
		QueueDepth:        m.sched.Depth(),
		QueueCapacity:     m.sched.MaxPending(),
		ActiveRenders:     m.sched.Active(),
		RenderSlots:       m.sched.Slots(),
		CacheEntries:      m.cache.Len(),
		CacheCapacity:     m.cache.Capacity(),
		CacheHits:         hits,
		CacheMisses:       misses,
		CacheEvictions:    evictions,
		RendersTotal:      renders,
		RenderErrorsTotal: renderErrors,
		Backend:           m.BackendName(),
		BackendContexts:   poolSize,
		BackendInUse:      poolInUse,
		UptimeSeconds:     int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix:    time.Now().Unix(),
	}
}
