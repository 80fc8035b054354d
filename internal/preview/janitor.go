package preview

import "time"

// expireSessions removes sessions whose consumer has gone quiet for the
// configured TTL. Waiting or queued work is cancelled; a render already in
// flight completes and is dropped like any other unmount.
func (m *Manager) expireSessions(now time.Time) int {
	m.mu.Lock()
	var expired []*session
	for id, s := range m.sessions {
		if now.Sub(s.lastActive) < m.sessionTTL {
			continue
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
		expired = append(expired, s)
	}
	sessionsActive.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	for _, s := range expired {
		sessionsExpired.Inc()
		m.publish(Event{Name: "session_expired", SessionID: s.id, Key: s.desc.SourceKey})
	}
	return len(expired)
}
