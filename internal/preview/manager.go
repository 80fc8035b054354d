package preview

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"previewd/internal/capture"
	"previewd/internal/render"
	"previewd/internal/scheduler"
	"previewd/internal/snapcache"
	"previewd/internal/visibility"
	"previewd/pkg/types"
)

// Manager owns the two pieces of shared pipeline state, the snapshot cache
// and the admission queue, and every consumer session built on top of them.
// All mutation goes through its methods.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session

	cache   *snapcache.Cache
	sched   *scheduler.Scheduler
	gate    *visibility.Gate
	push    *visibility.PushProvider // nil in immediate mode
	unit    *capture.Unit            // nil when the host cannot render
	backend render.Backend
	catalog []types.Asset
	capable bool

	pub EventPublisher
	log zerolog.Logger

	sessionTTL time.Duration
	startTime  time.Time

	// runCtx scopes everything the manager spawns; renders observe it so
	// shutdown can interrupt a settle wait.
	runCtx    context.Context
	runCancel context.CancelFunc

	// renders counts completed render jobs (success or error), guarded by mu.
	renders      uint64
	renderErrors uint64
}

func (m *Manager) publish(e Event) {
	m.pub.Publish(e)
}

// Capable reports whether the host can render at all.
func (m *Manager) Capable() bool { return m.capable }

// Ready reports whether the pipeline can take preview traffic. False before
// a renderer exists and after Shutdown has begun.
func (m *Manager) Ready() bool {
	return m.capable && m.runCtx.Err() == nil
}

// BackendName identifies the rendering backend, "none" without one.
func (m *Manager) BackendName() string {
	if m.backend == nil {
		return "none"
	}
	return m.backend.Name()
}

// VisibilityConfig describes the gate for clients that run the page-side
// observer.
func (m *Manager) VisibilityConfig() types.VisibilityConfig {
	opts := m.gate.Options()
	return types.VisibilityConfig{
		Provider:      m.gate.ProviderName(),
		MarginPx:      opts.MarginPx,
		Threshold:     opts.Threshold,
		KeepObserving: opts.KeepObserving,
	}
}

// Run drives the idle-session janitor until ctx is cancelled. It returns
// immediately when expiry is disabled.
func (m *Manager) Run(ctx context.Context) {
	if m.sessionTTL <= 0 {
		return
	}
	interval := m.sessionTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.expireSessions(time.Now()); n > 0 {
				m.log.Info().Int("expired", n).Msg("expired idle preview sessions")
			}
		}
	}
}

// Shutdown stops the pipeline: it interrupts in-flight work, waits for
// render slots to drain so contexts are back in the pool, then closes the
// backend. ctx bounds the wait.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.runCancel()
	for m.sched.Active() > 0 {
		select {
		case <-ctx.Done():
			if m.backend != nil {
				m.backend.Close()
			}
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	if m.backend != nil {
		m.backend.Close()
	}
	return nil
}
