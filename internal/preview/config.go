package preview

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"previewd/internal/assets"
	"previewd/internal/capture"
	"previewd/internal/render"
	"previewd/internal/scheduler"
	"previewd/internal/snapcache"
	"previewd/internal/visibility"
	"previewd/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultSessionTTL = 15 * time.Minute
)

// Visibility feed modes.
const (
	// VisibilityPush expects the page to report intersections over HTTP.
	VisibilityPush = "push"
	// VisibilityImmediate treats every consumer as visible on mount.
	VisibilityImmediate = "immediate"
)

// Config encapsulates all tunables for Manager construction.
type Config struct {
	// Backend renders snapshots. Nil means the host cannot render; mounts
	// then fail terminally without ever touching the queue.
	Backend render.Backend
	// Loader resolves descriptor source keys to scene data.
	Loader assets.Loader
	// Catalog is the asset listing served to clients.
	Catalog []types.Asset

	CacheCapacity int
	RenderSlots   int
	MaxPending    int
	SettleTicks   int
	FrameSize     int

	// SessionTTL expires sessions idle longer than this. Zero applies the
	// default; negative disables expiry.
	SessionTTL time.Duration

	// VisibilityMode selects the gate's feed; default VisibilityPush.
	VisibilityMode string
	Visibility     visibility.Options

	Events EventPublisher
	Logger zerolog.Logger
}

// New constructs a Manager with default tunables.
func New(backend render.Backend, loader assets.Loader) *Manager {
	return NewWithConfig(Config{Backend: backend, Loader: loader})
}

// NewWithConfig constructs a Manager from Config.
func NewWithConfig(cfg Config) *Manager {
	m := &Manager{
		sessions:  make(map[string]*session),
		backend:   cfg.Backend,
		catalog:   cfg.Catalog,
		log:       cfg.Logger,
		startTime: time.Now(),
	}
	m.runCtx, m.runCancel = context.WithCancel(context.Background())

	m.cache = snapcache.New(cfg.CacheCapacity)
	m.sched = scheduler.New(scheduler.Config{
		Slots:      cfg.RenderSlots,
		MaxPending: cfg.MaxPending,
		Logger:     cfg.Logger,
	})

	switch cfg.VisibilityMode {
	case VisibilityImmediate:
		m.gate = visibility.NewGate(visibility.Immediate{}, cfg.Visibility, cfg.Logger)
	default:
		m.push = visibility.NewPush(cfg.Logger)
		m.gate = visibility.NewGate(m.push, cfg.Visibility, cfg.Logger)
	}

	m.capable = cfg.Backend != nil && cfg.Loader != nil
	if m.capable {
		m.unit = capture.New(cfg.Backend, cfg.Loader, capture.Options{
			SettleTicks: cfg.SettleTicks,
			FrameSize:   cfg.FrameSize,
		}, cfg.Logger)
	}

	// Apply defaults if unset
	if cfg.SessionTTL == 0 {
		m.sessionTTL = defaultSessionTTL
	} else if cfg.SessionTTL < 0 {
		m.sessionTTL = 0
	} else {
		m.sessionTTL = cfg.SessionTTL
	}
	if cfg.Events == nil {
		m.pub = noopPublisher{}
	} else {
		m.pub = cfg.Events
	}
	return m
}
