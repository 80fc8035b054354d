// Package render owns the scarce rendering contexts previews are drawn
// with. A Backend brings up the rendering capability once per process and
// hands out pooled Contexts; the capture path acquires one per snapshot and
// must release it on every exit path.
//
// Backends register themselves (see registry.go). The software rasterizer is
// always compiled in; the wgpu backend is built behind the "wgpu" tag and
// selected automatically when present.
package render

import (
	"errors"
	"image"
	"time"

	"previewd/internal/assets"
)

// Backend name constants.
const (
	BackendAuto     = "auto"
	BackendSoftware = "software"
	BackendWgpu     = "wgpu"
)

// Common backend errors.
var (
	// ErrUnavailable is returned when the host cannot render at all.
	ErrUnavailable = errors.New("render: no backend available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("render: backend not initialized")

	// ErrNoContexts is returned when the context pool is exhausted. The
	// admission queue upstream keeps concurrent captures within the pool
	// size, so hitting this indicates a release discipline bug.
	ErrNoContexts = errors.New("render: context pool exhausted")
)

// Options carries backend tunables.
type Options struct {
	// Contexts is the context pool size; it should match the admission
	// queue's slot count. Default 1.
	Contexts int
	// TickInterval is the render-loop period. Default ~60Hz.
	TickInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Contexts <= 0 {
		o.Contexts = 1
	}
	if o.TickInterval <= 0 {
		o.TickInterval = 16 * time.Millisecond
	}
	return o
}

// Context is one acquired rendering context.
type Context interface {
	// Frames returns this context's render-loop tick stream. Ticks are
	// delivered best-effort; a receiver that lags may observe fewer ticks
	// than the loop produced.
	Frames() <-chan struct{}

	// Draw renders the scene into an RGBA framebuffer of the given size
	// and reads it back.
	Draw(scene *assets.SceneHandle, width, height int) (*image.RGBA, error)

	// Release returns the context to its backend's pool. Safe to call
	// more than once.
	Release()
}

// Backend is a rendering capability with a bounded context pool.
type Backend interface {
	// Name returns the backend identifier (e.g. "software", "wgpu").
	Name() string

	// Init brings the backend up and starts its render loop.
	Init() error

	// Close stops the render loop and releases backend resources.
	Close()

	// Contexts returns the pool size.
	Contexts() int

	// InUse returns how many contexts are currently acquired.
	InUse() int

	// Acquire takes a context from the pool.
	Acquire() (Context, error)
}

// Open constructs and initializes the backend selected by name. BackendAuto
// (or empty) prefers wgpu when it is compiled in and can reach a device,
// falling back to the software rasterizer. Unknown names are looked up in
// the registry.
func Open(name string, opts Options) (Backend, error) {
	switch name {
	case "", BackendAuto:
		if b := NewWgpu(opts); b != nil {
			if err := b.Init(); err == nil {
				return b, nil
			}
		}
		b := NewSoftware(opts)
		if err := b.Init(); err != nil {
			return nil, err
		}
		return b, nil
	case BackendSoftware:
		b := NewSoftware(opts)
		if err := b.Init(); err != nil {
			return nil, err
		}
		return b, nil
	case BackendWgpu:
		b := NewWgpu(opts)
		if b == nil {
			return nil, ErrUnavailable
		}
		if err := b.Init(); err != nil {
			return nil, err
		}
		return b, nil
	default:
		b := Get(name)
		if b == nil {
			return nil, ErrUnavailable
		}
		if err := b.Init(); err != nil {
			return nil, err
		}
		return b, nil
	}
}
