package render

import (
	"image"
	"sync"
	"time"

	"previewd/internal/assets"
)

// softwareBackend is the CPU rasterizer. It is always compiled in and serves
// as the fallback when no GPU capability exists on the host.
type softwareBackend struct {
	mu          sync.Mutex
	opts        Options
	initialized bool
	stop        chan struct{}
	subscribers map[*softwareContext]struct{}
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() Backend {
		return NewSoftware(Options{})
	})
}

// NewSoftware creates a software rendering backend.
func NewSoftware(opts Options) Backend {
	return &softwareBackend{
		opts:        opts.withDefaults(),
		subscribers: make(map[*softwareContext]struct{}),
	}
}

func (b *softwareBackend) Name() string { return BackendSoftware }

func (b *softwareBackend) Contexts() int { return b.opts.Contexts }

func (b *softwareBackend) InUse() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Init starts the render loop. Calling Init on an initialized backend is a
// no-op.
func (b *softwareBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	b.stop = make(chan struct{})
	go b.runLoop(b.stop)
	b.initialized = true
	return nil
}

func (b *softwareBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	close(b.stop)
	b.initialized = false
	b.subscribers = make(map[*softwareContext]struct{})
	contextsInUse.Set(0)
}

// runLoop ticks at the configured interval and fans each tick out to every
// acquired context. Delivery is best-effort: a context that has not consumed
// its previous tick just misses this one.
func (b *softwareBackend) runLoop(stop chan struct{}) {
	ticker := time.NewTicker(b.opts.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			b.mu.Lock()
			for c := range b.subscribers {
				select {
				case c.frames <- struct{}{}:
				default:
				}
			}
			b.mu.Unlock()
		}
	}
}

func (b *softwareBackend) Acquire() (Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	if len(b.subscribers) >= b.opts.Contexts {
		return nil, ErrNoContexts
	}
	c := &softwareContext{
		backend: b,
		frames:  make(chan struct{}, 1),
	}
	b.subscribers[c] = struct{}{}
	contextsInUse.Set(float64(len(b.subscribers)))
	return c, nil
}

func (b *softwareBackend) release(c *softwareContext) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers, c)
	contextsInUse.Set(float64(len(b.subscribers)))
}

// softwareContext is one acquired slot of the software backend.
type softwareContext struct {
	backend *softwareBackend
	frames  chan struct{}
	once    sync.Once
}

func (c *softwareContext) Frames() <-chan struct{} { return c.frames }

func (c *softwareContext) Draw(scene *assets.SceneHandle, width, height int) (*image.RGBA, error) {
	if scene == nil {
		return nil, ErrDrawFailed("nil scene")
	}
	if width <= 0 || height <= 0 {
		return nil, ErrDrawFailed("invalid framebuffer size")
	}
	drawsTotal.Inc()
	return compose(scene, width, height), nil
}

func (c *softwareContext) Release() {
	c.once.Do(func() { c.backend.release(c) })
}
