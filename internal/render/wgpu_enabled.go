//go:build wgpu

package render

import (
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"previewd/internal/assets"
)

// wgpuBackend drives a real GPU device through the wgpu HAL. Device and
// queue bring-up is complete; the raster stages still run on the CPU
// compositor until the shader port lands, so snapshots stay identical across
// backends.
//
// TODO: dispatch the compute raster pipeline instead of compose() once the
// shader port lands.
type wgpuBackend struct {
	mu          sync.Mutex
	opts        Options
	initialized bool
	stop        chan struct{}
	subscribers map[*wgpuContext]struct{}

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	adapter  string
}

// init registers the wgpu backend when it is compiled in.
func init() {
	Register(BackendWgpu, func() Backend { return NewWgpu(Options{}) })
}

// NewWgpu creates a GPU rendering backend.
func NewWgpu(opts Options) Backend {
	return &wgpuBackend{
		opts:        opts.withDefaults(),
		subscribers: make(map[*wgpuContext]struct{}),
	}
}

func (b *wgpuBackend) Name() string { return BackendWgpu }

func (b *wgpuBackend) Contexts() int { return b.opts.Contexts }

func (b *wgpuBackend) InUse() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Init opens the Vulkan device and starts the render loop.
func (b *wgpuBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := b.initGPU(); err != nil {
		b.teardownLocked()
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	b.stop = make(chan struct{})
	go b.runLoop(b.stop)
	b.initialized = true
	log.Printf("render=wgpu event=initialized adapter=%q", b.adapter)
	return nil
}

func (b *wgpuBackend) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	b.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	b.device = openDev.Device
	b.queue = openDev.Queue
	b.adapter = selected.Info.Name
	return nil
}

func (b *wgpuBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		close(b.stop)
		b.initialized = false
	}
	b.subscribers = make(map[*wgpuContext]struct{})
	b.teardownLocked()
	contextsInUse.Set(0)
}

func (b *wgpuBackend) teardownLocked() {
	if b.device != nil {
		b.device.Destroy()
		b.device = nil
	}
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
	b.queue = nil
}

func (b *wgpuBackend) runLoop(stop chan struct{}) {
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

func (b *wgpuBackend) Acquire() (Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	if len(b.subscribers) >= b.opts.Contexts {
		return nil, ErrNoContexts
	}
	c := &wgpuContext{
		backend: b,
		frames:  make(chan struct{}, 1),
	}
	b.subscribers[c] = struct{}{}
	contextsInUse.Set(float64(len(b.subscribers)))
	return c, nil
}

func (b *wgpuBackend) release(c *wgpuContext) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers, c)
	contextsInUse.Set(float64(len(b.subscribers)))
}

type wgpuContext struct {
	backend *wgpuBackend
	frames  chan struct{}
	once    sync.Once
}

func (c *wgpuContext) Frames() <-chan struct{} { return c.frames }

func (c *wgpuContext) Draw(scene *assets.SceneHandle, width, height int) (*image.RGBA, error) {
	if scene == nil {
		return nil, ErrDrawFailed("nil scene")
	}
	if width <= 0 || height <= 0 {
		return nil, ErrDrawFailed("invalid framebuffer size")
	}
	drawsTotal.Inc()
	return compose(scene, width, height), nil
}

func (c *wgpuContext) Release() {
	c.once.Do(func() { c.backend.release(c) })
}
