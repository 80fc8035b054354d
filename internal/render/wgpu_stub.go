//go:build !wgpu

package render

// This file provides the no-GPU stub for the wgpu backend. It is compiled
// when the 'wgpu' build tag is NOT set, keeping default builds free of GPU
// driver dependencies. The real backend lives in wgpu_enabled.go (tagged
// 'wgpu').

type wgpuStub struct{ opts Options }

// NewWgpu constructs a stub that satisfies Backend but refuses to
// initialize, so auto-selection falls through to the software rasterizer.
func NewWgpu(opts Options) Backend {
	return wgpuStub{opts: opts.withDefaults()}
}

func (wgpuStub) Name() string { return BackendWgpu }

// Init fails fast: wgpu support not built.
func (wgpuStub) Init() error { return ErrUnavailable }

func (wgpuStub) Close() {}

func (s wgpuStub) Contexts() int { return s.opts.Contexts }

func (wgpuStub) InUse() int { return 0 }

func (wgpuStub) Acquire() (Context, error) { return nil, ErrUnavailable }
