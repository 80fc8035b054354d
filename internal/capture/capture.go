// Package capture produces one snapshot from one admitted render request:
// acquire a rendering context, load the scene, let the render loop settle,
// draw, read back, encode. The context is released on every exit path; the
// queue slot itself is owned by the caller and freed there.
package capture

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"time"

	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"

	"previewd/internal/assets"
	"previewd/internal/render"
	"previewd/pkg/types"
)

// Defaults applied when corresponding Options fields are unset.
const (
	// DefaultSettleTicks is how many render-loop ticks to wait after the
	// scene is attached before capturing. Tying this to loop progress
	// instead of wall time tracks actual upload completion.
	DefaultSettleTicks = 3
	// DefaultFrameSize is the square framebuffer edge snapshots render at.
	DefaultFrameSize = 512
	// minThumbSize floors client size hints.
	minThumbSize = 16
)

// Options carries capture tunables.
type Options struct {
	SettleTicks int
	// FrameSize is the framebuffer edge in pixels; snapshots render square
	// and may be downscaled per descriptor size hints.
	FrameSize int
}

func (o Options) withDefaults() Options {
	if o.SettleTicks <= 0 {
		o.SettleTicks = DefaultSettleTicks
	}
	if o.FrameSize <= 0 {
		o.FrameSize = DefaultFrameSize
	}
	return o
}

// Result is one encoded snapshot.
type Result struct {
	PNG    []byte
	Width  int
	Height int
	// Elapsed covers acquire through encode.
	Elapsed time.Duration
}

// Unit renders snapshots through a backend's pooled contexts.
type Unit struct {
	backend render.Backend
	loader  assets.Loader
	opts    Options
	log     zerolog.Logger
}

// New constructs a capture unit over backend and loader.
func New(backend render.Backend, loader assets.Loader, opts Options, log zerolog.Logger) *Unit {
	return &Unit{backend: backend, loader: loader, opts: opts.withDefaults(), log: log}
}

// Capture renders desc to an encoded snapshot. Errors carry their phase:
// IsCapabilityUnsupported when no context could be had, IsAssetLoad when the
// scene failed to fetch, IsCaptureFailed when draw or encode broke. ctx is
// the daemon lifecycle context; consumer-initiated cancellation never
// preempts an admitted capture.
func (u *Unit) Capture(ctx context.Context, desc types.Descriptor) (*Result, error) {
	start := time.Now()
	rctx, err := u.backend.Acquire()
	if err != nil {
		captureErrors.WithLabelValues("capability").Inc()
		return nil, ErrCapability(err)
	}
	defer rctx.Release()

	scene, err := u.loader.Load(ctx, desc.SourceKey)
	if err != nil {
		captureErrors.WithLabelValues(assetErrorPhase(err)).Inc()
		return nil, ErrAssetLoad(desc.SourceKey, err)
	}
	digest := scene.Digest()
	u.log.Debug().Str("key", desc.SourceKey).Int("bytes", scene.Size()).
		Hex("digest", digest[:8]).Msg("scene loaded")

	// Let the render loop run a few ticks so the scene is fully settled
	// before the one draw we keep. A stalled loop shows up here as a long
	// settle observation rather than a killed capture.
	settleStart := time.Now()
	for i := 0; i < u.opts.SettleTicks; i++ {
		select {
		case <-ctx.Done():
			captureErrors.WithLabelValues("interrupted").Inc()
			return nil, ErrCaptureFailed(ctx.Err())
		case <-rctx.Frames():
		}
	}
	settleSeconds.Observe(time.Since(settleStart).Seconds())

	size := u.opts.FrameSize
	img, err := rctx.Draw(scene, size, size)
	if err != nil {
		captureErrors.WithLabelValues("draw").Inc()
		return nil, ErrCaptureFailed(err)
	}

	out := scaleForHint(img, desc.SizeHint, size)
	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		captureErrors.WithLabelValues("encode").Inc()
		return nil, ErrCaptureFailed(err)
	}

	elapsed := time.Since(start)
	capturesTotal.Inc()
	captureSeconds.Observe(elapsed.Seconds())
	u.log.Debug().
		Str("key", desc.SourceKey).
		Int("size", out.Bounds().Dx()).
		Dur("elapsed", elapsed).
		Msg("snapshot captured")
	return &Result{
		PNG:     buf.Bytes(),
		Width:   out.Bounds().Dx(),
		Height:  out.Bounds().Dy(),
		Elapsed: elapsed,
	}, nil
}

// assetErrorPhase picks the error-counter label for a failed scene load.
func assetErrorPhase(err error) string {
	switch {
	case assets.IsNotFound(err):
		return "asset_missing"
	case assets.IsUnsupportedFormat(err):
		return "asset_format"
	case assets.IsLoadFailure(err):
		return "asset_fetch"
	}
	return "asset"
}

// scaleForHint downscales img when the consumer asked for something smaller
// than the framebuffer. Hints never upscale.
func scaleForHint(img *image.RGBA, hint, frameSize int) *image.RGBA {
	if hint <= 0 || hint >= frameSize {
		return img
	}
	if hint < minThumbSize {
		hint = minThumbSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, hint, hint))
	xdraw.CatmullRom.Scale(dst, dst.Rect, img, img.Bounds(), xdraw.Over, nil)
	return dst
}
