package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"previewd/internal/assets"
	"previewd/internal/config"
	"previewd/internal/httpapi"
	"previewd/internal/preview"
	"previewd/internal/render"
	"previewd/internal/visibility"
)

func main() {
	// Flags with environment variable defaults
	cfgPath := flag.String("config", "", "Optional config file (.yaml/.json/.toml); flags override file values")
	addr := flag.String("addr", envOr("PREVIEWD_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	assetsDir := flag.String("assets-dir", envOr("PREVIEWD_ASSETS_DIR", "./assets"), "Directory to scan for scene files (*.glb, *.gltf, *.obj)")
	assetsBaseURL := flag.String("assets-base-url", "", "Fetch scene data over HTTP from this base URL instead of assets-dir")
	backendName := flag.String("backend", envOr("PREVIEWD_BACKEND", "auto"), "Render backend: auto|software|wgpu")
	cacheCapacity := flag.Int("cache-capacity", 0, "Snapshot cache capacity in entries (0=default)")
	renderSlots := flag.Int("render-slots", 0, "Concurrent render slots (0=default)")
	maxPending := flag.Int("max-pending", 0, "Admission queue depth before requests are rejected (0=default)")
	settleTicks := flag.Int("settle-ticks", 0, "Render ticks to wait before capturing (0=default)")
	frameSize := flag.Int("frame-size", 0, "Snapshot edge length in pixels (0=default)")
	sessionTTL := flag.String("session-ttl", "", "Idle session lifetime as a duration, e.g. 15m (0=never expire)")
	visMode := flag.String("visibility-mode", "", "Visibility feed: push|immediate (default push)")
	visMargin := flag.Int("visibility-margin-px", 0, "Margin in CSS pixels added around the viewport (0=default)")
	visThreshold := flag.Float64("visibility-threshold", 0, "Intersection ratio that counts as visible (0=default)")
	visKeep := flag.Bool("visibility-keep-observing", false, "Keep forwarding visibility reports after the first intersection")
	logLevel := flag.String("log-level", envOr("PREVIEWD_LOG_LEVEL", "info"), "Log level: trace|debug|info|warn|error|off")
	corsOrigins := flag.String("cors-origins", "", "Comma separated allowed CORS origins (empty disables CORS)")
	maxBodyBytes := flag.Int64("max-body-bytes", 0, "Maximum request body size in bytes (0=default)")
	imageCacheControl := flag.String("image-cache-control", "", "Cache-Control header on snapshot responses (default no-store)")
	flag.Parse()

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	if *cfgPath != "" {
		fileCfg, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config %s: %v\n", *cfgPath, err)
			os.Exit(1)
		}
		// Flags given on the command line win over file values.
		setStr := func(name string, dst *string, v string) {
			if !setFlags[name] && v != "" {
				*dst = v
			}
		}
		setInt := func(name string, dst *int, v int) {
			if !setFlags[name] && v != 0 {
				*dst = v
			}
		}
		setStr("addr", addr, fileCfg.Addr)
		setStr("assets-dir", assetsDir, fileCfg.AssetsDir)
		setStr("assets-base-url", assetsBaseURL, fileCfg.AssetsBaseURL)
		setStr("backend", backendName, fileCfg.Backend)
		setInt("cache-capacity", cacheCapacity, fileCfg.CacheCapacity)
		setInt("render-slots", renderSlots, fileCfg.RenderSlots)
		setInt("max-pending", maxPending, fileCfg.MaxPending)
		setInt("settle-ticks", settleTicks, fileCfg.SettleTicks)
		setInt("frame-size", frameSize, fileCfg.FrameSize)
		setStr("session-ttl", sessionTTL, fileCfg.SessionTTL)
		setStr("visibility-mode", visMode, fileCfg.VisibilityMode)
		setInt("visibility-margin-px", visMargin, fileCfg.VisibilityMarginPx)
		if !setFlags["visibility-threshold"] && fileCfg.VisibilityThreshold != 0 {
			*visThreshold = fileCfg.VisibilityThreshold
		}
		if !setFlags["visibility-keep-observing"] && fileCfg.VisibilityKeepObserving {
			*visKeep = true
		}
		setStr("log-level", logLevel, fileCfg.LogLevel)
		setStr("cors-origins", corsOrigins, fileCfg.CORSOrigins)
		if !setFlags["max-body-bytes"] && fileCfg.MaxBodyBytes != 0 {
			*maxBodyBytes = fileCfg.MaxBodyBytes
		}
		setStr("image-cache-control", imageCacheControl, fileCfg.ImageCacheControl)
	}

	logger := newLogger(*logLevel)
	httpapi.SetLogger(logger)
	if *maxBodyBytes > 0 {
		httpapi.SetMaxBodyBytes(*maxBodyBytes)
	}
	if *imageCacheControl != "" {
		httpapi.SetImageCacheControl(*imageCacheControl)
	}
	if origins := splitCSV(*corsOrigins); len(origins) > 0 {
		httpapi.SetCORSOptions(true, origins,
			[]string{"GET", "POST", "DELETE", "OPTIONS"},
			[]string{"Accept", "Content-Type", "X-Log-Level"})
	}

	ttl, err := parseSessionTTL(*sessionTTL)
	if err != nil {
		logger.Fatal().Err(err).Str("session_ttl", *sessionTTL).Msg("invalid session ttl")
	}

	// Catalog comes from the local scan even in HTTP loader mode; a missing
	// dir is only fatal when it is also the byte source.
	catalog, err := assets.LoadDir(*assetsDir)
	if err != nil {
		if *assetsBaseURL == "" {
			logger.Fatal().Err(err).Str("dir", *assetsDir).Msg("scan assets")
		}
		logger.Warn().Err(err).Str("dir", *assetsDir).Msg("assets dir unavailable, serving empty catalog")
	}

	var loader assets.Loader
	if *assetsBaseURL != "" {
		loader = assets.NewHTTPLoader(*assetsBaseURL, 0, 0)
	} else {
		dl, err := assets.NewDirLoader(*assetsDir)
		if err != nil {
			logger.Fatal().Err(err).Str("dir", *assetsDir).Msg("open assets dir")
		}
		loader = dl
	}

	backend, err := render.Open(*backendName, render.Options{Contexts: *renderSlots})
	if err != nil {
		logger.Fatal().Err(err).Str("backend", *backendName).
			Strs("available", render.Available()).Msg("open render backend")
	}

	mgr := preview.NewWithConfig(preview.Config{
		Backend:       backend,
		Loader:        loader,
		Catalog:       catalog,
		CacheCapacity: *cacheCapacity,
		RenderSlots:   *renderSlots,
		MaxPending:    *maxPending,
		SettleTicks:   *settleTicks,
		FrameSize:     *frameSize,
		SessionTTL:    ttl,

		VisibilityMode: *visMode,
		Visibility: visibility.Options{
			MarginPx:      *visMargin,
			Threshold:     *visThreshold,
			KeepObserving: *visKeep,
		},

		Events: preview.LogPublisher{Log: logger},
		Logger: logger,
	})

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	go mgr.Run(runCtx)

	mux := httpapi.NewMux(mgr)
	srv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", *addr).Str("backend", mgr.BackendName()).
			Int("assets", len(catalog)).Msg("previewd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelRun()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	if err := mgr.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("pipeline shutdown error")
	}
}

// envOr returns the environment value for key, or def when unset/empty.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// newLogger builds the process logger. Unknown levels fall back to info;
// "off" silences everything.
func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch s := strings.ToLower(strings.TrimSpace(level)); s {
	case "off", "silent", "none":
		lvl = zerolog.Disabled
	case "":
	default:
		if p, err := zerolog.ParseLevel(s); err == nil {
			lvl = p
		}
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)
}

// parseSessionTTL maps the flag/config string onto Manager semantics:
// empty keeps the built-in default, "0" (or any non-positive duration)
// disables expiry entirely.
func parseSessionTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse session ttl: %w", err)
	}
	if d <= 0 {
		return -1, nil
	}
	return d, nil
}

// splitCSV splits a comma separated list, trimming whitespace and dropping
// empty items. Returns nil for an empty string.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
