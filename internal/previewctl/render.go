package previewctl

import (
	"net/http"
	"path"
	"strings"

	"previewd/pkg/types"
)

// defaultOutName derives a PNG filename from a source key:
// "gilded-astrolabe.glb" becomes "gilded-astrolabe.png".
func defaultOutName(key string) string {
	base := path.Base(key)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base + ".png"
}

// renderAction drives the same flow a storefront page would: mount a session,
// report the slot visible when the daemon expects push reports, poll until
// the snapshot is cached, download it, then close the session. The cached
// snapshot stays resident for future consumers.
func renderAction(cfg *Config, key string, size int, out string) error {
	res, err := mountSession(cfg, key, size)
	if err != nil {
		return err
	}
	id := res.ID
	defer func() { _ = cancelSession(cfg, id) }()
	info("[previewctl] mounted %s as %s (phase %s)", key, id, res.Phase)

	var vis types.VisibilityConfig
	if err := getJSON(cfg, "/visibility", &vis); err == nil && vis.Provider == "push" {
		if err := reportVisible(cfg, id, 1); err != nil {
			return err
		}
		debug("[previewctl] reported slot visible")
	}

	done, err := waitReady(cfg, id, cfg.Timeout)
	if err != nil {
		return err
	}
	debug("[previewctl] session %s ready (phase %s)", id, done.Phase)

	if out == "" {
		out = defaultOutName(key)
	}
	return fnImage(cfg, id, out)
}

func warmAction(cfg *Config, key string) error {
	var res types.WarmResponse
	if err := doJSON(cfg, http.MethodPost, "/warm", types.Descriptor{SourceKey: key}, &res); err != nil {
		return err
	}
	if res.AlreadyCached {
		info("[previewctl] %s already cached", res.SourceKey)
	} else {
		info("[previewctl] warming %s", res.SourceKey)
	}
	return nil
}
