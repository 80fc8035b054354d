package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"previewd/internal/assets"
	"previewd/internal/httpapi"
	"previewd/internal/preview"
	"previewd/internal/render"
	"previewd/pkg/types"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// createTempAssetsDir creates a temporary directory populated with small
// scene files and returns the directory path and the list of source keys
// (filenames).
func createTempAssetsDir(t *testing.T, names ...string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte("scene bytes for "+n), 0o644); err != nil {
			t.Fatalf("write temp asset %s: %v", p, err)
		}
	}
	return dir, names
}

// gatedLoader blocks every Load until the gate opens, and records per-key
// load counts plus the maximum number of loads in flight at once.
type gatedLoader struct {
	mu     sync.Mutex
	gate   chan struct{}
	loads  map[string]int
	cur    int
	maxCur int
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{gate: make(chan struct{}), loads: map[string]int{}}
}

// open releases all current and future loads. Call at most once per test.
func (l *gatedLoader) open() { close(l.gate) }

func (l *gatedLoader) Load(ctx context.Context, key string) (*assets.SceneHandle, error) {
	l.mu.Lock()
	l.loads[key]++
	l.cur++
	if l.cur > l.maxCur {
		l.maxCur = l.cur
	}
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.cur--
		l.mu.Unlock()
	}()
	select {
	case <-l.gate:
	case <-ctx.Done():
		return nil, assets.ErrLoadFailure(key, ctx.Err())
	}
	return assets.NewSceneHandle(key, "glb", []byte("scene bytes for "+key)), nil
}

func (l *gatedLoader) loadCount(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads[key]
}

func (l *gatedLoader) maxConcurrent() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxCur
}

// newServer stands up the full pipeline behind an httptest server: software
// backend, directory loader, manager, HTTP mux. mut adjusts the config
// before construction.
func newServer(t *testing.T, assetsDir string, mut func(cfg *preview.Config)) (*httptest.Server, *preview.Manager) {
	t.Helper()
	catalog, err := assets.LoadDir(assetsDir)
	if err != nil {
		t.Fatalf("scan assets: %v", err)
	}
	loader, err := assets.NewDirLoader(assetsDir)
	if err != nil {
		t.Fatalf("open assets dir: %v", err)
	}
	backend, err := render.Open(render.BackendSoftware, render.Options{Contexts: 1, TickInterval: 2 * time.Millisecond})
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	cfg := preview.Config{
		Backend:        backend,
		Loader:         loader,
		Catalog:        catalog,
		CacheCapacity:  8,
		SettleTicks:    1,
		FrameSize:      64,
		VisibilityMode: preview.VisibilityImmediate,
	}
	if mut != nil {
		mut(&cfg)
	}
	mgr := preview.NewWithConfig(cfg)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = mgr.Shutdown(ctx)
	})
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv, mgr
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpDelete(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func mountPreview(t *testing.T, base, key string) types.PreviewResource {
	t.Helper()
	resp, body := httpPostJSON(t, base+"/previews", []byte(`{"source_key":"`+key+`"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /previews %d %s", resp.StatusCode, string(body))
	}
	var res types.PreviewResource
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("preview json: %v body=%s", err, string(body))
	}
	return res
}

func getStatus(t *testing.T, base string) types.StatusResponse {
	t.Helper()
	resp, body := httpGet(t, base+"/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/status %d %s", resp.StatusCode, string(body))
	}
	var st types.StatusResponse
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("/status json: %v body=%s", err, string(body))
	}
	return st
}

// waitStatus polls /status until cond holds. Fails the test after 5s.
func waitStatus(t *testing.T, base string, what string, cond func(types.StatusResponse) bool) types.StatusResponse {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		st := getStatus(t, base)
		if cond(st) {
			return st
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s; last status: %+v", what, st)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// waitSessionState polls one session resource until it reports state.
func waitSessionState(t *testing.T, base, id, state string) types.PreviewResource {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, body := httpGet(t, base+"/previews/"+id)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET /previews/%s %d %s", id, resp.StatusCode, string(body))
		}
		var res types.PreviewResource
		if err := json.Unmarshal(body, &res); err != nil {
			t.Fatalf("preview json: %v body=%s", err, string(body))
		}
		if res.State == state {
			return res
		}
		if time.Now().After(deadline) {
			t.Fatalf("session %s did not reach state %q; last: %+v", id, state, res)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
