package blackbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) (int, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	cleanup := func() { _ = ln.Close() }
	var port int
	fmt.Sscanf(portStr, "%d", &port)
	return port, cleanup
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file: <root>/tests/blackbox/blackbox_test.go
	bbDir := filepath.Dir(thisFile)
	root := filepath.Dir(filepath.Dir(bbDir))
	return root
}

func buildBinary(t *testing.T) string {
	t.Helper()
	root := projectRootFromThisFile(t)
	outDir := t.TempDir()
	binPath := filepath.Join(outDir, "previewd")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/previewd")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

// createTempAssetsDir writes empty scene files; the software compositor only
// needs the bytes' digest, so content does not matter here.
func createTempAssetsDir(t *testing.T, names ...string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte(""), 0o644); err != nil {
			t.Fatalf("write temp asset %s: %v", p, err)
		}
	}
	return dir, names
}

type serverProc struct {
	cmd  *exec.Cmd
	base string // http base URL, e.g. http://127.0.0.1:18080
}

func startServer(t *testing.T, bin string, assetsDir string, port int, extra ...string) *serverProc {
	t.Helper()
	addr := fmt.Sprintf(":%d", port)
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	args := []string{
		"--addr", addr,
		"--assets-dir", assetsDir,
		"--visibility-mode", "immediate",
		"--settle-ticks", "1",
		"--frame-size", "64",
	}
	args = append(args, extra...)
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	// Wait for healthz
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			_ = cmd.Process.Kill()
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	sp := &serverProc{cmd: cmd, base: base}
	t.Cleanup(func() { _ = cmd.Process.Kill() })
	return sp
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func postJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func del(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

// waitState polls a preview session until it reaches want or the deadline
// passes.
func waitState(t *testing.T, base, id, want string) []byte {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, body := get(t, base+"/previews/"+id)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET preview %s: %d %s", id, resp.StatusCode, string(body))
		}
		var res struct{ State string `json:"state"` }
		if err := json.Unmarshal(body, &res); err != nil {
			t.Fatalf("preview json: %v body=%s", err, string(body))
		}
		if res.State == want {
			return body
		}
		if res.State == "error" && want != "error" {
			t.Fatalf("session %s failed while waiting for %s: %s", id, want, string(body))
		}
		if time.Now().After(deadline) {
			t.Fatalf("session %s did not reach %s in time; last=%s", id, want, string(body))
		}
		time.Sleep(25 * time.Millisecond)
	}
}

func TestBlackbox_Flow(t *testing.T) {
	// Build server binary
	bin := buildBinary(t)
	// Create assets
	assetsDir, assets := createTempAssetsDir(t, "alpha.glb", "beta.obj")
	// Reserve a free port, then release listener before starting the server
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, assetsDir, port)

	// /healthz
	resp, body := get(t, sp.base+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/healthz %d %s", resp.StatusCode, string(body))
	}
	// /readyz is 200 from boot: render capability is static, there is no
	// warm-up phase.
	resp, body = get(t, sp.base+"/readyz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/readyz %d %s", resp.StatusCode, string(body))
	}
	// /assets
	resp, body = get(t, sp.base+"/assets")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/assets %d %s", resp.StatusCode, string(body))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("/assets content-type=%s", ct)
	}
	var assetsResp struct{ Assets []struct{ ID string `json:"id"` } `json:"assets"` }
	if err := json.Unmarshal(body, &assetsResp); err != nil {
		t.Fatalf("/assets json: %v body=%s", err, string(body))
	}
	if len(assetsResp.Assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assetsResp.Assets))
	}
	// Mount a preview; immediate mode renders without a visibility report.
	resp, body = postJSON(t, sp.base+"/previews", []byte(`{"source_key":"`+assets[0]+`"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("/previews %d %s", resp.StatusCode, string(body))
	}
	var mounted struct{ ID string `json:"id"` }
	if err := json.Unmarshal(body, &mounted); err != nil {
		t.Fatalf("/previews json: %v body=%s", err, string(body))
	}
	if mounted.ID == "" {
		t.Fatalf("mount returned no id: %s", string(body))
	}
	waitState(t, sp.base, mounted.ID, "ready")

	// The snapshot is a PNG.
	resp, body = get(t, sp.base+"/previews/"+mounted.ID+"/image")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("image %d %s", resp.StatusCode, string(body))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("image content-type=%s", ct)
	}
	if !bytes.HasPrefix(body, pngMagic) {
		t.Fatalf("image is not a PNG (%d bytes)", len(body))
	}
	// /status reflects the render.
	resp, body = get(t, sp.base+"/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/status %d %s", resp.StatusCode, string(body))
	}
	var statusResp struct {
		Backend      string `json:"backend"`
		CacheEntries int    `json:"cache_entries"`
		RendersTotal int    `json:"renders_total"`
	}
	if err := json.Unmarshal(body, &statusResp); err != nil {
		t.Fatalf("/status json: %v body=%s", err, string(body))
	}
	if statusResp.Backend != "software" {
		t.Fatalf("backend=%s", statusResp.Backend)
	}
	if statusResp.CacheEntries < 1 || statusResp.RendersTotal < 1 {
		t.Fatalf("status shows no render: %s", string(body))
	}

	// /metrics exports the http counters.
	resp, body = get(t, sp.base+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/metrics %d", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte("previewd_http_requests_total")) {
		t.Fatalf("metrics missing previewd_http_requests_total")
	}

	// Unmount.
	resp, body = del(t, sp.base+"/previews/"+mounted.ID)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete %d %s", resp.StatusCode, string(body))
	}
	resp, _ = get(t, sp.base+"/previews/"+mounted.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete %d", resp.StatusCode)
	}
}

func TestBlackbox_UnknownAsset_RenderError(t *testing.T) {
	bin := buildBinary(t)
	assetsDir, _ := createTempAssetsDir(t, "alpha.glb")
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, assetsDir, port)

	// The mount succeeds; the failure surfaces when the loader cannot
	// resolve the key.
	resp, body := postJSON(t, sp.base+"/previews", []byte(`{"source_key":"ghost.glb"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("/previews %d %s", resp.StatusCode, string(body))
	}
	var mounted struct{ ID string `json:"id"` }
	if err := json.Unmarshal(body, &mounted); err != nil {
		t.Fatalf("json: %v", err)
	}
	body = waitState(t, sp.base, mounted.ID, "error")
	if !bytes.Contains(body, []byte("ghost.glb")) {
		t.Fatalf("error should name the missing key: %s", string(body))
	}
	resp, body = get(t, sp.base+"/previews/"+mounted.ID+"/image")
	if resp.StatusCode != http.StatusGone {
		t.Fatalf("image for failed render: %d %s", resp.StatusCode, string(body))
	}
}

func TestBlackbox_InvalidRequest_400(t *testing.T) {
	bin := buildBinary(t)
	assetsDir, _ := createTempAssetsDir(t, "alpha.glb")
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, assetsDir, port)

	resp, body := postJSON(t, sp.base+"/previews", []byte(`{"source_key":""}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d, body=%s", resp.StatusCode, string(body))
	}
}

func TestBlackbox_WarmFlow(t *testing.T) {
	bin := buildBinary(t)
	assetsDir, assets := createTempAssetsDir(t, "alpha.glb")
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, assetsDir, port)

	resp, body := postJSON(t, sp.base+"/warm", []byte(`{"source_key":"`+assets[0]+`"}`))
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("/warm %d %s", resp.StatusCode, string(body))
	}
	var warm struct{ AlreadyCached bool `json:"already_cached"` }
	if err := json.Unmarshal(body, &warm); err != nil {
		t.Fatalf("warm json: %v", err)
	}
	if warm.AlreadyCached {
		t.Fatalf("first warm reported already cached")
	}
	// Wait for the sessionless render to land in the cache.
	deadline := time.Now().Add(5 * time.Second)
	for {
		_, body = get(t, sp.base+"/status")
		var st struct{ CacheEntries int `json:"cache_entries"` }
		if err := json.Unmarshal(body, &st); err != nil {
			t.Fatalf("status json: %v", err)
		}
		if st.CacheEntries == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("warm render never cached; status=%s", string(body))
		}
		time.Sleep(25 * time.Millisecond)
	}

	resp, body = postJSON(t, sp.base+"/warm", []byte(`{"source_key":"`+assets[0]+`"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second warm %d %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, &warm); err != nil {
		t.Fatalf("warm json: %v", err)
	}
	if !warm.AlreadyCached {
		t.Fatalf("second warm should be a cache hit: %s", string(body))
	}
}
