package previewctl

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"previewd/pkg/types"
)

func TestDoJSON_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/previews" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %q", ct)
		}
		var req types.PreviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(types.PreviewResource{ID: "s1", SourceKey: req.SourceKey, State: "loading"})
	}))
	defer srv.Close()

	cfg := &Config{BaseURL: srv.URL}
	var res types.PreviewResource
	err := doJSON(cfg, http.MethodPost, "/previews", types.PreviewRequest{SourceKey: "chair.glb"}, &res)
	if err != nil {
		t.Fatalf("doJSON: %v", err)
	}
	if res.ID != "s1" || res.SourceKey != "chair.glb" {
		t.Fatalf("unexpected resource: %+v", res)
	}
}

func TestDoJSON_DecodesErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(types.ErrorResponse{Error: "preview session not found: nope", Code: 404})
	}))
	defer srv.Close()

	cfg := &Config{BaseURL: srv.URL}
	err := getJSON(cfg, "/previews/nope", &types.PreviewResource{})
	if err == nil {
		t.Fatalf("expected error")
	}
	ae, ok := err.(*apiError)
	if !ok {
		t.Fatalf("expected *apiError, got %T: %v", err, err)
	}
	if ae.Status != 404 || ae.Msg != "preview session not found: nope" {
		t.Fatalf("unexpected apiError: %+v", ae)
	}
}

func TestDoJSON_PlainTextErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "degraded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := &Config{BaseURL: srv.URL}
	err := getJSON(cfg, "/readyz", nil)
	ae, ok := err.(*apiError)
	if !ok {
		t.Fatalf("expected *apiError, got %T: %v", err, err)
	}
	if ae.Status != 503 || ae.Msg != "degraded" {
		t.Fatalf("unexpected apiError: %+v", ae)
	}
}

func TestGetBytes(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 1, 2, 3}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	defer srv.Close()

	cfg := &Config{BaseURL: srv.URL}
	b, ct, err := getBytes(cfg, "/previews/s1/image")
	if err != nil {
		t.Fatalf("getBytes: %v", err)
	}
	if ct != "image/png" || len(b) != len(png) {
		t.Fatalf("unexpected response: ct=%q len=%d", ct, len(b))
	}
}

func TestWaitReady_PollsUntilReady(t *testing.T) {
	old := pollInterval
	pollInterval = 2 * time.Millisecond
	defer func() { pollInterval = old }()

	var polls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		res := types.PreviewResource{ID: "s1", State: "loading", Phase: "rendering"}
		if n >= 3 {
			res.State = "ready"
			res.Phase = "cached"
			res.HasImage = true
		}
		json.NewEncoder(w).Encode(res)
	}))
	defer srv.Close()

	cfg := &Config{BaseURL: srv.URL}
	res, err := waitReady(cfg, "s1", 5*time.Second)
	if err != nil {
		t.Fatalf("waitReady: %v", err)
	}
	if res.State != "ready" || !res.HasImage {
		t.Fatalf("unexpected resource: %+v", res)
	}
	if polls.Load() < 3 {
		t.Fatalf("expected at least 3 polls, got %d", polls.Load())
	}
}

func TestWaitReady_SurfacesRenderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.PreviewResource{ID: "s1", State: "error", Phase: "errored", Error: "asset not found: ghost.glb"})
	}))
	defer srv.Close()

	cfg := &Config{BaseURL: srv.URL}
	if _, err := waitReady(cfg, "s1", time.Second); err == nil {
		t.Fatalf("expected render error")
	}
}

func TestWaitReady_TimesOut(t *testing.T) {
	old := pollInterval
	pollInterval = 2 * time.Millisecond
	defer func() { pollInterval = old }()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.PreviewResource{ID: "s1", State: "loading", Phase: "queued"})
	}))
	defer srv.Close()

	cfg := &Config{BaseURL: srv.URL}
	if _, err := waitReady(cfg, "s1", 20*time.Millisecond); err == nil {
		t.Fatalf("expected timeout error")
	}
}
