package previewctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"previewd/pkg/types"
)

// httpClient bounds each individual request; long waits happen in the poll
// loop, not inside a single round trip.
var httpClient = &http.Client{Timeout: 10 * time.Second}

// pollInterval is how often waitReady re-reads the session resource.
var pollInterval = 200 * time.Millisecond

// apiError carries the decoded error body and status from the daemon.
type apiError struct {
	Status int
	Msg    string
}

func (e *apiError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("previewd returned http %d", e.Status)
	}
	return fmt.Sprintf("previewd: %s (http %d)", e.Msg, e.Status)
}

// doJSON performs one API round trip. A nil in skips the request body, a nil
// out discards the response body. Non-2xx responses become *apiError.
func doJSON(cfg *Config, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, cfg.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	debug("[previewctl] %s %s -> %d", method, path, resp.StatusCode)
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func getJSON(cfg *Config, path string, out any) error {
	return doJSON(cfg, http.MethodGet, path, nil, out)
}

// getBytes fetches a binary endpoint and returns the body plus content type.
func getBytes(cfg *Config, path string) ([]byte, string, error) {
	resp, err := httpClient.Get(cfg.BaseURL + path)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	debug("[previewctl] GET %s -> %d", path, resp.StatusCode)
	if resp.StatusCode >= 400 {
		return nil, "", decodeAPIError(resp)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return b, resp.Header.Get("Content-Type"), nil
}

// decodeAPIError prefers the daemon's JSON error envelope; plain-text bodies
// (healthz style) fall back to the raw string.
func decodeAPIError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var er types.ErrorResponse
	if err := json.Unmarshal(b, &er); err == nil && er.Error != "" {
		return &apiError{Status: resp.StatusCode, Msg: er.Error}
	}
	return &apiError{Status: resp.StatusCode, Msg: strings.TrimSpace(string(b))}
}

// waitReady polls the session until it is ready or errored. A 404 mid-poll
// means the session expired or was cancelled out from under us; that is
// surfaced as the API error, not retried.
func waitReady(cfg *Config, id string, timeout time.Duration) (types.PreviewResource, error) {
	deadline := time.Now().Add(timeout)
	for {
		var res types.PreviewResource
		if err := getJSON(cfg, "/previews/"+id, &res); err != nil {
			return types.PreviewResource{}, err
		}
		switch res.State {
		case "ready":
			return res, nil
		case "error":
			return res, fmt.Errorf("render failed: %s", res.Error)
		}
		if time.Now().After(deadline) {
			return res, fmt.Errorf("timed out waiting for session %s (phase %s)", id, res.Phase)
		}
		time.Sleep(pollInterval)
	}
}
