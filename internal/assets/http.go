package assets

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// DefaultMaxAssetBytes bounds a single fetched asset.
const DefaultMaxAssetBytes = 64 << 20

// HTTPLoader fetches assets from a CDN or origin server. Source keys are
// joined onto the base URL as path elements.
type HTTPLoader struct {
	baseURL  string
	maxBytes int64
	client   *http.Client
}

// NewHTTPLoader constructs a loader for baseURL. maxBytes <= 0 applies
// DefaultMaxAssetBytes.
func NewHTTPLoader(baseURL string, connectTimeout time.Duration, maxBytes int64) *HTTPLoader {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAssetBytes
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	// Client timeout stays 0: every fetch carries a context deadline set by
	// the caller, which also covers response-body reads.
	return &HTTPLoader{
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		client:   &http.Client{Transport: tr, Timeout: 0},
	}
}

func (l *HTTPLoader) Load(ctx context.Context, key string) (*SceneHandle, error) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(key)), ".")
	if !FormatSupported(ext) {
		return nil, ErrUnsupportedFormat(key)
	}
	u, err := url.JoinPath(l.baseURL, key)
	if err != nil {
		return nil, ErrNotFound(key)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, ErrLoadFailure(key, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrLoadFailure(key, ctx.Err())
		}
		return nil, ErrLoadFailure(key, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound(key)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, ErrLoadFailure(key, errors.New("http error: "+resp.Status+": "+string(b)))
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrLoadFailure(key, ctx.Err())
		}
		return nil, ErrLoadFailure(key, err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, ErrLoadFailure(key, errors.New("asset exceeds size limit"))
	}
	return NewSceneHandle(key, ext, data), nil
}
