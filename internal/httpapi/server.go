// Package httpapi exposes the preview pipeline over HTTP. Routing is built
// on chi; handlers translate between the JSON API surface and the manager's
// methods and stay free of pipeline logic themselves.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"previewd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	RequestPreview(req types.PreviewRequest) (types.PreviewResource, error)
	GetPreview(id string) (types.PreviewResource, error)
	GetImage(id string) ([]byte, error)
	ReportVisibility(id string, upd types.VisibilityUpdate) error
	CancelPreview(id string) error
	Warm(desc types.Descriptor) (bool, error)
	ListAssets() []types.Asset
	VisibilityConfig() types.VisibilityConfig
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints; PNG bodies are left alone.
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Snapshot PNGs are served inline, so responses must not be MIME sniffed.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)

	r.Post("/previews", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.PreviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		res, err := svc.RequestPreview(req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
		if wantsLog(r, zerolog.InfoLevel) {
			if zlog != nil {
				z := zlog.Info().Str("session", res.ID).Str("key", res.SourceKey).Str("phase", res.Phase)
				if rid := middleware.GetReqID(r.Context()); rid != "" {
					z = z.Str("request_id", rid)
				}
				z.Msg("preview mounted")
			} else {
				log.Printf("preview mounted session=%s key=%s phase=%s", res.ID, res.SourceKey, res.Phase)
			}
		}
	})

	r.Get("/previews/{id}", func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.GetPreview(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	r.Get("/previews/{id}/image", func(w http.ResponseWriter, r *http.Request) {
		img, err := svc.GetImage(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", imageCacheControl)
		w.WriteHeader(http.StatusOK)
		n, _ := w.Write(img)
		ObserveImageServed(n)
	})

	r.Post("/previews/{id}/visible", func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var upd types.VisibilityUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := svc.ReportVisibility(chi.URLParam(r, "id"), upd); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Delete("/previews/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CancelPreview(chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/warm", func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var desc types.Descriptor
		if err := json.NewDecoder(r.Body).Decode(&desc); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		already, err := svc.Warm(desc)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		status := http.StatusAccepted
		if already {
			status = http.StatusOK
		}
		writeJSON(w, status, types.WarmResponse{SourceKey: desc.SourceKey, AlreadyCached: already})
	})

	r.Get("/assets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.AssetsResponse{Assets: svc.ListAssets()})
	})

	r.Get("/visibility", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.VisibilityConfig())
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("degraded"))
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && zlog != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}
