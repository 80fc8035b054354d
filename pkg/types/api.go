package types

// Coarse preview states visible to API consumers. The storefront page only
// needs to know whether to keep showing a placeholder, swap in the snapshot,
// or fall back to its static image for good.
const (
	PreviewStateLoading = "loading"
	PreviewStateReady   = "ready"
	PreviewStateError   = "error"
)

// PreviewRequest is the payload for POST /previews.
type PreviewRequest struct {
	// Asset source key to render.
	// example: gilded-astrolabe.glb
	SourceKey string `json:"source_key" example:"gilded-astrolabe.glb"`
	// Preferred snapshot edge length in pixels. Zero means the daemon default.
	// example: 256
	SizeHint int `json:"size_hint,omitempty" example:"256"`
}

// PreviewResource describes one preview session for GET /previews/{id}.
type PreviewResource struct {
	// Opaque preview session id returned by POST /previews.
	// example: 4b2ab765-9c10-4c0f-9a25-4ba1f6f7cf45
	ID string `json:"id" example:"4b2ab765-9c10-4c0f-9a25-4ba1f6f7cf45"`
	// Coarse state: loading, ready or error.
	// example: ready
	State string `json:"state" example:"ready"`
	// Fine-grained pipeline phase (idle, awaiting_visible, queued, rendering, cached, errored).
	// example: cached
	Phase string `json:"phase" example:"cached"`
	// Asset source key this session renders.
	// example: gilded-astrolabe.glb
	SourceKey string `json:"source_key" example:"gilded-astrolabe.glb"`
	// Snapshot edge length in pixels requested by the consumer.
	// example: 256
	SizeHint int `json:"size_hint,omitempty" example:"256"`
	// Whether GET /previews/{id}/image will serve a snapshot right now.
	// example: true
	HasImage bool `json:"has_image" example:"true"`
	// Terminal error message when state is error.
	Error string `json:"error,omitempty"`
	// Scheduler request id while a render is queued or in flight.
	// example: 7
	RequestID uint64 `json:"request_id,omitempty" example:"7"`
	// Session creation time (unix seconds).
	// example: 1700000000
	CreatedUnix int64 `json:"created_unix" example:"1700000000"`
	// Last time the session was touched by its consumer (unix seconds).
	// example: 1700000030
	LastActiveUnix int64 `json:"last_active_unix" example:"1700000030"`
}

// VisibilityUpdate is the payload for POST /previews/{id}/visible. The
// storefront page reports viewport intersection transitions here when the
// daemon runs in push visibility mode.
type VisibilityUpdate struct {
	// True when the consumer's slot entered the (margin-expanded) viewport.
	// example: true
	Visible bool `json:"visible" example:"true"`
	// Intersection ratio reported by the page, 0..1.
	// example: 0.25
	Ratio float64 `json:"ratio,omitempty" example:"0.25"`
}

// AssetsResponse wraps the catalog returned by GET /assets.
type AssetsResponse struct {
	// Renderable assets known to the daemon.
	Assets []Asset `json:"assets"`
}

// VisibilityConfig is returned by GET /visibility so the storefront page can
// configure its intersection observer to match the daemon.
type VisibilityConfig struct {
	// Active visibility provider: push or immediate.
	// example: push
	Provider string `json:"provider" example:"push"`
	// Margin in pixels to expand the viewport by before intersection tests.
	// example: 200
	MarginPx int `json:"margin_px" example:"200"`
	// Minimum intersection ratio that counts as visible.
	// example: 0.1
	Threshold float64 `json:"threshold" example:"0.1"`
	// Whether the page should keep reporting transitions after the first one.
	// example: false
	KeepObserving bool `json:"keep_observing" example:"false"`
}

// WarmResponse is returned by POST /warm.
type WarmResponse struct {
	// Source key the warm request targets.
	// example: gilded-astrolabe.glb
	SourceKey string `json:"source_key" example:"gilded-astrolabe.glb"`
	// True when the snapshot was already resident and nothing was enqueued.
	// example: false
	AlreadyCached bool `json:"already_cached" example:"false"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// SessionStatus summarizes one preview session for GET /status.
type SessionStatus struct {
	// Preview session id.
	// example: 4b2ab765-9c10-4c0f-9a25-4ba1f6f7cf45
	ID string `json:"id" example:"4b2ab765-9c10-4c0f-9a25-4ba1f6f7cf45"`
	// Asset source key.
	// example: gilded-astrolabe.glb
	SourceKey string `json:"source_key" example:"gilded-astrolabe.glb"`
	// Coarse state: loading, ready or error.
	// example: loading
	State string `json:"state" example:"loading"`
	// Fine-grained pipeline phase.
	// example: queued
	Phase string `json:"phase" example:"queued"`
	// Last time the session was touched (unix seconds).
	// example: 1700000030
	LastActiveUnix int64 `json:"last_active_unix" example:"1700000030"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Live preview sessions.
	Sessions []SessionStatus `json:"sessions"`
	// Render requests waiting for admission.
	// example: 3
	QueueDepth int `json:"queue_depth" example:"3"`
	// Maximum pending render requests before backpressure triggers.
	// example: 256
	QueueCapacity int `json:"queue_capacity" example:"256"`
	// Renders currently holding a context slot.
	// example: 1
	ActiveRenders int `json:"active_renders" example:"1"`
	// Hardware context slots available to the scheduler.
	// example: 1
	RenderSlots int `json:"render_slots" example:"1"`
	// Snapshots currently resident in the cache.
	// example: 42
	CacheEntries int `json:"cache_entries" example:"42"`
	// Snapshot cache capacity.
	// example: 50
	CacheCapacity int `json:"cache_capacity" example:"50"`
	// Cache hits since start.
	// example: 910
	CacheHits uint64 `json:"cache_hits" example:"910"`
	// Cache misses since start.
	// example: 64
	CacheMisses uint64 `json:"cache_misses" example:"64"`
	// Cache evictions since start.
	// example: 14
	CacheEvictions uint64 `json:"cache_evictions" example:"14"`
	// Completed renders since start (success or error).
	// example: 64
	RendersTotal uint64 `json:"renders_total" example:"64"`
	// Renders that ended in a terminal error.
	// example: 2
	RenderErrorsTotal uint64 `json:"render_errors_total" example:"2"`
	// Name of the rendering backend in use.
	// example: software
	Backend string `json:"backend" example:"software"`
	// Rendering context pool size; 0 without a backend.
	// example: 1
	BackendContexts int `json:"backend_contexts" example:"1"`
	// Rendering contexts currently acquired.
	// example: 0
	BackendInUse int `json:"backend_in_use" example:"0"`
	// Uptime of the daemon in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
