package httpapi

// maxBodyBytes caps the request body accepted by the JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes overrides the JSON body cap. Non-positive restores the
// 1 MiB default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// imageCacheControl is sent with every snapshot response. Snapshots are
// replaced in place as sessions re-render, so clients must revalidate by
// default.
var imageCacheControl = "no-store"

// SetImageCacheControl overrides the Cache-Control header on snapshot
// responses. Empty restores the no-store default.
func SetImageCacheControl(v string) {
	if v == "" {
		v = "no-store"
	}
	imageCacheControl = v
}

// CORS configuration (opt-in). The storefront page runs on a different origin
// than the daemon, so browsers need these headers before they will fetch
// previews. If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
