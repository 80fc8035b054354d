package capture

// capabilityError reports a host that cannot render at all, for 503 mapping.
type capabilityError struct{ cause error }

func (e capabilityError) Error() string { return "render capability unavailable: " + e.cause.Error() }

func (e capabilityError) Unwrap() error { return e.cause }

// ErrCapability wraps cause as a missing-render-capability error.
func ErrCapability(cause error) error { return capabilityError{cause: cause} }

// IsCapabilityUnsupported reports whether err means the host cannot render.
func IsCapabilityUnsupported(err error) bool {
	_, ok := err.(capabilityError)
	return ok
}

// assetLoadError reports a scene that failed to fetch or parse.
type assetLoadError struct {
	key   string
	cause error
}

func (e assetLoadError) Error() string { return "asset load " + e.key + ": " + e.cause.Error() }

func (e assetLoadError) Unwrap() error { return e.cause }

// ErrAssetLoad wraps cause as an asset-load failure for key.
func ErrAssetLoad(key string, cause error) error { return assetLoadError{key: key, cause: cause} }

// IsAssetLoad reports whether err is a failed scene fetch.
func IsAssetLoad(err error) bool {
	_, ok := err.(assetLoadError)
	return ok
}

// captureFailedError reports a draw, readback, or encode failure after the
// scene loaded.
type captureFailedError struct{ cause error }

func (e captureFailedError) Error() string { return "capture failed: " + e.cause.Error() }

func (e captureFailedError) Unwrap() error { return e.cause }

// ErrCaptureFailed wraps cause as a capture-stage failure.
func ErrCaptureFailed(cause error) error { return captureFailedError{cause: cause} }

// IsCaptureFailed reports whether err is a draw/readback/encode failure.
func IsCaptureFailed(err error) bool {
	_, ok := err.(captureFailedError)
	return ok
}
