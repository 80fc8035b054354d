package assets

// notFoundError reports a source key with no asset behind it, for 404 mapping.
type notFoundError struct{ key string }

func (e notFoundError) Error() string { return "asset not found: " + e.key }

// ErrNotFound constructs a not-found error for key.
func ErrNotFound(key string) error { return notFoundError{key: key} }

// IsNotFound reports whether err indicates a missing asset.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// unsupportedFormatError reports a source key whose extension no loader handles.
type unsupportedFormatError struct{ key string }

func (e unsupportedFormatError) Error() string { return "unsupported asset format: " + e.key }

// ErrUnsupportedFormat constructs an unsupported-format error for key.
func ErrUnsupportedFormat(key string) error { return unsupportedFormatError{key: key} }

// IsUnsupportedFormat reports whether err indicates a format no loader handles.
func IsUnsupportedFormat(err error) bool {
	_, ok := err.(unsupportedFormatError)
	return ok
}

// loadFailureError reports an asset that exists but could not be fetched.
type loadFailureError struct {
	key   string
	cause error
}

func (e loadFailureError) Error() string { return "load asset " + e.key + ": " + e.cause.Error() }

func (e loadFailureError) Unwrap() error { return e.cause }

// ErrLoadFailure wraps cause as a fetch failure for key.
func ErrLoadFailure(key string, cause error) error { return loadFailureError{key: key, cause: cause} }

// IsLoadFailure reports whether err indicates a failed fetch of an existing asset.
func IsLoadFailure(err error) bool {
	_, ok := err.(loadFailureError)
	return ok
}
