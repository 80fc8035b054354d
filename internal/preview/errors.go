package preview

import "fmt"

// invalidRequestError reports a malformed preview request.
type invalidRequestError struct {
	reason string
}

func (e invalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.reason)
}

// ErrInvalidRequest creates an invalid request error.
func ErrInvalidRequest(reason string) error {
	return invalidRequestError{reason: reason}
}

// IsInvalidRequest checks if an error is an invalid request error.
func IsInvalidRequest(err error) bool {
	_, ok := err.(invalidRequestError)
	return ok
}

// sessionNotFoundError reports a lookup for a session that is not mounted.
type sessionNotFoundError struct {
	id string
}

func (e sessionNotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.id)
}

// ErrSessionNotFound creates a session not found error.
func ErrSessionNotFound(id string) error {
	return sessionNotFoundError{id: id}
}

// IsSessionNotFound checks if an error is a session not found error.
func IsSessionNotFound(err error) bool {
	_, ok := err.(sessionNotFoundError)
	return ok
}

// notReadyError reports an image fetch before the snapshot exists.
type notReadyError struct {
	id string
}

func (e notReadyError) Error() string {
	return fmt.Sprintf("snapshot not ready for session %s", e.id)
}

// ErrNotReady creates a not ready error.
func ErrNotReady(id string) error {
	return notReadyError{id: id}
}

// IsNotReady checks if an error is a not ready error.
func IsNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}

// renderFailedError reports a session whose render ended in an error.
type renderFailedError struct {
	msg string
}

func (e renderFailedError) Error() string {
	return fmt.Sprintf("render failed: %s", e.msg)
}

// ErrRenderFailed creates a render failed error.
func ErrRenderFailed(msg string) error {
	return renderFailedError{msg: msg}
}

// IsRenderFailed checks if an error is a render failed error.
func IsRenderFailed(err error) bool {
	_, ok := err.(renderFailedError)
	return ok
}

// rendererUnavailableError reports an operation that needs a render
// backend when none is configured.
type rendererUnavailableError struct{}

func (e rendererUnavailableError) Error() string {
	return "render capability unavailable"
}

// ErrRendererUnavailable creates a renderer unavailable error.
func ErrRendererUnavailable() error {
	return rendererUnavailableError{}
}

// IsRendererUnavailable checks if an error is a renderer unavailable error.
func IsRendererUnavailable(err error) bool {
	_, ok := err.(rendererUnavailableError)
	return ok
}

// visibilityUnsupportedError reports a visibility report sent to a
// manager that is not running the push provider.
type visibilityUnsupportedError struct{}

func (e visibilityUnsupportedError) Error() string {
	return "visibility reports unsupported by the active provider"
}

// ErrVisibilityUnsupported creates a visibility unsupported error.
func ErrVisibilityUnsupported() error {
	return visibilityUnsupportedError{}
}

// IsVisibilityUnsupported checks if an error is a visibility unsupported error.
func IsVisibilityUnsupported(err error) bool {
	_, ok := err.(visibilityUnsupportedError)
	return ok
}
