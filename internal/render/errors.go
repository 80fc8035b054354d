package render

// drawError reports a failed draw or framebuffer readback.
type drawError struct{ msg string }

func (e drawError) Error() string { return "render: draw failed: " + e.msg }

// ErrDrawFailed constructs a draw failure with a reason.
func ErrDrawFailed(msg string) error { return drawError{msg: msg} }

// IsDrawFailure reports whether err is a failed draw/readback.
func IsDrawFailure(err error) bool {
	_, ok := err.(drawError)
	return ok
}
