package scheduler

import "fmt"

// queueFullError reports an Enqueue against a saturated waiting queue.
type queueFullError struct {
	key   string
	depth int
}

func (e queueFullError) Error() string {
	return fmt.Sprintf("render queue full (%d pending), rejecting %q", e.depth, e.key)
}

// ErrQueueFull creates a queue full error.
func ErrQueueFull(key string, depth int) error {
	return queueFullError{key: key, depth: depth}
}

// IsQueueFull reports whether err indicates backpressure (return 429).
func IsQueueFull(err error) bool {
	_, ok := err.(queueFullError)
	return ok
}
