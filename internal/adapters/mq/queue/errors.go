package queue

import "errors"

// Sentinel enqueue failures.
var (
	ErrClosed = errors.New("queue closed")
	ErrFull   = errors.New("queue full")
)
