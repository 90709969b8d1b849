package service

import "context"

// Dispatcher runs fire-and-forget work off the request path.
type Dispatcher interface {
	// Go enqueues task and reports whether it was accepted. It never blocks;
	// a full queue drops the task.
	Go(name string, task func(ctx context.Context) error) bool
}
