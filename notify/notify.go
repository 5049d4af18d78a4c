// Package notify delivers order emails as fire-and-forget background tasks.
// Delivery failures are logged and never reach the request path.
package notify

import "log/slog"

// Dispatch runs fn on its own goroutine behind an error boundary. The caller
// never waits and never sees the outcome; failures and panics are logged.
func Dispatch(task string, fn func() error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("notification task panicked", "task", task, "panic", r)
			}
		}()
		if err := fn(); err != nil {
			slog.Error("notification task failed", "task", task, "error", err)
			return
		}
		slog.Info("notification task completed", "task", task)
	}()
}
