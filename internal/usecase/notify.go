package usecase

import (
	"log/slog"

	"jobboard-backend/pkg/logger"
)

// notifyAsync runs a best-effort notification off the request path. Failures
// are logged and never surfaced to the caller.
func notifyAsync(kind string, fn func() error) {
	go func() {
		log := logger.Log
		if log == nil {
			log = slog.Default()
		}
		if err := fn(); err != nil {
			log.Warn("notification delivery failed", "kind", kind, "error", err)
		}
	}()
}
