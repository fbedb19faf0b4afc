package system

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const readyTimeout = 2 * time.Second

// Pinger reports whether a backing dependency is reachable.
type Pinger func(ctx context.Context) error

type Handler struct {
	logger *slog.Logger
	checks map[string]Pinger
}

func NewHandler(logger *slog.Logger, checks map[string]Pinger) *Handler {
	if checks == nil {
		checks = map[string]Pinger{}
	}
	return &Handler{logger: logger, checks: checks}
}

func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// SystemReady pings every registered dependency and answers 503 if any fails.
func (h *Handler) SystemReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	status := http.StatusOK
	result := make(map[string]string, len(h.checks))
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", slog.String("dependency", name), slog.Any("error", err))
			result[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		result[name] = "ok"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
