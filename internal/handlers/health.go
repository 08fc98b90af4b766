package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type HealthHandler struct {
	ping   PingFunc
	Logger *zap.SugaredLogger
}

func NewHealthHandler(ping PingFunc, logger *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{ping: ping, Logger: logger}
}

// Health проверяет соединение с БД.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			h.Logger.Errorw("Health: database ping failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "db_error"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
