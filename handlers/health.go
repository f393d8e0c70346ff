package handlers

import (
	"net/http"
	"time"

	"github.com/ecemunal/taskora/pkg"
)

// HealthHandler, liveness endpoint'i. Auth gerektirmez — load balancer
// ve uptime monitör'leri buraya vurur.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler, constructor. startedAt process başlangıcında set edilir.
func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{startedAt: startedAt}
}

// Check godoc
// GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"uptimeSeconds": int(time.Since(h.startedAt).Seconds()),
		"timestamp":     time.Now().UTC(),
	})
}
