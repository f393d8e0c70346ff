package handlers

import (
	"net/http"

	"github.com/ecemunal/taskora/pkg"
	"github.com/ecemunal/taskora/services"
)

// DashboardHandler, dashboard özet endpoint'i.
type DashboardHandler struct {
	taskService services.TaskService
}

// NewDashboardHandler, constructor.
func NewDashboardHandler(taskService services.TaskService) *DashboardHandler {
	return &DashboardHandler{taskService: taskService}
}

// Summary godoc
// GET /api/dashboard
// Caller'ın görev sayaçları + en yakın 5 yaklaşan görev.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	summary, err := h.taskService.Dashboard(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, summary)
}
