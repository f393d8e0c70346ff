package handlers

import (
	"net/http"

	"github.com/ecemunal/taskora/pkg"
	"github.com/ecemunal/taskora/services"
)

// SessionHandler, oturum yönetimi endpoint'lerini yöneten struct.
// Kullanıcı aktif oturumlarını görebilir ve tek tek kapatabilir
// ("diğer cihazlardaki oturumlarım" ekranının backend'i).
type SessionHandler struct {
	authService services.AuthService
}

// NewSessionHandler, constructor.
func NewSessionHandler(authService services.AuthService) *SessionHandler {
	return &SessionHandler{authService: authService}
}

// List godoc
// GET /api/authsessions
// Caller'ın oturumları, yeniden eskiye.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	sessions, err := h.authService.ListSessions(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, sessions)
}

// Get godoc
// GET /api/authsessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	session, err := h.authService.GetSession(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, session)
}

// Revoke godoc
// DELETE /api/authsessions/{id}
// Başkasının oturumu → 403, olmayan oturum → 404.
func (h *SessionHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.authService.RevokeSession(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}
