// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Go'da middleware bir fonksiyondur:
//
//	func(next http.Handler) http.Handler
//
// "next" parametresi zincirdeki bir sonraki handler'dır. Middleware kendi
// işini yapar (token doğrula), sonra next'i çağırır; hata varsa next
// çağrılmaz ve request burada durur.
package middleware

import (
	"context"
	"net/http"

	"github.com/ecemunal/taskora/handlers"
	"github.com/ecemunal/taskora/pkg"
	"github.com/ecemunal/taskora/repository"
	"github.com/ecemunal/taskora/services"
)

// AuthMiddleware, JWT access token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
	userRepo    repository.UserRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
	}
}

// Require, access token zorunlu kılan middleware.
//
// Akış: Authorization header → Bearer parse → imza/expiry doğrula →
// kullanıcıyı DB'den getir → context'e ekle → next.
//
// Tüm başarısızlık yolları (header yok, format bozuk, imza geçersiz,
// süresi dolmuş, kullanıcı silinmiş) AYNI generic 401 mesajını döner —
// response'tan token'ın hangi aşamada reddedildiği anlaşılamaz.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := services.ExtractBearerToken(r.Header.Get("Authorization"))
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		// Token geçerli ama kullanıcı silinmiş olabilir — DB'den doğrula.
		user, err := m.userRepo.GetByID(r.Context(), claims.UserID())
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		// Password hash context'te taşınmamalı
		user.PasswordHash = ""

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
