package repository

import (
	"context"
	"time"

	"github.com/ecemunal/taskora/models"
)

// SessionRepository, refresh token oturumları için interface.
type SessionRepository interface {
	Create(ctx context.Context, session *models.AuthSession) error
	GetByRefreshToken(ctx context.Context, refreshToken string) (*models.AuthSession, error)
	GetByID(ctx context.Context, id string) (*models.AuthSession, error)
	// Rotate, mevcut satırın token çiftini ve expiry'sini TEK UPDATE ile
	// değiştirir — yeni satır açılmaz. Lookup'lar güncel refresh değeri
	// üzerinden yapıldığı için eski refresh token bu noktadan sonra
	// bulunamaz (implicit invalidation).
	Rotate(ctx context.Context, id, token, refreshToken string, expiresAt time.Time) error
	// DeleteByRefreshToken, logout. Olmayan token'ı silmek hata değildir.
	DeleteByRefreshToken(ctx context.Context, refreshToken string) error
	DeleteByID(ctx context.Context, id string) error
	// ListByUserID, kullanıcının oturumlarını yeniden eskiye sıralı döner.
	ListByUserID(ctx context.Context, userID string) ([]models.AuthSession, error)
	// DeleteExpired, süresi geçmiş oturumları temizler (janitor).
	DeleteExpired(ctx context.Context, now time.Time) error
}
