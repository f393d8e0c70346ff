package models

import "time"

// AuthSession, bir refresh token oturumunu temsil eder.
//
// Access token stateless'tır — imzası geçerli olduğu sürece kabul edilir.
// Refresh token ise DB'de tutulur, böylece:
//   - Çalınan bir refresh token server tarafında iptal edilebilir (revoke)
//   - Kullanıcı aktif oturumlarını listeleyip tek tek kapatabilir
//   - Rotation'da eski refresh değeri satır üzerine yazılarak geçersizleşir
//
// Token ve RefreshToken değerleri sadece oturumun sahibine listelenir —
// session endpoint'leri zaten bearer auth arkasındadır.
type AuthSession struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}
