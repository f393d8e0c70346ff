package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ecemunal/taskora/database"
	"github.com/ecemunal/taskora/models"
	"github.com/ecemunal/taskora/pkg"
	"github.com/ecemunal/taskora/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService, kimlik doğrulama ve oturum yaşam döngüsü.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*AuthTokens, error)
	Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error)
	// Refresh, refresh token'ı doğrular ve oturumun token çiftini yerinde
	// döndürür (rotation) — eski refresh değeri artık kullanılamaz.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Logout, refresh token'a ait oturumu siler. Idempotent.
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	ValidateRefreshToken(tokenString string) (*models.TokenClaims, error)
	// ListSessions, kullanıcının aktif oturumlarını yeniden eskiye döner.
	ListSessions(ctx context.Context, userID string) ([]models.AuthSession, error)
	GetSession(ctx context.Context, userID, sessionID string) (*models.AuthSession, error)
	// RevokeSession, kullanıcının kendi oturumunu kapatır.
	// Başkasının oturumu → ErrForbidden, olmayan oturum → ErrNotFound.
	RevokeSession(ctx context.Context, userID, sessionID string) error
	// CleanupExpiredSessions, süresi geçmiş oturum satırlarını siler.
	// main.go'daki janitor ticker'ı tarafından periyodik çağrılır.
	CleanupExpiredSessions(ctx context.Context) error
}

// AuthTokens, register/login sonrası dönen kullanıcı + token çifti.
type AuthTokens struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// TokenPair, refresh sonrası dönen yeni token çifti.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// authService, AuthService implementasyonu.
//
// Access ve refresh secret'ları AYRIDIR: bir access token refresh
// endpoint'inde (veya tersi) asla doğrulanamaz — imza tutmaz.
type authService struct {
	db            *sql.DB
	userRepo      repository.UserRepository
	sessionRepo   repository.SessionRepository
	accessSecret  []byte
	refreshSecret []byte
	accessExp     time.Duration
	refreshExp    time.Duration
}

// NewAuthService, constructor.
// db, register akışındaki user+session insert'ini tek transaction'da
// çalıştırmak için ayrıca alınır (bkz. database.WithTx).
func NewAuthService(
	db *sql.DB,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	accessSecret string,
	refreshSecret string,
	accessExpMinutes int,
	refreshExpDays int,
) AuthService {
	return &authService{
		db:            db,
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExp:     time.Duration(accessExpMinutes) * time.Minute,
		refreshExp:    time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

// Register, yeni kullanıcı kaydı oluşturur ve ilk oturumu açar.
//
// User insert'i ile session insert'i tek transaction'da yapılır:
// session yazılamazsa oturumu olmayan yarım bir kayıt da kalmaz.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	var tokens *AuthTokens
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		userRepo := repository.NewSQLiteUserRepo(tx)
		sessionRepo := repository.NewSQLiteSessionRepo(tx)

		if err := userRepo.Create(ctx, user); err != nil {
			return err // ErrAlreadyExists olabilir
		}

		var txErr error
		tokens, txErr = s.openSession(ctx, sessionRepo, user)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Login, email+şifre ile giriş yapar ve yeni bir oturum açar.
//
// Bilinmeyen email ile yanlış şifre AYNI generic mesajı döner —
// hangi email'lerin kayıtlı olduğu response'tan anlaşılamaz.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if !VerifyPassword(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", pkg.ErrUnauthorized)
	}

	return s.openSession(ctx, s.sessionRepo, user)
}

// Refresh, refresh token rotation.
//
// İki kapı vardır: token'ın imzası/expiry'si geçerli OLMALI ve değer
// DB'de kayıtlı bir oturuma işaret etmeli. İkisinden biri tutmazsa
// generic unauthorized döner. Rotation mevcut satırı session id ile
// UPDATE eder — eski refresh değeri o andan itibaren bulunamaz.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Token imzası geçerli ama oturum yok — logout edilmiş veya
			// daha önce rotate edilmiş bir token tekrar kullanılıyor.
			return nil, fmt.Errorf("%w: invalid or expired token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	access, refresh, err := s.issueTokens(claims.UserID())
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Rotate(ctx, session.ID, access, refresh, time.Now().Add(s.refreshExp)); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Lookup ile rotate arasında oturum silinmiş (yarışan logout)
			return nil, fmt.Errorf("%w: invalid or expired token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout, oturumu refresh token değeri üzerinden siler.
// Olmayan token hata değildir — logout tekrarlanabilir.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessionRepo.DeleteByRefreshToken(ctx, refreshToken)
}

// ValidateAccessToken, access secret ile token doğrular.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	return validateToken(tokenString, s.accessSecret)
}

// ValidateRefreshToken, refresh secret ile token doğrular.
func (s *authService) ValidateRefreshToken(tokenString string) (*models.TokenClaims, error) {
	return validateToken(tokenString, s.refreshSecret)
}

func (s *authService) ListSessions(ctx context.Context, userID string) ([]models.AuthSession, error) {
	return s.sessionRepo.ListByUserID(ctx, userID)
}

func (s *authService) GetSession(ctx context.Context, userID, sessionID string) (*models.AuthSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err // ErrNotFound → 404
	}

	if session.UserID != userID {
		return nil, fmt.Errorf("%w: session belongs to another user", pkg.ErrForbidden)
	}

	return session, nil
}

func (s *authService) RevokeSession(ctx context.Context, userID, sessionID string) error {
	// Ownership kontrolü her mutasyonda yeniden yapılır — cache'lenmez.
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if session.UserID != userID {
		return fmt.Errorf("%w: session belongs to another user", pkg.ErrForbidden)
	}

	return s.sessionRepo.DeleteByID(ctx, sessionID)
}

func (s *authService) CleanupExpiredSessions(ctx context.Context) error {
	return s.sessionRepo.DeleteExpired(ctx, time.Now())
}

// ─── Private Helpers ───

// openSession, kullanıcı için token çifti üretir ve oturum satırını yazar.
func (s *authService) openSession(ctx context.Context, sessionRepo repository.SessionRepository, user *models.User) (*AuthTokens, error) {
	access, refresh, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}

	session := &models.AuthSession{
		UserID:       user.ID,
		Token:        access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.refreshExp),
	}

	if err := sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	user.PasswordHash = ""

	return &AuthTokens{
		User:         *user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// issueTokens, access+refresh çiftini imzalar.
func (s *authService) issueTokens(userID string) (access, refresh string, err error) {
	access, err = signToken(userID, s.accessSecret, s.accessExp)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err = signToken(userID, s.refreshSecret, s.refreshExp)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return access, refresh, nil
}

// signToken, HS256 imzalı, sub + jti taşıyan bir JWT üretir.
// jti her token'a benzersizdir — aynı saniyede üretilen iki token bile
// farklı string'ler olur.
func signToken(userID string, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "taskora",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// validateToken, imza ve expiry doğrular.
//
// Tüm başarısızlıklar (bozuk format, yanlış secret, süresi dolmuş)
// AYNI generic error'a düşer — caller token'ın neden reddedildiğini
// ayırt edemez, bilgi sızıntısı olmaz. Detay server log'una yazılır.
func validateToken(tokenString string, secret []byte) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		log.Printf("[auth] token validation failed: %v", err)
		return nil, fmt.Errorf("%w: invalid or expired token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid or expired token", pkg.ErrUnauthorized)
	}

	return claims, nil
}

// ExtractBearerToken, "Authorization: Bearer <token>" header'ını parse eder.
// Scheme tam olarak "Bearer" değilse veya token kısmı boşsa ("", false) döner.
func ExtractBearerToken(headerValue string) (string, bool) {
	parts := strings.Split(headerValue, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
