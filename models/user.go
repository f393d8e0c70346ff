// Package models, uygulamanın domain modellerini tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır ve aynı zamanda
// API'den gelen/giden verilerin şeklini belirler. json tag'leri
// serialize/deserialize davranışını kontrol eder — client camelCase bekler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// User, kayıtlı bir kullanıcıyı temsil eder.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // json:"-" → API response'a ASLA dahil etme
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EmailRegex, email format kontrolü için paylaşılan regex'i döner.
func EmailRegex() *regexp.Regexp {
	return emailRegex
}

// RegisterRequest, kayıt sırasında client'tan gelen veri.
// PasswordHash yerine düz Password alınır — hash'leme service katmanında.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, kayıt isteğini kontrol eder. İlk ihlal edilen kural mesaj olarak
// döner — client tek seferde tek hata gösterir.
//
// Şifre politikası: minimum 8 karakter, en az bir büyük harf,
// bir küçük harf ve bir rakam.
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}

	r.Email = strings.TrimSpace(r.Email)
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email address")
	}

	return ValidatePasswordPolicy(r.Password)
}

// ValidatePasswordPolicy, kayıt şifre politikasını uygular.
func ValidatePasswordPolicy(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must include an uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include a lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must include a number")
	}

	return nil
}

// LoginRequest, giriş sırasında client'tan gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, giriş isteğini kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email address")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// CreateUserRequest, POST /api/users ile doğrudan kullanıcı oluşturma isteği.
// Register'dan farklı olarak oturum açılmaz ve şifre politikası sadece
// minimum uzunluk ister.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, kullanıcı oluşturma isteğini kontrol eder.
func (r *CreateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}

	r.Email = strings.TrimSpace(r.Email)
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email address")
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	return nil
}

// UpdateUserRequest, profil güncellemesi için. Pointer field'lar "gönderilmedi"
// ile "boş gönderildi" ayrımını yapar — nil olan field'a dokunulmaz.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Validate, güncelleme isteğini kontrol eder.
func (r *UpdateUserRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if trimmed == "" {
			return fmt.Errorf("name cannot be empty")
		}
		r.Name = &trimmed
	}

	if r.Email != nil {
		trimmed := strings.TrimSpace(*r.Email)
		if !emailRegex.MatchString(trimmed) {
			return fmt.Errorf("invalid email address")
		}
		r.Email = &trimmed
	}

	return nil
}
