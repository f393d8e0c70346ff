// Package services, business logic katmanını barındırır.
//
// Service, handler (HTTP) ile repository (DB) arasında oturur; tüm iş
// kuralları buradadır: şifre hash'leme, token üretimi, ownership
// kontrolleri, status geçişleri. Service ASLA http.Request/Response
// bilmez ve ASLA doğrudan SQL çalıştırmaz.
package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost, şifre hash'leme maliyeti. Adaptive cost: donanım hızlandıkça
// artırılabilir — mevcut hash'ler eski cost ile doğrulanmaya devam eder.
const bcryptCost = 10

// HashPassword, şifreyi bcrypt ile hash'ler. Bcrypt her çağrıda rastgele
// salt üretir — aynı şifre iki kez hash'lenince farklı çıktı verir.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword, şifreyi hash ile karşılaştırır. Eşleşmezse false döner —
// yanlış şifre bir error DEĞİLDİR; error sadece bozuk hash girdisinde döner.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
