// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, development için .env dosyasını da destekler.
//
// Her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi
// oluşturulur ve wire-up sırasında ilgili katmanlara dağıtılır.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her biri tek bir concern'ü temsil eder.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/taskora.db)
}

// JWTConfig, token imzalama ayarları.
//
// Access ve refresh token'lar FARKLI secret'larla imzalanır.
// Böylece bir access token asla refresh token olarak doğrulanamaz
// (ve tersi) — cross-use imza aşamasında reddedilir.
type JWTConfig struct {
	AccessSecret       string // Access token imzalama anahtarı — GİZLİ
	RefreshSecret      string // Refresh token imzalama anahtarı — GİZLİ, access'ten farklı olmalı
	AccessTokenExpiry  int    // Dakika cinsinden (varsayılan: 15)
	RefreshTokenExpiry int    // Gün cinsinden (varsayılan: 7)
}

// RateLimitConfig, login brute-force koruması ayarları.
type RateLimitConfig struct {
	LoginMaxAttempts  int // Window içinde izin verilen deneme sayısı
	LoginWindowSecond int // Window süresi, saniye
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler; production'da gerçek env kullanılır.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	refreshExpiry, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_DAYS: %w", err)
	}

	maxAttempts, err := strconv.Atoi(getEnv("LOGIN_RATE_MAX_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_MAX_ATTEMPTS: %w", err)
	}

	windowSeconds, err := strconv.Atoi(getEnv("LOGIN_RATE_WINDOW_SECONDS", "120"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_WINDOW_SECONDS: %w", err)
	}

	accessSecret := getEnv("JWT_SECRET", "")
	if accessSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	refreshSecret := getEnv("JWT_REFRESH_SECRET", "")
	if refreshSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET environment variable is required")
	}

	if accessSecret == refreshSecret {
		return nil, fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must be different")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/taskora.db"),
		},
		JWT: JWTConfig{
			AccessSecret:       accessSecret,
			RefreshSecret:      refreshSecret,
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: refreshExpiry,
		},
		RateLimit: RateLimitConfig{
			LoginMaxAttempts:  maxAttempts,
			LoginWindowSecond: windowSeconds,
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:8080").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
