// Package main, taskora backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'lar ile)
//  3. Repository'leri oluştur (DB bağlantısı ile)
//  4. Rate limiter ve dashboard cache'ini oluştur
//  5. Service'leri oluştur (repository'ler ile)
//  6. Handler'ları oluştur (service'ler ile)
//  7. Middleware'ları oluştur
//  8. HTTP router'ı kur, route'ları bağla
//  9. CORS yapılandır
// 10. Session janitor goroutine'ini başlat
// 11. HTTP Server'ı başlat
// 12. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecemunal/taskora/config"
	"github.com/ecemunal/taskora/database"
	"github.com/ecemunal/taskora/handlers"
	"github.com/ecemunal/taskora/middleware"
	"github.com/ecemunal/taskora/models"
	"github.com/ecemunal/taskora/pkg/cache"
	"github.com/ecemunal/taskora/pkg/ratelimit"
	"github.com/ecemunal/taskora/repository"
	"github.com/ecemunal/taskora/services"
	"github.com/rs/cors"
)

// sessionCleanupInterval, süresi dolmuş oturum satırlarının silinme sıklığı.
const sessionCleanupInterval = 1 * time.Hour

// dashboardCacheTTL, dashboard özetinin cache'te kalma süresi.
// Kısa tutulur — mutasyonlar zaten invalidate eder, TTL sadece emniyet.
const dashboardCacheTTL = 30 * time.Second

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] taskora server starting...")

	startedAt := time.Now()

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	db, err := database.New(cfg.Database.Path, database.EmbeddedMigrations)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	sessionRepo := repository.NewSQLiteSessionRepo(db.Conn)
	taskRepo := repository.NewSQLiteTaskRepo(db.Conn)

	// ─── 4. Rate Limiter + Cache ───
	loginLimiter := ratelimit.NewLoginRateLimiter(
		cfg.RateLimit.LoginMaxAttempts,
		time.Duration(cfg.RateLimit.LoginWindowSecond)*time.Second,
	)
	defer loginLimiter.Close()

	dashboardCache := cache.New[string, *models.DashboardSummary](dashboardCacheTTL, 5*time.Minute)
	defer dashboardCache.Close()

	// ─── 5. Service Layer ───
	authService := services.NewAuthService(
		db.Conn,
		userRepo,
		sessionRepo,
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	taskService := services.NewTaskService(taskRepo, dashboardCache)
	userService := services.NewUserService(userRepo)

	// ─── 6. Handler Layer ───
	authHandler := handlers.NewAuthHandler(authService, loginLimiter)
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)
	sessionHandler := handlers.NewSessionHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(taskService)
	healthHandler := handlers.NewHealthHandler(startedAt)

	// ─── 7. Middleware ───
	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo)

	// ─── 8. HTTP Router ───
	mux := http.NewServeMux()

	// Health check — public
	mux.HandleFunc("GET /api/health", healthHandler.Check)

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/auth/me", authMiddleware.Require(http.HandlerFunc(authHandler.Me)))

	// Users — Create public (register'ın oturumsuz hali), gerisi korumalı
	mux.HandleFunc("POST /api/users", userHandler.Create)
	mux.Handle("GET /api/users", authMiddleware.Require(http.HandlerFunc(userHandler.List)))
	mux.Handle("GET /api/users/{id}", authMiddleware.Require(http.HandlerFunc(userHandler.Get)))
	mux.Handle("PATCH /api/users/{id}", authMiddleware.Require(http.HandlerFunc(userHandler.Update)))
	mux.Handle("DELETE /api/users/{id}", authMiddleware.Require(http.HandlerFunc(userHandler.Delete)))

	// Tasks — tamamı korumalı, owner-scoped
	mux.Handle("GET /api/tasks", authMiddleware.Require(http.HandlerFunc(taskHandler.List)))
	mux.Handle("POST /api/tasks", authMiddleware.Require(http.HandlerFunc(taskHandler.Create)))
	mux.Handle("GET /api/tasks/{id}", authMiddleware.Require(http.HandlerFunc(taskHandler.Get)))
	mux.Handle("PATCH /api/tasks/{id}", authMiddleware.Require(http.HandlerFunc(taskHandler.Update)))
	mux.Handle("DELETE /api/tasks/{id}", authMiddleware.Require(http.HandlerFunc(taskHandler.Delete)))

	// Sessions — kullanıcının aktif oturum yönetimi
	mux.Handle("GET /api/authsessions", authMiddleware.Require(http.HandlerFunc(sessionHandler.List)))
	mux.Handle("GET /api/authsessions/{id}", authMiddleware.Require(http.HandlerFunc(sessionHandler.Get)))
	mux.Handle("DELETE /api/authsessions/{id}", authMiddleware.Require(http.HandlerFunc(sessionHandler.Revoke)))

	// Dashboard
	mux.Handle("GET /api/dashboard", authMiddleware.Require(http.HandlerFunc(dashboardHandler.Summary)))

	// ─── 9. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		Debug:            false,
	})

	handler := corsHandler.Handler(mux)

	// ─── 10. Session Janitor ───
	//
	// Süresi dolmuş oturum satırları refresh edilemez ama DB'de yer kaplar.
	// Janitor periyodik olarak temizler; stopJanitor shutdown'da kapanır.
	stopJanitor := make(chan struct{})
	go func() {
		ticker := time.NewTicker(sessionCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := authService.CleanupExpiredSessions(context.Background()); err != nil {
					log.Printf("[janitor] session cleanup failed: %v", err)
				}
			case <-stopJanitor:
				return
			}
		}
	}()

	// ─── 11. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 12. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	close(stopJanitor)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
