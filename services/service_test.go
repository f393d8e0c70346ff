package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ecemunal/taskora/database"
	"github.com/ecemunal/taskora/models"
	"github.com/ecemunal/taskora/pkg/cache"
	"github.com/ecemunal/taskora/repository"
	"github.com/stretchr/testify/require"
)

// testEnv, service testlerinin ortak kurulumu: migration'ları uygulanmış
// geçici SQLite dosyası + gerçek repository'ler + service'ler.
// Mock kullanılmaz — service ve repo katmanı birlikte test edilir.
type testEnv struct {
	db          *database.DB
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	taskRepo    repository.TaskRepository
	auth        AuthService
	tasks       TaskService
	users       UserService
	cache       *cache.TTLCache[string, *models.DashboardSummary]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), database.EmbeddedMigrations)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	sessionRepo := repository.NewSQLiteSessionRepo(db.Conn)
	taskRepo := repository.NewSQLiteTaskRepo(db.Conn)

	dashboardCache := cache.New[string, *models.DashboardSummary](30*time.Second, time.Minute)
	t.Cleanup(dashboardCache.Close)

	return &testEnv{
		db:          db,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		taskRepo:    taskRepo,
		auth:        NewAuthService(db.Conn, userRepo, sessionRepo, "test-access-secret", "test-refresh-secret", 15, 7),
		tasks:       NewTaskService(taskRepo, dashboardCache),
		users:       NewUserService(userRepo),
		cache:       dashboardCache,
	}
}

// registerTestUser, kayıt akışından geçerek kullanıcı + oturum oluşturur.
func registerTestUser(t *testing.T, env *testEnv, email string) *AuthTokens {
	t.Helper()

	tokens, err := env.auth.Register(t.Context(), &models.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "Sifre123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.User.ID)
	return tokens
}
