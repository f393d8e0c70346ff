package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ecemunal/taskora/database"
	"github.com/ecemunal/taskora/models"
	"github.com/stretchr/testify/require"
)

// newTestDB, migration'ları uygulanmış geçici bir SQLite dosyası açar.
// ":memory:" KULLANILMAZ — connection pool'daki her bağlantı kendi
// bellek veritabanını görür, testler tutarsız davranır. Geçici dosya
// t.TempDir() ile test sonunda otomatik silinir.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), database.EmbeddedMigrations)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser, test için kullanıcı satırı oluşturur.
func createTestUser(t *testing.T, repo UserRepository, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotEmpty(t, user.ID)
	return user
}

// createTestTask, varsayılanlarla görev satırı oluşturur.
func createTestTask(t *testing.T, repo TaskRepository, ownerID, title string, mutate func(*models.Task)) *models.Task {
	t.Helper()

	now := time.Now()
	task := &models.Task{
		Title:     title,
		Status:    models.TaskStatusPending,
		Priority:  models.TaskPriorityMedium,
		Tags:      []string{},
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if mutate != nil {
		mutate(task)
	}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}
