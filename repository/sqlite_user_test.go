package repository

import (
	"context"
	"testing"

	"github.com/ecemunal/taskora/models"
	"github.com/ecemunal/taskora/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, repo, "ayse@example.com")

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)
	assert.Equal(t, "hash", byID.PasswordHash)

	byEmail, err := repo.GetByEmail(ctx, "ayse@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	createTestUser(t, repo, "dup@example.com")

	dup := &models.User{Name: "Başkası", Email: "dup@example.com", PasswordHash: "hash2"}
	err := repo.Create(context.Background(), dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestUserRepo_GetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	_, err := repo.GetByID(context.Background(), "yok")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = repo.GetByEmail(context.Background(), "yok@example.com")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUserRepo_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, repo, "eski@example.com")
	user.Name = "Yeni İsim"
	user.Email = "yeni@example.com"

	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yeni İsim", got.Name)
	assert.Equal(t, "yeni@example.com", got.Email)
}

func TestUserRepo_UpdateEmailConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	createTestUser(t, repo, "a@example.com")
	b := createTestUser(t, repo, "b@example.com")

	b.Email = "a@example.com"
	err := repo.Update(context.Background(), b)
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestUserRepo_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	taskRepo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "silinecek@example.com")
	task := createTestTask(t, taskRepo, user.ID, "cascade testi", nil)

	require.NoError(t, userRepo.Delete(ctx, user.ID))

	_, err := userRepo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	// FK cascade — kullanıcının görevleri de gitmeli
	_, err = taskRepo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUserRepo_DeleteMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	err := repo.Delete(context.Background(), "yok")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
