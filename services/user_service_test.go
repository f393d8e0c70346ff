package services

import (
	"testing"

	"github.com/ecemunal/taskora/models"
	"github.com/ecemunal/taskora/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate_NoSession(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.users.Create(t.Context(), &models.CreateUserRequest{
		Name:     "Oturumsuz",
		Email:    "direkt@example.com",
		Password: "uzunsifre", // Create'te sadece min uzunluk aranır
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.PasswordHash)

	// Register'dan farklı olarak oturum AÇILMAZ
	sessions, err := env.auth.ListSessions(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestUserCreate_ShortPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Create(t.Context(), &models.CreateUserRequest{
		Name:     "Kısa",
		Email:    "kisa@example.com",
		Password: "kisa",
	})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestUserList_ReturnsOnlySelf(t *testing.T) {
	env := newTestEnv(t)
	alice := registerTestUser(t, env, "lalice@example.com")
	registerTestUser(t, env, "lbob@example.com")

	users, err := env.users.List(t.Context(), alice.User.ID)
	require.NoError(t, err)
	require.Len(t, users, 1) // diğer kullanıcılar listede görünmez
	assert.Equal(t, alice.User.ID, users[0].ID)
	assert.Empty(t, users[0].PasswordHash)
}

func TestUserGet_ForeignForbidden(t *testing.T) {
	env := newTestEnv(t)
	alice := registerTestUser(t, env, "galice@example.com")
	bob := registerTestUser(t, env, "gbob@example.com")

	// Kendi kaydı
	got, err := env.users.Get(t.Context(), alice.User.ID, alice.User.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.User.Email, got.Email)

	// Başkasının kaydı — id gerçek olsa da olmasa da 403
	_, err = env.users.Get(t.Context(), alice.User.ID, bob.User.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	_, err = env.users.Get(t.Context(), alice.User.ID, "hic-olmayan-id")
	assert.ErrorIs(t, err, pkg.ErrForbidden)
}

func TestUserUpdate(t *testing.T) {
	env := newTestEnv(t)
	alice := registerTestUser(t, env, "upalice@example.com")
	bob := registerTestUser(t, env, "upbob@example.com")

	newName := "Yeni Alice"
	updated, err := env.users.Update(t.Context(), alice.User.ID, alice.User.ID, &models.UpdateUserRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Yeni Alice", updated.Name)
	assert.Equal(t, "upalice@example.com", updated.Email) // email'e dokunulmadı

	// Başkasının kaydını güncelleyemez
	_, err = env.users.Update(t.Context(), alice.User.ID, bob.User.ID, &models.UpdateUserRequest{
		Name: &newName,
	})
	assert.ErrorIs(t, err, pkg.ErrForbidden)
}

func TestUserUpdate_EmailConflict(t *testing.T) {
	env := newTestEnv(t)
	alice := registerTestUser(t, env, "ealice@example.com")
	registerTestUser(t, env, "ebob@example.com")

	taken := "ebob@example.com"
	_, err := env.users.Update(t.Context(), alice.User.ID, alice.User.ID, &models.UpdateUserRequest{
		Email: &taken,
	})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestUserDelete_CascadesTasks(t *testing.T) {
	env := newTestEnv(t)
	alice := registerTestUser(t, env, "silalice@example.com")
	bob := registerTestUser(t, env, "silbob@example.com")

	task, err := env.tasks.Create(t.Context(), alice.User.ID, &models.CreateTaskRequest{Title: "kalmayacak"})
	require.NoError(t, err)

	// Başkasını silemez
	err = env.users.Delete(t.Context(), alice.User.ID, bob.User.ID)
	assert.ErrorIs(t, err, pkg.ErrForbidden)

	require.NoError(t, env.users.Delete(t.Context(), alice.User.ID, alice.User.ID))

	// Kayıt, oturumlar ve görevler gitti
	_, err = env.userRepo.GetByID(t.Context(), alice.User.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	sessions, err := env.sessionRepo.ListByUserID(t.Context(), alice.User.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, err = env.taskRepo.GetByID(t.Context(), task.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
