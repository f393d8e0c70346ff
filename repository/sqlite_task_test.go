package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ecemunal/taskora/models"
	"github.com/ecemunal/taskora/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// defaultFilter, Normalize'dan geçmiş varsayılan filtre.
func defaultFilter(t *testing.T) *models.TaskFilter {
	t.Helper()
	f := &models.TaskFilter{}
	require.NoError(t, f.Normalize())
	return f
}

func TestTaskRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "gorev@example.com")

	desc := "açıklama"
	due := time.Now().Add(72 * time.Hour).UTC()
	task := createTestTask(t, repo, user.ID, "alışveriş", func(task *models.Task) {
		task.Description = &desc
		task.DueDate = &due
		task.Tags = []string{"ev", "acil"}
	})

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "alışveriş", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, []string{"ev", "acil"}, got.Tags)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, user.ID, got.OwnerID)
}

func TestTaskRepo_ListOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	alice := createTestUser(t, userRepo, "alice@example.com")
	bob := createTestUser(t, userRepo, "bob@example.com")

	createTestTask(t, repo, alice.ID, "alice görevi", nil)
	createTestTask(t, repo, bob.ID, "bob görevi", nil)

	tasks, total, err := repo.List(ctx, alice.ID, defaultFilter(t))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "alice görevi", tasks[0].Title)
}

func TestTaskRepo_ListStatusFilter(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "filtre@example.com")
	createTestTask(t, repo, user.ID, "bekleyen", nil)
	createTestTask(t, repo, user.ID, "biten", func(task *models.Task) {
		task.Status = models.TaskStatusCompleted
	})

	filter := defaultFilter(t)
	filter.Status = string(models.TaskStatusCompleted)

	tasks, total, err := repo.List(ctx, user.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "biten", tasks[0].Title)
}

func TestTaskRepo_ListPagination(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "sayfa@example.com")
	base := time.Now()
	for i, title := range []string{"birinci", "ikinci", "üçüncü"} {
		ts := base.Add(time.Duration(i) * time.Millisecond)
		createTestTask(t, repo, user.ID, title, func(task *models.Task) {
			task.CreatedAt = ts
			task.UpdatedAt = ts
		})
	}

	filter := defaultFilter(t)
	filter.Page = 2
	filter.PageSize = 1
	filter.SortBy = "createdAt"
	filter.SortOrder = "asc"
	require.NoError(t, filter.Normalize())

	tasks, total, err := repo.List(ctx, user.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, 3, total) // total pagination'dan etkilenmez
	require.Len(t, tasks, 1)
	assert.Equal(t, "ikinci", tasks[0].Title)
}

func TestTaskRepo_ListDueDateRange(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "tarih@example.com")
	now := time.Now()

	for days, title := range map[int]string{1: "yarın", 5: "bu hafta", 20: "gelecek ay"} {
		due := now.Add(time.Duration(days) * 24 * time.Hour)
		createTestTask(t, repo, user.ID, title, func(task *models.Task) {
			task.DueDate = &due
		})
	}
	createTestTask(t, repo, user.ID, "tarihsiz", nil)

	from := now.Add(2 * 24 * time.Hour)
	to := now.Add(10 * 24 * time.Hour)
	filter := defaultFilter(t)
	filter.DueFrom = &from
	filter.DueTo = &to

	tasks, total, err := repo.List(ctx, user.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "bu hafta", tasks[0].Title)
}

func TestTaskRepo_ListDueDateMixedOffsets(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "saatdilimi@example.com")

	// Due date +09:00 offset'iyle gelir (2026-09-01T00:00+09:00 = 2026-08-31T15:00Z).
	// Metin karşılaştırması offset'leri normalize etmeden yapılsaydı UTC
	// üst sınır bu görevi kaçırırdı.
	jst := time.FixedZone("JST", 9*60*60)
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, jst)
	createTestTask(t, repo, user.ID, "tokyo görevi", func(task *models.Task) {
		task.DueDate = &due
	})

	to := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC) // due'dan 8 saat SONRA
	filter := defaultFilter(t)
	filter.DueTo = &to

	tasks, total, err := repo.List(ctx, user.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "tokyo görevi", tasks[0].Title)

	// Alt sınır da aynı instant'ı kabul etmeli
	from := due.UTC()
	filter = defaultFilter(t)
	filter.DueFrom = &from

	_, total, err = repo.List(ctx, user.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestTaskRepo_ListTagFilter(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "tag@example.com")
	createTestTask(t, repo, user.ID, "işle ilgili", func(task *models.Task) {
		task.Tags = []string{"work", "urgent"}
	})
	createTestTask(t, repo, user.ID, "evle ilgili", func(task *models.Task) {
		task.Tags = []string{"home"}
	})

	filter := defaultFilter(t)
	filter.Tag = "work"

	tasks, total, err := repo.List(ctx, user.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "işle ilgili", tasks[0].Title)
}

func TestTaskRepo_ListTagFilterEscapesWildcards(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "joker@example.com")
	createTestTask(t, repo, user.ID, "yüzdeli", func(task *models.Task) {
		task.Tags = []string{"100%"}
	})
	createTestTask(t, repo, user.ID, "alt çizgili", func(task *models.Task) {
		task.Tags = []string{"a_b"}
	})
	createTestTask(t, repo, user.ID, "sade", func(task *models.Task) {
		task.Tags = []string{"axb"}
	})

	// "%" literal eşleşmeli — escape edilmeseydi her görevi döndürürdü
	filter := defaultFilter(t)
	filter.Tag = "100%"

	tasks, total, err := repo.List(ctx, user.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "yüzdeli", tasks[0].Title)

	// "_" tek-karakter jokeri değil, literal alt çizgi
	filter = defaultFilter(t)
	filter.Tag = "a_b"

	tasks, total, err = repo.List(ctx, user.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "alt çizgili", tasks[0].Title)
}

func TestTaskRepo_UpdateMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteTaskRepo(db.Conn)

	task := &models.Task{
		ID:       "yok",
		Title:    "hayalet",
		Status:   models.TaskStatusPending,
		Priority: models.TaskPriorityLow,
		Tags:     []string{},
	}
	err := repo.Update(context.Background(), task)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestTaskRepo_DeleteMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteTaskRepo(db.Conn)

	err := repo.Delete(context.Background(), "yok")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestTaskRepo_CountSummary(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "ozet@example.com")
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	createTestTask(t, repo, user.ID, "gecikmiş", func(task *models.Task) {
		task.DueDate = &past
		task.Priority = models.TaskPriorityHigh
	})
	createTestTask(t, repo, user.ID, "tamamlanmış ve tarihi geçmiş", func(task *models.Task) {
		// completed görev overdue SAYILMAZ
		task.DueDate = &past
		task.Status = models.TaskStatusCompleted
	})
	createTestTask(t, repo, user.ID, "gelecekte", func(task *models.Task) {
		task.DueDate = &future
		task.Priority = models.TaskPriorityLow
	})

	summary, err := repo.CountSummary(ctx, user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 1, summary.Overdue)
	assert.Equal(t, 1, summary.ByPriority.Low)
	assert.Equal(t, 1, summary.ByPriority.Medium)
	assert.Equal(t, 1, summary.ByPriority.High)
}

func TestTaskRepo_CountSummaryEmpty(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteTaskRepo(db.Conn)

	user := createTestUser(t, userRepo, "bos@example.com")

	summary, err := repo.CountSummary(context.Background(), user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.Completed)
	assert.Equal(t, 0, summary.Overdue)
}

func TestTaskRepo_UpcomingDue(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLiteUserRepo(db.Conn)
	repo := NewSQLiteTaskRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "yaklasan@example.com")
	now := time.Now()

	// 6 gelecek görev + 1 geçmiş + 1 tarihsiz
	for i := 1; i <= 6; i++ {
		due := now.Add(time.Duration(i) * 24 * time.Hour)
		createTestTask(t, repo, user.ID, "gelecek", func(task *models.Task) {
			task.DueDate = &due
		})
	}
	past := now.Add(-24 * time.Hour)
	createTestTask(t, repo, user.ID, "geçmiş", func(task *models.Task) {
		task.DueDate = &past
	})
	createTestTask(t, repo, user.ID, "tarihsiz", nil)

	tasks, err := repo.UpcomingDue(ctx, user.ID, now, 5)
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	// due_date artan sırada, geçmiş ve tarihsiz görevler yok
	for i := 0; i < len(tasks)-1; i++ {
		require.NotNil(t, tasks[i].DueDate)
		assert.True(t, tasks[i].DueDate.Before(*tasks[i+1].DueDate))
	}
}
