package repository

import (
	"context"
	"time"

	"github.com/ecemunal/taskora/models"
)

// TaskRepository, görev tablosu işlemleri.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	// GetByID owner-scoped DEĞİLDİR — service katmanı not-found ile
	// forbidden'ı ayırt edebilmek için önce kaydı çekip sonra owner
	// kontrolü yapar.
	GetByID(ctx context.Context, id string) (*models.Task, error)
	// List, owner'a ait görevlerin filtrelenmiş bir sayfasını ve aynı
	// filtrenin pagination'sız toplam sayısını döner. owner_id koşulu
	// her zaman eklenir — filter bunu etkileyemez.
	List(ctx context.Context, ownerID string, filter *models.TaskFilter) ([]models.Task, int, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	// CountSummary, dashboard sayaçlarını tek sorguda döner.
	CountSummary(ctx context.Context, ownerID string, now time.Time) (*models.DashboardSummary, error)
	// UpcomingDue, due date'i now ve sonrası olan görevleri en yakından
	// uzağa sıralı, limit kadar döner.
	UpcomingDue(ctx context.Context, ownerID string, now time.Time, limit int) ([]models.Task, error)
}
