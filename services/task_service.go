package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ecemunal/taskora/models"
	"github.com/ecemunal/taskora/pkg"
	"github.com/ecemunal/taskora/pkg/cache"
	"github.com/ecemunal/taskora/repository"
)

// upcomingDueLimit, dashboard'daki "yaklaşan görevler" listesinin boyu.
const upcomingDueLimit = 5

// TaskService, görev CRUD'u, listeleme ve dashboard özeti.
// Tüm operasyonlar owner-scoped'tır: ownerID doğrulanmış token'dan gelir,
// client hiçbir parametre ile başka kullanıcının görevine ulaşamaz.
type TaskService interface {
	Create(ctx context.Context, ownerID string, req *models.CreateTaskRequest) (*models.Task, error)
	// Get, görevi döner. Olmayan görev → ErrNotFound,
	// başkasının görevi → ErrForbidden.
	Get(ctx context.Context, ownerID, taskID string) (*models.Task, error)
	List(ctx context.Context, ownerID string, filter *models.TaskFilter) (*models.TaskPage, error)
	Update(ctx context.Context, ownerID, taskID string, req *models.UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	// Dashboard, kullanıcının görev özetini döner. Sonuç kısa süreli
	// cache'lenir; her görev mutasyonu cache'i geçersiz kılar.
	Dashboard(ctx context.Context, ownerID string) (*models.DashboardSummary, error)
}

type taskService struct {
	taskRepo repository.TaskRepository

	// dashboardCache, ownerID → özet. Dashboard sorgusu aggregate ağırlıklı;
	// arka arkaya yenilenen bir dashboard sayfası DB'ye tekrar inmez.
	dashboardCache *cache.TTLCache[string, *models.DashboardSummary]
}

// NewTaskService, constructor. dashboardCache nil olabilir (testlerde).
func NewTaskService(taskRepo repository.TaskRepository, dashboardCache *cache.TTLCache[string, *models.DashboardSummary]) TaskService {
	return &taskService{
		taskRepo:       taskRepo,
		dashboardCache: dashboardCache,
	}
}

func (s *taskService) Create(ctx context.Context, ownerID string, req *models.CreateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	now := time.Now()
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusPending, // yeni görev her zaman pending
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ownerID)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	return s.getOwned(ctx, ownerID, taskID)
}

func (s *taskService) List(ctx context.Context, ownerID string, filter *models.TaskFilter) (*models.TaskPage, error) {
	if err := filter.Normalize(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	tasks, total, err := s.taskRepo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	return &models.TaskPage{
		Items:    tasks,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Update, kısmi güncelleme uygular (nil field = dokunma).
//
// completedAt invariant'ı burada korunur:
//   - status "completed" SET EDİLİYORSA → completedAt = now
//     (görev zaten completed olsa bile yeniden damgalanır)
//   - status explicit olarak BAŞKA bir değere geçiyorsa → completedAt = nil
//   - status request'te hiç YOKSA → completedAt'e dokunulmaz
func (s *taskService) Update(ctx context.Context, ownerID, taskID string, req *models.UpdateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	task, err := s.getOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Priority != nil {
		task.Priority = models.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}

	if req.Status != nil {
		newStatus := models.TaskStatus(*req.Status)
		if newStatus == models.TaskStatusCompleted {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
		task.Status = newStatus
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ownerID)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, ownerID, taskID string) error {
	// Ownership kontrolü silmeden ÖNCE — başkasının görevine DELETE atan
	// 404 değil 403 görür, görev de yerinde kalır.
	if _, err := s.getOwned(ctx, ownerID, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	s.invalidateDashboard(ownerID)
	return nil
}

func (s *taskService) Dashboard(ctx context.Context, ownerID string) (*models.DashboardSummary, error) {
	if s.dashboardCache != nil {
		if summary, ok := s.dashboardCache.Get(ownerID); ok {
			return summary, nil
		}
	}

	now := time.Now()

	summary, err := s.taskRepo.CountSummary(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.taskRepo.UpcomingDue(ctx, ownerID, now, upcomingDueLimit)
	if err != nil {
		return nil, err
	}
	summary.UpcomingDue = upcoming

	if s.dashboardCache != nil {
		s.dashboardCache.Set(ownerID, summary)
	}

	return summary, nil
}

// getOwned, görevi yükler ve sahipliği doğrular.
// GetByID owner-scoped DEĞİLDİR — böylece "görev yok" (404) ile
// "görev var ama senin değil" (403) ayrımı yapılabilir.
func (s *taskService) getOwned(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: task belongs to another user", pkg.ErrForbidden)
	}

	return task, nil
}

func (s *taskService) invalidateDashboard(ownerID string) {
	if s.dashboardCache != nil {
		s.dashboardCache.Delete(ownerID)
	}
}
