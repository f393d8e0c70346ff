package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// TaskStatus, görevin yaşam döngüsündeki durumunu temsil eder.
// Go'da enum yoktur — typed constant'lar kullanılır.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusArchived   TaskStatus = "archived"
)

// Valid, status değerinin izin verilen enum'lardan biri olup olmadığını döner.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusArchived:
		return true
	}
	return false
}

// TaskPriority, görevin öncelik seviyesi.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid, priority değerinin izin verilen enum'lardan biri olup olmadığını döner.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task, bir kullanıcıya ait görevi temsil eder.
//
// Invariant: CompletedAt sadece status "completed" iken doludur — status
// başka bir değere EXPLICIT geçtiğinde temizlenir (bkz. TaskService.Update).
// OwnerID oluşturmadan sonra değişmez; tüm erişim owner-scoped'tır.
//
// Tags DB'de JSON array string olarak saklanır ('["a","b"]'), Go tarafında
// []string olarak taşınır — dönüşüm repository katmanında yapılır.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	CompletedAt *time.Time   `json:"completedAt"`
	Tags        []string     `json:"tags"`
	OwnerID     string       `json:"ownerId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

const maxTitleLength = 200

// CreateTaskRequest, görev oluşturma isteği.
// Status client'tan ALINMAZ — yeni görev her zaman "pending" başlar.
// DueDate RFC3339 (ISO-8601) string olarak gelir, encoding/json parse eder.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
	Tags        []string   `json:"tags"`
}

// Validate, oluşturma isteğini kontrol eder ve varsayılanları uygular:
// priority boşsa "medium", tags nil ise boş liste.
func (r *CreateTaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(r.Title) > maxTitleLength {
		return fmt.Errorf("title must be at most %d characters", maxTitleLength)
	}

	if r.Priority == "" {
		r.Priority = string(TaskPriorityMedium)
	}
	if !TaskPriority(r.Priority).Valid() {
		return fmt.Errorf("priority must be one of: low, medium, high")
	}

	if r.Tags == nil {
		r.Tags = []string{}
	}

	return nil
}

// UpdateTaskRequest, kısmi görev güncellemesi (PATCH semantiği).
// nil field = "dokunma". Güncellenebilir alanlar sabit bir alt kümedir;
// OwnerID, CompletedAt gibi alanlar client tarafından set EDİLEMEZ.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        *[]string  `json:"tags"`
}

// Validate, güncelleme isteğini kontrol eder.
func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		if trimmed == "" {
			return fmt.Errorf("title cannot be empty")
		}
		if utf8.RuneCountInString(trimmed) > maxTitleLength {
			return fmt.Errorf("title must be at most %d characters", maxTitleLength)
		}
		r.Title = &trimmed
	}

	if r.Status != nil && !TaskStatus(*r.Status).Valid() {
		return fmt.Errorf("status must be one of: pending, in_progress, completed, archived")
	}

	if r.Priority != nil && !TaskPriority(*r.Priority).Valid() {
		return fmt.Errorf("priority must be one of: low, medium, high")
	}

	return nil
}

// Pagination varsayılanları ve üst sınır.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// taskSortColumns, izin verilen sort key'lerinin SQL kolon karşılıkları.
//
// Client'tan gelen sortBy değeri ASLA doğrudan SQL'e yazılmaz — önce bu
// map'ten geçer. Map'te olmayan bir key sorguya ulaşamaz, operator injection
// ihtimali kalmaz.
var taskSortColumns = map[string]string{
	"createdAt": "created_at",
	"dueDate":   "due_date",
	"priority":  "priority",
}

// TaskFilter, görev listeleme sorgusunun client tarafından kontrol edilen
// kısmı. OwnerID filtreye DAHİL DEĞİLDİR — o, doğrulanmış token'dan gelir
// ve repository katmanında her sorguya koşulsuz eklenir.
type TaskFilter struct {
	Status    string     // boş = filtre yok
	Priority  string     // boş = filtre yok
	DueFrom   *time.Time // due_date >= DueFrom
	DueTo     *time.Time // due_date <= DueTo
	Tag       string     // serialize edilmiş tags içinde substring araması
	Page      int
	PageSize  int
	SortBy    string // createdAt | dueDate | priority
	SortOrder string // asc | desc
}

// Normalize, filtreyi doğrular ve varsayılanları uygular.
//
//   - page/pageSize: 1'den küçük değerler varsayılana çekilir (clamp),
//     pageSize üst sınırı MaxPageSize — sorgu her zaman bounded kalır.
//   - sortBy: allow-list dışındaki değerler reddedilir.
//   - status/priority: set edilmişse enum kontrolünden geçer.
func (f *TaskFilter) Normalize() error {
	if f.Status != "" && !TaskStatus(f.Status).Valid() {
		return fmt.Errorf("invalid status filter")
	}
	if f.Priority != "" && !TaskPriority(f.Priority).Valid() {
		return fmt.Errorf("invalid priority filter")
	}

	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}

	if f.SortBy == "" {
		f.SortBy = "createdAt"
	}
	if _, ok := taskSortColumns[f.SortBy]; !ok {
		return fmt.Errorf("sortBy must be one of: createdAt, dueDate, priority")
	}

	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		return fmt.Errorf("sortOrder must be asc or desc")
	}

	return nil
}

// SortColumn, doğrulanmış sortBy değerinin SQL kolon adını döner.
// Normalize çağrılmadan kullanılmamalıdır.
func (f *TaskFilter) SortColumn() string {
	return taskSortColumns[f.SortBy]
}

// TaskPage, filtrelenmiş görev listesinin bir sayfası.
// Total, AYNI filtrenin pagination'sız toplam eşleşme sayısıdır —
// client sayfa sayısını bununla hesaplar.
type TaskPage struct {
	Items    []Task `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// PriorityCounts, dashboard için öncelik bazlı görev sayıları.
type PriorityCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// DashboardSummary, kullanıcının görevleri üzerindeki özet istatistikler.
type DashboardSummary struct {
	Total       int            `json:"total"`
	Completed   int            `json:"completed"`
	Overdue     int            `json:"overdue"`
	ByPriority  PriorityCounts `json:"byPriority"`
	UpcomingDue []Task         `json:"upcomingDue"`
}
