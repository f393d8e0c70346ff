package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecemunal/taskora/database"
	"github.com/ecemunal/taskora/models"
	"github.com/ecemunal/taskora/pkg"
)

// sqliteTaskRepo, TaskRepository interface'inin SQLite implementasyonu.
type sqliteTaskRepo struct {
	db database.TxQuerier
}

// NewSQLiteTaskRepo, constructor.
func NewSQLiteTaskRepo(db database.TxQuerier) TaskRepository {
	return &sqliteTaskRepo{db: db}
}

func (r *sqliteTaskRepo) Create(ctx context.Context, task *models.Task) error {
	tags, err := marshalTags(task.Tags)
	if err != nil {
		return err
	}

	// created_at/updated_at Go tarafında set edilir — CURRENT_TIMESTAMP'ın
	// saniye çözünürlüğü sıralamada aynı saniyedeki kayıtları ayıramaz.
	// Tüm zaman kolonları UTC'ye çevrilerek bind edilir: SQLite zamanı
	// metin olarak saklar ve metinleri leksikografik karşılaştırır,
	// offset'ler karışırsa kronolojik sıra bozulur.
	query := `
		INSERT INTO tasks (id, title, description, status, priority, due_date, completed_at, tags, owner_id, created_at, updated_at)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	err = r.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		utcPtr(task.DueDate),
		utcPtr(task.CompletedAt),
		tags,
		task.OwnerID,
		task.CreatedAt.UTC(),
		task.UpdatedAt.UTC(),
	).Scan(&task.ID)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

func (r *sqliteTaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `
		SELECT id, title, description, status, priority, due_date, completed_at, tags, owner_id, created_at, updated_at
		FROM tasks WHERE id = ?`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

// List, filtreyi konjonktif WHERE koşullarına çevirir ve hem sayfayı hem
// pagination'sız toplamı döner.
//
// owner_id = ? koşulu HER ZAMAN ilk sırada — client'tan gelen hiçbir
// parametre bu koşulu kaldıramaz veya gevşetemez. Sort kolonu
// filter.SortColumn()'dan gelir (sabit allow-list), kullanıcı girdisi
// SQL metnine asla doğrudan yazılmaz.
func (r *sqliteTaskRepo) List(ctx context.Context, ownerID string, filter *models.TaskFilter) ([]models.Task, int, error) {
	where := []string{"owner_id = ?"}
	args := []any{ownerID}

	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, filter.Priority)
	}
	if filter.DueFrom != nil {
		where = append(where, "due_date >= ?")
		args = append(args, filter.DueFrom.UTC())
	}
	if filter.DueTo != nil {
		where = append(where, "due_date <= ?")
		args = append(args, filter.DueTo.UTC())
	}
	if filter.Tag != "" {
		// tags JSON array string'i — substring araması yapılır.
		// "a" filtresi "cat" tag'ini de yakalar; bilinen hassasiyet kaybı.
		// %, _ ve \ LIKE'ta joker — escape edilmezse "100%" her şeyi eşler.
		where = append(where, `tags LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(filter.Tag)+"%")
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks WHERE " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	listQuery := fmt.Sprintf(`
		SELECT id, title, description, status, priority, due_date, completed_at, tags, owner_id, created_at, updated_at
		FROM tasks WHERE %s
		ORDER BY %s %s
		LIMIT ? OFFSET ?`, whereClause, filter.SortColumn(), direction)

	offset := (filter.Page - 1) * filter.PageSize
	listArgs := append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *sqliteTaskRepo) Update(ctx context.Context, task *models.Task) error {
	tags, err := marshalTags(task.Tags)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, completed_at = ?, tags = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		utcPtr(task.DueDate),
		utcPtr(task.CompletedAt),
		tags,
		now,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	task.UpdatedAt = now
	return nil
}

func (r *sqliteTaskRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// CountSummary, dashboard sayaçlarını tek sorguda toplar.
// SUM(CASE WHEN ...) SQLite'ta boolean aggregate'in standart yolu;
// hiç satır yoksa SUM NULL döner, COALESCE sıfıra çeker.
func (r *sqliteTaskRepo) CountSummary(ctx context.Context, ownerID string, now time.Time) (*models.DashboardSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN due_date IS NOT NULL AND due_date < ? AND status != 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN priority = 'low' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN priority = 'medium' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN priority = 'high' THEN 1 ELSE 0 END), 0)
		FROM tasks WHERE owner_id = ?`

	summary := &models.DashboardSummary{}
	err := r.db.QueryRowContext(ctx, query, now.UTC(), ownerID).Scan(
		&summary.Total,
		&summary.Completed,
		&summary.Overdue,
		&summary.ByPriority.Low,
		&summary.ByPriority.Medium,
		&summary.ByPriority.High,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count task summary: %w", err)
	}

	return summary, nil
}

func (r *sqliteTaskRepo) UpcomingDue(ctx context.Context, ownerID string, now time.Time, limit int) ([]models.Task, error) {
	query := `
		SELECT id, title, description, status, priority, due_date, completed_at, tags, owner_id, created_at, updated_at
		FROM tasks
		WHERE owner_id = ? AND due_date IS NOT NULL AND due_date >= ?
		ORDER BY due_date ASC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, ownerID, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// ─── Scan Helpers ───

// rowScanner, sql.Row ve sql.Rows'un ortak Scan imzası.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var tags string

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.DueDate, &task.CompletedAt, &tags, &task.OwnerID,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Tags, err = unmarshalTags(tags)
	if err != nil {
		return nil, err
	}

	return task, nil
}

func collectTasks(rows *sql.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// utcPtr, nullable zaman kolonlarını UTC'ye çevirerek bind etmek için.
// Farklı offset'lerle yazılmış metin zamanlar SQLite'ta kronolojik
// karşılaştırılamaz; tek normalizasyon noktası burası.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// escapeLike, LIKE joker karakterlerini literal'e çevirir.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(b), nil
}

func unmarshalTags(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
