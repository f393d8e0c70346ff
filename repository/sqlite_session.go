package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ecemunal/taskora/database"
	"github.com/ecemunal/taskora/models"
	"github.com/ecemunal/taskora/pkg"
)

// sqliteSessionRepo, SessionRepository interface'inin SQLite implementasyonu.
type sqliteSessionRepo struct {
	db database.TxQuerier
}

// NewSQLiteSessionRepo, constructor.
func NewSQLiteSessionRepo(db database.TxQuerier) SessionRepository {
	return &sqliteSessionRepo{db: db}
}

func (r *sqliteSessionRepo) Create(ctx context.Context, session *models.AuthSession) error {
	query := `
		INSERT INTO auth_sessions (id, user_id, token, refresh_token, expires_at)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		session.UserID,
		session.Token,
		session.RefreshToken,
		session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *sqliteSessionRepo) GetByRefreshToken(ctx context.Context, refreshToken string) (*models.AuthSession, error) {
	query := `
		SELECT id, user_id, token, refresh_token, expires_at, created_at
		FROM auth_sessions WHERE refresh_token = ?`

	session := &models.AuthSession{}
	err := r.db.QueryRowContext(ctx, query, refreshToken).Scan(
		&session.ID, &session.UserID, &session.Token,
		&session.RefreshToken, &session.ExpiresAt, &session.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session by refresh token: %w", err)
	}

	return session, nil
}

func (r *sqliteSessionRepo) GetByID(ctx context.Context, id string) (*models.AuthSession, error) {
	query := `
		SELECT id, user_id, token, refresh_token, expires_at, created_at
		FROM auth_sessions WHERE id = ?`

	session := &models.AuthSession{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.UserID, &session.Token,
		&session.RefreshToken, &session.ExpiresAt, &session.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

// Rotate, token çiftini satır üzerine yazar. UPDATE session id ile keyed —
// iki refresh isteği aynı anda yarışırsa son yazan kazanır, ikinci bir
// satır asla oluşmaz.
func (r *sqliteSessionRepo) Rotate(ctx context.Context, id, token, refreshToken string, expiresAt time.Time) error {
	query := `
		UPDATE auth_sessions
		SET token = ?, refresh_token = ?, expires_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, token, refreshToken, expiresAt, id)
	if err != nil {
		return fmt.Errorf("failed to rotate session: %w", err)
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

func (r *sqliteSessionRepo) DeleteByRefreshToken(ctx context.Context, refreshToken string) error {
	// Idempotent: eşleşen satır yoksa da başarı sayılır (logout tekrarlanabilir).
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE refresh_token = ?`, refreshToken)
	if err != nil {
		return fmt.Errorf("failed to delete session by refresh token: %w", err)
	}
	return nil
}

func (r *sqliteSessionRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
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

func (r *sqliteSessionRepo) ListByUserID(ctx context.Context, userID string) ([]models.AuthSession, error) {
	query := `
		SELECT id, user_id, token, refresh_token, expires_at, created_at
		FROM auth_sessions WHERE user_id = ?
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.AuthSession{}
	for rows.Next() {
		var s models.AuthSession
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Token,
			&s.RefreshToken, &s.ExpiresAt, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	return sessions, nil
}

func (r *sqliteSessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE expires_at < ?`, now)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
