package repositories

import (
	"context"
	"time"

	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// SessionRepository defines the interface for session data operations
type SessionRepository interface {
	ListSessions(ctx context.Context, limit int) ([]models.SessionRow, error)
}

// PostgresSessionRepository implements SessionRepository for PostgreSQL
type PostgresSessionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository
func NewPostgresSessionRepository(db *gorm.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db, now: time.Now}
}

// ListSessions returns the most recently started sessions with their user's name
func (r *PostgresSessionRepository) ListSessions(ctx context.Context, limit int) ([]models.SessionRow, error) {
	var rows []models.SessionRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.user_id,
			u.name AS user_name,
			s.start_time,
			s.end_time,
			s.last_activity,
			s.ip_address,
			s.device
		FROM sessions s
		INNER JOIN users u ON s.user_id = u.id
		ORDER BY s.start_time DESC, s.id DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "list sessions")
	}

	now := r.now()
	return lo.Map(rows, func(row models.SessionRow, _ int) models.SessionRow {
		row.Active = row.IsActive(now)
		return row
	}), nil
}
