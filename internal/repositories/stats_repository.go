package repositories

import (
	"context"
	"time"

	"github.com/anonto42/social-admin/backend/internal/models"
	"gorm.io/gorm"
)

// StatsRepository runs the aggregate queries behind the dashboard
type StatsRepository interface {
	HasTable(ctx context.Context, table string) bool
	CountRows(ctx context.Context, table string) (int64, error)
	CountActiveReports(ctx context.Context) (int64, error)
	CountActiveSessions(ctx context.Context, since time.Time) (int64, error)
	AverageSessionMinutes(ctx context.Context, since time.Time) (float64, error)
	CountPostsSince(ctx context.Context, since time.Time) (int64, error)
	DailyPostCounts(ctx context.Context, since time.Time) ([]models.DailyPosts, error)
}

// PostgresStatsRepository implements StatsRepository for PostgreSQL
type PostgresStatsRepository struct {
	db *gorm.DB
}

// NewPostgresStatsRepository creates a new PostgresStatsRepository
func NewPostgresStatsRepository(db *gorm.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

// countableTables restricts CountRows to known table names so the name can be interpolated safely
var countableTables = map[string]struct{}{
	"users":    {},
	"posts":    {},
	"comments": {},
	"reports":  {},
	"sessions": {},
}

func (r *PostgresStatsRepository) HasTable(ctx context.Context, table string) bool {
	return r.db.WithContext(ctx).Migrator().HasTable(table)
}

func (r *PostgresStatsRepository) CountRows(ctx context.Context, table string) (int64, error) {
	if _, ok := countableTables[table]; !ok {
		return 0, translateError(gorm.ErrInvalidField, "count "+table)
	}

	var count int64
	err := r.db.WithContext(ctx).Table(table).Count(&count).Error
	return count, translateError(err, "count "+table)
}

func (r *PostgresStatsRepository) CountActiveReports(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("status = ?", models.ReportStatusActive).
		Count(&count).Error
	return count, translateError(err, "count active reports")
}

// CountActiveSessions counts open sessions used after since, matching SessionRow.IsActive
func (r *PostgresStatsRepository) CountActiveSessions(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Session{}).
		Where("end_time IS NULL AND last_activity >= ?", since).
		Count(&count).Error
	return count, translateError(err, "count active sessions")
}

// AverageSessionMinutes is the mean duration of the sessions that started after since and have ended
func (r *PostgresStatsRepository) AverageSessionMinutes(ctx context.Context, since time.Time) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (end_time - start_time)) / 60), 0)
		FROM sessions
		WHERE end_time IS NOT NULL AND start_time >= ?`, since).Scan(&avg).Error
	return avg, translateError(err, "average session duration")
}

func (r *PostgresStatsRepository) CountPostsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, translateError(err, "count recent posts")
}

// DailyPostCounts groups the posts created after since by calendar day, newest day first
func (r *PostgresStatsRepository) DailyPostCounts(ctx context.Context, since time.Time) ([]models.DailyPosts, error) {
	days := []models.DailyPosts{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS date, COUNT(*) AS post_count
		FROM posts
		WHERE created_at >= ?
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at) DESC`, since).Scan(&days).Error
	if err != nil {
		return nil, translateError(err, "daily post counts")
	}
	return days, nil
}
