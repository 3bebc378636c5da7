package handlers

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/anonto42/social-admin/backend/internal/metrics"
	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/anonto42/social-admin/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	averageSessionWindow = 24 * time.Hour
	recentPostsWindow    = 7 * 24 * time.Hour
)

var errTableMissing = errors.New("table does not exist")

// StatsHandler serves the dashboard aggregates
type StatsHandler struct {
	statsRepository repositories.StatsRepository
	now             func() time.Time
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsRepo repositories.StatsRepository) *StatsHandler {
	return &StatsHandler{
		statsRepository: statsRepo,
		now:             time.Now,
	}
}

// RegisterStatsRoutes registers the stats route
func (h *StatsHandler) RegisterStatsRoutes(g *echo.Group) {
	g.GET("/stats", h.GetDashboardStats)
}

// GetDashboardStats always answers 200. A metric whose table is missing or whose query fails
// is reported as zero and listed under "unavailable".
func (h *StatsHandler) GetDashboardStats(c echo.Context) error {
	ctx := c.Request().Context()
	now := h.now()
	repo := h.statsRepository

	stats := &models.DashboardStats{
		PostsPerDay: []models.DailyPosts{},
		Unavailable: []string{},
	}

	h.collect(ctx, stats, "totalUsers", "users", func() (err error) {
		stats.TotalUsers, err = repo.CountRows(ctx, "users")
		return err
	})
	h.collect(ctx, stats, "totalPosts", "posts", func() (err error) {
		stats.TotalPosts, err = repo.CountRows(ctx, "posts")
		return err
	})
	h.collect(ctx, stats, "totalComments", "comments", func() (err error) {
		stats.TotalComments, err = repo.CountRows(ctx, "comments")
		return err
	})
	h.collect(ctx, stats, "activeReports", "reports", func() (err error) {
		stats.ActiveReports, err = repo.CountActiveReports(ctx)
		return err
	})
	h.collect(ctx, stats, "activeSessions", "sessions", func() (err error) {
		stats.ActiveSessions, err = repo.CountActiveSessions(ctx, now.Add(-models.ActiveSessionWindow))
		return err
	})
	h.collect(ctx, stats, "avgSessionTime", "sessions", func() error {
		avg, err := repo.AverageSessionMinutes(ctx, now.Add(-averageSessionWindow))
		if err != nil {
			return err
		}
		stats.AvgSessionTime = int64(math.Round(avg))
		return nil
	})
	h.collect(ctx, stats, "weeklyPosts", "posts", func() (err error) {
		stats.WeeklyPosts, err = repo.CountPostsSince(ctx, now.Add(-recentPostsWindow))
		return err
	})
	h.collect(ctx, stats, "postsPerDay", "posts", func() error {
		days, err := repo.DailyPostCounts(ctx, now.Add(-recentPostsWindow))
		if err != nil {
			return err
		}
		stats.PostsPerDay = days
		return nil
	})

	return c.JSON(http.StatusOK, stats)
}

// collect runs query when table exists. On any failure the metric keeps its zero value.
func (h *StatsHandler) collect(ctx context.Context, stats *models.DashboardStats, metric, table string, query func() error) {
	err := errTableMissing
	if h.statsRepository.HasTable(ctx, table) {
		err = query()
	}
	if err == nil {
		return
	}

	zeroMetric(stats, metric)
	stats.Unavailable = append(stats.Unavailable, metric)
	metrics.StatsFallback(metric)
	logrus.WithError(err).WithFields(logrus.Fields{
		"metric": metric,
		"table":  table,
	}).Warn("dashboard metric unavailable, reporting zero")
}

// zeroMetric undoes a partial assignment made by a failed query
func zeroMetric(stats *models.DashboardStats, metric string) {
	switch metric {
	case "totalUsers":
		stats.TotalUsers = 0
	case "totalPosts":
		stats.TotalPosts = 0
	case "totalComments":
		stats.TotalComments = 0
	case "activeReports":
		stats.ActiveReports = 0
	case "activeSessions":
		stats.ActiveSessions = 0
	case "avgSessionTime":
		stats.AvgSessionTime = 0
	case "weeklyPosts":
		stats.WeeklyPosts = 0
	case "postsPerDay":
		stats.PostsPerDay = []models.DailyPosts{}
	}
}
