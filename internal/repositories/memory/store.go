// Package memory keeps the dashboard data in process memory. It implements every repository
// interface and backs the HTTP tests and local demos that run without PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/anonto42/social-admin/backend/internal/repositories"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Store is safe for concurrent use. Its exported fields seed the data and must not be
// modified once the store is shared.
type Store struct {
	mu sync.Mutex

	Users    []models.User
	Posts    []models.PostRow
	Comments []models.CommentRow
	Sessions []models.SessionRow
	Events   []models.AuditEvent

	// ActiveReports is served by CountActiveReports and CountRows("reports")
	ActiveReports int64
	// MissingTables makes HasTable report false for the listed tables
	MissingTables []string
	// FailingTables makes every query touching the listed tables fail
	FailingTables []string
	// ProtectedPosts fail deletion with a foreign key violation
	ProtectedPosts []uint
}

var _ interface {
	repositories.UserRepository
	repositories.PostRepository
	repositories.CommentRepository
	repositories.StatsRepository
	repositories.SessionRepository
	repositories.AuditRepository
} = (*Store)(nil)

func (s *Store) failing(table string) error {
	if lo.Contains(s.FailingTables, table) {
		return errors.Errorf("relation %q is unavailable", table)
	}
	return nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findUser(user.Email, ""); ok {
		return errors.Errorf("duplicate email %s", user.Email)
	}
	user.ID = uint(len(s.Users) + 1)
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	s.Users = append(s.Users, *user)
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.findUser(email, "")
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &user, nil
}

func (s *Store) GetAdminByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.findUser(email, models.RoleAdmin)
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &user, nil
}

func (s *Store) findUser(email, role string) (models.User, bool) {
	return lo.Find(s.Users, func(u models.User) bool {
		return strings.EqualFold(u.Email, email) && (role == "" || u.Role == role)
	})
}

func (s *Store) ListPosts(_ context.Context, search string, page, limit int) ([]models.PostRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing("posts"); err != nil {
		return nil, err
	}

	posts := newestFirst(lo.Filter(s.Posts, func(p models.PostRow, _ int) bool {
		return search == "" || containsFold(p.Title, search)
	}))

	offset := (page - 1) * limit
	if offset >= len(posts) {
		return []models.PostRow{}, nil
	}
	return posts[offset:lo.Min([]int{offset + limit, len(posts)})], nil
}

func (s *Store) SearchPosts(_ context.Context, search repositories.PostSearch) ([]models.PostRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing("posts"); err != nil {
		return nil, err
	}

	posts := newestFirst(lo.Filter(s.Posts, func(p models.PostRow, _ int) bool {
		return matches(p, search)
	}))
	if len(posts) > repositories.MaxSearchResults {
		posts = posts[:repositories.MaxSearchResults]
	}
	return posts, nil
}

func matches(p models.PostRow, search repositories.PostSearch) bool {
	topic, subTopic := lo.FromPtr(p.Topic), lo.FromPtr(p.SubTopic)
	switch search.Field {
	case repositories.SearchFieldID:
		return int64(p.ID) == search.ID()
	case repositories.SearchFieldTitle:
		return containsFold(p.Title, search.Query)
	case repositories.SearchFieldTopic:
		return containsFold(topic, search.Query)
	case repositories.SearchFieldSubTopic:
		return containsFold(subTopic, search.Query)
	default:
		return containsFold(p.Title, search.Query) ||
			containsFold(topic, search.Query) ||
			containsFold(subTopic, search.Query)
	}
}

func (s *Store) DeletePost(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing("posts"); err != nil {
		return err
	}
	if !lo.ContainsBy(s.Posts, func(p models.PostRow) bool { return p.ID == id }) {
		return repositories.ErrPostNotFound
	}
	if lo.Contains(s.ProtectedPosts, id) {
		return errors.Wrapf(repositories.ErrForeignKeyViolation, "delete post %d", id)
	}

	s.Posts = lo.Reject(s.Posts, func(p models.PostRow, _ int) bool { return p.ID == id })
	s.Comments = lo.Reject(s.Comments, func(c models.CommentRow, _ int) bool { return c.PostID == id })
	return nil
}

func (s *Store) ListComments(_ context.Context) ([]models.CommentRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing("comments"); err != nil {
		return nil, err
	}

	comments := append([]models.CommentRow{}, s.Comments...)
	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	if len(comments) > repositories.MaxCommentResults {
		comments = comments[:repositories.MaxCommentResults]
	}
	return comments, nil
}

func (s *Store) DeleteComment(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing("comments"); err != nil {
		return err
	}
	comment, ok := lo.Find(s.Comments, func(c models.CommentRow) bool { return c.ID == id })
	if !ok {
		return repositories.ErrCommentNotFound
	}

	s.Comments = lo.FilterMap(s.Comments, func(c models.CommentRow, _ int) (models.CommentRow, bool) {
		if c.ID == id {
			return c, false
		}
		if c.ParentID != nil && *c.ParentID == id {
			c.ParentID = nil
		}
		if comment.ParentID != nil && c.ID == *comment.ParentID && c.ReplyCount > 0 {
			c.ReplyCount--
		}
		return c, true
	})
	s.Posts = lo.Map(s.Posts, func(p models.PostRow, _ int) models.PostRow {
		if p.ID == comment.PostID && p.CommentsCount > 0 {
			p.CommentsCount--
		}
		return p
	})
	return nil
}

func (s *Store) ListSessions(_ context.Context, limit int) ([]models.SessionRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing("sessions"); err != nil {
		return nil, err
	}

	sessions := append([]models.SessionRow{}, s.Sessions...)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}

	now := time.Now()
	return lo.Map(sessions, func(row models.SessionRow, _ int) models.SessionRow {
		row.Active = row.IsActive(now)
		return row
	}), nil
}

func (s *Store) HasTable(_ context.Context, table string) bool {
	return !lo.Contains(s.MissingTables, table)
}

func (s *Store) CountRows(_ context.Context, table string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing(table); err != nil {
		return 0, err
	}
	switch table {
	case "users":
		return int64(len(s.Users)), nil
	case "posts":
		return int64(len(s.Posts)), nil
	case "comments":
		return int64(len(s.Comments)), nil
	case "reports":
		return s.ActiveReports, nil
	case "sessions":
		return int64(len(s.Sessions)), nil
	}
	return 0, errors.Errorf("unknown table %q", table)
}

func (s *Store) CountActiveReports(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ActiveReports, s.failing("reports")
}

func (s *Store) CountActiveSessions(_ context.Context, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing("sessions"); err != nil {
		return 0, err
	}
	return int64(lo.CountBy(s.Sessions, func(row models.SessionRow) bool {
		return row.EndTime == nil && !row.LastActivity.Before(since)
	})), nil
}

func (s *Store) AverageSessionMinutes(_ context.Context, since time.Time) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing("sessions"); err != nil {
		return 0, err
	}
	ended := lo.Filter(s.Sessions, func(row models.SessionRow, _ int) bool {
		return row.EndTime != nil && !row.StartTime.Before(since)
	})
	if len(ended) == 0 {
		return 0, nil
	}
	total := lo.Reduce(ended, func(sum float64, row models.SessionRow, _ int) float64 {
		return sum + row.EndTime.Sub(row.StartTime).Minutes()
	}, 0)
	return total / float64(len(ended)), nil
}

func (s *Store) CountPostsSince(_ context.Context, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing("posts"); err != nil {
		return 0, err
	}
	return int64(lo.CountBy(s.Posts, func(p models.PostRow) bool {
		return !p.CreatedAt.Before(since)
	})), nil
}

func (s *Store) DailyPostCounts(_ context.Context, since time.Time) ([]models.DailyPosts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing("posts"); err != nil {
		return nil, err
	}

	recent := lo.Filter(s.Posts, func(p models.PostRow, _ int) bool {
		return !p.CreatedAt.Before(since)
	})
	byDay := lo.GroupBy(recent, func(p models.PostRow) string {
		return p.CreatedAt.Format("2006-01-02")
	})

	days := lo.MapToSlice(byDay, func(day string, posts []models.PostRow) models.DailyPosts {
		return models.DailyPosts{Date: day, PostCount: int64(len(posts))}
	})
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	return days, nil
}

func (s *Store) Record(_ context.Context, event models.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	s.Events = append(s.Events, event)
	return nil
}

// AuditEvents returns a copy of the recorded moderation events
func (s *Store) AuditEvents() []models.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.AuditEvent{}, s.Events...)
}

func newestFirst(posts []models.PostRow) []models.PostRow {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
