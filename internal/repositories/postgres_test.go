package repositories_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/anonto42/social-admin/backend/internal/repositories"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// exact matches one whole statement, whitespace collapsed
func exact(sql string) string {
	return "^" + regexp.QuoteMeta(sql) + "$"
}

const lockPostSQL = `SELECT "id" FROM "posts" WHERE id = \$1 .*FOR UPDATE`

var postCascade = []string{
	`DELETE FROM comment_reactions WHERE comment_id IN (SELECT id FROM comments WHERE post_id = $1)`,
	`DELETE FROM reports WHERE comment_id IN (SELECT id FROM comments WHERE post_id = $1)`,
	`DELETE FROM reports WHERE post_id = $1`,
	`DELETE FROM comments WHERE post_id = $1`,
	`DELETE FROM news_images WHERE post_id = $1`,
	`DELETE FROM posts WHERE id = $1`,
}

func TestPostgresPostRepository_DeletePost(t *testing.T) {
	t.Parallel()

	t.Run("dependents are removed before the post", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockPostSQL).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		for _, sql := range postCascade {
			mock.ExpectExec(exact(sql)).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		err := repositories.NewPostgresPostRepository(db).DeletePost(context.Background(), 7)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing post rolls back", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockPostSQL).WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repositories.NewPostgresPostRepository(db).DeletePost(context.Background(), 7)
		assert.True(t, errors.Is(err, repositories.ErrPostNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign key violation rolls back", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockPostSQL).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		last := len(postCascade) - 1
		for _, sql := range postCascade[:last] {
			mock.ExpectExec(exact(sql)).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectExec(exact(postCascade[last])).WithArgs(7).WillReturnError(&pgconn.PgError{
			Code:           "23503",
			Message:        `update or delete on table "posts" violates foreign key constraint`,
			ConstraintName: "fk_post_bookmarks",
		})
		mock.ExpectRollback()

		err := repositories.NewPostgresPostRepository(db).DeletePost(context.Background(), 7)
		require.Error(t, err)
		assert.True(t, errors.Is(err, repositories.ErrForeignKeyViolation))
		assert.Contains(t, err.Error(), "fk_post_bookmarks")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

const postRowsFrom = `FROM posts p LEFT JOIN interests i ON p.topic_id = i.id LEFT JOIN sub_interests si ON p.sub_topic_id = si.id`

func TestPostgresPostRepository_ListPosts(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(postRowsFrom+` WHERE p.title ILIKE $1 ORDER BY p.created_at DESC, p.id DESC LIMIT $2 OFFSET $3`)).
		WithArgs("%hello%", 10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "topic"}).AddRow(3, "Hello again", "Technology"))

	posts, err := repositories.NewPostgresPostRepository(db).ListPosts(context.Background(), "hello", 3, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, uint(3), posts[0].ID)
	require.NotNil(t, posts[0].Topic)
	assert.Equal(t, "Technology", *posts[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPostRepository_SearchPosts(t *testing.T) {
	t.Parallel()

	t.Run("all fields share one escaped pattern", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		pattern := `%50\%%`
		mock.ExpectQuery(regexp.QuoteMeta(postRowsFrom+` WHERE (p.title ILIKE $1 OR i.name ILIKE $2 OR si.name ILIKE $3) ORDER BY p.created_at DESC, p.id DESC LIMIT $4`)).
			WithArgs(pattern, pattern, pattern, repositories.MaxSearchResults).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

		search, err := repositories.NewPostSearch(repositories.SearchFieldAll, "50%")
		require.NoError(t, err)
		posts, err := repositories.NewPostgresPostRepository(db).SearchPosts(context.Background(), search)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("id search binds the parsed id", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(postRowsFrom+` WHERE p.id = $1 ORDER BY p.created_at DESC, p.id DESC LIMIT $2`)).
			WithArgs(42, repositories.MaxSearchResults).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(42, "Answer"))

		search, err := repositories.NewPostSearch(repositories.SearchFieldID, " 42 ")
		require.NoError(t, err)
		posts, err := repositories.NewPostgresPostRepository(db).SearchPosts(context.Background(), search)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, uint(42), posts[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

const lockCommentSQL = `SELECT .+ FROM "comments" WHERE id = \$1 .*FOR UPDATE`

func TestPostgresCommentRepository_DeleteComment(t *testing.T) {
	t.Parallel()

	t.Run("reply keeps both counters in step", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockCommentSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "parent_id"}).AddRow(11, 1, 10))
		mock.ExpectExec(exact(`DELETE FROM comment_reactions WHERE comment_id = $1`)).
			WithArgs(11).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(exact(`DELETE FROM reports WHERE comment_id = $1`)).
			WithArgs(11).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(exact(`UPDATE comments SET parent_id = NULL WHERE parent_id = $1`)).
			WithArgs(11).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(exact(`DELETE FROM comments WHERE id = $1`)).
			WithArgs(11).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(exact(`UPDATE comments SET reply_count = GREATEST(reply_count - 1, 0) WHERE id = $1`)).
			WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(exact(`UPDATE posts SET comments_count = GREATEST(comments_count - 1, 0) WHERE id = $1`)).
			WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repositories.NewPostgresCommentRepository(db).DeleteComment(context.Background(), 11)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed reply detach rolls back", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockCommentSQL).
			WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "parent_id"}).AddRow(10, 1, nil))
		mock.ExpectExec(exact(`DELETE FROM comment_reactions WHERE comment_id = $1`)).
			WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(exact(`DELETE FROM reports WHERE comment_id = $1`)).
			WithArgs(10).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(exact(`UPDATE comments SET parent_id = NULL WHERE parent_id = $1`)).
			WithArgs(10).WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repositories.NewPostgresCommentRepository(db).DeleteComment(context.Background(), 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "detach replies")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing comment", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockCommentSQL).WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "parent_id"}))
		mock.ExpectRollback()

		err := repositories.NewPostgresCommentRepository(db).DeleteComment(context.Background(), 99)
		assert.True(t, errors.Is(err, repositories.ErrCommentNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresCommentRepository_ListComments(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM comments c INNER JOIN posts p ON c.post_id = p.id INNER JOIN users u ON c.user_id = u.id ORDER BY c.created_at DESC, c.id DESC LIMIT $1`)).
		WithArgs(repositories.MaxCommentResults).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "post_title", "author_name"}).AddRow(12, 2, "Market update", "Admin"))

	comments, err := repositories.NewPostgresCommentRepository(db).ListComments(context.Background())
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Market update", comments[0].PostTitle)
	assert.Equal(t, "Admin", comments[0].AuthorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStatsRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	since := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("active sessions must be open and recent", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectQuery(exact(`SELECT count(*) FROM "sessions" WHERE end_time IS NULL AND last_activity >= $1`)).
			WithArgs(since).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repositories.NewPostgresStatsRepository(db).CountActiveSessions(ctx, since)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("active reports", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectQuery(exact(`SELECT count(*) FROM "reports" WHERE status = $1`)).
			WithArgs("active").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repositories.NewPostgresStatsRepository(db).CountActiveReports(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("average covers ended sessions only", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (end_time - start_time)) / 60), 0) FROM sessions WHERE end_time IS NOT NULL AND start_time >= $1`)).
			WithArgs(since).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(37.5))

		avg, err := repositories.NewPostgresStatsRepository(db).AverageSessionMinutes(ctx, since)
		require.NoError(t, err)
		assert.InDelta(t, 37.5, avg, 0.001)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("daily post counts newest first", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM posts WHERE created_at >= $1 GROUP BY DATE(created_at) ORDER BY DATE(created_at) DESC`)).
			WithArgs(since).
			WillReturnRows(sqlmock.NewRows([]string{"date", "post_count"}).
				AddRow("2026-10-03", 5).
				AddRow("2026-10-02", 1))

		days, err := repositories.NewPostgresStatsRepository(db).DailyPostCounts(ctx, since)
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, "2026-10-03", days[0].Date)
		assert.Equal(t, int64(5), days[0].PostCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row counts", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectQuery(exact(`SELECT count(*) FROM "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		repo := repositories.NewPostgresStatsRepository(db)
		count, err := repo.CountRows(ctx, "users")
		require.NoError(t, err)
		assert.Equal(t, int64(12), count)

		_, err = repo.CountRows(ctx, "users; DROP TABLE users")
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("table lookup", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM information_schema.tables`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		assert.False(t, repositories.NewPostgresStatsRepository(db).HasTable(ctx, "sessions"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserRepository_GetAdminByEmail(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE LOWER(email) = LOWER($1) AND role = $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}))

	_, err := repositories.NewPostgresUserRepository(db).GetAdminByEmail(context.Background(), "member@example.com")
	assert.True(t, errors.Is(err, repositories.ErrUserNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
