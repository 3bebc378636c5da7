package repositories

import (
	"context"

	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	ListPosts(ctx context.Context, search string, page, limit int) ([]models.PostRow, error)
	SearchPosts(ctx context.Context, search PostSearch) ([]models.PostRow, error)
	DeletePost(ctx context.Context, id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

const postRowSelect = `
	SELECT DISTINCT
		p.id,
		p.title,
		p.content,
		p.region_of_interest,
		p.image_url,
		p.views_count,
		p.comments_count,
		p.categories,
		p.created_at,
		p.updated_at,
		i.name AS topic,
		si.name AS sub_topic,
		p.trend_score,
		p.tagline,
		p.is_flagged,
		p.story_date,
		p.decayed_trend_score
	FROM posts p
	LEFT JOIN interests i ON p.topic_id = i.id
	LEFT JOIN sub_interests si ON p.sub_topic_id = si.id`

const postRowOrder = ` ORDER BY p.created_at DESC, p.id DESC`

// ListPosts returns one page of posts, newest first, optionally filtered by title
func (r *PostgresPostRepository) ListPosts(ctx context.Context, search string, page, limit int) ([]models.PostRow, error) {
	query := postRowSelect
	var args []interface{}

	if search != "" {
		query += ` WHERE p.title ILIKE ?`
		args = append(args, containsPattern(search))
	}

	query += postRowOrder + ` LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	posts := []models.PostRow{}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&posts).Error; err != nil {
		return nil, translateError(err, "list posts")
	}
	return posts, nil
}

// SearchPosts returns up to MaxSearchResults posts matching the search, newest first
func (r *PostgresPostRepository) SearchPosts(ctx context.Context, search PostSearch) ([]models.PostRow, error) {
	cond, args := search.Condition()
	query := postRowSelect + ` WHERE ` + cond + postRowOrder + ` LIMIT ?`
	args = append(args, MaxSearchResults)

	posts := []models.PostRow{}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&posts).Error; err != nil {
		return nil, translateError(err, "search posts")
	}
	return posts, nil
}

// cascade statements run in order inside the delete transaction
var postDeleteCascade = []struct {
	target string
	sql    string
}{
	{"comment reactions", `DELETE FROM comment_reactions WHERE comment_id IN (SELECT id FROM comments WHERE post_id = ?)`},
	{"comment reports", `DELETE FROM reports WHERE comment_id IN (SELECT id FROM comments WHERE post_id = ?)`},
	{"post reports", `DELETE FROM reports WHERE post_id = ?`},
	{"comments", `DELETE FROM comments WHERE post_id = ?`},
	{"news images", `DELETE FROM news_images WHERE post_id = ?`},
	{"post", `DELETE FROM posts WHERE id = ?`},
}

// DeletePost removes a post and every row depending on it in one transaction
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", id).
			Take(&post).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return translateError(err, "lock post")
		}

		for _, step := range postDeleteCascade {
			if err := tx.Exec(step.sql, id).Error; err != nil {
				return translateError(err, "delete "+step.target)
			}
		}
		return nil
	})
}
