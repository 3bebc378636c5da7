package repositories

import (
	"context"

	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxCommentResults caps the comment listing
const MaxCommentResults = 100

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListComments(ctx context.Context) ([]models.CommentRow, error)
	DeleteComment(ctx context.Context, id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// ListComments returns the newest comments with their post title and author name
func (r *PostgresCommentRepository) ListComments(ctx context.Context) ([]models.CommentRow, error) {
	comments := []models.CommentRow{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.user_id,
			c.post_id,
			c.reply_count,
			c.parent_id,
			c.content,
			c.created_at,
			c.updated_at,
			c.is_flagged,
			p.title AS post_title,
			u.name AS author_name
		FROM comments c
		INNER JOIN posts p ON c.post_id = p.id
		INNER JOIN users u ON c.user_id = u.id
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ?`, MaxCommentResults).Scan(&comments).Error
	if err != nil {
		return nil, translateError(err, "list comments")
	}
	return comments, nil
}

// DeleteComment removes a comment and its reactions and reports in one transaction,
// keeping the parent post's and parent comment's counters in step.
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "post_id", "parent_id").
			Where("id = ?", id).
			Take(&comment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return translateError(err, "lock comment")
		}

		if err := tx.Exec(`DELETE FROM comment_reactions WHERE comment_id = ?`, id).Error; err != nil {
			return translateError(err, "delete comment reactions")
		}
		if err := tx.Exec(`DELETE FROM reports WHERE comment_id = ?`, id).Error; err != nil {
			return translateError(err, "delete comment reports")
		}
		// replies stay visible as top-level comments
		if err := tx.Exec(`UPDATE comments SET parent_id = NULL WHERE parent_id = ?`, id).Error; err != nil {
			return translateError(err, "detach replies")
		}
		if err := tx.Exec(`DELETE FROM comments WHERE id = ?`, id).Error; err != nil {
			return translateError(err, "delete comment")
		}

		if comment.ParentID != nil {
			err := tx.Exec(`UPDATE comments SET reply_count = GREATEST(reply_count - 1, 0) WHERE id = ?`, *comment.ParentID).Error
			if err != nil {
				return translateError(err, "decrement reply count")
			}
		}
		err = tx.Exec(`UPDATE posts SET comments_count = GREATEST(comments_count - 1, 0) WHERE id = ?`, comment.PostID).Error
		return translateError(err, "decrement comments count")
	})
}
