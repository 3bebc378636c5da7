package repositories

import (
	"context"

	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error, "create user")
}

// GetUserByEmail retrieves a user of any role by email
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, r.db.Where("LOWER(email) = LOWER(?)", email))
}

// GetAdminByEmail retrieves an admin account by email
func (r *PostgresUserRepository) GetAdminByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, r.db.Where("LOWER(email) = LOWER(?) AND role = ?", email, models.RoleAdmin))
}

func (r *PostgresUserRepository) findOne(ctx context.Context, q *gorm.DB) (*models.User, error) {
	var user models.User
	if err := q.WithContext(ctx).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, translateError(err, "find user")
	}
	return &user, nil
}
