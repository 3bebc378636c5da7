package repositories

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// SQLSTATE foreign_key_violation
const pgForeignKeyViolation = "23503"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// translateError maps driver errors onto the repository sentinels, keeping the driver error as context.
func translateError(err error, msg string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return errors.Wrapf(ErrForeignKeyViolation, "%s: %s (%s)", msg, pgErr.Message, pgErr.ConstraintName)
	}

	return errors.Wrap(err, msg)
}
