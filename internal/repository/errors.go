package repository

import (
	"errors"
	"fmt"

	"board/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the store maps to domain errors.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// translatePostError maps store failures on a post (or its children) to domain
// errors: a missing row or a broken post reference becomes PostNotFound.
func translatePostError(err error, postID uint, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewPostNotFoundError(postID)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return models.NewPostNotFoundError(postID)
		case pgUniqueViolation:
			return fmt.Errorf("%s post %d: concurrent modification (%s): %w", op, postID, pgErr.ConstraintName, err)
		}
	}
	return fmt.Errorf("%s post %d: %w", op, postID, err)
}
