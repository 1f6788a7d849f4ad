package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicate signals a unique constraint violation (username,
	// email, slug, one review per author per title).
	ErrDuplicate = errors.New("duplicate value violates a unique constraint")

	// ErrProtected signals a delete blocked by a RESTRICT foreign key
	// (category with titles, title with reviews).
	ErrProtected = errors.New("row is referenced by other rows")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps postgres constraint failures onto the
// repository sentinel errors so services never see driver types.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrProtected
		}
	}
	return err
}
