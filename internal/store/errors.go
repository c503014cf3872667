package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrSlugTaken is returned when a page slug collides with another page.
	ErrSlugTaken = errors.New("slug already in use")

	// ErrSingletonExists is returned when a second site settings or
	// donation info row would be created.
	ErrSingletonExists = errors.New("only one record of this kind may exist")

	// ErrParentCycle is returned when a page would become its own ancestor.
	ErrParentCycle = errors.New("page hierarchy would contain a cycle")

	// ErrInvalidReference is returned when a foreign key points nowhere,
	// e.g. a photo for a deleted album or a page with an unknown parent.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type scanner interface {
	Scan(dest ...any) error
}

func pgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

// isUniqueViolation reports whether err is a unique violation on the named
// constraint. An empty name matches any unique constraint.
func isUniqueViolation(err error, constraint string) bool {
	pgErr, ok := pgError(err, pgUniqueViolation)
	return ok && (constraint == "" || pgErr.ConstraintName == constraint)
}

func isForeignKeyViolation(err error) bool {
	_, ok := pgError(err, pgForeignKeyViolation)
	return ok
}

// rowsAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func rowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
