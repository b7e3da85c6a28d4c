package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrEmailTaken is returned when an insert hits the unique email index.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAdminExists is returned when a second admin row is inserted.
	ErrAdminExists = errors.New("admin already exists")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}
