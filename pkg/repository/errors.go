package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

// MapError translates database errors to domain errors.
// sql.ErrNoRows and malformed identifiers (22P02) become notFoundErr;
// a unique violation (23505) becomes duplicateErr. Other errors pass through.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return duplicateErr
		case pgInvalidTextRepresentation:
			return notFoundErr
		}
	}

	return err
}
