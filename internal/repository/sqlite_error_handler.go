package repository

import (
	"errors"
	"fmt"

	apperrors "github.com/mkts/navirad/internal/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// handleSQLiteError converts SQLite-specific errors to appropriate AppError codes
func handleSQLiteError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	// Check if it's a SQLite error
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		// Not a SQLite error, return generic internal error
		return apperrors.Wrap(err, apperrors.CodeInternal, operation)
	}

	code := sqliteErr.Code()

	// The low byte is the primary result code; the rest is the extended code.
	switch code & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return handleConstraintViolation(sqliteErr, code, operation)

	case sqlite3.SQLITE_CANTOPEN,
		sqlite3.SQLITE_NOTADB,
		sqlite3.SQLITE_CORRUPT,
		sqlite3.SQLITE_READONLY,
		sqlite3.SQLITE_IOERR,
		sqlite3.SQLITE_PERM,
		sqlite3.SQLITE_AUTH:
		return apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "database file is not usable")

	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "database is locked by another process")

	case sqlite3.SQLITE_ERROR:
		// Covers missing tables and columns, which means the file is not a
		// Navidrome database (or a much newer one).
		return apperrors.Wrap(err, apperrors.CodeInternal, "database schema error")

	default:
		message := fmt.Sprintf("database error (SQLite code: %d)", code)
		return apperrors.Wrap(err, apperrors.CodeInternal, message)
	}
}

// handleConstraintViolation provides specific error codes for constraint failures
func handleConstraintViolation(err *sqlite.Error, code int, operation string) *apperrors.AppError {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return apperrors.Wrap(err, apperrors.CodeConflict, "station with this stream URL already exists")

	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "required field is missing")

	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "data violates check constraint")

	default:
		return apperrors.Wrap(err, apperrors.CodeConflict, "station conflicts with an existing row")
	}
}
