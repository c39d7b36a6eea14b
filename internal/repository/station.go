package repository

import (
	"context"
	"database/sql"

	"github.com/mkts/navirad/internal/model"
)

// DB is the subset of *sql.DB the repository uses, abstracted so tests can
// substitute a mock connection.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// StationRepository defines operations for radio station persistence.
//
// Duplicate detection is keyed on stream URL, never on display name: names
// collide across countries and providers, while the stream endpoint is the
// actual resource being added. Exists always consults the database, since
// other tools may have modified it between sessions.
type StationRepository interface {
	// Exists reports whether a station with this stream URL is already stored.
	Exists(ctx context.Context, streamURL string) (bool, error)

	// ImportBatch imports the records in the given order. One bad record never
	// blocks the rest: per-record insert failures are recorded in the report
	// and the batch continues. Only a structural storage failure (database
	// file missing, locked or corrupt) fails the whole call, with
	// STORAGE_UNAVAILABLE. Importing the same batch twice adds zero new rows
	// the second time.
	ImportBatch(ctx context.Context, records []model.Station) (*model.ImportReport, error)

	// ListExisting returns all stored stations ordered by name.
	ListExisting(ctx context.Context) ([]model.RadioEntry, error)
}
