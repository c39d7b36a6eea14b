package repository

import (
	"context"
	"crypto/md5"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/mkts/navirad/internal/errors"
	"github.com/mkts/navirad/internal/logger"
	"github.com/mkts/navirad/internal/model"
)

// Timestamp layout Navidrome writes into the radio table.
const timestampLayout = "2006-01-02 15:04:05.000-07:00"

// stationRepository implements StationRepository against the Navidrome SQLite
// radio table. The table's schema is owned by Navidrome; this repository only
// touches the documented minimal column set.
type stationRepository struct {
	db  DB
	now func() time.Time
}

// NewStationRepository creates a new instance of StationRepository
func NewStationRepository(db DB) StationRepository {
	return &stationRepository{
		db:  db,
		now: time.Now,
	}
}

// Exists reports whether a station with this stream URL is already stored
func (r *stationRepository) Exists(ctx context.Context, streamURL string) (bool, error) {
	query := "SELECT 1 FROM radio WHERE stream_url = ? LIMIT 1"
	row := r.db.QueryRowContext(ctx, query, streamURL)

	var one int
	err := row.Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		// A failing existence query means the database itself is unreadable,
		// not that anything is wrong with this station.
		return false, apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "failed to query radio table")
	}

	return true, nil
}

// ImportBatch imports the records in order, continuing past per-record failures
func (r *stationRepository) ImportBatch(ctx context.Context, records []model.Station) (*model.ImportReport, error) {
	report := &model.ImportReport{}
	log := logger.WithComponent("repository")

	for _, record := range records {
		exists, err := r.Exists(ctx, record.StreamURL)
		if err != nil {
			// Structural problem; marking every remaining record as a
			// per-row error would just hide it.
			return nil, err
		}

		if exists {
			report.SkippedDuplicate++
			report.Skipped = append(report.Skipped, model.SkippedStation{
				Name:   record.Name,
				Reason: model.SkipDuplicate,
				Detail: "stream URL already in database",
			})
			continue
		}

		if err := r.insert(ctx, record); err != nil {
			if apperrors.HasCode(err, apperrors.CodeStorageUnavailable) {
				return nil, err
			}
			if apperrors.HasCode(err, apperrors.CodeConflict) {
				// Another writer inserted the same URL between our existence
				// check and the insert.
				report.SkippedDuplicate++
				report.Skipped = append(report.Skipped, model.SkippedStation{
					Name:   record.Name,
					Reason: model.SkipDuplicate,
					Detail: "stream URL already in database",
				})
				continue
			}

			log.Warnf("failed to insert station %q: %v", record.Name, err)
			report.SkippedError++
			report.Skipped = append(report.Skipped, model.SkippedStation{
				Name:   record.Name,
				Reason: model.SkipError,
				Detail: err.Error(),
			})
			continue
		}

		report.Added++
	}

	return report, nil
}

// insert writes one new radio row derived from the record
func (r *stationRepository) insert(ctx context.Context, record model.Station) error {
	now := r.now().UTC()
	timestamp := now.Format(timestampLayout)

	query := "INSERT INTO radio (id, name, stream_url, home_page_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		generateID(record.Name, now),
		record.Name,
		record.StreamURL,
		record.Homepage,
		timestamp,
		timestamp,
	)
	if err != nil {
		return handleSQLiteError(err, fmt.Sprintf("failed to insert station %q", record.Name))
	}

	return nil
}

// ListExisting returns all stored stations ordered by name
func (r *stationRepository) ListExisting(ctx context.Context) ([]model.RadioEntry, error) {
	query := "SELECT id, name, stream_url, home_page_url, created_at, updated_at FROM radio ORDER BY name"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "failed to list stations")
	}
	defer rows.Close()

	var entries []model.RadioEntry
	for rows.Next() {
		var (
			entry     model.RadioEntry
			homepage  sql.NullString
			createdAt sql.NullString
			updatedAt sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.StreamURL, &homepage, &createdAt, &updatedAt); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to scan radio row")
		}
		entry.HomePageURL = homepage.String
		entry.CreatedAt = parseTimestamp(createdAt.String)
		entry.UpdatedAt = parseTimestamp(updatedAt.String)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to iterate radio rows")
	}

	return entries, nil
}

// generateID produces a Navidrome-style identifier: the url-safe base64 of an
// MD5 over name plus creation time, 22 characters, no padding.
func generateID(name string, now time.Time) string {
	sum := md5.Sum([]byte(name + now.Format(time.RFC3339Nano)))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// parseTimestamp reads the timestamp formats found in Navidrome databases.
// Rows written by other tools may carry slightly different layouts; an
// unparseable value degrades to the zero time rather than failing the listing.
func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		timestampLayout,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	logger.WithComponent("repository").Debugf("unparseable timestamp %q", raw)
	return time.Time{}
}
