package model

import "time"

// BitrateUnknown marks a station whose bitrate the directory did not report.
const BitrateUnknown = -1

// Station represents one radio station candidate returned by a directory search.
// StreamURL is the only reliable cross-session identity; StationID is whatever
// identifier the directory assigned and may be empty or unstable.
type Station struct {
	StationID   string   `json:"station_id,omitempty"`
	Name        string   `json:"name"`
	StreamURL   string   `json:"stream_url"`
	Homepage    string   `json:"homepage,omitempty"`
	Country     string   `json:"country,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	BitrateKbps int      `json:"bitrate_kbps"`
	Votes       int      `json:"votes"`
}

// RadioEntry represents a persisted row in the Navidrome radio table.
// Rows are uniquely keyed by StreamURL within one database.
type RadioEntry struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	StreamURL   string    `json:"stream_url" db:"stream_url"`
	HomePageURL string    `json:"home_page_url" db:"home_page_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// SkipReason classifies why a station in an import batch was not added.
type SkipReason string

const (
	SkipDuplicate SkipReason = "duplicate"
	SkipError     SkipReason = "error"
)

// SkippedStation records one station that an import batch did not add.
type SkippedStation struct {
	Name   string     `json:"name"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}

// ImportReport summarizes the per-station outcome of one import batch.
type ImportReport struct {
	Added            int              `json:"added"`
	SkippedDuplicate int              `json:"skipped_duplicate"`
	SkippedError     int              `json:"skipped_error"`
	Skipped          []SkippedStation `json:"skipped,omitempty"`
}

// Total returns how many stations the batch contained.
func (r *ImportReport) Total() int {
	return r.Added + r.SkippedDuplicate + r.SkippedError
}
