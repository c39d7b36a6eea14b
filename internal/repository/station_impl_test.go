package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	apperrors "github.com/mkts/navirad/internal/errors"
	"github.com/mkts/navirad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (StationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStationRepository(db), mock
}

func expectExists(mock sqlmock.Sqlmock, url string, exists bool) {
	rows := sqlmock.NewRows([]string{"1"})
	if exists {
		rows.AddRow(1)
	}
	mock.ExpectQuery("SELECT 1 FROM radio").WithArgs(url).WillReturnRows(rows)
}

func expectInsert(mock sqlmock.Sqlmock, station model.Station) *sqlmock.ExpectedExec {
	return mock.ExpectExec("INSERT INTO radio").
		WithArgs(sqlmock.AnyArg(), station.Name, station.StreamURL, station.Homepage,
			sqlmock.AnyArg(), sqlmock.AnyArg())
}

func TestStationRepository_Exists(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(mock sqlmock.Sqlmock)
		want        bool
		wantErrCode string
	}{
		{
			name: "station present",
			setup: func(mock sqlmock.Sqlmock) {
				expectExists(mock, "http://stream.example/1", true)
			},
			want: true,
		},
		{
			name: "station absent",
			setup: func(mock sqlmock.Sqlmock) {
				expectExists(mock, "http://stream.example/1", false)
			},
			want: false,
		},
		{
			name: "query failure is a storage problem",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT 1 FROM radio").
					WithArgs("http://stream.example/1").
					WillReturnError(assert.AnError)
			},
			wantErrCode: apperrors.CodeStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := repo.Exists(ctx, "http://stream.example/1")
			if tt.wantErrCode != "" {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, tt.wantErrCode))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStationRepository_ImportBatch_AddsNewStations(t *testing.T) {
	repo, mock := newMockRepo(t)

	stations := []model.Station{
		{Name: "Jazz FM", StreamURL: "http://stream.example/jazz", Homepage: "http://jazz.example"},
		{Name: "Rock One", StreamURL: "http://stream.example/rock"},
	}
	for _, s := range stations {
		expectExists(mock, s.StreamURL, false)
		expectInsert(mock, s).WillReturnResult(sqlmock.NewResult(0, 1))
	}

	report, err := repo.ImportBatch(context.Background(), stations)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 0, report.SkippedDuplicate)
	assert.Equal(t, 0, report.SkippedError)
	assert.Empty(t, report.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_ImportBatch_SkipsDuplicates(t *testing.T) {
	repo, mock := newMockRepo(t)

	station := model.Station{Name: "Jazz FM", StreamURL: "http://stream.example/jazz"}

	// First import inserts, second finds the row and skips
	expectExists(mock, station.StreamURL, false)
	expectInsert(mock, station).WillReturnResult(sqlmock.NewResult(0, 1))

	report, err := repo.ImportBatch(context.Background(), []model.Station{station})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)

	expectExists(mock, station.StreamURL, true)

	report, err = repo.ImportBatch(context.Background(), []model.Station{station})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Added)
	assert.Equal(t, 1, report.SkippedDuplicate)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "Jazz FM", report.Skipped[0].Name)
	assert.Equal(t, model.SkipDuplicate, report.Skipped[0].Reason)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_ImportBatch_PartialFailureIsolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	stations := []model.Station{
		{Name: "First", StreamURL: "http://stream.example/1"},
		{Name: "Second", StreamURL: "http://stream.example/2"},
		{Name: "Third", StreamURL: "http://stream.example/3"},
	}

	expectExists(mock, stations[0].StreamURL, false)
	expectInsert(mock, stations[0]).WillReturnResult(sqlmock.NewResult(0, 1))

	// The middle insert fails; the batch must carry on
	expectExists(mock, stations[1].StreamURL, false)
	expectInsert(mock, stations[1]).WillReturnError(assert.AnError)

	expectExists(mock, stations[2].StreamURL, false)
	expectInsert(mock, stations[2]).WillReturnResult(sqlmock.NewResult(0, 1))

	report, err := repo.ImportBatch(context.Background(), stations)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 0, report.SkippedDuplicate)
	assert.Equal(t, 1, report.SkippedError)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "Second", report.Skipped[0].Name)
	assert.Equal(t, model.SkipError, report.Skipped[0].Reason)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_ImportBatch_StorageUnavailableAbortsBatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	stations := []model.Station{
		{Name: "First", StreamURL: "http://stream.example/1"},
		{Name: "Second", StreamURL: "http://stream.example/2"},
	}

	// The very first existence check fails: the whole call must fail rather
	// than reporting every record as a per-row error.
	mock.ExpectQuery("SELECT 1 FROM radio").
		WithArgs(stations[0].StreamURL).
		WillReturnError(assert.AnError)

	report, err := repo.ImportBatch(context.Background(), stations)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStorageUnavailable))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_ImportBatch_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	report, err := repo.ImportBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_ListExisting(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "name", "stream_url", "home_page_url", "created_at", "updated_at"}).
		AddRow("aaa", "Ambient One", "http://stream.example/ambient", "", "2024-03-01 10:00:00.000+00:00", "2024-03-01 10:00:00.000+00:00").
		AddRow("bbb", "Jazz FM", "http://stream.example/jazz", "http://jazz.example", "2024-03-02 11:30:00.000+00:00", "2024-03-02 11:30:00.000+00:00")
	mock.ExpectQuery("SELECT id, name, stream_url").WillReturnRows(rows)

	entries, err := repo.ListExisting(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "Ambient One", entries[0].Name)
	assert.Equal(t, "Jazz FM", entries[1].Name)
	assert.Equal(t, "http://jazz.example", entries[1].HomePageURL)
	assert.Equal(t, 2024, entries[0].CreatedAt.Year())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationRepository_ListExisting_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, name, stream_url").WillReturnError(assert.AnError)

	_, err := repo.ListExisting(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStorageUnavailable))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateID_NavidromeFormat(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	id := generateID("Jazz FM", now)
	assert.Len(t, id, 22)
	assert.NotContains(t, id, "+")
	assert.NotContains(t, id, "/")
	assert.NotContains(t, id, "=")

	// Same name at a different instant gets a different ID
	other := generateID("Jazz FM", now.Add(time.Millisecond))
	assert.NotEqual(t, id, other)
}
