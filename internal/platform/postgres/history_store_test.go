package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryStore(t *testing.T) (*PostgresHistoryStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresHistoryStore(db, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func TestHistoryStoreListRange(t *testing.T) {
	s, mock := newHistoryStore(t)

	userID := uuid.New()
	contentID := uuid.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "content_id", "outcome", "completed_at", "time_spent_seconds",
	}).
		AddRow(uuid.New(), userID, contentID, "remembered", from.Add(24*time.Hour), 30).
		AddRow(uuid.New(), userID, contentID, "forgot", from.Add(48*time.Hour), nil)

	mock.ExpectQuery("FROM review_history").
		WithArgs(userID, from, to).
		WillReturnRows(rows)

	entries, err := s.ListRange(context.Background(), userID, from, to)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].TimeSpentSeconds)
	assert.Equal(t, 30, *entries[0].TimeSpentSeconds)
	assert.Nil(t, entries[1].TimeSpentSeconds, "NULL time spent should scan to nil")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStoreListRangeEmpty(t *testing.T) {
	s, mock := newHistoryStore(t)

	userID := uuid.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 10)

	mock.ExpectQuery("FROM review_history").
		WithArgs(userID, from, to).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "content_id", "outcome", "completed_at", "time_spent_seconds",
		}))

	entries, err := s.ListRange(context.Background(), userID, from, to)

	require.NoError(t, err)
	assert.NotNil(t, entries, "empty history should be a slice, not nil")
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryStoreCountSince(t *testing.T) {
	s, mock := newHistoryStore(t)

	userID := uuid.New()
	contentID := uuid.New()
	since := time.Date(2026, 3, 10, 14, 59, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(userID, contentID, since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := s.CountSince(context.Background(), userID, contentID, since)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
