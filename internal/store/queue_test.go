package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-workers/internal/common/errors"
	"match-workers/internal/common/logger"
	"match-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, logger.NewNoOpLogger()), mock
}

// ==========================
// Claim Tests
// ==========================

func TestClaimBatch(t *testing.T) {
	s, mock := newTestStore(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "entity_type", "entity_id", "company_id", "status", "attempts", "scheduled_at",
	}).
		AddRow("q-1", models.EntityTypeDriverProfile, "drv-1", "", models.QueueStatusProcessing, 0, now).
		AddRow("q-2", models.EntityTypeLead, "lead-1", "co-1", models.QueueStatusProcessing, 1, now)

	mock.ExpectQuery(`UPDATE match_recompute_queue`).
		WithArgs(models.QueueStatusProcessing, now, models.QueueStatusPending, 20).
		WillReturnRows(rows)

	items, err := s.ClaimBatch(context.Background(), 20, now)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "q-1", items[0].ID)
	assert.Equal(t, models.EntityTypeDriverProfile, items[0].EntityType)
	assert.Equal(t, "co-1", items[1].CompanyID)
	assert.Equal(t, 1, items[1].Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimBatch_EmptyQueue(t *testing.T) {
	s, mock := newTestStore(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE match_recompute_queue`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "entity_type", "entity_id", "company_id", "status", "attempts", "scheduled_at",
		}))

	items, err := s.ClaimBatch(context.Background(), 20, now)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClaimBatch_QueryError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`UPDATE match_recompute_queue`).WillReturnError(assert.AnError)

	_, err := s.ClaimBatch(context.Background(), 20, time.Now())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeQueueClaimFailed, errors.AsStandardError(err).Code)
}

// ==========================
// Settlement Tests
// ==========================

func TestCompleteItem(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec(`UPDATE match_recompute_queue SET status`).
		WithArgs(models.QueueStatusDone, "q-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.CompleteItem(context.Background(), "q-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFailItem_RetriesWithBackoff(t *testing.T) {
	s, mock := newTestStore(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	item := models.QueueItem{ID: "q-1", Attempts: 0}

	// First failure: attempts becomes 1, rescheduled 1 backoff unit out.
	mock.ExpectExec(`UPDATE match_recompute_queue SET status`).
		WithArgs(models.QueueStatusPending, 1, "boom", now.Add(time.Minute), "q-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.FailItem(context.Background(), item, "boom", 3, time.Minute, now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFailItem_SecondRetryBacksOffFurther(t *testing.T) {
	s, mock := newTestStore(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	item := models.QueueItem{ID: "q-1", Attempts: 1}

	mock.ExpectExec(`UPDATE match_recompute_queue SET status`).
		WithArgs(models.QueueStatusPending, 2, "boom", now.Add(2*time.Minute), "q-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.FailItem(context.Background(), item, "boom", 3, time.Minute, now))
}

func TestFailItem_TerminalAtAttemptCeiling(t *testing.T) {
	s, mock := newTestStore(t)
	now := time.Now()
	item := models.QueueItem{ID: "q-1", Attempts: 2}

	mock.ExpectExec(`UPDATE match_recompute_queue SET status`).
		WithArgs(models.QueueStatusError, 3, "boom", "q-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.FailItem(context.Background(), item, "boom", 3, time.Minute, now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseItems(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec(`UPDATE match_recompute_queue SET status`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, s.ReleaseItems(context.Background(), []string{"q-1", "q-2"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseItems_NoopOnEmpty(t *testing.T) {
	s, mock := newTestStore(t)
	require.NoError(t, s.ReleaseItems(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountPending(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM match_recompute_queue`).
		WithArgs(models.QueueStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := s.CountPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestEnqueue(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec(`INSERT INTO match_recompute_queue`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Enqueue(context.Background(), models.EntityTypeJob, "job-1", "co-1")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
