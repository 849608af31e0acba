// internal/store/queue.go
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"match-workers/internal/common/errors"
	"match-workers/internal/models"
)

// Enqueue inserts a pending recompute item for a dirty entity. Duplicate
// pending items for the same entity are tolerated; scoring is idempotent.
func (s *Store) Enqueue(ctx context.Context, entityType, entityID, companyID string) (string, error) {
	query := `
		INSERT INTO match_recompute_queue
			(id, entity_type, entity_id, company_id, status, attempts, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6)`

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, query,
		id, entityType, entityID, companyID, models.QueueStatusPending, time.Now().UTC(),
	)
	if err != nil {
		return "", errors.NewQueueUpdateFailedError(id, err)
	}
	return id, nil
}

// ClaimBatch atomically moves up to limit due pending items to processing and
// returns them. FOR UPDATE SKIP LOCKED keeps concurrent workers from claiming
// the same rows.
func (s *Store) ClaimBatch(ctx context.Context, limit int, now time.Time) ([]models.QueueItem, error) {
	query := `
		UPDATE match_recompute_queue
		SET status = $1, claimed_at = $2
		WHERE id IN (
			SELECT id FROM match_recompute_queue
			WHERE status = $3 AND scheduled_at <= $2
			ORDER BY scheduled_at ASC
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, entity_type, entity_id, company_id, status, attempts, scheduled_at`

	rows, err := s.db.QueryContext(ctx, query,
		models.QueueStatusProcessing, now, models.QueueStatusPending, limit,
	)
	if err != nil {
		return nil, errors.NewQueueClaimFailedError(err)
	}
	defer rows.Close()

	var items []models.QueueItem
	for rows.Next() {
		var item models.QueueItem
		if err := rows.Scan(
			&item.ID, &item.EntityType, &item.EntityID, &item.CompanyID,
			&item.Status, &item.Attempts, &item.ScheduledAt,
		); err != nil {
			return nil, errors.NewQueueClaimFailedError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueueClaimFailedError(err)
	}
	return items, nil
}

// CompleteItem marks one processed item done.
func (s *Store) CompleteItem(ctx context.Context, itemID string) error {
	query := `UPDATE match_recompute_queue SET status = $1, last_error = '' WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, models.QueueStatusDone, itemID); err != nil {
		return errors.NewQueueUpdateFailedError(itemID, err)
	}
	return nil
}

// FailItem records a processing failure. Below the attempt ceiling the item
// goes back to pending with a linear backoff (attempts * backoffUnit); at the
// ceiling it lands in the terminal error state.
func (s *Store) FailItem(ctx context.Context, item models.QueueItem, cause string, maxAttempts int, backoffUnit time.Duration, now time.Time) error {
	attempts := item.Attempts + 1

	if attempts >= maxAttempts {
		query := `UPDATE match_recompute_queue SET status = $1, attempts = $2, last_error = $3 WHERE id = $4`
		if _, err := s.db.ExecContext(ctx, query, models.QueueStatusError, attempts, cause, item.ID); err != nil {
			return errors.NewQueueUpdateFailedError(item.ID, err)
		}
		return nil
	}

	retryAt := now.Add(time.Duration(attempts) * backoffUnit)
	query := `UPDATE match_recompute_queue SET status = $1, attempts = $2, last_error = $3, scheduled_at = $4 WHERE id = $5`
	if _, err := s.db.ExecContext(ctx, query, models.QueueStatusPending, attempts, cause, retryAt, item.ID); err != nil {
		return errors.NewQueueUpdateFailedError(item.ID, err)
	}
	return nil
}

// ReleaseItems puts claimed-but-unprocessed items back to pending without an
// attempt penalty. Used when the invocation budget runs out mid-batch.
func (s *Store) ReleaseItems(ctx context.Context, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	query := `UPDATE match_recompute_queue SET status = $1 WHERE id = ANY($2)`

	if _, err := s.db.ExecContext(ctx, query, models.QueueStatusPending, pq.Array(itemIDs)); err != nil {
		return errors.NewQueueUpdateFailedError(itemIDs[0], err)
	}
	return nil
}

// CountPending returns the pending queue depth for the gauge.
func (s *Store) CountPending(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM match_recompute_queue WHERE status = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, models.QueueStatusPending).Scan(&count); err != nil {
		return 0, errors.NewQueryExecutionFailedError("CountPending", err)
	}
	return count, nil
}
