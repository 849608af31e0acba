// internal/workers/recompute/handler.go
package recompute

import (
	"context"
	"time"

	"match-workers/internal/common/errors"
	"match-workers/internal/common/metrics"
	"match-workers/internal/models"
)

// Run executes one invocation: claim a batch, process items until the time
// budget runs out, release whatever was claimed but never started. One bad
// item never sinks the batch.
func (w *Worker) Run(ctx context.Context) (Summary, error) {
	start := w.now().UTC()
	deadline := start.Add(w.cfg.Budget)
	var summary Summary

	if depth, err := w.queue.CountPending(ctx); err == nil {
		metrics.QueueDepth.Set(float64(depth))
	}

	items, err := w.queue.ClaimBatch(ctx, w.cfg.BatchSize, start)
	if err != nil {
		return summary, err
	}
	summary.Claimed = len(items)
	if len(items) == 0 {
		summary.Elapsed = w.now().UTC().Sub(start)
		return summary, nil
	}

	for i, item := range items {
		if w.now().UTC().After(deadline) || ctx.Err() != nil {
			released := releaseIDs(items[i:])
			if err := w.queue.ReleaseItems(ctx, released); err != nil {
				w.log.Error("failed to release unprocessed queue items", map[string]interface{}{
					"count": len(released),
					"error": err.Error(),
				})
			} else {
				summary.Released = len(released)
				metrics.QueueItemsReleased.Add(float64(len(released)))
			}
			break
		}

		summary.Processed++
		pairs, err := w.processItem(ctx, item)
		summary.PairsScored += pairs

		if err != nil {
			summary.Failed++
			w.settleFailure(ctx, item, err)
			continue
		}

		summary.Succeeded++
		if err := w.queue.CompleteItem(ctx, item.ID); err != nil {
			w.log.Error("failed to mark queue item done", map[string]interface{}{
				"itemId": item.ID,
				"error":  err.Error(),
			})
		}
		metrics.QueueItemsProcessed.WithLabelValues(item.EntityType, "success").Inc()
	}

	summary.Elapsed = w.now().UTC().Sub(start)
	w.log.Info("recompute invocation finished", map[string]interface{}{
		"claimed":     summary.Claimed,
		"processed":   summary.Processed,
		"succeeded":   summary.Succeeded,
		"failed":      summary.Failed,
		"released":    summary.Released,
		"pairsScored": summary.PairsScored,
		"elapsedMs":   summary.Elapsed.Milliseconds(),
	})
	return summary, nil
}

// settleFailure routes one failed item: retryable errors go back to pending
// with backoff, data errors go terminal immediately by zeroing the attempt
// ceiling.
func (w *Worker) settleFailure(ctx context.Context, item models.QueueItem, cause error) {
	stdErr := errors.AsStandardError(cause)
	maxAttempts := w.cfg.MaxAttempts
	if !stdErr.Retryable {
		maxAttempts = 0
	}

	w.log.Warn("queue item failed", map[string]interface{}{
		"itemId":     item.ID,
		"entityType": item.EntityType,
		"entityId":   item.EntityID,
		"attempts":   item.Attempts + 1,
		"code":       string(stdErr.Code),
		"error":      stdErr.Error(),
	})

	if err := w.queue.FailItem(ctx, item, stdErr.Error(), maxAttempts, w.cfg.BackoffUnit, w.now().UTC()); err != nil {
		w.log.Error("failed to record queue item failure", map[string]interface{}{
			"itemId": item.ID,
			"error":  err.Error(),
		})
	}
	metrics.QueueItemsProcessed.WithLabelValues(item.EntityType, "failure").Inc()
}

func releaseIDs(items []models.QueueItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// windowStart is the oldest profile update a dirty job fans out to.
func (w *Worker) windowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -w.cfg.WindowDays)
}
