// internal/store/scores.go
package store

import (
	"context"

	"github.com/lib/pq"

	"match-workers/internal/common/errors"
	"match-workers/internal/models"
)

// UpsertDriverJobScore writes one driver->job score row, overwriting any
// existing row for the pair. Recomputing an unchanged pair is a no-op from
// the reader's point of view.
func (s *Store) UpsertDriverJobScore(ctx context.Context, score models.DriverJobScore) error {
	query := `
		INSERT INTO driver_job_match_scores
			(driver_id, job_id, overall_score, rules_score, semantic_score,
			 score_breakdown, top_reasons, cautions, degraded_mode, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (driver_id, job_id) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			rules_score = EXCLUDED.rules_score,
			semantic_score = EXCLUDED.semantic_score,
			score_breakdown = EXCLUDED.score_breakdown,
			top_reasons = EXCLUDED.top_reasons,
			cautions = EXCLUDED.cautions,
			degraded_mode = EXCLUDED.degraded_mode,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		score.DriverID, score.JobID, score.OverallScore, score.RulesScore,
		score.SemanticScore, score.Breakdown, pq.Array(score.TopReasons),
		pq.Array(score.Cautions), score.DegradedMode, score.UpdatedAt,
	)
	if err != nil {
		return errors.NewScoreUpsertFailedError("driver_job_match_scores", err)
	}
	return nil
}

// UpsertCompanyDriverScore writes one company->candidate score row, keyed by
// (company_id, job_id, candidate_source, candidate_id).
func (s *Store) UpsertCompanyDriverScore(ctx context.Context, score models.CompanyDriverScore) error {
	query := `
		INSERT INTO company_driver_match_scores
			(company_id, job_id, candidate_source, candidate_id, overall_score,
			 rules_score, semantic_score, score_breakdown, top_reasons, cautions,
			 degraded_mode, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (company_id, job_id, candidate_source, candidate_id) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			rules_score = EXCLUDED.rules_score,
			semantic_score = EXCLUDED.semantic_score,
			score_breakdown = EXCLUDED.score_breakdown,
			top_reasons = EXCLUDED.top_reasons,
			cautions = EXCLUDED.cautions,
			degraded_mode = EXCLUDED.degraded_mode,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		score.CompanyID, score.JobID, score.CandidateSource, score.CandidateID,
		score.OverallScore, score.RulesScore, score.SemanticScore,
		score.Breakdown, pq.Array(score.TopReasons), pq.Array(score.Cautions),
		score.DegradedMode, score.UpdatedAt,
	)
	if err != nil {
		return errors.NewScoreUpsertFailedError("company_driver_match_scores", err)
	}
	return nil
}
