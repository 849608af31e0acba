// internal/matching/engine/engine.go

// Package engine scores one pair end to end: rule components, semantic
// layer, composition and persistence. Both the queue worker and the nightly
// backfill funnel every pair through here.
package engine

import (
	"context"
	"encoding/json"
	"time"

	"match-workers/internal/common/logger"
	"match-workers/internal/common/metrics"
	"match-workers/internal/matching/embedding"
	"match-workers/internal/matching/feature"
	"match-workers/internal/matching/score"
	"match-workers/internal/models"
)

// ScoreWriter persists composed match results.
type ScoreWriter interface {
	UpsertDriverJobScore(ctx context.Context, s models.DriverJobScore) error
	UpsertCompanyDriverScore(ctx context.Context, s models.CompanyDriverScore) error
}

// Vectors resolves an entity's embedding, nil meaning degraded mode.
type Vectors interface {
	Vector(ctx context.Context, entityType, entityID, text string) []float64
}

// Engine composes and persists match scores for entity pairs.
type Engine struct {
	scores  ScoreWriter
	vectors Vectors
	log     logger.Logger
}

// New builds a pair-scoring engine.
func New(scores ScoreWriter, vectors Vectors, log logger.Logger) *Engine {
	return &Engine{scores: scores, vectors: vectors, log: log}
}

// ScoreDriverJobPair scores one driver against one job and upserts the row.
// Embedding problems degrade the pair to rules-only; only persistence errors
// propagate.
func (e *Engine) ScoreDriverJobPair(ctx context.Context, d feature.DriverFeatures, j feature.JobFeatures, now time.Time) error {
	result := score.ScoreDriverJob(d, j)
	result = e.compose(ctx, result,
		models.EntityTypeDriverProfile, d.DriverID, d.TextBlock,
		models.EntityTypeJob, j.JobID, j.TextBlock,
	)

	breakdown, err := json.Marshal(result.ScoreBreakdown)
	if err != nil {
		return err
	}

	row := models.DriverJobScore{
		DriverID:      d.DriverID,
		JobID:         j.JobID,
		OverallScore:  result.OverallScore,
		RulesScore:    result.RulesScore,
		SemanticScore: result.SemanticScore,
		Breakdown:     breakdown,
		TopReasons:    result.TopReasons,
		Cautions:      result.Cautions,
		DegradedMode:  result.DegradedMode,
		UpdatedAt:     now,
	}
	if err := e.scores.UpsertDriverJobScore(ctx, row); err != nil {
		return err
	}

	metrics.PairsScored.WithLabelValues("driver_job").Inc()
	if result.DegradedMode {
		metrics.DegradedPairs.Inc()
	}
	return nil
}

// ScoreCompanyCandidatePair scores one candidate against one of the
// company's jobs and upserts the row.
func (e *Engine) ScoreCompanyCandidatePair(ctx context.Context, cand feature.CandidateFeatures, j feature.JobFeatures, now time.Time) error {
	result := score.ScoreCompanyCandidate(cand, j, now)
	result = e.compose(ctx, result,
		cand.Source, cand.CandidateID, cand.TextBlock,
		models.EntityTypeJob, j.JobID, j.TextBlock,
	)

	breakdown, err := json.Marshal(result.ScoreBreakdown)
	if err != nil {
		return err
	}

	row := models.CompanyDriverScore{
		CompanyID:       cand.CompanyID,
		JobID:           j.JobID,
		CandidateSource: cand.Source,
		CandidateID:     cand.CandidateID,
		OverallScore:    result.OverallScore,
		RulesScore:      result.RulesScore,
		SemanticScore:   result.SemanticScore,
		Breakdown:       breakdown,
		TopReasons:      result.TopReasons,
		Cautions:        result.Cautions,
		DegradedMode:    result.DegradedMode,
		UpdatedAt:       now,
	}
	if err := e.scores.UpsertCompanyDriverScore(ctx, row); err != nil {
		return err
	}

	metrics.PairsScored.WithLabelValues("company_candidate").Inc()
	if result.DegradedMode {
		metrics.DegradedPairs.Inc()
	}
	return nil
}

// compose resolves both vectors and folds the semantic layer into the
// rules-only result. Either vector missing leaves the result degraded.
func (e *Engine) compose(ctx context.Context, result score.MatchResult,
	typeA, idA, textA, typeB, idB, textB string) score.MatchResult {

	vecA := e.vectors.Vector(ctx, typeA, idA, textA)
	vecB := e.vectors.Vector(ctx, typeB, idB, textB)
	if vecA == nil || vecB == nil {
		return score.Compose(result, 0, false)
	}
	return score.Compose(result, embedding.Cosine(vecA, vecB), true)
}
