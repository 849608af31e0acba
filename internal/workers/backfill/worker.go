// internal/workers/backfill/worker.go

// Package backfill runs the nightly full recompute: every recently updated
// driver against every Active job, then every company's candidates against
// that company's jobs. It is the safety net that heals any pair the queue
// path missed.
package backfill

import (
	"context"
	"time"

	"match-workers/internal/common/config"
	"match-workers/internal/common/logger"
	"match-workers/internal/matching/feature"
	"match-workers/internal/models"
)

// Source reads the entity sets the backfill walks.
type Source interface {
	GetRecentDriverProfiles(ctx context.Context, since time.Time) ([]models.DriverProfile, error)
	GetLatestApplicationForDriver(ctx context.Context, driverID string) (*models.Application, error)
	GetActiveJobs(ctx context.Context) ([]models.Job, error)
	GetCompaniesWithActiveJobs(ctx context.Context) ([]string, error)
	GetActiveJobsForCompany(ctx context.Context, companyID string) ([]models.Job, error)
	GetApplicationsForCompany(ctx context.Context, companyID string) ([]models.Application, error)
	GetLeadsForCompany(ctx context.Context, companyID string) ([]models.Lead, error)
}

// PairScorer scores and persists one pair.
type PairScorer interface {
	ScoreDriverJobPair(ctx context.Context, d feature.DriverFeatures, j feature.JobFeatures, now time.Time) error
	ScoreCompanyCandidatePair(ctx context.Context, c feature.CandidateFeatures, j feature.JobFeatures, now time.Time) error
}

// Config holds resolved backfill settings.
type Config struct {
	WindowDays int
	Budget     time.Duration
}

// ConfigFrom resolves the raw config section.
func ConfigFrom(cfg config.BackfillConfig) Config {
	c := Config{
		WindowDays: cfg.WindowDays,
		Budget:     time.Duration(cfg.BudgetMs) * time.Millisecond,
	}
	if c.WindowDays <= 0 {
		c.WindowDays = 90
	}
	if c.Budget <= 0 {
		c.Budget = 30 * time.Minute
	}
	return c
}

// Summary reports one backfill run. Complete is false when the budget ran
// out mid-walk; since both walks are ordered and scoring is idempotent, the
// next run picks the remainder up.
type Summary struct {
	ProfilesProcessed  int
	CompaniesProcessed int
	PairsScored        int
	Elapsed            time.Duration
	Complete           bool
}

// Worker is one backfill run handler.
type Worker struct {
	cfg    Config
	source Source
	scorer PairScorer
	log    logger.Logger
	now    func() time.Time
}

// New builds a backfill worker.
func New(cfg Config, source Source, scorer PairScorer, log logger.Logger) *Worker {
	return &Worker{
		cfg:    cfg,
		source: source,
		scorer: scorer,
		log:    log,
		now:    time.Now,
	}
}
