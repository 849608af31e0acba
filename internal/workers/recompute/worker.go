// internal/workers/recompute/worker.go

// Package recompute drains the dirty-entity queue: each claimed item fans
// out to the affected pairs, scores them through the engine and settles the
// item as done, retried or terminally failed.
package recompute

import (
	"context"
	"time"

	"match-workers/internal/common/config"
	"match-workers/internal/common/logger"
	"match-workers/internal/matching/feature"
	"match-workers/internal/models"
)

// Queue is the recompute queue surface the worker drives.
type Queue interface {
	ClaimBatch(ctx context.Context, limit int, now time.Time) ([]models.QueueItem, error)
	CompleteItem(ctx context.Context, itemID string) error
	FailItem(ctx context.Context, item models.QueueItem, cause string, maxAttempts int, backoffUnit time.Duration, now time.Time) error
	ReleaseItems(ctx context.Context, itemIDs []string) error
	CountPending(ctx context.Context) (int, error)
}

// Source reads the entities a queue item fans out to.
type Source interface {
	GetDriverProfile(ctx context.Context, driverID string) (*models.DriverProfile, error)
	GetLatestApplicationForDriver(ctx context.Context, driverID string) (*models.Application, error)
	GetRecentDriverProfiles(ctx context.Context, since time.Time) ([]models.DriverProfile, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	GetActiveJobs(ctx context.Context) ([]models.Job, error)
	GetActiveJobsForCompany(ctx context.Context, companyID string) ([]models.Job, error)
	GetApplication(ctx context.Context, applicationID string) (*models.Application, error)
	GetLead(ctx context.Context, leadID string) (*models.Lead, error)
	GetApplicationsForCompany(ctx context.Context, companyID string) ([]models.Application, error)
	GetLeadsForCompany(ctx context.Context, companyID string) ([]models.Lead, error)
}

// PairScorer scores and persists one pair.
type PairScorer interface {
	ScoreDriverJobPair(ctx context.Context, d feature.DriverFeatures, j feature.JobFeatures, now time.Time) error
	ScoreCompanyCandidatePair(ctx context.Context, c feature.CandidateFeatures, j feature.JobFeatures, now time.Time) error
}

// Config holds resolved worker settings.
type Config struct {
	BatchSize   int
	Budget      time.Duration
	MaxAttempts int
	BackoffUnit time.Duration
	WindowDays  int
}

// ConfigFrom resolves the raw config section. WindowDays bounds the
// profile fan-out when a job turns dirty.
func ConfigFrom(cfg config.RecomputeConfig, windowDays int) Config {
	c := Config{
		BatchSize:   cfg.BatchSize,
		Budget:      time.Duration(cfg.BudgetMs) * time.Millisecond,
		MaxAttempts: cfg.MaxAttempts,
		BackoffUnit: time.Duration(cfg.BackoffSec) * time.Second,
		WindowDays:  windowDays,
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 20
	}
	if c.Budget <= 0 {
		c.Budget = 50 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.BackoffUnit <= 0 {
		c.BackoffUnit = 60 * time.Second
	}
	if c.WindowDays <= 0 {
		c.WindowDays = 90
	}
	return c
}

// Summary reports one invocation's outcome.
type Summary struct {
	Claimed     int
	Processed   int
	Succeeded   int
	Failed      int
	Released    int
	PairsScored int
	Elapsed     time.Duration
}

// Worker is one recompute invocation handler, safe to run on a ticker.
type Worker struct {
	cfg    Config
	queue  Queue
	source Source
	scorer PairScorer
	log    logger.Logger
	now    func() time.Time
}

// New builds a recompute worker.
func New(cfg Config, queue Queue, source Source, scorer PairScorer, log logger.Logger) *Worker {
	return &Worker{
		cfg:    cfg,
		queue:  queue,
		source: source,
		scorer: scorer,
		log:    log,
		now:    time.Now,
	}
}
