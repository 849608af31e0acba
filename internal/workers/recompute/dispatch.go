// internal/workers/recompute/dispatch.go
package recompute

import (
	"context"

	"match-workers/internal/common/errors"
	"match-workers/internal/matching/feature"
	"match-workers/internal/models"
)

// processItem fans one dirty entity out to its affected pairs and returns
// the number of pairs scored. Individual pair failures are logged and the
// first one is returned so the item retries; scoring is idempotent, so a
// retry re-scoring already-written pairs is harmless.
func (w *Worker) processItem(ctx context.Context, item models.QueueItem) (int, error) {
	switch item.EntityType {
	case models.EntityTypeDriverProfile:
		return w.processDriverProfile(ctx, item.EntityID)
	case models.EntityTypeJob:
		return w.processJob(ctx, item.EntityID)
	case models.EntityTypeApplication:
		return w.processApplication(ctx, item.EntityID)
	case models.EntityTypeLead:
		return w.processLead(ctx, item.EntityID)
	default:
		return 0, errors.NewUnknownEntityTypeError(item.EntityType)
	}
}

// processDriverProfile rescores the driver against every Active job.
func (w *Worker) processDriverProfile(ctx context.Context, driverID string) (int, error) {
	profile, err := w.source.GetDriverProfile(ctx, driverID)
	if err != nil {
		return 0, err
	}
	latest, err := w.source.GetLatestApplicationForDriver(ctx, driverID)
	if err != nil {
		return 0, err
	}
	driver := feature.BuildDriverFeatures(*profile, latest)

	jobs, err := w.source.GetActiveJobs(ctx)
	if err != nil {
		return 0, err
	}

	pairs := 0
	var firstErr error
	now := w.now().UTC()
	for _, job := range jobs {
		j := feature.BuildJobFeatures(job)
		if err := w.scorer.ScoreDriverJobPair(ctx, driver, j, now); err != nil {
			w.logPairFailure("driver_job", driverID, j.JobID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		pairs++
	}
	return pairs, firstErr
}

// processJob rescores a dirty job in both directions: recently updated
// drivers against it, and the owning company's candidates against it.
// Non-Active jobs are settled without scoring.
func (w *Worker) processJob(ctx context.Context, jobID string) (int, error) {
	job, err := w.source.GetJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	if job.Status != models.JobStatusActive {
		return 0, nil
	}
	j := feature.BuildJobFeatures(*job)
	now := w.now().UTC()

	pairs := 0
	var firstErr error

	profiles, err := w.source.GetRecentDriverProfiles(ctx, w.windowStart(now))
	if err != nil {
		return 0, err
	}
	for _, profile := range profiles {
		latest, err := w.source.GetLatestApplicationForDriver(ctx, profile.ID)
		if err != nil {
			w.logPairFailure("driver_job", profile.ID, jobID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		driver := feature.BuildDriverFeatures(profile, latest)
		if err := w.scorer.ScoreDriverJobPair(ctx, driver, j, now); err != nil {
			w.logPairFailure("driver_job", profile.ID, jobID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		pairs++
	}

	candidatePairs, err := w.scoreCandidatesAgainstJobs(ctx, job.CompanyID, []feature.JobFeatures{j})
	pairs += candidatePairs
	if err != nil && firstErr == nil {
		firstErr = err
	}
	return pairs, firstErr
}

// processApplication rescores one application against the company's Active
// jobs.
func (w *Worker) processApplication(ctx context.Context, applicationID string) (int, error) {
	app, err := w.source.GetApplication(ctx, applicationID)
	if err != nil {
		return 0, err
	}
	cand := feature.CandidateFromApplication(*app)
	return w.scoreCandidateAgainstCompanyJobs(ctx, cand)
}

// processLead rescores one lead against the company's Active jobs.
func (w *Worker) processLead(ctx context.Context, leadID string) (int, error) {
	lead, err := w.source.GetLead(ctx, leadID)
	if err != nil {
		return 0, err
	}
	cand := feature.CandidateFromLead(*lead)
	return w.scoreCandidateAgainstCompanyJobs(ctx, cand)
}

func (w *Worker) scoreCandidateAgainstCompanyJobs(ctx context.Context, cand feature.CandidateFeatures) (int, error) {
	jobs, err := w.source.GetActiveJobsForCompany(ctx, cand.CompanyID)
	if err != nil {
		return 0, err
	}

	pairs := 0
	var firstErr error
	now := w.now().UTC()
	for _, job := range jobs {
		j := feature.BuildJobFeatures(job)
		if err := w.scorer.ScoreCompanyCandidatePair(ctx, cand, j, now); err != nil {
			w.logPairFailure("company_candidate", cand.CandidateID, j.JobID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		pairs++
	}
	return pairs, firstErr
}

// scoreCandidatesAgainstJobs walks all of a company's candidates
// (applications and leads) against the given jobs.
func (w *Worker) scoreCandidatesAgainstJobs(ctx context.Context, companyID string, jobs []feature.JobFeatures) (int, error) {
	apps, err := w.source.GetApplicationsForCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}
	leads, err := w.source.GetLeadsForCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}

	candidates := make([]feature.CandidateFeatures, 0, len(apps)+len(leads))
	for _, app := range apps {
		candidates = append(candidates, feature.CandidateFromApplication(app))
	}
	for _, lead := range leads {
		candidates = append(candidates, feature.CandidateFromLead(lead))
	}

	pairs := 0
	var firstErr error
	now := w.now().UTC()
	for _, cand := range candidates {
		for _, j := range jobs {
			if err := w.scorer.ScoreCompanyCandidatePair(ctx, cand, j, now); err != nil {
				w.logPairFailure("company_candidate", cand.CandidateID, j.JobID, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			pairs++
		}
	}
	return pairs, firstErr
}

func (w *Worker) logPairFailure(direction, leftID, jobID string, err error) {
	w.log.Warn("pair scoring failed", map[string]interface{}{
		"direction": direction,
		"leftId":    leftID,
		"jobId":     jobID,
		"error":     err.Error(),
	})
}
