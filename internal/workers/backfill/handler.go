// internal/workers/backfill/handler.go
package backfill

import (
	"context"
	"time"

	"match-workers/internal/matching/feature"
)

// Run executes one backfill: phase one walks recently updated drivers
// against every Active job, phase two walks each company's candidates
// against that company's jobs. The walk yields as soon as the budget is
// spent; pair failures are logged and skipped so one bad record never stops
// the night's run.
func (w *Worker) Run(ctx context.Context) (Summary, error) {
	start := w.now().UTC()
	deadline := start.Add(w.cfg.Budget)
	summary := Summary{Complete: true}

	if err := w.runDriverPhase(ctx, &summary, deadline); err != nil {
		return summary, err
	}
	if summary.Complete {
		if err := w.runCompanyPhase(ctx, &summary, deadline); err != nil {
			return summary, err
		}
	}

	summary.Elapsed = w.now().UTC().Sub(start)
	w.log.Info("backfill run finished", map[string]interface{}{
		"profilesProcessed":  summary.ProfilesProcessed,
		"companiesProcessed": summary.CompaniesProcessed,
		"pairsScored":        summary.PairsScored,
		"elapsedMs":          summary.Elapsed.Milliseconds(),
		"complete":           summary.Complete,
	})
	return summary, nil
}

func (w *Worker) runDriverPhase(ctx context.Context, summary *Summary, deadline time.Time) error {
	since := w.now().UTC().AddDate(0, 0, -w.cfg.WindowDays)
	profiles, err := w.source.GetRecentDriverProfiles(ctx, since)
	if err != nil {
		return err
	}
	jobs, err := w.source.GetActiveJobs(ctx)
	if err != nil {
		return err
	}

	jobFeatures := make([]feature.JobFeatures, len(jobs))
	for i, job := range jobs {
		jobFeatures[i] = feature.BuildJobFeatures(job)
	}

	for _, profile := range profiles {
		if w.budgetSpent(ctx, deadline) {
			summary.Complete = false
			return nil
		}

		latest, err := w.source.GetLatestApplicationForDriver(ctx, profile.ID)
		if err != nil {
			w.log.Warn("skipping driver in backfill", map[string]interface{}{
				"driverId": profile.ID,
				"error":    err.Error(),
			})
			continue
		}
		driver := feature.BuildDriverFeatures(profile, latest)

		now := w.now().UTC()
		for _, j := range jobFeatures {
			if err := w.scorer.ScoreDriverJobPair(ctx, driver, j, now); err != nil {
				w.log.Warn("backfill pair scoring failed", map[string]interface{}{
					"driverId": profile.ID,
					"jobId":    j.JobID,
					"error":    err.Error(),
				})
				continue
			}
			summary.PairsScored++
		}
		summary.ProfilesProcessed++
	}
	return nil
}

func (w *Worker) runCompanyPhase(ctx context.Context, summary *Summary, deadline time.Time) error {
	companies, err := w.source.GetCompaniesWithActiveJobs(ctx)
	if err != nil {
		return err
	}

	for _, companyID := range companies {
		if w.budgetSpent(ctx, deadline) {
			summary.Complete = false
			return nil
		}

		pairs, err := w.scoreCompany(ctx, companyID)
		if err != nil {
			w.log.Warn("skipping company in backfill", map[string]interface{}{
				"companyId": companyID,
				"error":     err.Error(),
			})
			continue
		}
		summary.PairsScored += pairs
		summary.CompaniesProcessed++
	}
	return nil
}

func (w *Worker) scoreCompany(ctx context.Context, companyID string) (int, error) {
	jobs, err := w.source.GetActiveJobsForCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}
	apps, err := w.source.GetApplicationsForCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}
	leads, err := w.source.GetLeadsForCompany(ctx, companyID)
	if err != nil {
		return 0, err
	}

	jobFeatures := make([]feature.JobFeatures, len(jobs))
	for i, job := range jobs {
		jobFeatures[i] = feature.BuildJobFeatures(job)
	}

	candidates := make([]feature.CandidateFeatures, 0, len(apps)+len(leads))
	for _, app := range apps {
		candidates = append(candidates, feature.CandidateFromApplication(app))
	}
	for _, lead := range leads {
		candidates = append(candidates, feature.CandidateFromLead(lead))
	}

	pairs := 0
	now := w.now().UTC()
	for _, cand := range candidates {
		for _, j := range jobFeatures {
			if err := w.scorer.ScoreCompanyCandidatePair(ctx, cand, j, now); err != nil {
				w.log.Warn("backfill pair scoring failed", map[string]interface{}{
					"candidateId": cand.CandidateID,
					"jobId":       j.JobID,
					"error":       err.Error(),
				})
				continue
			}
			pairs++
		}
	}
	return pairs, nil
}

func (w *Worker) budgetSpent(ctx context.Context, deadline time.Time) bool {
	return ctx.Err() != nil || w.now().UTC().After(deadline)
}
