// internal/store/jobs.go
package store

import (
	"context"
	"database/sql"

	"match-workers/internal/common/errors"
	"match-workers/internal/models"
)

const jobColumns = `id, company_id, title, description, driver_type, route_type, freight_type, team_mode, location, pay, status, updated_at`

func scanJob(rows *sql.Rows) (models.Job, error) {
	var j models.Job
	err := rows.Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.DriverType,
		&j.RouteType, &j.FreightType, &j.TeamMode, &j.Location, &j.Pay,
		&j.Status, &j.UpdatedAt,
	)
	return j, err
}

// GetJob fetches one job by id regardless of status; the caller decides
// whether a non-Active job still needs scoring.
func (s *Store) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var j models.Job
	err := s.db.QueryRowContext(ctx, query, jobID).Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.DriverType,
		&j.RouteType, &j.FreightType, &j.TeamMode, &j.Location, &j.Pay,
		&j.Status, &j.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewEntityNotFoundError(models.EntityTypeJob, jobID)
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetJob", err)
	}
	return &j, nil
}

// GetActiveJobs returns every Active job across all companies.
func (s *Store) GetActiveJobs(ctx context.Context) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1 ORDER BY updated_at ASC, id ASC`
	return s.queryJobs(ctx, "GetActiveJobs", query, models.JobStatusActive)
}

// GetActiveJobsForCompany returns the company's Active jobs.
func (s *Store) GetActiveJobsForCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1 AND company_id = $2 ORDER BY updated_at ASC, id ASC`
	return s.queryJobs(ctx, "GetActiveJobsForCompany", query, models.JobStatusActive, companyID)
}

// GetCompaniesWithActiveJobs returns the distinct company ids that currently
// have at least one Active job, for the backfill's company walk.
func (s *Store) GetCompaniesWithActiveJobs(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT company_id FROM jobs WHERE status = $1 ORDER BY company_id ASC`

	rows, err := s.db.QueryContext(ctx, query, models.JobStatusActive)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetCompaniesWithActiveJobs", err)
	}
	defer rows.Close()

	var companies []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.NewQueryExecutionFailedError("GetCompaniesWithActiveJobs", err)
		}
		companies = append(companies, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetCompaniesWithActiveJobs", err)
	}
	return companies, nil
}

func (s *Store) queryJobs(ctx context.Context, queryName, query string, args ...interface{}) ([]models.Job, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError(queryName, err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError(queryName, err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError(queryName, err)
	}
	return jobs, nil
}
