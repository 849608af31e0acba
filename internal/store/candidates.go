// internal/store/candidates.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"match-workers/internal/common/errors"
	"match-workers/internal/models"
)

const applicationColumns = `id, driver_id, company_id, job_id, first_name, last_name,
	license_class, license_state, endorsements, hauler_experience,
	route_preferences, team_preference, submitted_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanApplication reads one application row. The checkbox maps live in JSONB
// columns; a NULL column scans to an empty map.
func scanApplication(row rowScanner) (*models.Application, error) {
	var a models.Application
	var endorsements, haulers, routes []byte

	err := row.Scan(
		&a.ID, &a.DriverID, &a.CompanyID, &a.JobID, &a.FirstName, &a.LastName,
		&a.LicenseClass, &a.LicenseState, &endorsements, &haulers,
		&routes, &a.TeamPreference, &a.SubmittedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Endorsements = decodeCheckboxMap(endorsements)
	a.HaulerExperience = decodeCheckboxMap(haulers)
	a.RoutePreferences = decodeCheckboxMap(routes)
	return &a, nil
}

func decodeCheckboxMap(payload []byte) map[string]bool {
	if len(payload) == 0 {
		return nil
	}
	var m map[string]bool
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil
	}
	return m
}

// GetApplication fetches one application by id.
func (s *Store) GetApplication(ctx context.Context, applicationID string) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM driver_applications WHERE id = $1`

	app, err := scanApplication(s.db.QueryRowContext(ctx, query, applicationID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewEntityNotFoundError(models.EntityTypeApplication, applicationID)
		}
		return nil, errors.NewQueryExecutionFailedError("GetApplication", err)
	}
	return app, nil
}

// GetApplicationsForCompany returns every application submitted to the
// company, for the company-side candidate walk.
func (s *Store) GetApplicationsForCompany(ctx context.Context, companyID string) ([]models.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM driver_applications
		WHERE company_id = $1
		ORDER BY submitted_at DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetApplicationsForCompany", err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("GetApplicationsForCompany", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetApplicationsForCompany", err)
	}
	return apps, nil
}

const leadColumns = `id, company_id, full_name, state, years_experience, is_owner_op,
	truck_year, truck_make, truck_model, created_at`

func scanLead(row rowScanner) (*models.Lead, error) {
	var l models.Lead
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.FullName, &l.State, &l.YearsExperience,
		&l.IsOwnerOperator, &l.TruckYear, &l.TruckMake, &l.TruckModel,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetLead fetches one lead by id.
func (s *Store) GetLead(ctx context.Context, leadID string) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM driver_leads WHERE id = $1`

	lead, err := scanLead(s.db.QueryRowContext(ctx, query, leadID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewEntityNotFoundError(models.EntityTypeLead, leadID)
		}
		return nil, errors.NewQueryExecutionFailedError("GetLead", err)
	}
	return lead, nil
}

// GetLeadsForCompany returns every lead captured for the company.
func (s *Store) GetLeadsForCompany(ctx context.Context, companyID string) ([]models.Lead, error) {
	query := `SELECT ` + leadColumns + `
		FROM driver_leads
		WHERE company_id = $1
		ORDER BY created_at DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetLeadsForCompany", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("GetLeadsForCompany", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetLeadsForCompany", err)
	}
	return leads, nil
}
