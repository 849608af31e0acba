// internal/store/profiles.go
package store

import (
	"context"
	"database/sql"
	"time"

	"match-workers/internal/common/errors"
	"match-workers/internal/models"
)

const driverProfileColumns = `id, driver_type, license_class, experience, license_state, zip, about, updated_at`

// GetDriverProfile fetches one driver profile by id. A missing row returns
// an ENTITY_NOT_FOUND error so queue handlers can fail the item terminally.
func (s *Store) GetDriverProfile(ctx context.Context, driverID string) (*models.DriverProfile, error) {
	query := `SELECT ` + driverProfileColumns + ` FROM driver_profiles WHERE id = $1`

	var p models.DriverProfile
	err := s.db.QueryRowContext(ctx, query, driverID).Scan(
		&p.ID, &p.DriverType, &p.LicenseClass, &p.Experience,
		&p.LicenseState, &p.Zip, &p.About, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewEntityNotFoundError(models.EntityTypeDriverProfile, driverID)
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetDriverProfile", err)
	}
	return &p, nil
}

// GetRecentDriverProfiles returns profiles updated within the lookback
// window, oldest first so backfill resumption is deterministic.
func (s *Store) GetRecentDriverProfiles(ctx context.Context, since time.Time) ([]models.DriverProfile, error) {
	query := `SELECT ` + driverProfileColumns + `
		FROM driver_profiles
		WHERE updated_at >= $1
		ORDER BY updated_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetRecentDriverProfiles", err)
	}
	defer rows.Close()

	var profiles []models.DriverProfile
	for rows.Next() {
		var p models.DriverProfile
		if err := rows.Scan(
			&p.ID, &p.DriverType, &p.LicenseClass, &p.Experience,
			&p.LicenseState, &p.Zip, &p.About, &p.UpdatedAt,
		); err != nil {
			return nil, errors.NewQueryExecutionFailedError("GetRecentDriverProfiles", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetRecentDriverProfiles", err)
	}
	return profiles, nil
}

// GetLatestApplicationForDriver returns the driver's most recent application,
// or nil when they have never applied. Feature building merges it under the
// profile fields.
func (s *Store) GetLatestApplicationForDriver(ctx context.Context, driverID string) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM driver_applications
		WHERE driver_id = $1
		ORDER BY submitted_at DESC
		LIMIT 1`

	row := s.db.QueryRowContext(ctx, query, driverID)
	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("GetLatestApplicationForDriver", err)
	}
	return app, nil
}
