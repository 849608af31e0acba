package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-workers/internal/common/errors"
	"match-workers/internal/models"
)

func intPtr(i int) *int { return &i }

// ==========================
// Score Upsert Tests
// ==========================

func TestUpsertDriverJobScore(t *testing.T) {
	s, mock := newTestStore(t)
	now := time.Now().UTC()

	score := models.DriverJobScore{
		DriverID:      "drv-1",
		JobID:         "job-1",
		OverallScore:  80,
		RulesScore:    72,
		SemanticScore: intPtr(8),
		Breakdown:     []byte(`{"driverType":{"score":20,"maxScore":20,"detail":"exact driver type match"}}`),
		TopReasons:    []string{"Driver type matches (owner-operator)"},
		Cautions:      nil,
		DegradedMode:  false,
		UpdatedAt:     now,
	}

	mock.ExpectExec(`INSERT INTO driver_job_match_scores`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.UpsertDriverJobScore(context.Background(), score))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertDriverJobScore_Error(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec(`INSERT INTO driver_job_match_scores`).WillReturnError(assert.AnError)

	err := s.UpsertDriverJobScore(context.Background(), models.DriverJobScore{DriverID: "drv-1", JobID: "job-1"})
	require.Error(t, err)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeScoreUpsertFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestUpsertCompanyDriverScore(t *testing.T) {
	s, mock := newTestStore(t)

	score := models.CompanyDriverScore{
		CompanyID:       "co-1",
		JobID:           "job-1",
		CandidateSource: models.CandidateSourceLead,
		CandidateID:     "lead-1",
		OverallScore:    54,
		RulesScore:      54,
		SemanticScore:   nil,
		Breakdown:       []byte(`{}`),
		Cautions:        []string{"Limited data — license class not available"},
		DegradedMode:    true,
		UpdatedAt:       time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO company_driver_match_scores`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.UpsertCompanyDriverScore(context.Background(), score))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Embedding Row Tests
// ==========================

func TestGetEmbedding_NoRowIsNotAnError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT entity_type, entity_id, content_hash`).
		WithArgs("job", "job-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"entity_type", "entity_id", "content_hash", "embedding", "dimensions",
			"provider", "model", "updated_at",
		}))

	row, err := s.GetEmbedding(context.Background(), "job", "job-1")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestUpsertEmbedding(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec(`INSERT INTO matching_text_embeddings`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpsertEmbedding(context.Background(), models.EmbeddingRow{
		EntityType:  "job",
		EntityID:    "job-1",
		ContentHash: "deadbeefdeadbeef",
		Embedding:   []float64{0.1, 0.2},
		Dimensions:  2,
		Provider:    "http",
		Model:       "text-embedding-3-small",
		UpdatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Entity Read Tests
// ==========================

func TestGetDriverProfile_NotFound(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT id, driver_type, license_class`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "driver_type", "license_class", "experience", "license_state",
			"zip", "about", "updated_at",
		}))

	_, err := s.GetDriverProfile(context.Background(), "missing")
	require.Error(t, err)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeEntityNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestGetActiveJobsForCompany(t *testing.T) {
	s, mock := newTestStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "company_id", "title", "description", "driver_type", "route_type",
		"freight_type", "team_mode", "location", "pay", "status", "updated_at",
	}).AddRow("job-1", "co-1", "OTR Driver", "", "owner-operator", "otr",
		"tanker", "solo", "Houston, TX", "$0.65/mile", models.JobStatusActive, now)

	mock.ExpectQuery(`SELECT id, company_id, title`).
		WithArgs(models.JobStatusActive, "co-1").
		WillReturnRows(rows)

	jobs, err := s.GetActiveJobsForCompany(context.Background(), "co-1")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-1", jobs[0].ID)
}

func TestGetApplicationsForCompany_DecodesCheckboxMaps(t *testing.T) {
	s, mock := newTestStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "driver_id", "company_id", "job_id", "first_name", "last_name",
		"license_class", "license_state", "endorsements", "hauler_experience",
		"route_preferences", "team_preference", "submitted_at", "updated_at",
	}).AddRow("app-1", "drv-1", "co-1", "job-1", "Pat", "Jones",
		"A", "TX", []byte(`{"hazmat":true}`), []byte(`{"tanker":true,"flatbed":false}`),
		nil, "solo", now, now)

	mock.ExpectQuery(`SELECT id, driver_id, company_id`).
		WithArgs("co-1").
		WillReturnRows(rows)

	apps, err := s.GetApplicationsForCompany(context.Background(), "co-1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, map[string]bool{"hazmat": true}, apps[0].Endorsements)
	assert.Equal(t, map[string]bool{"tanker": true, "flatbed": false}, apps[0].HaulerExperience)
	assert.Nil(t, apps[0].RoutePreferences)
}
