package feature

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"match-workers/internal/matching/normalize"
	"match-workers/internal/models"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

// ==========================
// Driver Feature Tests
// ==========================

func TestBuildDriverFeatures_ProfileOnly(t *testing.T) {
	profile := models.DriverProfile{
		ID:           "drv-1",
		DriverType:   "Owner Operator",
		LicenseClass: "CDL-A",
		Experience:   "5+ years",
		LicenseState: "Dallas, TX",
		About:        "  Reliable long-haul driver.  ",
	}

	f := BuildDriverFeatures(profile, nil)

	assert.Equal(t, "drv-1", f.DriverID)
	assert.Equal(t, normalize.DriverTypeOwnerOperator, f.DriverType)
	assert.Equal(t, normalize.LicenseClassA, f.LicenseClass)
	assert.Equal(t, 4, f.ExperienceOrdinal)
	assert.Equal(t, "Texas", f.LicenseState)
	assert.Equal(t, "Reliable long-haul driver.", f.About)
	assert.Empty(t, f.RoutePreferences)
	assert.NotEmpty(t, f.TextBlock)
}

func TestBuildDriverFeatures_ApplicationFillsGaps(t *testing.T) {
	profile := models.DriverProfile{
		ID:         "drv-2",
		DriverType: "company",
		Experience: "1-3 years",
	}
	app := &models.Application{
		LicenseClass: "Class B",
		LicenseState: "GA",
		TeamPreference: "Either",
		Endorsements: map[string]bool{"Hazmat": true, "Tanker": true, "Doubles": false},
		HaulerExperience: map[string]bool{"Reefer": true, "Dry Van": true},
		RoutePreferences: map[string]bool{"OTR": true},
	}

	f := BuildDriverFeatures(profile, app)

	assert.Equal(t, normalize.LicenseClassB, f.LicenseClass)
	assert.Equal(t, "Georgia", f.LicenseState)
	assert.Equal(t, normalize.TeamBoth, f.TeamPreference)
	assert.Equal(t, []string{"hazmat", "tanker"}, f.Endorsements)
	assert.Equal(t, []string{normalize.FreightBox, normalize.FreightRefrigerated}, f.HaulerExperience)
	assert.Equal(t, []string{normalize.RouteOTR}, f.RoutePreferences)
}

func TestBuildDriverFeatures_ProfileWinsOverApplication(t *testing.T) {
	profile := models.DriverProfile{
		ID:           "drv-3",
		LicenseClass: "A",
		LicenseState: "Texas",
	}
	app := &models.Application{
		LicenseClass: "B",
		LicenseState: "FL",
	}

	f := BuildDriverFeatures(profile, app)

	assert.Equal(t, normalize.LicenseClassA, f.LicenseClass)
	assert.Equal(t, "Texas", f.LicenseState)
}

// ==========================
// Job Feature Tests
// ==========================

func TestBuildJobFeatures(t *testing.T) {
	job := models.Job{
		ID:          "job-1",
		CompanyID:   "co-1",
		Title:       "OTR Tanker Driver",
		DriverType:  "Owner Operator",
		RouteType:   "Over The Road",
		FreightType: "Tank",
		TeamMode:    "Solo",
		Location:    "Houston, TX",
		Status:      models.JobStatusActive,
	}

	f := BuildJobFeatures(job)

	assert.Equal(t, normalize.DriverTypeOwnerOperator, f.DriverType)
	assert.Equal(t, normalize.RouteOTR, f.RouteType)
	assert.Equal(t, normalize.FreightTanker, f.FreightType)
	assert.Equal(t, normalize.TeamSolo, f.TeamMode)
	assert.Equal(t, "Texas", f.State)
	assert.Contains(t, f.TextBlock, "OTR Tanker Driver")
}

// ==========================
// Candidate Feature Tests
// ==========================

func TestCandidateFromApplication(t *testing.T) {
	app := models.Application{
		ID:           "app-1",
		CompanyID:    "co-1",
		LicenseClass: "A",
		LicenseState: "TX",
		RoutePreferences: map[string]bool{"Regional": true},
		SubmittedAt:  time.Now(),
	}

	f := CandidateFromApplication(app)

	assert.Equal(t, models.CandidateSourceApplication, f.Source)
	assert.Equal(t, normalize.LicenseClassA, f.LicenseClass)
	assert.Equal(t, -1, f.ExperienceOrdinal)
	assert.Equal(t, "Texas", f.State)
	// Missing fields reflect what the application actually left blank.
	assert.Contains(t, f.MissingFields, FieldDriverType)
	assert.Contains(t, f.MissingFields, FieldExperience)
	assert.NotContains(t, f.MissingFields, FieldLicenseClass)
	assert.NotContains(t, f.MissingFields, FieldRoutePreferences)
}

func TestCandidateFromLead_KnownFields(t *testing.T) {
	lead := models.Lead{
		ID:              "lead-1",
		CompanyID:       "co-1",
		State:           "Texas",
		YearsExperience: intPtr(6),
		IsOwnerOperator: boolPtr(true),
		TruckYear:       2019,
		TruckMake:       "Peterbilt",
		TruckModel:      "579",
		CreatedAt:       time.Now(),
	}

	f := CandidateFromLead(lead)

	assert.Equal(t, models.CandidateSourceLead, f.Source)
	assert.Equal(t, normalize.DriverTypeOwnerOperator, f.DriverType)
	assert.Equal(t, 4, f.ExperienceOrdinal)
	assert.Equal(t, "Texas", f.State)
	assert.Contains(t, f.TextBlock, "2019 Peterbilt 579")

	// Leads never carry these four fields.
	assert.Equal(t, []string{
		FieldLicenseClass, FieldEndorsements, FieldHaulerExperience, FieldRoutePreferences,
	}, f.MissingFields)
}

func TestCandidateFromLead_ExplicitFalseIsKnown(t *testing.T) {
	lead := models.Lead{
		ID:              "lead-2",
		CompanyID:       "co-1",
		IsOwnerOperator: boolPtr(false),
	}

	f := CandidateFromLead(lead)

	assert.Equal(t, normalize.DriverTypeCompany, f.DriverType)
	assert.NotContains(t, f.MissingFields, FieldDriverType)
}

func TestCandidateFromLead_EverythingMissing(t *testing.T) {
	f := CandidateFromLead(models.Lead{ID: "lead-3", CompanyID: "co-1"})

	assert.Equal(t, []string{
		FieldDriverType, FieldLicenseClass, FieldExperience, FieldState,
		FieldEndorsements, FieldHaulerExperience, FieldRoutePreferences,
	}, f.MissingFields)
}

// ==========================
// Checkbox Set Tests
// ==========================

func TestNormalizedSet(t *testing.T) {
	set := map[string]bool{
		"Dry Van": true,
		"Reefer":  true,
		"reefer":  true, // duplicate after normalization
		"Flatbed": false,
	}

	out := normalizedSet(set, normalize.FreightType)

	assert.Equal(t, []string{normalize.FreightBox, normalize.FreightRefrigerated}, out)
}

func TestNormalizedSet_Empty(t *testing.T) {
	assert.Nil(t, normalizedSet(nil, nil))
	assert.Nil(t, normalizedSet(map[string]bool{"a": false}, nil))
}
