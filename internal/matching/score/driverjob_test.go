package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"match-workers/internal/matching/feature"
	"match-workers/internal/matching/normalize"
)

// ==========================
// Test Helper Functions
// ==========================

func ownerOperatorDriver() feature.DriverFeatures {
	return feature.DriverFeatures{
		DriverID:          "drv-1",
		DriverType:        normalize.DriverTypeOwnerOperator,
		LicenseClass:      normalize.LicenseClassA,
		ExperienceOrdinal: 4,
		LicenseState:      "Texas",
		RoutePreferences:  []string{normalize.RouteOTR},
	}
}

func otrTankerJob() feature.JobFeatures {
	return feature.JobFeatures{
		JobID:       "job-1",
		CompanyID:   "co-1",
		DriverType:  normalize.DriverTypeOwnerOperator,
		RouteType:   normalize.RouteOTR,
		FreightType: normalize.FreightTanker,
		TeamMode:    normalize.TeamSolo,
		State:       "Texas",
	}
}

// ==========================
// Core Scoring Tests
// ==========================

func TestScoreDriverJob_StrongMatch(t *testing.T) {
	result := ScoreDriverJob(ownerOperatorDriver(), otrTankerJob())

	// 20 (type) + 15 (route) + 5 (no hauler data) + 5 (team unknown)
	// + 10 (location) + 10 (experience) + 7 (license A, generic bonus)
	assert.Equal(t, 72, result.RulesScore)
	assert.Equal(t, 72, result.OverallScore)
	assert.Nil(t, result.SemanticScore)
	assert.True(t, result.DegradedMode)

	assert.Equal(t, 20, result.ScoreBreakdown["driverType"].Score)
	assert.Equal(t, 15, result.ScoreBreakdown["route"].Score)
	assert.Equal(t, 5, result.ScoreBreakdown["freight"].Score)
	assert.Equal(t, 5, result.ScoreBreakdown["team"].Score)
	assert.Equal(t, 10, result.ScoreBreakdown["location"].Score)
	assert.Equal(t, 10, result.ScoreBreakdown["experience"].Score)
	assert.Equal(t, 7, result.ScoreBreakdown["license"].Score)

	assert.Len(t, result.TopReasons, 3)
	assert.Empty(t, result.Cautions)
}

func TestScoreDriverJob_Deterministic(t *testing.T) {
	a := ScoreDriverJob(ownerOperatorDriver(), otrTankerJob())
	b := ScoreDriverJob(ownerOperatorDriver(), otrTankerJob())
	assert.Equal(t, a, b)
}

func TestScoreDriverJob_MaximumStaysWithinBounds(t *testing.T) {
	d := ownerOperatorDriver()
	d.TeamPreference = normalize.TeamSolo
	d.HaulerExperience = []string{normalize.FreightTanker}
	d.Endorsements = []string{"tanker"}

	result := ScoreDriverJob(d, otrTankerJob())

	// Every component at its ceiling: 20+15+15+10+10+10+10.
	assert.Equal(t, 90, result.RulesScore)
	assert.Equal(t, 10, result.ScoreBreakdown["license"].Score)
}

// ==========================
// Hard Block Tests
// ==========================

func TestScoreDriverJob_DriverTypeMismatchCapsScore(t *testing.T) {
	d := ownerOperatorDriver()
	d.DriverType = normalize.DriverTypeCompany
	d.TeamPreference = normalize.TeamSolo
	d.HaulerExperience = []string{normalize.FreightTanker}
	d.Endorsements = []string{"tanker"}

	result := ScoreDriverJob(d, otrTankerJob())

	assert.Equal(t, 0, result.ScoreBreakdown["driverType"].Score)
	assert.LessOrEqual(t, result.RulesScore, HardBlockCap)
	assert.NotEmpty(t, result.Cautions)
}

func TestScoreDriverJob_OwnerLeaseIsNotBlocked(t *testing.T) {
	d := ownerOperatorDriver()
	j := otrTankerJob()
	j.DriverType = normalize.DriverTypeLease

	result := ScoreDriverJob(d, j)

	assert.Equal(t, 12, result.ScoreBreakdown["driverType"].Score)
	assert.Greater(t, result.RulesScore, HardBlockCap)
}

func TestScoreDriverJob_MissingDriverTypeIsNeutral(t *testing.T) {
	d := ownerOperatorDriver()
	d.DriverType = ""

	result := ScoreDriverJob(d, otrTankerJob())

	assert.Equal(t, 10, result.ScoreBreakdown["driverType"].Score)
	assert.Greater(t, result.RulesScore, HardBlockCap)
}

// ==========================
// Component Edge Cases
// ==========================

func TestScoreDriverJob_RoutePartialAndMismatch(t *testing.T) {
	d := ownerOperatorDriver()
	d.RoutePreferences = []string{normalize.RouteRegional}

	result := ScoreDriverJob(d, otrTankerJob())
	assert.Equal(t, 10, result.ScoreBreakdown["route"].Score, "otr/regional partial")

	d.RoutePreferences = []string{normalize.RouteLocal}
	result = ScoreDriverJob(d, otrTankerJob())
	assert.Equal(t, 3, result.ScoreBreakdown["route"].Score, "route mismatch")
}

func TestScoreDriverJob_VersatileHauler(t *testing.T) {
	d := ownerOperatorDriver()
	d.HaulerExperience = []string{
		normalize.FreightBox, normalize.FreightFlatbed,
		normalize.FreightRefrigerated, normalize.FreightDump,
	}

	result := ScoreDriverJob(d, otrTankerJob())
	assert.Equal(t, 10, result.ScoreBreakdown["freight"].Score)
}

func TestScoreDriverJob_NeighboringState(t *testing.T) {
	d := ownerOperatorDriver()
	d.LicenseState = "Oklahoma"

	result := ScoreDriverJob(d, otrTankerJob())
	assert.Equal(t, 6, result.ScoreBreakdown["location"].Score)

	d.LicenseState = "Maine"
	result = ScoreDriverJob(d, otrTankerJob())
	assert.Equal(t, 2, result.ScoreBreakdown["location"].Score)
}

func TestScoreDriverJob_UnknownExperience(t *testing.T) {
	d := ownerOperatorDriver()
	d.ExperienceOrdinal = -1

	result := ScoreDriverJob(d, otrTankerJob())
	assert.Equal(t, 5, result.ScoreBreakdown["experience"].Score)
}

func TestScoreDriverJob_TankerEndorsementBonus(t *testing.T) {
	d := ownerOperatorDriver()
	d.Endorsements = []string{"tanker"}

	result := ScoreDriverJob(d, otrTankerJob())
	// Base 6 for class A plus the tanker-on-tanker bonus of 4.
	assert.Equal(t, 10, result.ScoreBreakdown["license"].Score)
}

func TestScoreDriverJob_HazmatBonusOnNonTankerJob(t *testing.T) {
	d := ownerOperatorDriver()
	d.Endorsements = []string{"h"}
	j := otrTankerJob()
	j.FreightType = normalize.FreightBox

	result := ScoreDriverJob(d, j)
	assert.Equal(t, 8, result.ScoreBreakdown["license"].Score)
}

func TestScoreDriverJob_EmptyInputsStayInBounds(t *testing.T) {
	result := ScoreDriverJob(feature.DriverFeatures{}, feature.JobFeatures{})

	assert.GreaterOrEqual(t, result.RulesScore, 0)
	assert.LessOrEqual(t, result.RulesScore, MaxRulesScore)
	assert.Len(t, result.ScoreBreakdown, 7)
}
