// internal/matching/score/companycandidate.go
package score

import (
	"fmt"
	"time"

	"match-workers/internal/matching/feature"
	"match-workers/internal/matching/normalize"
	"match-workers/internal/models"
)

// Company->candidate dimension weights, summing to 90. There is no hard
// block in this direction: a company browsing leads should still see a low
// but nonzero score rather than an exclusion.
const (
	candWeightDriverType = 20
	candWeightLicense    = 20
	candWeightExperience = 15
	candWeightCombined   = 20 // route 7 + freight 7 + team 6
	candWeightLocation   = 10
	candWeightRecency    = 5
)

// candidateExperienceScores is indexed by the experience ordinal.
var candidateExperienceScores = [5]int{3, 6, 9, 12, 15}

// candidateLicenseBaseScores maps license class to its base contribution on
// the 20-point company-side scale.
var candidateLicenseBaseScores = map[string]int{
	normalize.LicenseClassA:      16,
	normalize.LicenseClassB:      10,
	normalize.LicenseClassC:      6,
	normalize.LicenseClassPermit: 2,
}

// ScoreCompanyCandidate computes the rules-only match for a candidate
// (application or lead) against one of the company's jobs. Candidates built
// from leads get one caution per missing attribute appended after the
// component cautions.
func ScoreCompanyCandidate(cand feature.CandidateFeatures, j feature.JobFeatures, now time.Time) MatchResult {
	o := RuleOutcome{Components: make(ScoreBreakdown, 6)}

	c, reasons := scoreCandidateDriverType(cand, j)
	o.add("driverType", c, reasons)

	c, reasons = scoreCandidateLicense(cand, j)
	o.add("licenseClass", c, reasons)

	c, reasons = scoreCandidateExperience(cand.ExperienceOrdinal)
	o.add("experience", c, reasons)

	c, reasons = scoreCandidateCombined(cand, j)
	o.add("routeFreightTeam", c, reasons)

	c, reasons = scoreLocationFit(cand.State, j.State, candWeightLocation, 6, 5, 2)
	o.add("location", c, reasons)

	c, reasons = scoreRecency(cand.CreatedAt, now)
	o.add("recency", c, reasons)

	result := finalize(o)

	if cand.Source == models.CandidateSourceLead {
		for _, field := range cand.MissingFields {
			result.Cautions = append(result.Cautions, fmt.Sprintf("Limited data — %s not available", field))
		}
	}

	return result
}

func scoreCandidateDriverType(cand feature.CandidateFeatures, j feature.JobFeatures) (ComponentScore, []MatchReason) {
	if cand.DriverType == "" || j.DriverType == "" {
		return ComponentScore{Score: 10, MaxScore: candWeightDriverType, Detail: "driver type unknown"}, nil
	}
	if cand.DriverType == j.DriverType {
		return ComponentScore{Score: candWeightDriverType, MaxScore: candWeightDriverType, Detail: "exact driver type match"},
			[]MatchReason{{Text: fmt.Sprintf("Driver type matches (%s)", cand.DriverType), Positive: true}}
	}
	if ownerLeaseCompatible(cand.DriverType, j.DriverType) {
		return ComponentScore{Score: 12, MaxScore: candWeightDriverType, Detail: "owner-operator/lease compatible"},
			[]MatchReason{{Text: "Owner-operator and lease positions are compatible", Positive: true}}
	}
	// No hard block in this direction.
	return ComponentScore{Score: 0, MaxScore: candWeightDriverType, Detail: "driver type mismatch"},
		[]MatchReason{{Text: fmt.Sprintf("Job is for %s drivers, not %s", j.DriverType, cand.DriverType), Positive: false}}
}

func scoreCandidateLicense(cand feature.CandidateFeatures, j feature.JobFeatures) (ComponentScore, []MatchReason) {
	base, known := candidateLicenseBaseScores[cand.LicenseClass]
	if !known {
		base = 10
	}

	var reasons []MatchReason
	bonus := 1
	switch {
	case j.FreightType == normalize.FreightTanker && hasTankerEndorsement(cand.Endorsements):
		bonus = 4
		reasons = append(reasons, MatchReason{Text: "Tanker endorsement for a tanker job", Positive: true})
	case hasHazmatEndorsement(cand.Endorsements):
		bonus = 2
		reasons = append(reasons, MatchReason{Text: "Holds a hazmat endorsement", Positive: true})
	}

	total := base + bonus
	if total > candWeightLicense {
		total = candWeightLicense
	}
	if cand.LicenseClass == normalize.LicenseClassA {
		reasons = append(reasons, MatchReason{Text: "Holds a Class A license", Positive: true})
	}

	return ComponentScore{Score: total, MaxScore: candWeightLicense, Detail: "license base plus endorsement bonus"}, reasons
}

func scoreCandidateExperience(ordinal int) (ComponentScore, []MatchReason) {
	if ordinal < 0 || ordinal >= len(candidateExperienceScores) {
		return ComponentScore{Score: 7, MaxScore: candWeightExperience, Detail: "experience unknown"}, nil
	}
	c := ComponentScore{Score: candidateExperienceScores[ordinal], MaxScore: candWeightExperience, Detail: "experience ordinal lookup"}
	if ordinal >= 3 {
		return c, []MatchReason{{Text: "Experienced driver", Positive: true}}
	}
	return c, nil
}

// scoreCandidateCombined allocates 7/7/6 to route, freight and team, using
// the same match/partial/no-data policy as the driver->job components.
func scoreCandidateCombined(cand feature.CandidateFeatures, j feature.JobFeatures) (ComponentScore, []MatchReason) {
	route, routeReasons := scoreRouteFit(cand.RoutePreferences, j.RouteType, 7, 5, 4, 4, 1)
	freight, freightReasons := scoreFreightFit(cand.HaulerExperience, j.FreightType, 7, 5, 4, 2, 1)
	team, teamReasons := scoreTeamFit(cand.TeamPreference, j.TeamMode, 6, 3)

	c := ComponentScore{
		Score:    route.Score + freight.Score + team.Score,
		MaxScore: candWeightCombined,
		Detail:   "route + freight + team",
	}

	reasons := append(routeReasons, freightReasons...)
	reasons = append(reasons, teamReasons...)
	return c, reasons
}

// scoreRecency rewards fresh submissions: a week-old candidate is hot, a
// month-old one lukewarm, anything older barely counts.
func scoreRecency(createdAt, now time.Time) (ComponentScore, []MatchReason) {
	if createdAt.IsZero() {
		return ComponentScore{Score: 2, MaxScore: candWeightRecency, Detail: "submission date unknown"}, nil
	}
	age := now.Sub(createdAt)
	switch {
	case age <= 7*24*time.Hour:
		return ComponentScore{Score: 5, MaxScore: candWeightRecency, Detail: "submitted within 7 days"},
			[]MatchReason{{Text: "Recently active candidate", Positive: true}}
	case age <= 30*24*time.Hour:
		return ComponentScore{Score: 3, MaxScore: candWeightRecency, Detail: "submitted within 30 days"}, nil
	default:
		return ComponentScore{Score: 1, MaxScore: candWeightRecency, Detail: "stale submission"}, nil
	}
}
