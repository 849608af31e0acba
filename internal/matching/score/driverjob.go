// internal/matching/score/driverjob.go
package score

import (
	"fmt"
	"strings"

	"match-workers/internal/matching/feature"
	"match-workers/internal/matching/normalize"
)

// Driver->job dimension weights, summing to 90.
const (
	weightDriverType = 20
	weightRoute      = 15
	weightFreight    = 15
	weightTeam       = 10
	weightLocation   = 10
	weightExperience = 10
	weightLicense    = 10
)

// experienceScores is indexed by the experience ordinal (none..5+).
var experienceScores = [5]int{2, 4, 6, 8, 10}

// licenseBaseScores maps canonical license class to its base contribution.
var licenseBaseScores = map[string]int{
	normalize.LicenseClassA:      6,
	normalize.LicenseClassB:      4,
	normalize.LicenseClassC:      2,
	normalize.LicenseClassPermit: 1,
}

// ScoreDriverJob computes the rules-only match for a driver against a job.
// Pure function: identical features always produce the identical result.
func ScoreDriverJob(d feature.DriverFeatures, j feature.JobFeatures) MatchResult {
	o := RuleOutcome{Components: make(ScoreBreakdown, 7)}

	c, reasons := scoreDriverTypeFit(d, j, &o.HardBlocked)
	o.add("driverType", c, reasons)

	c, reasons = scoreRouteFit(d.RoutePreferences, j.RouteType, weightRoute, 10, 8, 8, 3)
	o.add("route", c, reasons)

	c, reasons = scoreFreightFit(d.HaulerExperience, j.FreightType, weightFreight, 10, 8, 5, 3)
	o.add("freight", c, reasons)

	c, reasons = scoreTeamFit(d.TeamPreference, j.TeamMode, weightTeam, 5)
	o.add("team", c, reasons)

	c, reasons = scoreLocationFit(d.LicenseState, j.State, weightLocation, 6, 5, 2)
	o.add("location", c, reasons)

	c, reasons = scoreExperienceFit(d.ExperienceOrdinal)
	o.add("experience", c, reasons)

	c, reasons = scoreLicenseFit(d, j)
	o.add("license", c, reasons)

	return finalize(o)
}

// add appends one component and its reasons in a stable order.
func (o *RuleOutcome) add(name string, c ComponentScore, reasons []MatchReason) {
	o.Components[name] = c
	o.Reasons = append(o.Reasons, reasons...)
}

func scoreDriverTypeFit(d feature.DriverFeatures, j feature.JobFeatures, hardBlocked *bool) (ComponentScore, []MatchReason) {
	if d.DriverType == "" || j.DriverType == "" {
		return ComponentScore{Score: 10, MaxScore: weightDriverType, Detail: "driver type unknown"}, nil
	}
	if d.DriverType == j.DriverType {
		return ComponentScore{Score: weightDriverType, MaxScore: weightDriverType, Detail: "exact driver type match"},
			[]MatchReason{{Text: fmt.Sprintf("Driver type matches (%s)", d.DriverType), Positive: true}}
	}
	if ownerLeaseCompatible(d.DriverType, j.DriverType) {
		return ComponentScore{Score: 12, MaxScore: weightDriverType, Detail: "owner-operator/lease compatible"},
			[]MatchReason{{Text: "Owner-operator and lease positions are compatible", Positive: true}}
	}
	*hardBlocked = true
	return ComponentScore{Score: 0, MaxScore: weightDriverType, Detail: "driver type mismatch"},
		[]MatchReason{{Text: fmt.Sprintf("Job is for %s drivers, not %s", j.DriverType, d.DriverType), Positive: false}}
}

func ownerLeaseCompatible(a, b string) bool {
	return (a == normalize.DriverTypeOwnerOperator && b == normalize.DriverTypeLease) ||
		(a == normalize.DriverTypeLease && b == normalize.DriverTypeOwnerOperator)
}

func scoreRouteFit(prefs []string, jobRoute string, max, partial, unspecified, noPrefs, mismatch int) (ComponentScore, []MatchReason) {
	if jobRoute == "" {
		return ComponentScore{Score: unspecified, MaxScore: max, Detail: "job route unspecified"}, nil
	}
	if len(prefs) == 0 {
		return ComponentScore{Score: noPrefs, MaxScore: max, Detail: "no route preferences set"}, nil
	}
	if contains(prefs, jobRoute) {
		return ComponentScore{Score: max, MaxScore: max, Detail: "route preference match"},
			[]MatchReason{{Text: fmt.Sprintf("Prefers %s routes", jobRoute), Positive: true}}
	}
	if otrRegionalPartial(prefs, jobRoute) {
		return ComponentScore{Score: partial, MaxScore: max, Detail: "otr/regional partial match"},
			[]MatchReason{{Text: "OTR and regional routes are a close fit", Positive: true}}
	}
	return ComponentScore{Score: mismatch, MaxScore: max, Detail: "route mismatch"},
		[]MatchReason{{Text: fmt.Sprintf("Does not prefer %s routes", jobRoute), Positive: false}}
}

// otrRegionalPartial treats OTR and regional as near-substitutes.
func otrRegionalPartial(prefs []string, jobRoute string) bool {
	if jobRoute == normalize.RouteOTR {
		return contains(prefs, normalize.RouteRegional)
	}
	if jobRoute == normalize.RouteRegional {
		return contains(prefs, normalize.RouteOTR)
	}
	return false
}

func scoreFreightFit(haulers []string, jobFreight string, max, versatile, unspecified, noData, mismatch int) (ComponentScore, []MatchReason) {
	if jobFreight == "" {
		return ComponentScore{Score: unspecified, MaxScore: max, Detail: "job freight unspecified"}, nil
	}
	if len(haulers) == 0 {
		return ComponentScore{Score: noData, MaxScore: max, Detail: "no hauler experience data"}, nil
	}
	if contains(haulers, jobFreight) {
		return ComponentScore{Score: max, MaxScore: max, Detail: "hauler experience match"},
			[]MatchReason{{Text: fmt.Sprintf("Has hauled %s freight", jobFreight), Positive: true}}
	}
	if len(haulers) >= 4 {
		return ComponentScore{Score: versatile, MaxScore: max, Detail: "versatile hauler, no exact match"},
			[]MatchReason{{Text: fmt.Sprintf("Versatile hauler with %d freight types", len(haulers)), Positive: true}}
	}
	return ComponentScore{Score: mismatch, MaxScore: max, Detail: "freight mismatch"},
		[]MatchReason{{Text: fmt.Sprintf("No %s experience", jobFreight), Positive: false}}
}

func scoreTeamFit(pref, jobMode string, max, neutral int) (ComponentScore, []MatchReason) {
	if pref == "" || jobMode == "" {
		return ComponentScore{Score: neutral, MaxScore: max, Detail: "team preference unknown"}, nil
	}
	if pref == jobMode || pref == normalize.TeamBoth || jobMode == normalize.TeamBoth {
		return ComponentScore{Score: max, MaxScore: max, Detail: "team preference match"},
			[]MatchReason{{Text: fmt.Sprintf("Open to %s driving", jobMode), Positive: true}}
	}
	return ComponentScore{Score: 0, MaxScore: max, Detail: "team preference mismatch"},
		[]MatchReason{{Text: fmt.Sprintf("Prefers %s but job is %s", pref, jobMode), Positive: false}}
}

func scoreLocationFit(state, jobState string, max, neighbor, neutral, far int) (ComponentScore, []MatchReason) {
	if state == "" || jobState == "" {
		return ComponentScore{Score: neutral, MaxScore: max, Detail: "location unknown"}, nil
	}
	if state == jobState {
		return ComponentScore{Score: max, MaxScore: max, Detail: "same state"},
			[]MatchReason{{Text: fmt.Sprintf("Located in %s", jobState), Positive: true}}
	}
	if normalize.AreNeighboringStates(state, jobState) {
		return ComponentScore{Score: neighbor, MaxScore: max, Detail: "neighboring state"},
			[]MatchReason{{Text: fmt.Sprintf("%s borders %s", state, jobState), Positive: true}}
	}
	return ComponentScore{Score: far, MaxScore: max, Detail: "distant state"},
		[]MatchReason{{Text: fmt.Sprintf("Located in %s, job is in %s", state, jobState), Positive: false}}
}

func scoreExperienceFit(ordinal int) (ComponentScore, []MatchReason) {
	if ordinal < 0 || ordinal >= len(experienceScores) {
		return ComponentScore{Score: 5, MaxScore: weightExperience, Detail: "experience unknown"}, nil
	}
	c := ComponentScore{Score: experienceScores[ordinal], MaxScore: weightExperience, Detail: "experience ordinal lookup"}
	if ordinal >= 3 {
		return c, []MatchReason{{Text: "Experienced driver", Positive: true}}
	}
	return c, nil
}

func scoreLicenseFit(d feature.DriverFeatures, j feature.JobFeatures) (ComponentScore, []MatchReason) {
	base, known := licenseBaseScores[d.LicenseClass]
	if !known {
		base = 3
	}

	var reasons []MatchReason
	bonus := 1
	switch {
	case j.FreightType == normalize.FreightTanker && hasTankerEndorsement(d.Endorsements):
		bonus = 4
		reasons = append(reasons, MatchReason{Text: "Tanker endorsement for a tanker job", Positive: true})
	case hasHazmatEndorsement(d.Endorsements):
		bonus = 2
		reasons = append(reasons, MatchReason{Text: "Holds a hazmat endorsement", Positive: true})
	}

	total := base + bonus
	if total > weightLicense {
		total = weightLicense
	}
	if d.LicenseClass == normalize.LicenseClassA {
		reasons = append(reasons, MatchReason{Text: "Holds a Class A license", Positive: true})
	}

	return ComponentScore{Score: total, MaxScore: weightLicense, Detail: "license base plus endorsement bonus"}, reasons
}

func hasTankerEndorsement(endorsements []string) bool {
	for _, e := range endorsements {
		if strings.Contains(e, "tank") || e == "x" || e == "n" {
			return true
		}
	}
	return false
}

func hasHazmatEndorsement(endorsements []string) bool {
	for _, e := range endorsements {
		if strings.Contains(e, "hazmat") || e == "h" || e == "x" {
			return true
		}
	}
	return false
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
