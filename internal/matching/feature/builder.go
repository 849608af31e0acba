// internal/matching/feature/builder.go
package feature

import (
	"fmt"
	"sort"
	"strings"

	"match-workers/internal/matching/normalize"
	"match-workers/internal/models"
)

// Attribute names used in CandidateFeatures.MissingFields.
const (
	FieldDriverType       = "driver type"
	FieldLicenseClass     = "license class"
	FieldExperience       = "experience"
	FieldState            = "state"
	FieldEndorsements     = "endorsements"
	FieldHaulerExperience = "hauler experience"
	FieldRoutePreferences = "route preferences"
)

// BuildDriverFeatures merges a driver's profile with their most recent
// application. Profile fields win; application fields fill gaps.
func BuildDriverFeatures(profile models.DriverProfile, latest *models.Application) DriverFeatures {
	f := DriverFeatures{
		DriverID:          profile.ID,
		DriverType:        normalize.DriverType(profile.DriverType),
		LicenseClass:      normalize.LicenseClass(profile.LicenseClass),
		ExperienceOrdinal: normalize.Experience(profile.Experience),
		LicenseState:      normalize.ExtractState(profile.LicenseState),
		About:             strings.TrimSpace(profile.About),
	}

	if latest != nil {
		if f.LicenseClass == "" {
			f.LicenseClass = normalize.LicenseClass(latest.LicenseClass)
		}
		if f.LicenseState == "" {
			f.LicenseState = normalize.ExtractState(latest.LicenseState)
		}
		f.TeamPreference = normalize.TeamPreference(latest.TeamPreference)
		f.Endorsements = normalizedSet(latest.Endorsements, nil)
		f.HaulerExperience = normalizedSet(latest.HaulerExperience, normalize.FreightType)
		f.RoutePreferences = normalizedSet(latest.RoutePreferences, normalize.RouteType)
	}

	f.TextBlock = driverTextBlock(f)
	return f
}

// BuildJobFeatures normalizes a job record. The builder is total; the
// Active-only filter lives in the store queries.
func BuildJobFeatures(job models.Job) JobFeatures {
	f := JobFeatures{
		JobID:       job.ID,
		CompanyID:   job.CompanyID,
		Title:       strings.TrimSpace(job.Title),
		Description: strings.TrimSpace(job.Description),
		DriverType:  normalize.DriverType(job.DriverType),
		RouteType:   normalize.RouteType(job.RouteType),
		FreightType: normalize.FreightType(job.FreightType),
		TeamMode:    normalize.TeamPreference(job.TeamMode),
		State:       normalize.ExtractState(job.Location),
		Location:    strings.TrimSpace(job.Location),
		Pay:         strings.TrimSpace(job.Pay),
		Status:      job.Status,
	}
	f.TextBlock = jobTextBlock(f)
	return f
}

// CandidateFromApplication builds company-side candidate features from a
// submitted application.
func CandidateFromApplication(app models.Application) CandidateFeatures {
	f := CandidateFeatures{
		CandidateID:       app.ID,
		CompanyID:         app.CompanyID,
		Source:            models.CandidateSourceApplication,
		LicenseClass:      normalize.LicenseClass(app.LicenseClass),
		ExperienceOrdinal: -1, // applications do not carry an experience bucket
		State:             normalize.ExtractState(app.LicenseState),
		TeamPreference:    normalize.TeamPreference(app.TeamPreference),
		Endorsements:      normalizedSet(app.Endorsements, nil),
		HaulerExperience:  normalizedSet(app.HaulerExperience, normalize.FreightType),
		RoutePreferences:  normalizedSet(app.RoutePreferences, normalize.RouteType),
		CreatedAt:         app.SubmittedAt,
	}

	f.MissingFields = missingCandidateFields(f)
	f.TextBlock = candidateTextBlock(f)
	return f
}

// CandidateFromLead builds company-side candidate features from a raw lead.
// Leads systematically lack license class, endorsements, hauler experience
// and route preferences; an explicit is_owner_op=false is a known value.
func CandidateFromLead(lead models.Lead) CandidateFeatures {
	f := CandidateFeatures{
		CandidateID:       lead.ID,
		CompanyID:         lead.CompanyID,
		Source:            models.CandidateSourceLead,
		ExperienceOrdinal: -1,
		State:             normalize.ExtractState(lead.State),
		CreatedAt:         lead.CreatedAt,
	}

	if lead.IsOwnerOperator != nil {
		if *lead.IsOwnerOperator {
			f.DriverType = normalize.DriverTypeOwnerOperator
		} else {
			f.DriverType = normalize.DriverTypeCompany
		}
	}
	if lead.YearsExperience != nil {
		f.ExperienceOrdinal = normalize.ExperienceFromYears(*lead.YearsExperience)
	}

	f.MissingFields = missingCandidateFields(f)
	f.TextBlock = leadTextBlock(f, lead)
	return f
}

// missingCandidateFields lists absent attributes in a stable order. For
// applications the structured fields may legitimately be empty; for leads the
// license/endorsement/hauler/route block is never collected.
func missingCandidateFields(f CandidateFeatures) []string {
	var missing []string

	if f.DriverType == "" {
		missing = append(missing, FieldDriverType)
	}
	if f.LicenseClass == "" {
		missing = append(missing, FieldLicenseClass)
	}
	if f.ExperienceOrdinal < 0 {
		missing = append(missing, FieldExperience)
	}
	if f.State == "" {
		missing = append(missing, FieldState)
	}
	if len(f.Endorsements) == 0 {
		missing = append(missing, FieldEndorsements)
	}
	if len(f.HaulerExperience) == 0 {
		missing = append(missing, FieldHaulerExperience)
	}
	if len(f.RoutePreferences) == 0 {
		missing = append(missing, FieldRoutePreferences)
	}

	return missing
}

// normalizedSet turns a checkbox map into a sorted slice of canonical values.
func normalizedSet(set map[string]bool, canon func(string) string) []string {
	if len(set) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(set))
	out := make([]string, 0, len(set))
	for key, checked := range set {
		if !checked {
			continue
		}
		value := strings.ToLower(strings.TrimSpace(key))
		if canon != nil {
			value = canon(value)
		}
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// --- PII-free text blocks for embedding ---

func driverTextBlock(f DriverFeatures) string {
	var parts []string
	if f.DriverType != "" {
		parts = append(parts, fmt.Sprintf("%s driver", f.DriverType))
	}
	if f.LicenseClass != "" {
		parts = append(parts, fmt.Sprintf("class %s license", f.LicenseClass))
	}
	if f.ExperienceOrdinal >= 0 {
		parts = append(parts, experiencePhrase(f.ExperienceOrdinal))
	}
	if len(f.RoutePreferences) > 0 {
		parts = append(parts, "prefers "+strings.Join(f.RoutePreferences, ", ")+" routes")
	}
	if len(f.HaulerExperience) > 0 {
		parts = append(parts, "hauls "+strings.Join(f.HaulerExperience, ", "))
	}
	if len(f.Endorsements) > 0 {
		parts = append(parts, "endorsements: "+strings.Join(f.Endorsements, ", "))
	}
	if f.About != "" {
		parts = append(parts, f.About)
	}
	return strings.Join(parts, ". ")
}

func jobTextBlock(f JobFeatures) string {
	var parts []string
	if f.Title != "" {
		parts = append(parts, f.Title)
	}
	if f.DriverType != "" {
		parts = append(parts, fmt.Sprintf("%s position", f.DriverType))
	}
	if f.RouteType != "" {
		parts = append(parts, f.RouteType+" routes")
	}
	if f.FreightType != "" {
		parts = append(parts, f.FreightType+" freight")
	}
	if f.State != "" {
		parts = append(parts, "based in "+f.State)
	}
	if f.Description != "" {
		parts = append(parts, f.Description)
	}
	return strings.Join(parts, ". ")
}

func candidateTextBlock(f CandidateFeatures) string {
	var parts []string
	if f.DriverType != "" {
		parts = append(parts, fmt.Sprintf("%s driver", f.DriverType))
	}
	if f.LicenseClass != "" {
		parts = append(parts, fmt.Sprintf("class %s license", f.LicenseClass))
	}
	if f.ExperienceOrdinal >= 0 {
		parts = append(parts, experiencePhrase(f.ExperienceOrdinal))
	}
	if f.State != "" {
		parts = append(parts, "located in "+f.State)
	}
	if len(f.RoutePreferences) > 0 {
		parts = append(parts, "prefers "+strings.Join(f.RoutePreferences, ", ")+" routes")
	}
	if len(f.HaulerExperience) > 0 {
		parts = append(parts, "hauls "+strings.Join(f.HaulerExperience, ", "))
	}
	return strings.Join(parts, ". ")
}

func leadTextBlock(f CandidateFeatures, lead models.Lead) string {
	base := candidateTextBlock(f)
	if lead.TruckMake != "" || lead.TruckModel != "" {
		truck := strings.TrimSpace(fmt.Sprintf("%s %s", lead.TruckMake, lead.TruckModel))
		if lead.TruckYear > 0 {
			truck = fmt.Sprintf("%d %s", lead.TruckYear, truck)
		}
		if base != "" {
			return base + ". owns a " + truck
		}
		return "owns a " + truck
	}
	return base
}

func experiencePhrase(ordinal int) string {
	switch ordinal {
	case 0:
		return "no driving experience"
	case 1:
		return "less than 1 year experience"
	case 2:
		return "1-3 years experience"
	case 3:
		return "3-5 years experience"
	default:
		return "5+ years experience"
	}
}
