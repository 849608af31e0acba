// internal/matching/feature/types.go
package feature

import "time"

// DriverFeatures holds the normalized driver-side attributes used by the
// rule scorer and the embedding text block.
type DriverFeatures struct {
	DriverID          string
	DriverType        string
	LicenseClass      string
	ExperienceOrdinal int
	LicenseState      string
	About             string
	TeamPreference    string
	Endorsements      []string
	HaulerExperience  []string
	RoutePreferences  []string
	TextBlock         string
}

// JobFeatures holds the normalized job-side attributes.
type JobFeatures struct {
	JobID       string
	CompanyID   string
	Title       string
	Description string
	DriverType  string
	RouteType   string
	FreightType string
	TeamMode    string
	State       string
	Location    string
	Pay         string
	Status      string
	TextBlock   string
}

// CandidateFeatures is a driver-side entity as seen by a company: either a
// submitted application or a raw lead. MissingFields lists attributes that
// are absent for this candidate; leads systematically lack license class,
// endorsements, hauler experience and route preferences.
type CandidateFeatures struct {
	CandidateID       string
	CompanyID         string
	Source            string
	DriverType        string
	LicenseClass      string
	ExperienceOrdinal int
	State             string
	TeamPreference    string
	Endorsements      []string
	HaulerExperience  []string
	RoutePreferences  []string
	MissingFields     []string
	CreatedAt         time.Time
	TextBlock         string
}
