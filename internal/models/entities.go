// internal/models/entities.go
package models

import "time"

// Job posting status values. Only Active jobs participate in scoring.
const (
	JobStatusDraft  = "Draft"
	JobStatusActive = "Active"
	JobStatusPaused = "Paused"
	JobStatusClosed = "Closed"
)

// DriverProfile is the driver-side source record, owned by external storage.
type DriverProfile struct {
	ID           string
	DriverType   string
	LicenseClass string
	Experience   string // free-form bucket, e.g. "5+ years"
	LicenseState string
	Zip          string
	About        string
	UpdatedAt    time.Time
}

// Job is the employer-side source record.
type Job struct {
	ID          string
	CompanyID   string
	Title       string
	Description string
	DriverType  string
	RouteType   string
	FreightType string
	TeamMode    string
	Location    string
	Pay         string
	Status      string
	UpdatedAt   time.Time
}

// Application is a driver's submission against a company's job. The boolean
// maps mirror the external form fields (endorsement/hauler/route checkboxes).
type Application struct {
	ID               string
	DriverID         string
	CompanyID        string
	JobID            string
	FirstName        string
	LastName         string
	LicenseClass     string
	LicenseState     string
	Endorsements     map[string]bool
	HaulerExperience map[string]bool
	RoutePreferences map[string]bool
	TeamPreference   string
	SubmittedAt      time.Time
	UpdatedAt        time.Time
}

// Lead is a raw marketing lead. Pointer fields distinguish "unknown" from an
// explicit zero value; is_owner_op=false is a known answer, not missing data.
type Lead struct {
	ID              string
	CompanyID       string
	FullName        string
	State           string
	YearsExperience *int
	IsOwnerOperator *bool
	TruckYear       int
	TruckMake       string
	TruckModel      string
	CreatedAt       time.Time
}
