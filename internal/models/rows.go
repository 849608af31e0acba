// internal/models/rows.go
package models

import "time"

// Queue entity types.
const (
	EntityTypeDriverProfile = "driver_profile"
	EntityTypeJob           = "job"
	EntityTypeApplication   = "application"
	EntityTypeLead          = "lead"
)

// Queue item lifecycle states.
const (
	QueueStatusPending    = "pending"
	QueueStatusProcessing = "processing"
	QueueStatusDone       = "done"
	QueueStatusError      = "error"
)

// Candidate source discriminators for company_driver_match_scores.
const (
	CandidateSourceApplication = "application"
	CandidateSourceLead        = "lead"
)

// QueueItem is one dirty-entity record in the recompute queue.
type QueueItem struct {
	ID          string
	EntityType  string
	EntityID    string
	CompanyID   string // optional, set for application/lead items
	Status      string
	Attempts    int
	MaxAttempts int
	ScheduledAt time.Time
	LastError   string
}

// DriverJobScore is one persisted driver->job match row, keyed by
// (driver_id, job_id) and idempotently overwritten on recompute.
type DriverJobScore struct {
	DriverID      string
	JobID         string
	OverallScore  int
	RulesScore    int
	SemanticScore *int
	Breakdown     []byte // ScoreBreakdown as JSON
	TopReasons    []string
	Cautions      []string
	DegradedMode  bool
	UpdatedAt     time.Time
}

// CompanyDriverScore is one persisted company->candidate match row, keyed by
// (company_id, job_id, candidate_source, candidate_id).
type CompanyDriverScore struct {
	CompanyID       string
	JobID           string
	CandidateSource string
	CandidateID     string
	OverallScore    int
	RulesScore      int
	SemanticScore   *int
	Breakdown       []byte
	TopReasons      []string
	Cautions        []string
	DegradedMode    bool
	UpdatedAt       time.Time
}

// EmbeddingRow is one cached embedding vector, keyed by (entity_type,
// entity_id); the content hash is the invalidation signal.
type EmbeddingRow struct {
	EntityType  string
	EntityID    string
	ContentHash string
	Embedding   []float64
	Dimensions  int
	Provider    string
	Model       string
	UpdatedAt   time.Time
}
