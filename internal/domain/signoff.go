package domain

import "time"

// SignOffStatus enumerates the lifecycle of a signature request.
type SignOffStatus string

const (
	SignOffStatusRequested SignOffStatus = "REQUESTED"
	SignOffStatusSigned    SignOffStatus = "SIGNED"
)

// SignOff records one signature slot on one skill for one explorer.
// Foreign keys are user ids; display names are denormalized so records
// survive roster changes and render without joins.
type SignOff struct {
	ID           string
	ExplorerID   string
	ExplorerName string
	Section      string
	Skill        string
	Role         SignOffRole
	AdvisorID    string
	AdvisorName  string
	Signature    *string
	Date         string // YYYY-MM-DD
	Status       SignOffStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Signed reports whether the record carries a completed signature.
func (s *SignOff) Signed() bool {
	return s.Status == SignOffStatusSigned
}

// DateString formats a timestamp the way sign-off dates are stored.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
