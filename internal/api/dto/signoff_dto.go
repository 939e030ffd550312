package dto

import (
	"time"

	"github.com/spec-kit/riding-hub/internal/domain"
)

// RequestSignOffRequest payload for a new signature request.
type RequestSignOffRequest struct {
	Skill     string             `json:"skill"`
	Role      domain.SignOffRole `json:"role"`
	AdvisorID string             `json:"advisor_id"`
}

// SignRequestPayload carries the advisor's typed signature.
type SignRequestPayload struct {
	Signature string `json:"signature"`
}

// SignOffResponse is one signature slot on one skill.
type SignOffResponse struct {
	ID           string               `json:"id"`
	ExplorerID   string               `json:"explorer_id"`
	ExplorerName string               `json:"explorer_name"`
	Section      string               `json:"section"`
	Skill        string               `json:"skill"`
	Role         domain.SignOffRole   `json:"role"`
	AdvisorID    string               `json:"advisor_id"`
	AdvisorName  string               `json:"advisor_name"`
	Signature    *string              `json:"signature,omitempty"`
	Date         string               `json:"date"`
	Status       domain.SignOffStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
}

// SectionProgressResponse summarizes one booklet section.
type SectionProgressResponse struct {
	Title    string `json:"title"`
	ALS      bool   `json:"als"`
	Signed   int    `json:"signed"`
	Required int    `json:"required"`
	Percent  int    `json:"percent"`
}

// ProgressResponse is the derived view of an explorer's booklet.
type ProgressResponse struct {
	ExplorerID  string                    `json:"explorer_id"`
	Percent     int                       `json:"percent"`
	Rank        string                    `json:"rank"`
	ALSUnlocked bool                      `json:"als_unlocked"`
	Sections    []SectionProgressResponse `json:"sections"`
	Signed      []SignOffResponse         `json:"signed"`
	Pending     []SignOffResponse         `json:"pending"`
}

// AdvisorSummaryResponse aggregates one advisor's signed activity.
type AdvisorSummaryResponse struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	LastDate string `json:"last_date"`
}

// AdvisorActivityResponse pairs an advisor's summary with their records.
type AdvisorActivityResponse struct {
	Summary  AdvisorSummaryResponse `json:"summary"`
	SignOffs []SignOffResponse      `json:"signoffs"`
}

// LeaderboardEntryResponse ranks one explorer by signed count.
type LeaderboardEntryResponse struct {
	ExplorerID   string `json:"explorer_id"`
	ExplorerName string `json:"explorer_name"`
	Signed       int    `json:"signed"`
	Percent      int    `json:"percent"`
}

// SectionResponse is one curriculum section definition.
type SectionResponse struct {
	Title  string   `json:"title"`
	ALS    bool     `json:"als"`
	Skills []string `json:"skills"`
}
