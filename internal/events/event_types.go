package events

import (
	"time"

	"github.com/spec-kit/riding-hub/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSignOffRequested EventType = "signoff_requested"
	EventSignOffSigned    EventType = "signoff_signed"
	EventSignOffCancelled EventType = "signoff_cancelled"
	EventShiftLogged      EventType = "shift_logged"
	EventMessageSent      EventType = "message_sent"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SignOffRequestedPayload payload.
type SignOffRequestedPayload struct {
	SignOffID    string             `json:"signoff_id"`
	ExplorerName string             `json:"explorer_name"`
	Skill        string             `json:"skill"`
	Role         domain.SignOffRole `json:"role"`
	AdvisorID    string             `json:"advisor_id"`
	AdvisorName  string             `json:"advisor_name"`
}

// SignOffSignedPayload payload.
type SignOffSignedPayload struct {
	SignOffID    string             `json:"signoff_id"`
	ExplorerName string             `json:"explorer_name"`
	Skill        string             `json:"skill"`
	Role         domain.SignOffRole `json:"role"`
	AdvisorName  string             `json:"advisor_name"`
	Date         string             `json:"date"`
}

// SignOffCancelledPayload payload.
type SignOffCancelledPayload struct {
	SignOffID    string             `json:"signoff_id"`
	ExplorerName string             `json:"explorer_name"`
	Skill        string             `json:"skill"`
	Role         domain.SignOffRole `json:"role"`
}

// ShiftLoggedPayload payload.
type ShiftLoggedPayload struct {
	ShiftLogID string  `json:"shift_log_id"`
	ExplorerID string  `json:"explorer_id"`
	Date       string  `json:"date"`
	TotalHours float64 `json:"total_hours"`
}

// MessageSentPayload payload.
type MessageSentPayload struct {
	MessageID   string `json:"message_id"`
	FromName    string `json:"from_name"`
	ToName      string `json:"to_name"`
	TextPreview string `json:"text_preview"`
}
