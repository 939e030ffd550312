package dto

import "time"

// SendMessageRequest payload. To is required for admins, who pick the
// member they are writing to; members always reach the admin inbox.
type SendMessageRequest struct {
	To   string `json:"to,omitempty"`
	Text string `json:"text"`
}

// MessageResponse is one entry in a conversation.
type MessageResponse struct {
	ID        string    `json:"id"`
	FromID    string    `json:"from_id"`
	FromName  string    `json:"from_name"`
	ToID      string    `json:"to_id"`
	ToName    string    `json:"to_name"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
