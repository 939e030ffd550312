package service

import (
	"context"
	"time"

	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/repository"
)

// ExportService assembles the one-document backup of all collections.
type ExportService struct {
	signoffs repository.SignOffRepository
	messages repository.MessageRepository
	shifts   repository.ShiftLogRepository
	users    repository.UserRepository
}

// NewExportService constructs the service.
func NewExportService(signoffs repository.SignOffRepository, messages repository.MessageRepository, shifts repository.ShiftLogRepository, users repository.UserRepository) *ExportService {
	return &ExportService{signoffs: signoffs, messages: messages, shifts: shifts, users: users}
}

// ExportedUser is a user record with credentials stripped.
type ExportedUser struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	DisplayName string      `json:"display_name"`
	Email       *string     `json:"email,omitempty"`
	Role        domain.Role `json:"role"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ExportBundle is the backup document. There is no import path.
type ExportBundle struct {
	ExportedAt time.Time         `json:"exported_at"`
	SignOffs   []domain.SignOff  `json:"signoffs"`
	Messages   []domain.Message  `json:"messages"`
	Hours      []domain.ShiftLog `json:"hours"`
	Users      []ExportedUser    `json:"users"`
}

// Export gathers every collection into a single document.
func (s *ExportService) Export(ctx context.Context) (*ExportBundle, error) {
	signoffs, err := s.signoffs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	hours, err := s.shifts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	exported := make([]ExportedUser, 0, len(users))
	for _, u := range users {
		exported = append(exported, ExportedUser{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Email:       u.Email,
			Role:        u.Role,
			CreatedAt:   u.CreatedAt,
		})
	}

	return &ExportBundle{
		ExportedAt: time.Now(),
		SignOffs:   signoffs,
		Messages:   messages,
		Hours:      hours,
		Users:      exported,
	}, nil
}
