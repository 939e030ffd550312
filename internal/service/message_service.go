package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/events"
	"github.com/spec-kit/riding-hub/internal/repository"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// MessageService routes the two-party message channel. There is no
// peer-to-peer messaging: every non-admin thread has the admin on the
// other end, so the recipient is computed from the sender's role
// rather than chosen.
type MessageService struct {
	messages   repository.MessageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewMessageService constructs the service.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, dispatcher events.Dispatcher) *MessageService {
	return &MessageService{messages: messages, users: users, dispatcher: dispatcher, now: time.Now}
}

// Send appends a message. Non-admin senders always reach the admin;
// admin senders must name the counterpart.
func (s *MessageService) Send(ctx context.Context, actor *domain.User, toID, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("message text required", nil)
	}

	recipient, err := s.resolveCounterpart(ctx, actor, toID)
	if err != nil {
		return nil, err
	}
	if recipient.ID == actor.ID {
		return nil, apperrors.NewValidationError("cannot message yourself", nil)
	}

	msg := &domain.Message{
		FromID:   actor.ID,
		FromName: actor.DisplayName,
		ToID:     recipient.ID,
		ToName:   recipient.DisplayName,
		Text:     text,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventMessageSent,
			ActorID:   actor.ID,
			Timestamp: s.now(),
			Payload: events.MessageSentPayload{
				MessageID:   msg.ID,
				FromName:    msg.FromName,
				ToName:      msg.ToName,
				TextPreview: preview(msg.Text),
			},
		})
	}
	return msg, nil
}

// Conversation returns the caller's thread, oldest first. For admins
// the counterpart must be named; for everyone else it is the admin.
func (s *MessageService) Conversation(ctx context.Context, actor *domain.User, withID string) ([]domain.Message, error) {
	counterpart, err := s.resolveCounterpart(ctx, actor, withID)
	if err != nil {
		return nil, err
	}
	return s.messages.ListConversation(ctx, actor.ID, counterpart.ID)
}

// SystemLog returns every message newest first, for the admin
// dashboard.
func (s *MessageService) SystemLog(ctx context.Context) ([]domain.Message, error) {
	return s.messages.ListAll(ctx)
}

func (s *MessageService) resolveCounterpart(ctx context.Context, actor *domain.User, withID string) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		admin, err := s.users.GetAdmin(ctx)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("admin account", nil)
			}
			return nil, err
		}
		return admin, nil
	}

	if withID == "" {
		return nil, apperrors.NewValidationError("recipient required", nil)
	}
	user, err := s.users.GetByID(ctx, withID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("recipient", nil)
		}
		return nil, err
	}
	return user, nil
}

func preview(text string) string {
	const max = 80
	if len(text) <= max {
		return text
	}
	return text[:max]
}
