package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spec-kit/riding-hub/internal/config"
	"github.com/spec-kit/riding-hub/internal/events"
	"github.com/spec-kit/riding-hub/internal/repository"
)

// NotificationService reacts to domain events: every event is logged,
// and advisors with an e-mail address get a note when a signature
// request lands on their desk. Notification failures never reach the
// caller that triggered the event.
type NotificationService struct {
	dispatcher events.Dispatcher
	users      repository.UserRepository
	logger     *zap.Logger
	cfg        config.SMTPConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, users repository.UserRepository, logger *zap.Logger, cfg config.SMTPConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		users:      users,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSignOffRequested, n.handleSignOffRequested)
	n.dispatcher.Subscribe(events.EventSignOffSigned, n.handleLogged("SignOffSigned"))
	n.dispatcher.Subscribe(events.EventSignOffCancelled, n.handleLogged("SignOffCancelled"))
	n.dispatcher.Subscribe(events.EventShiftLogged, n.handleLogged("ShiftLogged"))
	n.dispatcher.Subscribe(events.EventMessageSent, n.handleLogged("MessageSent"))
}

func (n *NotificationService) handleSignOffRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("SignOffRequested", zap.Any("payload", event.Payload))

	payload, ok := event.Payload.(events.SignOffRequestedPayload)
	if !ok {
		return nil
	}
	advisor, err := n.users.GetByID(ctx, payload.AdvisorID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			n.logger.Warn("advisor lookup failed", zap.Error(err))
		}
		return nil
	}
	if advisor.Email == nil || n.cfg.Host == "" {
		return nil
	}

	subject := fmt.Sprintf("Signature request from %s", payload.ExplorerName)
	body := fmt.Sprintf(
		"%s has requested your %s signature on %q.\n\nSign in to Riding Hub to review the request.\n",
		payload.ExplorerName, payload.Role, payload.Skill,
	)
	if err := n.sendMail(ctx, *advisor.Email, subject, body); err != nil {
		n.logger.Warn("signature request e-mail failed",
			zap.String("advisor", payload.AdvisorName),
			zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleLogged(name string) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		n.logger.Info(name, zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
		return nil
	}
}

func (n *NotificationService) sendMail(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
