package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/riding-hub/internal/api/dto"
	"github.com/spec-kit/riding-hub/internal/auth"
	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/service"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// MessagesHandler manages the admin-member message log.
type MessagesHandler struct {
	service *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{service: messageService}
}

// Send POST /messages.
func (h *MessagesHandler) Send(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	msg, err := h.service.Send(c.UserContext(), principal.User, req.To, req.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": messageResponse(msg)})
}

// Conversation GET /messages?with=. Members get their admin thread;
// admins pick the member with the query parameter.
func (h *MessagesHandler) Conversation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	messages, err := h.service.Conversation(c.UserContext(), principal.User, c.Query("with"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": messageResponses(messages)})
}

// Log GET /admin/messages. The full append-only log, newest first.
func (h *MessagesHandler) Log(c *fiber.Ctx) error {
	messages, err := h.service.SystemLog(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": messageResponses(messages)})
}

func messageResponse(msg *domain.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        msg.ID,
		FromID:    msg.FromID,
		FromName:  msg.FromName,
		ToID:      msg.ToID,
		ToName:    msg.ToName,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
	}
}

func messageResponses(messages []domain.Message) []dto.MessageResponse {
	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, messageResponse(&messages[i]))
	}
	return items
}
