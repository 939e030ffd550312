package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/riding-hub/internal/api/dto"
	"github.com/spec-kit/riding-hub/internal/auth"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// SiteHandler serves the shared-password gate in front of the app.
type SiteHandler struct {
	gate *auth.SiteGate
}

// NewSiteHandler constructs handler.
func NewSiteHandler(gate *auth.SiteGate) *SiteHandler {
	return &SiteHandler{gate: gate}
}

// Unlock POST /site/unlock.
func (h *SiteHandler) Unlock(c *fiber.Ctx) error {
	var req dto.UnlockSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	token, err := h.gate.Unlock(c.UserContext(), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrWrongSitePassword) {
			return apperrors.NewUnauthorized("incorrect site password")
		}
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UnlockSiteResponse{SiteToken: token}})
}
