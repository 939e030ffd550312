package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/riding-hub/internal/api/dto"
	"github.com/spec-kit/riding-hub/internal/auth"
	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/service"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// SignOffsHandler manages the skill signature ledger.
type SignOffsHandler struct {
	service *service.SignOffService
}

// NewSignOffsHandler constructs handler.
func NewSignOffsHandler(signOffService *service.SignOffService) *SignOffsHandler {
	return &SignOffsHandler{service: signOffService}
}

// Request POST /explorers/:id/signoffs.
func (h *SignOffsHandler) Request(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.RequestSignOffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Skill == "" || req.Role == "" || req.AdvisorID == "" {
		return apperrors.NewValidationError("skill, role, advisor_id required", nil)
	}
	signoff, err := h.service.RequestSignOff(c.UserContext(), principal.User, service.RequestSignOffInput{
		ExplorerID: c.Params("id"),
		Skill:      req.Skill,
		Role:       req.Role,
		AdvisorID:  req.AdvisorID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": signOffResponse(signoff)})
}

// Sign POST /signoffs/:id/sign.
func (h *SignOffsHandler) Sign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.SignRequestPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	signoff, err := h.service.SignRequest(c.UserContext(), principal.User, c.Params("id"), req.Signature)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": signOffResponse(signoff)})
}

// Cancel DELETE /signoffs/:id.
func (h *SignOffsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.CancelSignOff(c.UserContext(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Progress GET /explorers/:id/progress.
func (h *SignOffsHandler) Progress(c *fiber.Ctx) error {
	report, err := h.service.ExplorerProgress(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": progressResponse(report)})
}

// Pending GET /advisors/me/pending.
func (h *SignOffsHandler) Pending(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	pending, err := h.service.PendingForAdvisor(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": signOffResponses(pending)})
}

func signOffResponse(signoff *domain.SignOff) dto.SignOffResponse {
	return dto.SignOffResponse{
		ID:           signoff.ID,
		ExplorerID:   signoff.ExplorerID,
		ExplorerName: signoff.ExplorerName,
		Section:      signoff.Section,
		Skill:        signoff.Skill,
		Role:         signoff.Role,
		AdvisorID:    signoff.AdvisorID,
		AdvisorName:  signoff.AdvisorName,
		Signature:    signoff.Signature,
		Date:         signoff.Date,
		Status:       signoff.Status,
		CreatedAt:    signoff.CreatedAt,
	}
}

func signOffResponses(signoffs []domain.SignOff) []dto.SignOffResponse {
	items := make([]dto.SignOffResponse, 0, len(signoffs))
	for i := range signoffs {
		items = append(items, signOffResponse(&signoffs[i]))
	}
	return items
}

func progressResponse(report *service.ProgressReport) dto.ProgressResponse {
	sections := make([]dto.SectionProgressResponse, 0, len(report.Sections))
	for _, sec := range report.Sections {
		sections = append(sections, dto.SectionProgressResponse{
			Title:    sec.Title,
			ALS:      sec.ALS,
			Signed:   sec.Signed,
			Required: sec.Required,
			Percent:  sec.Percent,
		})
	}
	return dto.ProgressResponse{
		ExplorerID:  report.ExplorerID,
		Percent:     report.Percent,
		Rank:        report.Rank,
		ALSUnlocked: report.ALSUnlocked,
		Sections:    sections,
		Signed:      signOffResponses(report.Signed),
		Pending:     signOffResponses(report.Pending),
	}
}
