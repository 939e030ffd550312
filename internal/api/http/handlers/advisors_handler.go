package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/riding-hub/internal/api/dto"
	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/service"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// AdvisorsHandler serves advisor search and activity views.
type AdvisorsHandler struct {
	service *service.SignOffService
}

// NewAdvisorsHandler constructs handler.
func NewAdvisorsHandler(signOffService *service.SignOffService) *AdvisorsHandler {
	return &AdvisorsHandler{service: signOffService}
}

// Search GET /explorers/:id/advisors?skill=&q=. Advisors already used
// on the skill are filtered out so the three-signature rule can be met.
func (h *AdvisorsHandler) Search(c *fiber.Ctx) error {
	skill := c.Query("skill")
	if skill == "" {
		return apperrors.NewValidationError("skill required", nil)
	}
	advisors, err := h.service.SearchAdvisors(c.UserContext(), c.Params("id"), skill, c.Query("q"))
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(advisors))
	for i := range advisors {
		items = append(items, userResponse(&advisors[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Leaderboard GET /advisors/leaderboard.
func (h *AdvisorsHandler) Leaderboard(c *fiber.Ctx) error {
	summaries, err := h.service.AdvisorLeaderboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": advisorSummaryResponses(summaries)})
}

// Activity GET /advisors/:name/activity.
func (h *AdvisorsHandler) Activity(c *fiber.Ctx) error {
	name, err := decodeParam(c, "name")
	if err != nil {
		return err
	}
	records, summary, err := h.service.AdvisorActivity(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AdvisorActivityResponse{
		Summary:  advisorSummaryResponse(*summary),
		SignOffs: signOffResponses(records),
	}})
}

func decodeParam(c *fiber.Ctx, key string) (string, error) {
	value, err := url.PathUnescape(c.Params(key))
	if err != nil || value == "" {
		return "", apperrors.NewValidationError(key+" required", nil)
	}
	return value, nil
}

func advisorSummaryResponse(summary domain.AdvisorSummary) dto.AdvisorSummaryResponse {
	return dto.AdvisorSummaryResponse{
		Name:     summary.Name,
		Count:    summary.Count,
		LastDate: summary.LastDate,
	}
}

func advisorSummaryResponses(summaries []domain.AdvisorSummary) []dto.AdvisorSummaryResponse {
	items := make([]dto.AdvisorSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, advisorSummaryResponse(summary))
	}
	return items
}
