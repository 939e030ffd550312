package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/riding-hub/internal/api/dto"
	"github.com/spec-kit/riding-hub/internal/domain"
)

// CurriculumHandler serves the static training booklet definition.
type CurriculumHandler struct{}

// NewCurriculumHandler constructs handler.
func NewCurriculumHandler() *CurriculumHandler {
	return &CurriculumHandler{}
}

// Sections GET /curriculum.
func (h *CurriculumHandler) Sections(c *fiber.Ctx) error {
	items := make([]dto.SectionResponse, 0, len(domain.TrainingSections))
	for _, sec := range domain.TrainingSections {
		skills := make([]string, 0, len(sec.Skills))
		for _, skill := range sec.Skills {
			skills = append(skills, skill.Name)
		}
		items = append(items, dto.SectionResponse{
			Title:  sec.Title,
			ALS:    sec.ALS,
			Skills: skills,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Overview GET /curriculum/overview.
func (h *CurriculumHandler) Overview(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"overview": domain.ProgramOverviewText}})
}
