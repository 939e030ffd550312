package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/riding-hub/internal/api/dto"
	"github.com/spec-kit/riding-hub/internal/auth"
	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/service"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// ShiftsHandler manages ride-time logging.
type ShiftsHandler struct {
	service *service.ShiftService
}

// NewShiftsHandler constructs handler.
func NewShiftsHandler(shiftService *service.ShiftService) *ShiftsHandler {
	return &ShiftsHandler{service: shiftService}
}

// Log POST /explorers/:id/shifts.
func (h *ShiftsHandler) Log(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.LogShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	shift, err := h.service.LogShift(c.UserContext(), principal.User, service.LogShiftInput{
		ExplorerID: c.Params("id"),
		Date:       req.Date,
		StartHH:    req.StartHour,
		StartMM:    req.StartMinute,
		EndHH:      req.EndHour,
		EndMM:      req.EndMinute,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": shiftLogResponse(shift)})
}

// List GET /explorers/:id/shifts.
func (h *ShiftsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	shifts, err := h.service.ListShifts(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ShiftLogResponse, 0, len(shifts))
	for i := range shifts {
		items = append(items, shiftLogResponse(&shifts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// MonthlyHours GET /explorers/:id/shifts/monthly?month=YYYY-MM.
func (h *ShiftsHandler) MonthlyHours(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	month := c.Query("month")
	if month == "" {
		return apperrors.NewValidationError("month required, formatted YYYY-MM", nil)
	}
	total, err := h.service.MonthlyHours(c.UserContext(), principal.User, c.Params("id"), month)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.MonthlyHoursResponse{
		YearMonth: month,
		Total:     total,
		Limit:     domain.MaxMonthlyHours,
	}})
}

// Delete DELETE /shifts/:id.
func (h *ShiftsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.DeleteShift(c.UserContext(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func shiftLogResponse(shift *domain.ShiftLog) dto.ShiftLogResponse {
	return dto.ShiftLogResponse{
		ID:         shift.ID,
		ExplorerID: shift.ExplorerID,
		Date:       shift.Date,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
		TotalHours: shift.TotalHours,
		CreatedAt:  shift.CreatedAt,
	}
}
