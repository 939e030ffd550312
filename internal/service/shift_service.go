package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/events"
	"github.com/spec-kit/riding-hub/internal/repository"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// ShiftService validates and records ride-time entries.
type ShiftService struct {
	shifts     repository.ShiftLogRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewShiftService constructs the service.
func NewShiftService(shifts repository.ShiftLogRepository, dispatcher events.Dispatcher) *ShiftService {
	return &ShiftService{shifts: shifts, dispatcher: dispatcher, now: time.Now}
}

// LogShiftInput is a raw ride-time submission. The handler has already
// bound the fields to integers; everything else is checked here, in
// order, with the first failing rule reported.
type LogShiftInput struct {
	ExplorerID string
	Date       string
	StartHH    int
	StartMM    int
	EndHH      int
	EndMM      int
}

// LogShift validates a shift entry against the riding rules and
// persists it. Rules, in order: time ranges, the midnight rule, the
// 12-hour block cap, and the 24-hour monthly cap.
func (s *ShiftService) LogShift(ctx context.Context, actor *domain.User, input LogShiftInput) (*domain.ShiftLog, error) {
	if !actorIs(actor, input.ExplorerID) && actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only the explorer or an admin may log hours")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, apperrors.NewValidationError("date must be formatted YYYY-MM-DD", nil)
	}

	hours, err := domain.ComputeShiftHours(input.StartHH, input.StartMM, input.EndHH, input.EndMM)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	existing, err := s.shifts.ListByExplorer(ctx, input.ExplorerID)
	if err != nil {
		return nil, err
	}
	logged := domain.MonthlyTotal(existing, domain.YearMonth(input.Date))
	if logged+hours > domain.MaxMonthlyHours {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("monthly riding limit of %.0f hours exceeded: %.1f already logged this month", domain.MaxMonthlyHours, logged),
			map[string]any{"already_logged": logged},
		)
	}

	log := &domain.ShiftLog{
		ExplorerID: input.ExplorerID,
		Date:       input.Date,
		StartTime:  domain.FormatShiftTime(input.StartHH, input.StartMM),
		EndTime:    domain.FormatShiftTime(input.EndHH, input.EndMM),
		TotalHours: hours,
	}
	if err := s.shifts.Create(ctx, log); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventShiftLogged,
			ActorID:   actor.ID,
			Timestamp: s.now(),
			Payload: events.ShiftLoggedPayload{
				ShiftLogID: log.ID,
				ExplorerID: log.ExplorerID,
				Date:       log.Date,
				TotalHours: log.TotalHours,
			},
		})
	}
	return log, nil
}

// ListShifts returns an explorer's logged shifts. Explorers see only
// their own; admins see anyone's.
func (s *ShiftService) ListShifts(ctx context.Context, actor *domain.User, explorerID string) ([]domain.ShiftLog, error) {
	if !actorIs(actor, explorerID) && actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only the explorer or an admin may view logged hours")
	}
	return s.shifts.ListByExplorer(ctx, explorerID)
}

// MonthlyHours sums an explorer's logged hours for a YYYY-MM month.
func (s *ShiftService) MonthlyHours(ctx context.Context, actor *domain.User, explorerID, yearMonth string) (float64, error) {
	logs, err := s.ListShifts(ctx, actor, explorerID)
	if err != nil {
		return 0, err
	}
	return domain.MonthlyTotal(logs, yearMonth), nil
}

// DeleteShift removes a logged entry; owner or admin only.
func (s *ShiftService) DeleteShift(ctx context.Context, actor *domain.User, id string) error {
	log, err := s.shifts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("shift log", nil)
		}
		return err
	}
	if !actorIs(actor, log.ExplorerID) && actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("only the explorer or an admin may delete logged hours")
	}
	return s.shifts.Delete(ctx, id)
}
