package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/events"
	"github.com/spec-kit/riding-hub/internal/repository"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// SignOffService coordinates the skill sign-off ledger: requesting
// signatures, signing, cancellation, and every derived progress query.
type SignOffService struct {
	signoffs   repository.SignOffRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// SignOffDependencies bundles requirements for the sign-off service.
type SignOffDependencies struct {
	SignOffRepo repository.SignOffRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewSignOffService constructs the service.
func NewSignOffService(deps SignOffDependencies) *SignOffService {
	return &SignOffService{
		signoffs:   deps.SignOffRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// RequestSignOffInput describes a signature request.
type RequestSignOffInput struct {
	ExplorerID string
	Skill      string
	Role       domain.SignOffRole
	AdvisorID  string
}

// RequestSignOff creates a pending signature request. Only the explorer
// themselves or an admin may request; the slot must be empty, the
// advisor must not already appear on the skill, and ALS skills stay
// unavailable until the BLS booklet is complete.
func (s *SignOffService) RequestSignOff(ctx context.Context, actor *domain.User, input RequestSignOffInput) (*domain.SignOff, error) {
	if !actorIs(actor, input.ExplorerID) && actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only the explorer or an admin may request sign-offs")
	}

	section, ok := domain.FindSection(input.Skill)
	if !ok {
		return nil, apperrors.NewValidationError("unknown skill", map[string]any{"skill": input.Skill})
	}
	if !validSignOffRole(input.Role) {
		return nil, apperrors.NewValidationError("unknown sign-off role", map[string]any{"role": input.Role})
	}

	explorer, err := s.users.GetByID(ctx, input.ExplorerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("explorer", nil)
		}
		return nil, err
	}
	if explorer.Role != domain.RoleExplorer {
		return nil, apperrors.NewValidationError("sign-offs can only be requested for explorers", nil)
	}

	advisor, err := s.users.GetByID(ctx, input.AdvisorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("advisor", nil)
		}
		return nil, err
	}
	if !advisor.Instructor() {
		return nil, apperrors.NewValidationError("selected user is not an instructor", nil)
	}

	snapshot, err := s.signoffs.ListByExplorer(ctx, explorer.ID)
	if err != nil {
		return nil, err
	}

	for _, existing := range snapshot {
		if existing.Skill == input.Skill && existing.Role == input.Role {
			return nil, apperrors.NewConflict("this signature slot already has a record", nil)
		}
	}
	if domain.AdvisorsUsedOnSkill(snapshot, input.Skill)[strings.ToLower(advisor.DisplayName)] {
		return nil, apperrors.NewConflict("this advisor already holds a signature on this skill", nil)
	}
	if section.ALS && !domain.ALSUnlocked(snapshot) {
		return nil, apperrors.NewForbidden("ALS skills unlock after all BLS skills are fully signed")
	}

	signoff := &domain.SignOff{
		ExplorerID:   explorer.ID,
		ExplorerName: explorer.DisplayName,
		Section:      section.Title,
		Skill:        input.Skill,
		Role:         input.Role,
		AdvisorID:    advisor.ID,
		AdvisorName:  advisor.DisplayName,
		Date:         domain.DateString(s.now()),
		Status:       domain.SignOffStatusRequested,
	}
	if err := s.signoffs.Create(ctx, signoff); err != nil {
		return nil, err
	}

	s.publish(ctx, actor.ID, events.Event{
		Type: events.EventSignOffRequested,
		Payload: events.SignOffRequestedPayload{
			SignOffID:    signoff.ID,
			ExplorerName: signoff.ExplorerName,
			Skill:        signoff.Skill,
			Role:         signoff.Role,
			AdvisorID:    signoff.AdvisorID,
			AdvisorName:  signoff.AdvisorName,
		},
	})
	return signoff, nil
}

// SignRequest transitions a pending request to signed, stamping the
// current date and the provided signature image. Only the advisor the
// request names, or an admin, may sign.
func (s *SignOffService) SignRequest(ctx context.Context, actor *domain.User, id, signature string) (*domain.SignOff, error) {
	signoff, err := s.signoffs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sign-off request", nil)
		}
		return nil, err
	}
	if signoff.Status != domain.SignOffStatusRequested {
		return nil, apperrors.NewConflict("request is no longer pending", nil)
	}
	if !actorIs(actor, signoff.AdvisorID) && actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only the requested advisor may sign")
	}
	if strings.TrimSpace(signature) == "" {
		return nil, apperrors.NewValidationError("signature required", nil)
	}

	signoff.Signature = &signature
	signoff.Status = domain.SignOffStatusSigned
	signoff.Date = domain.DateString(s.now())
	if err := s.signoffs.Update(ctx, signoff); err != nil {
		return nil, err
	}

	s.publish(ctx, actor.ID, events.Event{
		Type: events.EventSignOffSigned,
		Payload: events.SignOffSignedPayload{
			SignOffID:    signoff.ID,
			ExplorerName: signoff.ExplorerName,
			Skill:        signoff.Skill,
			Role:         signoff.Role,
			AdvisorName:  signoff.AdvisorName,
			Date:         signoff.Date,
		},
	})
	return signoff, nil
}

// CancelSignOff deletes a pending request. Signed records are immutable
// through this path.
func (s *SignOffService) CancelSignOff(ctx context.Context, actor *domain.User, id string) error {
	signoff, err := s.signoffs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("sign-off request", nil)
		}
		return err
	}
	if signoff.Status != domain.SignOffStatusRequested {
		return apperrors.NewConflict("signed records cannot be cancelled", nil)
	}
	if !actorIs(actor, signoff.ExplorerID) && actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("only the explorer or an admin may cancel")
	}

	if err := s.signoffs.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, actor.ID, events.Event{
		Type: events.EventSignOffCancelled,
		Payload: events.SignOffCancelledPayload{
			SignOffID:    signoff.ID,
			ExplorerName: signoff.ExplorerName,
			Skill:        signoff.Skill,
			Role:         signoff.Role,
		},
	})
	return nil
}

// ProgressReport summarizes one explorer's booklet.
type ProgressReport struct {
	ExplorerID  string
	Signed      []domain.SignOff
	Pending     []domain.SignOff
	Percent     int
	Rank        string
	Sections    []domain.SectionProgress
	ALSUnlocked bool
}

// ExplorerProgress computes the derived progress view for an explorer.
// An unknown explorer yields an empty report, never an error.
func (s *SignOffService) ExplorerProgress(ctx context.Context, explorerID string) (*ProgressReport, error) {
	snapshot, err := s.signoffs.ListByExplorer(ctx, explorerID)
	if err != nil {
		return nil, err
	}

	signed := domain.SignedOnly(snapshot)
	pending := make([]domain.SignOff, 0)
	for _, so := range snapshot {
		if !so.Signed() {
			pending = append(pending, so)
		}
	}

	percent := domain.CompletionPercent(signed)
	return &ProgressReport{
		ExplorerID:  explorerID,
		Signed:      signed,
		Pending:     pending,
		Percent:     percent,
		Rank:        domain.RankFor(percent),
		Sections:    domain.SectionBreakdown(signed),
		ALSUnlocked: domain.ALSUnlocked(snapshot),
	}, nil
}

// SearchAdvisors supports the instructor dropdown: instructors whose
// name contains the query, minus anyone already holding a record on the
// skill, capped at five results.
func (s *SignOffService) SearchAdvisors(ctx context.Context, explorerID, skill, query string) ([]domain.User, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.User{}, nil
	}

	snapshot, err := s.signoffs.ListByExplorer(ctx, explorerID)
	if err != nil {
		return nil, err
	}
	used := domain.AdvisorsUsedOnSkill(snapshot, skill)

	instructors, err := s.users.ListByRole(ctx, domain.RoleAdvisor)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matches := make([]domain.User, 0, 5)
	for _, instructor := range instructors {
		name := strings.ToLower(instructor.DisplayName)
		if !strings.Contains(name, needle) || used[name] {
			continue
		}
		matches = append(matches, instructor)
		if len(matches) == 5 {
			break
		}
	}
	return matches, nil
}

// PendingForAdvisor lists open requests addressed to the advisor.
func (s *SignOffService) PendingForAdvisor(ctx context.Context, advisorID string) ([]domain.SignOff, error) {
	return s.signoffs.ListPendingForAdvisor(ctx, advisorID)
}

// AdvisorLeaderboard aggregates signed activity per advisor across the
// whole ledger.
func (s *SignOffService) AdvisorLeaderboard(ctx context.Context) ([]domain.AdvisorSummary, error) {
	all, err := s.signoffs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.AdvisorSummaries(all), nil
}

// AdvisorActivity returns an advisor's signed records, matched on name
// case-insensitively. Unknown names yield an empty set.
func (s *SignOffService) AdvisorActivity(ctx context.Context, advisorName string) ([]domain.SignOff, *domain.AdvisorSummary, error) {
	records, err := s.signoffs.ListSignedByAdvisorName(ctx, advisorName)
	if err != nil {
		return nil, nil, err
	}
	summaries := domain.AdvisorSummaries(records)
	if len(summaries) == 0 {
		return records, &domain.AdvisorSummary{Name: advisorName}, nil
	}
	return records, &summaries[0], nil
}

// LeaderboardEntry ranks one explorer by signed count.
type LeaderboardEntry struct {
	ExplorerID   string
	ExplorerName string
	Signed       int
	Percent      int
}

// ExplorerLeaderboard ranks all explorers by completed signatures.
func (s *SignOffService) ExplorerLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	explorers, err := s.users.ListByRole(ctx, domain.RoleExplorer)
	if err != nil {
		return nil, err
	}
	all, err := s.signoffs.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	signedByExplorer := map[string][]domain.SignOff{}
	for _, so := range all {
		if so.Signed() {
			signedByExplorer[so.ExplorerID] = append(signedByExplorer[so.ExplorerID], so)
		}
	}

	entries := make([]LeaderboardEntry, 0, len(explorers))
	for _, explorer := range explorers {
		signed := signedByExplorer[explorer.ID]
		entries = append(entries, LeaderboardEntry{
			ExplorerID:   explorer.ID,
			ExplorerName: explorer.DisplayName,
			Signed:       len(signed),
			Percent:      domain.CompletionPercent(signed),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Signed != entries[j].Signed {
			return entries[i].Signed > entries[j].Signed
		}
		return entries[i].ExplorerName < entries[j].ExplorerName
	})
	return entries, nil
}

func (s *SignOffService) publish(ctx context.Context, actorID string, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.ActorID = actorID
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}

func actorIs(actor *domain.User, userID string) bool {
	return actor != nil && actor.ID == userID
}

func validSignOffRole(role domain.SignOffRole) bool {
	for _, r := range domain.SignOffRoles {
		if r == role {
			return true
		}
	}
	return false
}
