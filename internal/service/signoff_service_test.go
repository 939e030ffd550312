package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/events"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

const (
	blsSkill = "Perform and complete a truck check"
	alsSkill = "Spike a bag"
)

type signOffFixture struct {
	service    *SignOffService
	users      *fakeUserRepo
	signoffs   *fakeSignOffRepo
	dispatcher *capturingDispatcher
	explorer   *domain.User
	advisor    *domain.User
	admin      *domain.User
}

func newSignOffFixture(t *testing.T) *signOffFixture {
	t.Helper()
	users := newFakeUserRepo()
	signoffs := newFakeSignOffRepo()
	dispatcher := &capturingDispatcher{}

	svc := NewSignOffService(SignOffDependencies{
		SignOffRepo: signoffs,
		UserRepo:    users,
		Dispatcher:  dispatcher,
	})
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

	return &signOffFixture{
		service:    svc,
		users:      users,
		signoffs:   signoffs,
		dispatcher: dispatcher,
		explorer:   users.add(&domain.User{DisplayName: "Eva Stone", Role: domain.RoleExplorer}),
		advisor:    users.add(&domain.User{DisplayName: "Alice Jones", Role: domain.RoleAdvisor}),
		admin:      users.add(&domain.User{DisplayName: "Admin User", Role: domain.RoleAdmin}),
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, apperrors.ToDomainError(err).Code)
}

func TestRequestSignOff(t *testing.T) {
	ctx := context.Background()

	t.Run("explorer requests own slot", func(t *testing.T) {
		f := newSignOffFixture(t)
		signoff, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.SignOffStatusRequested, signoff.Status)
		assert.Equal(t, "Equipment & Truck Checks", signoff.Section)
		assert.Equal(t, "Eva Stone", signoff.ExplorerName)
		assert.Equal(t, "Alice Jones", signoff.AdvisorName)
		assert.Equal(t, "2026-03-14", signoff.Date)
		assert.Nil(t, signoff.Signature)

		published := f.dispatcher.published()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventSignOffRequested, published[0].Type)
	})

	t.Run("other member cannot request", func(t *testing.T) {
		f := newSignOffFixture(t)
		other := f.users.add(&domain.User{DisplayName: "Max Rowe", Role: domain.RoleExplorer})
		_, err := f.service.RequestSignOff(ctx, other, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		requireCode(t, err, "FORBIDDEN")
	})

	t.Run("admin may request on behalf of explorer", func(t *testing.T) {
		f := newSignOffFixture(t)
		_, err := f.service.RequestSignOff(ctx, f.admin, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		require.NoError(t, err)
	})

	t.Run("unknown skill rejected", func(t *testing.T) {
		f := newSignOffFixture(t)
		_, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      "Fly the helicopter",
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		requireCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("advisor must be an instructor", func(t *testing.T) {
		f := newSignOffFixture(t)
		peer := f.users.add(&domain.User{DisplayName: "Max Rowe", Role: domain.RoleExplorer})
		_, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  peer.ID,
		})
		requireCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("occupied slot conflicts", func(t *testing.T) {
		f := newSignOffFixture(t)
		input := RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		}
		_, err := f.service.RequestSignOff(ctx, f.explorer, input)
		require.NoError(t, err)

		second := f.users.add(&domain.User{DisplayName: "Bob Ray", Role: domain.RoleAdvisor})
		input.AdvisorID = second.ID
		_, err = f.service.RequestSignOff(ctx, f.explorer, input)
		requireCode(t, err, "CONFLICT")
	})

	t.Run("advisor cannot hold two slots on one skill", func(t *testing.T) {
		f := newSignOffFixture(t)
		_, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		require.NoError(t, err)

		_, err = f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleDemo1,
			AdvisorID:  f.advisor.ID,
		})
		requireCode(t, err, "CONFLICT")
	})

	t.Run("ALS skills locked until BLS complete", func(t *testing.T) {
		f := newSignOffFixture(t)
		_, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      alsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		requireCode(t, err, "FORBIDDEN")
	})

	t.Run("ALS skills open after BLS complete", func(t *testing.T) {
		f := newSignOffFixture(t)
		seedFullBLS(t, f)

		_, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      alsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		require.NoError(t, err)
	})
}

// seedFullBLS writes a signed record for every non-ALS slot directly
// into the ledger, each slot from a distinct synthetic advisor.
func seedFullBLS(t *testing.T, f *signOffFixture) {
	t.Helper()
	ctx := context.Background()
	sig := "data:image/png;base64,stub"
	i := 0
	for _, sec := range domain.TrainingSections {
		if sec.ALS {
			continue
		}
		for _, skill := range sec.Skills {
			for _, role := range domain.SignOffRoles {
				i++
				err := f.signoffs.Create(ctx, &domain.SignOff{
					ExplorerID:   f.explorer.ID,
					ExplorerName: f.explorer.DisplayName,
					Section:      sec.Title,
					Skill:        skill.Name,
					Role:         role,
					AdvisorID:    fmt.Sprintf("advisor-%d", i),
					AdvisorName:  fmt.Sprintf("Advisor %d", i),
					Signature:    &sig,
					Date:         "2026-01-15",
					Status:       domain.SignOffStatusSigned,
				})
				require.NoError(t, err)
			}
		}
	}
}

func TestSignRequest(t *testing.T) {
	ctx := context.Background()

	pending := func(t *testing.T, f *signOffFixture) *domain.SignOff {
		t.Helper()
		signoff, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		require.NoError(t, err)
		return signoff
	}

	t.Run("named advisor signs", func(t *testing.T) {
		f := newSignOffFixture(t)
		request := pending(t, f)

		signed, err := f.service.SignRequest(ctx, f.advisor, request.ID, "data:image/png;base64,sig")
		require.NoError(t, err)
		assert.Equal(t, domain.SignOffStatusSigned, signed.Status)
		require.NotNil(t, signed.Signature)
		assert.Equal(t, "2026-03-14", signed.Date)
	})

	t.Run("admin may sign any request", func(t *testing.T) {
		f := newSignOffFixture(t)
		request := pending(t, f)

		_, err := f.service.SignRequest(ctx, f.admin, request.ID, "data:image/png;base64,sig")
		require.NoError(t, err)
	})

	t.Run("other advisor cannot sign", func(t *testing.T) {
		f := newSignOffFixture(t)
		request := pending(t, f)
		other := f.users.add(&domain.User{DisplayName: "Bob Ray", Role: domain.RoleAdvisor})

		_, err := f.service.SignRequest(ctx, other, request.ID, "data:image/png;base64,sig")
		requireCode(t, err, "FORBIDDEN")
	})

	t.Run("signature required", func(t *testing.T) {
		f := newSignOffFixture(t)
		request := pending(t, f)

		_, err := f.service.SignRequest(ctx, f.advisor, request.ID, "   ")
		requireCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("signing twice conflicts", func(t *testing.T) {
		f := newSignOffFixture(t)
		request := pending(t, f)

		_, err := f.service.SignRequest(ctx, f.advisor, request.ID, "data:image/png;base64,sig")
		require.NoError(t, err)

		_, err = f.service.SignRequest(ctx, f.advisor, request.ID, "data:image/png;base64,sig")
		requireCode(t, err, "CONFLICT")
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newSignOffFixture(t)
		_, err := f.service.SignRequest(ctx, f.advisor, "nope", "data:image/png;base64,sig")
		requireCode(t, err, "NOT_FOUND")
	})
}

func TestCancelSignOff(t *testing.T) {
	ctx := context.Background()

	t.Run("explorer cancels pending request", func(t *testing.T) {
		f := newSignOffFixture(t)
		request, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		require.NoError(t, err)

		require.NoError(t, f.service.CancelSignOff(ctx, f.explorer, request.ID))

		_, err = f.signoffs.GetByID(ctx, request.ID)
		require.Error(t, err)
	})

	t.Run("signed records are immutable", func(t *testing.T) {
		f := newSignOffFixture(t)
		request, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		require.NoError(t, err)
		_, err = f.service.SignRequest(ctx, f.advisor, request.ID, "data:image/png;base64,sig")
		require.NoError(t, err)

		requireCode(t, f.service.CancelSignOff(ctx, f.explorer, request.ID), "CONFLICT")
	})

	t.Run("other member cannot cancel", func(t *testing.T) {
		f := newSignOffFixture(t)
		request, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		require.NoError(t, err)

		other := f.users.add(&domain.User{DisplayName: "Max Rowe", Role: domain.RoleExplorer})
		requireCode(t, f.service.CancelSignOff(ctx, other, request.ID), "FORBIDDEN")
	})
}

func TestExplorerProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown explorer yields empty report", func(t *testing.T) {
		f := newSignOffFixture(t)
		report, err := f.service.ExplorerProgress(ctx, "missing")
		require.NoError(t, err)
		assert.Zero(t, report.Percent)
		assert.Equal(t, "Novice", report.Rank)
		assert.False(t, report.ALSUnlocked)
		assert.Empty(t, report.Signed)
		assert.Empty(t, report.Pending)
	})

	t.Run("counts signed and pending separately", func(t *testing.T) {
		f := newSignOffFixture(t)
		request, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		require.NoError(t, err)
		_, err = f.service.SignRequest(ctx, f.advisor, request.ID, "data:image/png;base64,sig")
		require.NoError(t, err)

		second := f.users.add(&domain.User{DisplayName: "Bob Ray", Role: domain.RoleAdvisor})
		_, err = f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleDemo1,
			AdvisorID:  second.ID,
		})
		require.NoError(t, err)

		report, err := f.service.ExplorerProgress(ctx, f.explorer.ID)
		require.NoError(t, err)
		assert.Len(t, report.Signed, 1)
		assert.Len(t, report.Pending, 1)
		assert.Equal(t, 1, report.Percent)
		assert.Len(t, report.Sections, len(domain.TrainingSections))
	})

	t.Run("full BLS unlocks ALS and certifies", func(t *testing.T) {
		f := newSignOffFixture(t)
		seedFullBLS(t, f)

		report, err := f.service.ExplorerProgress(ctx, f.explorer.ID)
		require.NoError(t, err)
		assert.True(t, report.ALSUnlocked)
		assert.Equal(t, 92, report.Percent)
		assert.Equal(t, "Certified", report.Rank)
	})
}

func TestSearchAdvisors(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query yields nothing", func(t *testing.T) {
		f := newSignOffFixture(t)
		matches, err := f.service.SearchAdvisors(ctx, f.explorer.ID, blsSkill, "  ")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		f := newSignOffFixture(t)
		matches, err := f.service.SearchAdvisors(ctx, f.explorer.ID, blsSkill, "ALICE")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Alice Jones", matches[0].DisplayName)
	})

	t.Run("excludes advisors already on the skill", func(t *testing.T) {
		f := newSignOffFixture(t)
		_, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
			ExplorerID: f.explorer.ID,
			Skill:      blsSkill,
			Role:       domain.RoleTaughtBy,
			AdvisorID:  f.advisor.ID,
		})
		require.NoError(t, err)

		matches, err := f.service.SearchAdvisors(ctx, f.explorer.ID, blsSkill, "alice")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("caps results at five", func(t *testing.T) {
		f := newSignOffFixture(t)
		for i := 0; i < 8; i++ {
			f.users.add(&domain.User{DisplayName: fmt.Sprintf("Jones Helper %d", i), Role: domain.RoleAdvisor})
		}
		matches, err := f.service.SearchAdvisors(ctx, f.explorer.ID, blsSkill, "jones")
		require.NoError(t, err)
		assert.Len(t, matches, 5)
	})
}

func TestAdvisorActivity(t *testing.T) {
	ctx := context.Background()
	f := newSignOffFixture(t)

	request, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
		ExplorerID: f.explorer.ID,
		Skill:      blsSkill,
		Role:       domain.RoleTaughtBy,
		AdvisorID:  f.advisor.ID,
	})
	require.NoError(t, err)
	_, err = f.service.SignRequest(ctx, f.advisor, request.ID, "data:image/png;base64,sig")
	require.NoError(t, err)

	records, summary, err := f.service.AdvisorActivity(ctx, "alice JONES")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alice Jones", summary.Name)
	assert.Equal(t, 1, summary.Count)

	records, summary, err = f.service.AdvisorActivity(ctx, "Nobody Here")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, summary.Count)
}

func TestExplorerLeaderboard(t *testing.T) {
	ctx := context.Background()
	f := newSignOffFixture(t)
	second := f.users.add(&domain.User{DisplayName: "Max Rowe", Role: domain.RoleExplorer})

	request, err := f.service.RequestSignOff(ctx, f.explorer, RequestSignOffInput{
		ExplorerID: f.explorer.ID,
		Skill:      blsSkill,
		Role:       domain.RoleTaughtBy,
		AdvisorID:  f.advisor.ID,
	})
	require.NoError(t, err)
	_, err = f.service.SignRequest(ctx, f.advisor, request.ID, "data:image/png;base64,sig")
	require.NoError(t, err)

	entries, err := f.service.ExplorerLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, f.explorer.ID, entries[0].ExplorerID)
	assert.Equal(t, 1, entries[0].Signed)
	assert.Equal(t, second.ID, entries[1].ExplorerID)
	assert.Zero(t, entries[1].Signed)
}
