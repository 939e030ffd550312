package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/riding-hub/internal/repository"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

const (
	// SiteTokenHeader carries the site-gate token on every request
	// behind the gate.
	SiteTokenHeader = "X-Site-Token"

	siteTokenPrefix = "site_gate:"
)

// ErrWrongSitePassword is returned when an unlock attempt fails.
var ErrWrongSitePassword = errors.New("incorrect site password")

// SiteGate implements the site-wide password gate. The password hash
// lives in the settings table; issued tokens live in Redis with a TTL
// so they expire without bookkeeping.
type SiteGate struct {
	rdb        *redis.Client
	settings   repository.SettingsRepository
	tokenTTL   time.Duration
	bcryptCost int
}

// NewSiteGate builds the gate.
func NewSiteGate(rdb *redis.Client, settings repository.SettingsRepository, tokenTTLMinutes, bcryptCost int) *SiteGate {
	if tokenTTLMinutes <= 0 {
		tokenTTLMinutes = 60 * 24
	}
	return &SiteGate{
		rdb:        rdb,
		settings:   settings,
		tokenTTL:   time.Duration(tokenTTLMinutes) * time.Minute,
		bcryptCost: bcryptCost,
	}
}

// EnsurePassword seeds the site password hash when none is stored yet.
func (g *SiteGate) EnsurePassword(ctx context.Context, defaultPassword string) error {
	if _, err := g.settings.Get(ctx, repository.SettingSitePasswordHash); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrSettingNotFound) {
		return err
	}
	hash, err := HashPassword(defaultPassword, g.bcryptCost)
	if err != nil {
		return err
	}
	return g.settings.Set(ctx, repository.SettingSitePasswordHash, hash)
}

// Unlock verifies the site password and issues a gate token.
func (g *SiteGate) Unlock(ctx context.Context, password string) (string, error) {
	hash, err := g.settings.Get(ctx, repository.SettingSitePasswordHash)
	if err != nil {
		return "", err
	}
	if err := ComparePassword(hash, password); err != nil {
		return "", ErrWrongSitePassword
	}

	token := uuid.NewString()
	if err := g.rdb.Set(ctx, siteTokenPrefix+token, "1", g.tokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Rotate replaces the stored site password hash. Outstanding gate
// tokens stay valid until their TTL runs out.
func (g *SiteGate) Rotate(ctx context.Context, newPassword string) error {
	hash, err := HashPassword(newPassword, g.bcryptCost)
	if err != nil {
		return err
	}
	return g.settings.Set(ctx, repository.SettingSitePasswordHash, hash)
}

// Validate checks whether a gate token is live.
func (g *SiteGate) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	err := g.rdb.Get(ctx, siteTokenPrefix+token).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Middleware rejects requests without a live gate token.
func (g *SiteGate) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := g.Validate(c.Context(), c.Get(SiteTokenHeader))
		if err != nil {
			return apperrors.MapError(err)
		}
		if !ok {
			return apperrors.NewUnauthorized("site access required")
		}
		return c.Next()
	}
}
