package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/riding-hub/internal/auth"
	"github.com/spec-kit/riding-hub/internal/config"
	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/repository"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// DefaultUserPassword is assigned to roster-seeded and admin-added
// accounts until the member claims the account.
const DefaultUserPassword = "Explorer1111"

// maxProfilePhotoBytes caps the stored photo data URL. 2 MiB of image
// grows by 4/3 under base64.
const maxProfilePhotoBytes = 2 * 1024 * 1024 * 4 / 3

// AuthService coordinates accounts, registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RememberMeTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput describes a self-signup.
type RegisterInput struct {
	DisplayName string
	Password    string
	Role        domain.Role
	Email       *string
	RememberMe  bool
}

// Register signs up a member. When the display name matches a
// pre-provisioned roster account the member claims it by setting their
// password; otherwise a fresh account is created. Self-signup can never
// produce an admin.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" || input.Password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name and password required", nil)
	}
	if input.Role != domain.RoleExplorer && input.Role != domain.RoleAdvisor {
		return nil, "", time.Time{}, apperrors.NewValidationError("role must be Explorer or Advisor", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	existing, err := s.users.GetByDisplayName(ctx, displayName)
	switch {
	case err == nil:
		if existing.Role == domain.RoleAdmin {
			return nil, "", time.Time{}, apperrors.NewConflict("display name unavailable", nil)
		}
		// Roster members claim their pre-provisioned account.
		existing.PasswordHash = hash
		if input.Email != nil {
			existing.Email = input.Email
		}
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, "", time.Time{}, err
		}
		return s.issueToken(existing, input.RememberMe)
	case errors.Is(err, pgx.ErrNoRows):
		// fall through to create
	default:
		return nil, "", time.Time{}, err
	}

	username := domain.GenerateUsername(displayName)
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("username already taken", map[string]any{"username": username})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Username:     username,
		DisplayName:  displayName,
		Email:        input.Email,
		Role:         input.Role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}
	return s.issueToken(user, input.RememberMe)
}

// Login authenticates by username and password.
func (s *AuthService) Login(ctx context.Context, username, password string, rememberMe bool) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.issueToken(user, rememberMe)
}

// ChangePassword verifies the current password before updating.
func (s *AuthService) ChangePassword(ctx context.Context, actor *domain.User, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new password required", nil)
	}
	if err := auth.ComparePassword(actor.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	actor.PasswordHash = hash
	return s.users.Update(ctx, actor)
}

// ResetPassword lets an admin set a member's password directly.
func (s *AuthService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// UpdateProfilePhoto stores a base64 data URL on the member's own
// profile.
func (s *AuthService) UpdateProfilePhoto(ctx context.Context, actor *domain.User, userID, photo string) error {
	if !actorIs(actor, userID) && actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("only the profile owner may change the photo")
	}
	if len(photo) > maxProfilePhotoBytes {
		return apperrors.NewValidationError("photo too large; maximum is 2MB", nil)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	user.ProfilePhoto = &photo
	return s.users.Update(ctx, user)
}

// AddUser provisions a roster account with the default password.
func (s *AuthService) AddUser(ctx context.Context, displayName string, role domain.Role, email *string) (*domain.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if role != domain.RoleExplorer && role != domain.RoleAdvisor {
		return nil, apperrors.NewValidationError("role must be Explorer or Advisor", nil)
	}

	username := domain.GenerateUsername(displayName)
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already taken", map[string]any{"username": username})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(DefaultUserPassword, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:     username,
		DisplayName:  displayName,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns the full roster.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// DeleteUser removes an account. Ledger records referencing the user
// are intentionally left in place.
func (s *AuthService) DeleteUser(ctx context.Context, actor *domain.User, userID string) error {
	if actorIs(actor, userID) {
		return apperrors.NewValidationError("cannot delete your own account", nil)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}

// EnsureInitialAdmin creates the configured admin account when it does
// not exist yet.
func (s *AuthService) EnsureInitialAdmin(ctx context.Context, cfg config.InitialAdminConfig) error {
	if _, err := s.users.GetByUsername(ctx, cfg.Username); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Password, s.bcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Username:     cfg.Username,
		DisplayName:  cfg.DisplayName,
		Role:         domain.RoleAdmin,
		PasswordHash: hash,
	}
	return s.users.Create(ctx, admin)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueToken(user *domain.User, remember bool) (*domain.User, string, time.Time, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role, remember)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}
