package service

import (
	"context"
	"errors"

	"github.com/spec-kit/riding-hub/internal/repository"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// DefaultAppVersion is served until an admin selects another variant.
const DefaultAppVersion = "V2"

var allowedAppVersions = map[string]bool{"V1": true, "V2": true, "V3": true}

// SettingsService exposes the scalar site settings.
type SettingsService struct {
	settings repository.SettingsRepository
}

// NewSettingsService constructs the service.
func NewSettingsService(settings repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// AppVersion returns the active app version selector.
func (s *SettingsService) AppVersion(ctx context.Context) (string, error) {
	value, err := s.settings.Get(ctx, repository.SettingAppVersion)
	if errors.Is(err, repository.ErrSettingNotFound) {
		return DefaultAppVersion, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetAppVersion updates the app version selector.
func (s *SettingsService) SetAppVersion(ctx context.Context, version string) error {
	if !allowedAppVersions[version] {
		return apperrors.NewValidationError("version must be one of V1, V2, V3", nil)
	}
	return s.settings.Set(ctx, repository.SettingAppVersion, version)
}
