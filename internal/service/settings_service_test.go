package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppVersion(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(newFakeSettingsRepo())

	version, err := svc.AppVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultAppVersion, version)

	require.NoError(t, svc.SetAppVersion(ctx, "V3"))
	version, err = svc.AppVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "V3", version)

	requireCode(t, svc.SetAppVersion(ctx, "V9"), "VALIDATION_FAILED")
}
