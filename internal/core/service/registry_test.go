package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/picklist-drift-detector/internal/config"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports/mocks"
	"github.com/olusolaa/picklist-drift-detector/internal/core/service"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
	"github.com/olusolaa/picklist-drift-detector/internal/log"
)

type fakeOrg struct {
	*mocks.MetadataFetcher
	*mocks.FieldDescriber
	cfg config.OrgConfig
}

func TestComponentRegistry_Orgs(t *testing.T) {
	registry := service.NewComponentRegistry()

	var built []config.OrgConfig
	factory := func(_ context.Context, cfg config.OrgConfig, _ ports.Logger) (ports.Org, error) {
		built = append(built, cfg)
		return &fakeOrg{cfg: cfg}, nil
	}

	require.NoError(t, registry.RegisterOrgFactory(config.ProviderSnapshot, factory))

	err := registry.RegisterOrgFactory(config.ProviderSnapshot, factory)
	assert.Equal(t, errors.CodeInternal, errors.GetCode(err))
	assert.Error(t, registry.RegisterOrgFactory("", factory))
	assert.Error(t, registry.RegisterOrgFactory(config.ProviderToken, nil))

	// The same factory serves both sides.
	for _, dir := range []string{"./source", "./target"} {
		org, err := registry.NewOrg(context.Background(),
			config.OrgConfig{Provider: config.ProviderSnapshot, SnapshotDir: dir}, log.NewNop())
		require.NoError(t, err)
		assert.Equal(t, dir, org.(*fakeOrg).cfg.SnapshotDir)
	}
	assert.Len(t, built, 2)

	_, err = registry.NewOrg(context.Background(), config.OrgConfig{Provider: "ldap"}, log.NewNop())
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
	_, suggestion, _ := errors.GetUserFacingMessage(err)
	assert.Contains(t, suggestion, config.ProviderSnapshot)
}

func TestComponentRegistry_Reporters(t *testing.T) {
	registry := service.NewComponentRegistry()
	reporter := mocks.NewReporter(t)

	require.NoError(t, registry.RegisterReporterFactory("text", func(config.SettingsConfig, ports.Logger) (ports.Reporter, error) {
		return reporter, nil
	}))
	assert.Error(t, registry.RegisterReporterFactory("text", func(config.SettingsConfig, ports.Logger) (ports.Reporter, error) {
		return nil, nil
	}))

	got, err := registry.NewReporter(config.SettingsConfig{ReporterType: "text"}, log.NewNop())
	require.NoError(t, err)
	assert.Same(t, reporter, got)

	_, err = registry.NewReporter(config.SettingsConfig{ReporterType: "html"}, log.NewNop())
	assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
}
