package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/olusolaa/picklist-drift-detector/internal/errors"
)

func TestBindEnv_LegacyAliases(t *testing.T) {
	t.Setenv("SF_ORG_A_ALIAS", "prod")
	t.Setenv("PICKLIST_TARGET_ALIAS", "uat")
	t.Setenv("SF_ORG_B_ALIAS", "ignored")
	t.Setenv("PICKLIST_SOURCE_PROVIDER", "sfcli")
	t.Setenv("PICKLIST_TARGET_SNAPSHOT_DIR", "./baseline")

	v := viper.New()
	bindEnv(v)

	assert.Equal(t, "prod", v.GetString("source.alias"))
	assert.Equal(t, "uat", v.GetString("target.alias"))
	assert.Equal(t, "sfcli", v.GetString("source.provider"))
	assert.Equal(t, "./baseline", v.GetString("target.snapshot_dir"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(apperrors.New(apperrors.CodeDriftDetected, "drift")))
	assert.Equal(t, 1, exitCode(apperrors.New(apperrors.CodeConfigValidation, "bad config")))
}
