package app

import (
	"bytes"
	"context"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/picklist-drift-detector/internal/config"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

func snapshotViper() *viper.Viper {
	v := viper.New()
	v.Set("source.provider", config.ProviderSnapshot)
	v.Set("source.snapshot_dir", "testdata/source")
	v.Set("target.provider", config.ProviderSnapshot)
	v.Set("target.snapshot_dir", "testdata/target")
	v.Set("object", "Account")
	return v
}

func TestBuildApplicationFromViper_SnapshotRun(t *testing.T) {
	v := snapshotViper()
	v.Set("settings.reporter", "json")
	v.Set(FieldsOverrideKey, "Industry")

	var out, logs bytes.Buffer
	application, err := BuildApplicationFromViper(context.Background(), v, WithOutput(&out), WithLogOutput(&logs))
	require.NoError(t, err)
	assert.Equal(t, []string{"Industry"}, application.Config.Fields)

	require.NoError(t, application.Run(context.Background()))

	var report struct {
		Summary struct {
			Drifted       int `json:"drifted"`
			Discrepancies int `json:"discrepancies"`
		} `json:"summary"`
		Results []struct {
			Attribute string `json:"attribute"`
		} `json:"results"`
	}
	require.NoError(t, jsoniter.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 1, report.Summary.Drifted)
	assert.Equal(t, 3, report.Summary.Discrepancies)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "Account.Industry", report.Results[0].Attribute)
}

func TestBuildApplicationFromViper_QualifiedFieldsWithoutObject(t *testing.T) {
	v := snapshotViper()
	v.Set("object", "")
	v.Set("settings.reporter", "json")
	v.Set(FieldsOverrideKey, "Account=Industry,Rating")

	var out bytes.Buffer
	application, err := BuildApplicationFromViper(context.Background(), v, WithOutput(&out), WithLogOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.Empty(t, application.Config.Object)
	assert.Equal(t, []string{"Account.Industry", "Account.Rating"}, application.Config.Fields)

	require.NoError(t, application.Run(context.Background()))

	var report struct {
		Results []struct {
			Attribute string `json:"attribute"`
		} `json:"results"`
	}
	require.NoError(t, jsoniter.Unmarshal(out.Bytes(), &report))
	require.Len(t, report.Results, 2)
	assert.Equal(t, "Account.Industry", report.Results[0].Attribute)
	assert.Equal(t, "Account.Rating", report.Results[1].Attribute)
}

func TestBuildApplicationFromViper_AllPicklistsWithFailOnDrift(t *testing.T) {
	v := snapshotViper()
	v.Set("settings.fail_on_drift", true)

	var out bytes.Buffer
	application, err := BuildApplicationFromViper(context.Background(), v, WithOutput(&out), WithLogOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	err = application.Run(context.Background())
	assert.Equal(t, errors.CodeDriftDetected, errors.GetCode(err))
	assert.Contains(t, out.String(), "RESULTS FOR: Account.Industry")
	assert.Contains(t, out.String(), "RESULTS FOR: Account.Rating")
}

func TestBuildApplicationFromViper_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(v *viper.Viper)
		field string
	}{
		{
			name:  "missing alias for sfcli",
			setup: func(v *viper.Viper) { v.Set("source.provider", config.ProviderSFCLI) },
			field: "Config.Source.Alias",
		},
		{
			name:  "no object and not interactive",
			setup: func(v *viper.Viper) { v.Set("object", "") },
			field: "Config.Object",
		},
		{
			name:  "unknown reporter",
			setup: func(v *viper.Viper) { v.Set("settings.reporter", "html") },
			field: "Config.Settings.ReporterType",
		},
		{
			name:  "token without credentials",
			setup: func(v *viper.Viper) { v.Set("target.provider", config.ProviderToken) },
			field: "Config.Target.InstanceURL",
		},
		{
			name:  "concurrency out of range",
			setup: func(v *viper.Viper) { v.Set("settings.concurrency", 0) },
			field: "Config.Settings.Concurrency",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := snapshotViper()
			tc.setup(v)

			_, err := BuildApplicationFromViper(context.Background(), v, WithLogOutput(&bytes.Buffer{}))
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestBuildApplicationFromViper_MissingSnapshotDir(t *testing.T) {
	v := snapshotViper()
	v.Set("target.snapshot_dir", "testdata/nope")

	_, err := BuildApplicationFromViper(context.Background(), v, WithLogOutput(&bytes.Buffer{}))
	require.Error(t, err)
	assert.Equal(t, errors.CodeSnapshotReadError, errors.GetCode(err))
}
