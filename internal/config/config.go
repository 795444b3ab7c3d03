package config

import (
	"time"

	"github.com/olusolaa/picklist-drift-detector/internal/log"
	jsonreport "github.com/olusolaa/picklist-drift-detector/internal/reporting/json"
	"github.com/olusolaa/picklist-drift-detector/internal/reporting/text"
)

const (
	ProviderSFCLI    = "sfcli"
	ProviderToken    = "token"
	ProviderSnapshot = "snapshot"
)

type Config struct {
	Settings    SettingsConfig `mapstructure:"settings"`
	Source      OrgConfig      `mapstructure:"source"`
	Target      OrgConfig      `mapstructure:"target"`
	Object      string         `mapstructure:"object" validate:"required_without_all=Fields Interactive"`
	Fields      []string       `mapstructure:"fields" validate:"dive,required"`
	Interactive bool           `mapstructure:"interactive"`
}

type SettingsConfig struct {
	LogLevel     log.Level       `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat    log.Format      `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
	Concurrency  int             `mapstructure:"concurrency" validate:"gte=1,lte=64"`
	ReporterType string          `mapstructure:"reporter" validate:"oneof=text json"`
	FailOnDrift  bool            `mapstructure:"fail_on_drift"`
	Reporter     ReporterConfigs `mapstructure:"reporter_config"`
}

// OrgConfig describes how to reach one side of the comparison. Which fields
// are required depends on Provider.
type OrgConfig struct {
	Provider     string        `mapstructure:"provider" validate:"required,oneof=sfcli token snapshot"`
	Alias        string        `mapstructure:"alias" validate:"required_if=Provider sfcli"`
	InstanceURL  string        `mapstructure:"instance_url" validate:"required_if=Provider token,omitempty,url"`
	AccessToken  string        `mapstructure:"access_token" validate:"required_if=Provider token"`
	APIVersion   string        `mapstructure:"api_version" validate:"omitempty,numeric"`
	RateLimitRPS int           `mapstructure:"rate_limit_rps" validate:"gte=0,lte=100"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
	SnapshotDir  string        `mapstructure:"snapshot_dir" validate:"required_if=Provider snapshot"`
}

type ReporterConfigs struct {
	Text *text.Config       `mapstructure:"text"`
	JSON *jsonreport.Config `mapstructure:"json"`
}

// Label names the org in logs and prompts.
func (o OrgConfig) Label() string {
	switch o.Provider {
	case ProviderSFCLI:
		return o.Alias
	case ProviderToken:
		return o.InstanceURL
	case ProviderSnapshot:
		return o.SnapshotDir
	}
	return o.Provider
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			Concurrency:  4,
			ReporterType: text.ReporterTypeText,
			Reporter: ReporterConfigs{
				Text: &text.Config{NoColor: false, ShowMatches: true},
				JSON: &jsonreport.Config{Pretty: true},
			},
		},
		Source: OrgConfig{
			Provider: ProviderSFCLI,
			Timeout:  60 * time.Second,
		},
		Target: OrgConfig{
			Provider: ProviderSFCLI,
			Timeout:  60 * time.Second,
		},
	}
}
