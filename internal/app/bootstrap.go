package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/olusolaa/picklist-drift-detector/internal/adapters/platform/salesforce"
	"github.com/olusolaa/picklist-drift-detector/internal/adapters/selection"
	"github.com/olusolaa/picklist-drift-detector/internal/adapters/state/snapshot"
	"github.com/olusolaa/picklist-drift-detector/internal/config"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
	"github.com/olusolaa/picklist-drift-detector/internal/core/service"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
	"github.com/olusolaa/picklist-drift-detector/internal/log"
	jsonreport "github.com/olusolaa/picklist-drift-detector/internal/reporting/json"
	"github.com/olusolaa/picklist-drift-detector/internal/reporting/text"
)

// FieldsOverrideKey is the viper key the --fields flag is bound to.
const FieldsOverrideKey = "fields_override"

type options struct {
	output    io.Writer
	logOutput io.Writer
	runner    salesforce.CommandRunner
	prompter  selection.Prompter
}

type Option func(*options)

// WithOutput sends the report to w instead of stdout. Colors are disabled.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithLogOutput sends logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// WithCommandRunner replaces the runner used to query the Salesforce CLI.
func WithCommandRunner(r salesforce.CommandRunner) Option {
	return func(o *options) { o.runner = r }
}

func WithPrompter(p selection.Prompter) Option {
	return func(o *options) { o.prompter = p }
}

func BuildApplicationFromViper(ctx context.Context, v *viper.Viper, opts ...Option) (*Application, error) {
	o := &options{logOutput: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	cfg := config.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logger, err := log.NewLoggerWithWriter(log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}, o.logOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	if override := v.GetString(FieldsOverrideKey); override != "" {
		logger.Debugf(ctx, "Applying field overrides from command line: %s", override)
		cfg.Fields = parseFieldsOverride(override)
	}

	if err := validateConfig(ctx, cfg); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, err
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	registry, err := newRegistry(o)
	if err != nil {
		return nil, err
	}

	source, err := buildOrg(ctx, registry, "source", cfg.Source, logger)
	if err != nil {
		return nil, err
	}
	target, err := buildOrg(ctx, registry, "target", cfg.Target, logger)
	if err != nil {
		return nil, err
	}

	reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": cfg.Settings.ReporterType})
	reporter, err := registry.NewReporter(cfg.Settings, reportLog)
	if err != nil {
		return nil, err
	}
	reportLog.Debugf(ctx, "Using %s reporter", cfg.Settings.ReporterType)

	selectLog := logger.WithFields(map[string]any{"component": "selector"})
	var selector ports.AttributeSelector
	if cfg.Interactive {
		selector = selection.NewInteractiveSelector(cfg.Object, source, o.prompter, selectLog)
		selectLog.Debugf(ctx, "Using interactive selection")
	} else {
		selector = selection.NewConfiguredSelector(cfg.Object, cfg.Fields, source, selectLog)
		selectLog.Debugf(ctx, "Using configured selection: object=%s fields=%v", cfg.Object, cfg.Fields)
	}

	engine, err := service.NewComparisonEngine(
		source, target, selector, reporter,
		logger.WithFields(map[string]any{"component": "engine"}),
		service.EngineOptions{Concurrency: cfg.Settings.Concurrency, FailOnDrift: cfg.Settings.FailOnDrift},
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize comparison engine")
	}

	logger.Debugf(ctx, "Application bootstrap complete")
	return NewApplication(engine, logger, cfg), nil
}

func validateConfig(ctx context.Context, cfg *config.Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(ctx, cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeConfigValidation, "configuration validation failed")
	}

	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	for _, fe := range validationErrors {
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file, environment or flags.")
}

func newRegistry(o *options) (*service.ComponentRegistry, error) {
	registry := service.NewComponentRegistry()

	liveOrg := func(_ context.Context, cfg config.OrgConfig, logger ports.Logger) (ports.Org, error) {
		return salesforce.NewProvider(cfg, logger, o.runner)
	}
	if err := registry.RegisterOrgFactory(config.ProviderSFCLI, liveOrg); err != nil {
		return nil, err
	}
	if err := registry.RegisterOrgFactory(config.ProviderToken, liveOrg); err != nil {
		return nil, err
	}
	if err := registry.RegisterOrgFactory(config.ProviderSnapshot, func(_ context.Context, cfg config.OrgConfig, logger ports.Logger) (ports.Org, error) {
		return snapshot.NewProvider(cfg, logger)
	}); err != nil {
		return nil, err
	}

	if err := registry.RegisterReporterFactory(text.ReporterTypeText, func(settings config.SettingsConfig, logger ports.Logger) (ports.Reporter, error) {
		cfg := text.Config{ShowMatches: true}
		if settings.Reporter.Text != nil {
			cfg = *settings.Reporter.Text
		}
		if o.output != nil {
			return text.NewReporterWithWriter(cfg, o.output, true, logger)
		}
		return text.NewReporter(cfg, logger)
	}); err != nil {
		return nil, err
	}
	if err := registry.RegisterReporterFactory(jsonreport.ReporterTypeJSON, func(settings config.SettingsConfig, logger ports.Logger) (ports.Reporter, error) {
		cfg := jsonreport.Config{Pretty: true}
		if settings.Reporter.JSON != nil {
			cfg = *settings.Reporter.JSON
		}
		if o.output != nil {
			return jsonreport.NewReporterWithWriter(cfg, o.output, logger)
		}
		return jsonreport.NewReporter(cfg, logger)
	}); err != nil {
		return nil, err
	}

	return registry, nil
}

func buildOrg(ctx context.Context, registry *service.ComponentRegistry, side string, cfg config.OrgConfig, logger ports.Logger) (ports.Org, error) {
	orgLog := logger.WithFields(map[string]any{"side": side, "provider": cfg.Provider})
	org, err := registry.NewOrg(ctx, cfg, orgLog)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation, fmt.Sprintf("failed to initialize %s org", side))
	}
	orgLog.Infof(ctx, "Using %s org: %s", side, cfg.Label())
	return org, nil
}
