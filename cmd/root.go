package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/picklist-drift-detector/internal/app"
	"github.com/olusolaa/picklist-drift-detector/internal/config"
	apperrors "github.com/olusolaa/picklist-drift-detector/internal/errors"
)

const envPrefix = "PICKLIST"

var (
	cfgFile        string
	envFile        string
	logLevel       string
	logFormat      string
	object         string
	fieldsOverride string
	reporterType   string
	concurrency    int
	interactive    bool
	failOnDrift    bool
)

var rootCmd = &cobra.Command{
	Use:   "picklist-drift",
	Short: "Compares picklist values of the same fields across two Salesforce orgs.",
	Long: `picklist-drift reads the definition of one or more picklist fields from a
source and a target org (or an offline snapshot) and reports values that are
missing, extra, relabelled or differently defaulted between the two.

Orgs are resolved through the Salesforce CLI by alias, from an instance URL and
access token, or from a directory of snapshot files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(viper.GetViper())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()
		if v.GetBool("interactive") && !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			err := apperrors.NewUserFacing(apperrors.CodeSelectionError, "--interactive needs a terminal on stdin",
				"Pass --object and --fields instead when running in CI.")
			printError(err)
			return err
		}

		application, bootstrapErr := app.BuildApplicationFromViper(cmd.Context(), v)
		if bootstrapErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", bootstrapErr)
			var appErr *apperrors.AppError
			if errors.As(bootstrapErr, &appErr) && appErr.IsUserFacing && appErr.SuggestedAction != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", appErr.SuggestedAction)
			}
			return bootstrapErr
		}

		if runErr := application.Run(cmd.Context()); runErr != nil {
			printError(runErr)
			return runErr
		}
		return nil
	},
}

func printError(err error) {
	userMsg, suggestion, _ := apperrors.GetUserFacingMessage(err)
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
	}
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes detected drift (2) from failures (1).
func exitCode(err error) int {
	if apperrors.Is(err, apperrors.CodeDriftDetected) {
		return 2
	}
	return 1
}

func init() {
	defaults := config.DefaultConfig()
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is ./.picklist-drift.yaml or $HOME/.picklist-drift.yaml)")
	flags.StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	flags.StringVar(&logLevel, "log-level", string(defaults.Settings.LogLevel), "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", string(defaults.Settings.LogFormat), "Log format (text, json)")
	flags.StringVarP(&object, "object", "o", "", "Object API name, e.g. Account")
	flags.StringVarP(&fieldsOverride, "fields", "f", "", "Fields to compare, e.g. 'Industry,Rating' or 'Account=Industry;Case=Origin' (default: every picklist on --object)")
	flags.StringVarP(&reporterType, "reporter", "r", defaults.Settings.ReporterType, "Report format (text, json)")
	flags.IntVar(&concurrency, "concurrency", defaults.Settings.Concurrency, "Number of fields compared in parallel")
	flags.BoolVarP(&interactive, "interactive", "i", false, "Choose the object and fields interactively")
	flags.BoolVar(&failOnDrift, "fail-on-drift", false, "Exit with status 2 when any field drifted or failed")

	bindFlags(viper.GetViper(), rootCmd)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	_ = v.BindPFlag("settings.log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("settings.log_format", flags.Lookup("log-format"))
	_ = v.BindPFlag("settings.reporter", flags.Lookup("reporter"))
	_ = v.BindPFlag("settings.concurrency", flags.Lookup("concurrency"))
	_ = v.BindPFlag("settings.fail_on_drift", flags.Lookup("fail-on-drift"))
	_ = v.BindPFlag("object", flags.Lookup("object"))
	_ = v.BindPFlag("interactive", flags.Lookup("interactive"))
	_ = v.BindPFlag(app.FieldsOverrideKey, flags.Lookup("fields"))
}

// bindEnv maps PICKLIST_* variables onto config keys. The org aliases also
// honour the SF_ORG_A_ALIAS / SF_ORG_B_ALIAS names used by existing scripts.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("source.alias", envPrefix+"_SOURCE_ALIAS", "SF_ORG_A_ALIAS")
	_ = v.BindEnv("target.alias", envPrefix+"_TARGET_ALIAS", "SF_ORG_B_ALIAS")
	for _, side := range []string{"source", "target"} {
		for _, key := range []string{"provider", "instance_url", "access_token", "api_version", "snapshot_dir", "rate_limit_rps", "timeout"} {
			_ = v.BindEnv(side + "." + key)
		}
	}
	_ = v.BindEnv("object")
}

func initializeConfig(v *viper.Viper) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, fmt.Sprintf("failed to load env file %s", envFile))
		}
	}
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		v.AddConfigPath(".")
		v.AddConfigPath(home)
		v.SetConfigName(".picklist-drift")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}
	return nil
}
