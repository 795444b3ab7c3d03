package text

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
	apperrors "github.com/olusolaa/picklist-drift-detector/internal/errors"
)

const ReporterTypeText = "text"

const (
	keyWidth = 25
	rule     = "---------------------------------------------------------"
)

type Config struct {
	NoColor     bool `mapstructure:"no_color"`
	ShowMatches bool `mapstructure:"show_matches"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger

	red, yellow, green, magenta, gray, header func(a ...any) string
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	noColor := cfg.NoColor || !isatty.IsTerminal(os.Stdout.Fd())
	return NewReporterWithWriter(cfg, os.Stdout, noColor, logger)
}

// NewReporterWithWriter renders to w. Colors are scoped to this reporter
// rather than toggled through color.NoColor.
func NewReporterWithWriter(cfg Config, w io.Writer, noColor bool, logger ports.Logger) (*Reporter, error) {
	if w == nil {
		return nil, apperrors.New(apperrors.CodeInternal, "text reporter requires a writer")
	}

	paint := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
		return c.SprintFunc()
	}

	return &Reporter{
		config:  cfg,
		writer:  w,
		logger:  logger,
		red:     paint(color.FgRed),
		yellow:  paint(color.FgYellow),
		green:   paint(color.FgGreen),
		magenta: paint(color.FgMagenta),
		gray:    paint(color.FgHiBlack),
		header:  paint(color.FgWhite, color.BgBlue, color.Bold),
	}, nil
}

func (r *Reporter) Report(ctx context.Context, results []domain.AttributeResult) error {
	if len(results) == 0 {
		fmt.Fprintln(r.writer, "No picklist attributes were compared.")
		return nil
	}

	var inSync, drifted, failed int
	for _, res := range results {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "Text report generation cancelled")
			return ctx.Err()
		}

		switch res.Status {
		case domain.StatusInSync:
			inSync++
		case domain.StatusDrifted:
			drifted++
		case domain.StatusError:
			failed++
		}
		r.writeAttribute(res)
	}

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Summary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Attributes Compared:\t%d\n", len(results))
	fmt.Fprintf(tw, "In Sync:\t%s\n", r.green(inSync))
	fmt.Fprintf(tw, "Drifted:\t%s\n", r.red(drifted))
	fmt.Fprintf(tw, "Errors:\t%s\n", r.magenta(failed))
	return tw.Flush()
}

func (r *Reporter) writeAttribute(res domain.AttributeResult) {
	w := r.writer
	fmt.Fprintln(w, r.header(fmt.Sprintf(" RESULTS FOR: %s ", res.Attribute.FullName())))
	fmt.Fprintln(w, r.gray(rule))

	if res.Status == domain.StatusError {
		fmt.Fprintln(w, r.magenta(fmt.Sprintf("[ERROR]    %s", describeError(res.Error))))
		fmt.Fprintln(w, r.gray(rule))
		fmt.Fprintln(w)
		return
	}

	for _, warning := range res.Warnings {
		fmt.Fprintln(w, r.yellow(fmt.Sprintf("[WARNING]  %s", warning)))
	}

	report := res.Report
	if r.config.ShowMatches {
		for _, m := range report.Matches {
			fmt.Fprintln(w, r.green(fmt.Sprintf("[MATCH]    %s | Validated", pad(m.Key))))
		}
	}
	for _, m := range report.Mismatches {
		fmt.Fprintln(w, r.yellow(fmt.Sprintf("[MISMATCH] %s | %s (%s)", pad(m.Key), m.Issue, mismatchDetail(m))))
	}
	for _, m := range report.MissingInTarget {
		fmt.Fprintln(w, r.red(fmt.Sprintf("[MISSING]  %s | Not found in target", pad(m.Key))))
	}
	for _, m := range report.ExtraInTarget {
		fmt.Fprintln(w, r.magenta(fmt.Sprintf("[EXTRA]    %s | Exists in target only", pad(m.Key))))
	}

	fmt.Fprintln(w, r.gray(rule))
	if issues := report.DiscrepancyCount(); issues == 0 {
		fmt.Fprintln(w, r.green(fmt.Sprintf("✔ SUCCESS: All %d values are in sync!", len(report.Matches))))
	} else {
		fmt.Fprintln(w, r.red(fmt.Sprintf("✖ ATTENTION: Found %d discrepancy(ies).", issues)))
	}
	fmt.Fprintln(w)
}

func mismatchDetail(m domain.Mismatch) string {
	if m.Issue == domain.IssueLabelMismatch {
		return fmt.Sprintf("Label: %q vs %q; %s", m.LabelSource, m.LabelTarget, m.Detail)
	}
	return m.Detail
}

func describeError(err error) string {
	if err == nil {
		return "comparison failed"
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.IsUserFacing {
		msg := appErr.Message
		if appErr.SuggestedAction != "" {
			msg += " (" + appErr.SuggestedAction + ")"
		}
		return msg
	}
	return err.Error()
}

func pad(key string) string {
	if len(key) >= keyWidth {
		return key
	}
	return key + strings.Repeat(" ", keyWidth-len(key))
}
