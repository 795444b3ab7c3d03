package json

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
	apperrors "github.com/olusolaa/picklist-drift-detector/internal/errors"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	Pretty bool `mapstructure:"pretty"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
	now    func() time.Time
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	return NewReporterWithWriter(cfg, os.Stdout, logger)
}

func NewReporterWithWriter(cfg Config, w io.Writer, logger ports.Logger) (*Reporter, error) {
	if w == nil {
		return nil, apperrors.New(apperrors.CodeInternal, "json reporter requires a writer")
	}
	return &Reporter{
		config: cfg,
		writer: w,
		logger: logger,
		now:    time.Now,
	}, nil
}

type jsonReport struct {
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Summary     jsonSummary      `json:"summary"`
	Results     []jsonResultItem `json:"results"`
}

type jsonSummary struct {
	AttributesCompared int `json:"attributes_compared"`
	InSync             int `json:"in_sync"`
	Drifted            int `json:"drifted"`
	Errors             int `json:"errors"`
	Discrepancies      int `json:"discrepancies"`
}

type jsonResultItem struct {
	Attribute    string                   `json:"attribute"`
	Status       domain.AttributeStatus   `json:"status"`
	SourceCount  int                      `json:"source_count"`
	TargetCount  int                      `json:"target_count"`
	Warnings     []string                 `json:"warnings,omitempty"`
	Report       *domain.ComparisonReport `json:"report,omitempty"`
	ErrorCode    string                   `json:"error_code,omitempty"`
	ErrorMessage string                   `json:"error_message,omitempty"`
}

func (r *Reporter) Report(ctx context.Context, results []domain.AttributeResult) error {
	report := jsonReport{
		RunID:       uuid.NewString(),
		GeneratedAt: r.now().UTC(),
		Summary:     jsonSummary{AttributesCompared: len(results)},
		Results:     make([]jsonResultItem, 0, len(results)),
	}

	for _, res := range results {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON report generation cancelled")
			return ctx.Err()
		}

		item := jsonResultItem{
			Attribute:   res.Attribute.FullName(),
			Status:      res.Status,
			SourceCount: res.SourceCount,
			TargetCount: res.TargetCount,
			Warnings:    res.Warnings,
		}

		switch res.Status {
		case domain.StatusInSync:
			report.Summary.InSync++
		case domain.StatusDrifted:
			report.Summary.Drifted++
		case domain.StatusError:
			report.Summary.Errors++
		}

		if res.Status == domain.StatusError {
			if res.Error != nil {
				item.ErrorCode = apperrors.GetCode(res.Error).String()
				item.ErrorMessage = res.Error.Error()
			}
		} else {
			cr := res.Report
			item.Report = &cr
			report.Summary.Discrepancies += cr.DiscrepancyCount()
		}

		report.Results = append(report.Results, item)
	}

	encoder := json.NewEncoder(r.writer)
	if r.config.Pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(report); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return apperrors.Wrap(err, apperrors.CodeInternal, fmt.Sprintf("failed to encode JSON report for run %s", report.RunID))
	}

	r.logger.Debugf(ctx, "JSON report %s generated with %d results", report.RunID, len(report.Results))
	return nil
}
