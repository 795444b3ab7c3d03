package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/picklist-drift-detector/internal/core/diff"
	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/internal/core/normalize"
	"github.com/olusolaa/picklist-drift-detector/internal/core/ports"
	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

const defaultConcurrency = 4

type EngineOptions struct {
	Concurrency int
	FailOnDrift bool
}

// ComparisonEngine selects attributes, fetches both sides of each, and hands
// the classified results to the reporter.
type ComparisonEngine struct {
	source     ports.MetadataFetcher
	target     ports.MetadataFetcher
	selector   ports.AttributeSelector
	reporter   ports.Reporter
	normalizer *normalize.Normalizer
	logger     ports.Logger
	opts       EngineOptions
}

func NewComparisonEngine(
	source ports.MetadataFetcher,
	target ports.MetadataFetcher,
	selector ports.AttributeSelector,
	reporter ports.Reporter,
	logger ports.Logger,
	opts EngineOptions,
) (*ComparisonEngine, error) {
	if source == nil || target == nil {
		return nil, errors.New(errors.CodeConfigValidation, "source and target fetchers are required")
	}
	if selector == nil {
		return nil, errors.New(errors.CodeConfigValidation, "attribute selector cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	return &ComparisonEngine{
		source:     source,
		target:     target,
		selector:   selector,
		reporter:   reporter,
		normalizer: normalize.New(),
		logger:     logger,
		opts:       opts,
	}, nil
}

func (e *ComparisonEngine) Run(ctx context.Context) error {
	e.logger.Infof(ctx, "Starting picklist comparison: source=%s target=%s", e.source.Type(), e.target.Type())

	attrs, err := e.selector.Select(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CodeSelectionError, "failed to select attributes")
	}
	if len(attrs) == 0 {
		return errors.NewUserFacing(errors.CodeSelectionError, "no picklist attributes selected for comparison",
			"Set 'object' and optionally 'fields' in the configuration, or run with --interactive.")
	}
	e.logger.Debugf(ctx, "Comparing %d attributes with concurrency %d", len(attrs), e.opts.Concurrency)

	results, err := e.CompareAll(ctx, attrs)
	if err != nil {
		e.logger.Warnf(ctx, "Comparison cancelled: %v", err)
		return err
	}

	if err := e.reporter.Report(ctx, results); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to generate report")
	}

	drifted, failed := tally(results)
	e.logger.Infof(ctx, "Comparison finished: %d attributes, %d drifted, %d failed", len(results), drifted, failed)

	if e.opts.FailOnDrift && drifted+failed > 0 {
		return errors.NewUserFacing(errors.CodeDriftDetected,
			fmt.Sprintf("drift detected in %d of %d attributes (%d failed)", drifted, len(results), failed),
			"Review the report above, or run without --fail-on-drift.")
	}
	return nil
}

// CompareAll compares every attribute, bounded by the configured concurrency.
// Results keep the order of attrs. A failure on one attribute is recorded in
// its result; only context cancellation aborts the batch.
func (e *ComparisonEngine) CompareAll(ctx context.Context, attrs []domain.AttributeRef) ([]domain.AttributeResult, error) {
	results := make([]domain.AttributeResult, len(attrs))

	g, childCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)

	for i, attr := range attrs {
		i, attr := i, attr
		g.Go(func() error {
			if childCtx.Err() != nil {
				return childCtx.Err()
			}
			results[i] = e.CompareAttribute(childCtx, attr)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return results, nil
}

// CompareAttribute fetches both payloads concurrently, normalizes them and
// classifies the difference.
func (e *ComparisonEngine) CompareAttribute(ctx context.Context, attr domain.AttributeRef) domain.AttributeResult {
	log := e.logger.WithFields(map[string]any{"attribute": attr.FullName()})
	result := domain.AttributeResult{Attribute: attr}

	var sourcePayload, targetPayload domain.RawPayload
	g, childCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := e.source.FetchField(childCtx, attr)
		if err != nil {
			return errors.Wrap(err, errors.CodePlatformAPIError, fmt.Sprintf("reading %s from source", attr))
		}
		sourcePayload = p
		return nil
	})
	g.Go(func() error {
		p, err := e.target.FetchField(childCtx, attr)
		if err != nil {
			return errors.Wrap(err, errors.CodePlatformAPIError, fmt.Sprintf("reading %s from target", attr))
		}
		targetPayload = p
		return nil
	})

	if err := g.Wait(); err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			log.Warnf(ctx, "Fetch interrupted: %v", err)
		} else {
			log.Errorf(ctx, err, "Failed to fetch attribute metadata")
		}
		result.Status = domain.StatusError
		result.Error = err
		return result
	}

	source := e.normalize(ctx, log, "source", sourcePayload, &result)
	target := e.normalize(ctx, log, "target", targetPayload, &result)
	result.SourceCount = len(source)
	result.TargetCount = len(target)

	result.Report = diff.Diff(source, target)
	if result.Report.InSync() {
		result.Status = domain.StatusInSync
		log.Debugf(ctx, "All %d values in sync", len(result.Report.Matches))
	} else {
		result.Status = domain.StatusDrifted
		log.Warnf(ctx, "Drift detected: %d discrepancies", result.Report.DiscrepancyCount())
	}
	return result
}

// normalize converts one side's payload and records data-quality warnings on
// the result: an empty value list, duplicate keys and multiple defaults.
func (e *ComparisonEngine) normalize(ctx context.Context, log ports.Logger, side string, payload domain.RawPayload, result *domain.AttributeResult) []domain.ValueRecord {
	records, location := e.normalizer.NormalizeLocated(payload)

	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		result.Warnings = append(result.Warnings, msg)
		log.Warnf(ctx, "%s", msg)
	}

	switch {
	case location == "":
		warn("no picklist values found in %s payload", side)
	case len(records) == 0:
		warn("%s value list at %s contained no usable entries", side, location)
	default:
		log.Debugf(ctx, "Normalized %d %s values from %s", len(records), side, location)
	}

	if dups := diff.DuplicateKeys(records); len(dups) > 0 {
		warn("%s payload repeats keys %s; first occurrence used", side, strings.Join(dups, ", "))
	}
	if defaults := diff.DefaultKeys(records); len(defaults) > 1 {
		warn("%s payload marks %d values as default: %s", side, len(defaults), strings.Join(defaults, ", "))
	}
	return records
}

func tally(results []domain.AttributeResult) (drifted, failed int) {
	for _, r := range results {
		switch r.Status {
		case domain.StatusDrifted:
			drifted++
		case domain.StatusError:
			failed++
		}
	}
	return drifted, failed
}
