// Package diff classifies the values of one attribute across a source and a
// target canonical list.
package diff

import (
	"fmt"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
)

// Diff compares source against target. It is total: any pair of lists,
// including empty ones, yields a report whose categories are non-nil.
//
// Matches, Mismatches and MissingInTarget follow source order and
// ExtraInTarget follows target order. When a key repeats within one list only
// its first occurrence takes part in the comparison.
func Diff(source, target []domain.ValueRecord) domain.ComparisonReport {
	report := domain.ComparisonReport{
		Matches:         make([]domain.ValueRef, 0),
		Mismatches:      make([]domain.Mismatch, 0),
		MissingInTarget: make([]domain.ValueRef, 0),
		ExtraInTarget:   make([]domain.ValueRef, 0),
	}

	sourceIndex := index(source)
	targetIndex := index(target)

	seen := make(map[string]struct{}, len(source))
	for _, src := range source {
		if _, dup := seen[src.Key]; dup {
			continue
		}
		seen[src.Key] = struct{}{}

		tgt, found := targetIndex[src.Key]
		switch {
		case !found:
			report.MissingInTarget = append(report.MissingInTarget, domain.ValueRef{Key: src.Key, Label: src.Label})
		case src.Label == tgt.Label && src.IsDefault == tgt.IsDefault:
			report.Matches = append(report.Matches, domain.ValueRef{Key: src.Key, Label: src.Label})
		default:
			report.Mismatches = append(report.Mismatches, mismatch(src, tgt))
		}
	}

	seen = make(map[string]struct{}, len(target))
	for _, tgt := range target {
		if _, dup := seen[tgt.Key]; dup {
			continue
		}
		seen[tgt.Key] = struct{}{}

		if _, found := sourceIndex[tgt.Key]; !found {
			report.ExtraInTarget = append(report.ExtraInTarget, domain.ValueRef{Key: tgt.Key, Label: tgt.Label})
		}
	}

	return report
}

// mismatch classifies a differing pair. A label difference wins over a
// default difference; both sides' labels and defaults are always kept.
func mismatch(src, tgt domain.ValueRecord) domain.Mismatch {
	issue := domain.IssueDefaultMismatch
	if src.Label != tgt.Label {
		issue = domain.IssueLabelMismatch
	}
	return domain.Mismatch{
		Key:           src.Key,
		Issue:         issue,
		LabelSource:   src.Label,
		LabelTarget:   tgt.Label,
		DefaultSource: src.IsDefault,
		DefaultTarget: tgt.IsDefault,
		Detail:        fmt.Sprintf("Default: source(%t) vs target(%t)", src.IsDefault, tgt.IsDefault),
	}
}

// index maps key to the first record carrying it.
func index(records []domain.ValueRecord) map[string]domain.ValueRecord {
	idx := make(map[string]domain.ValueRecord, len(records))
	for _, rec := range records {
		if _, exists := idx[rec.Key]; !exists {
			idx[rec.Key] = rec
		}
	}
	return idx
}

// DuplicateKeys returns keys that occur more than once, in order of their
// second occurrence, each reported once.
func DuplicateKeys(records []domain.ValueRecord) []string {
	counts := make(map[string]int, len(records))
	var dups []string
	for _, rec := range records {
		counts[rec.Key]++
		if counts[rec.Key] == 2 {
			dups = append(dups, rec.Key)
		}
	}
	return dups
}

// DefaultKeys returns the keys flagged as default, in list order.
func DefaultKeys(records []domain.ValueRecord) []string {
	var keys []string
	for _, rec := range records {
		if rec.IsDefault {
			keys = append(keys, rec.Key)
		}
	}
	return keys
}
