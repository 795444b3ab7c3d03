// Package normalize turns field definitions of any supported shape into the
// canonical ordered list of value records.
package normalize

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/pkg/convert"
)

type rawValue struct {
	FullName string `mapstructure:"fullName"`
	Label    string `mapstructure:"label"`
	Default  bool   `mapstructure:"default"`
}

type Normalizer struct {
	extractors []Extractor
}

// New returns a Normalizer probing extractors in the given order, or
// DefaultExtractors when none are given.
func New(extractors ...Extractor) *Normalizer {
	if len(extractors) == 0 {
		extractors = DefaultExtractors
	}
	return &Normalizer{extractors: extractors}
}

var defaultNormalizer = New()

// Normalize extracts the canonical value list using DefaultExtractors.
func Normalize(payload domain.RawPayload) []domain.ValueRecord {
	return defaultNormalizer.Normalize(payload)
}

// Normalize never fails: an absent or unrecognized value list yields an empty
// slice and callers decide whether that deserves a warning.
func (n *Normalizer) Normalize(payload domain.RawPayload) []domain.ValueRecord {
	records, _ := n.NormalizeLocated(payload)
	return records
}

// NormalizeLocated is Normalize that also reports which extractor supplied the
// values, or "" when no location was populated.
func (n *Normalizer) NormalizeLocated(payload domain.RawPayload) ([]domain.ValueRecord, string) {
	records := make([]domain.ValueRecord, 0)

	values, location, ok := n.Locate(payload)
	if !ok {
		return records, ""
	}

	var value rawValue
	decoder, err := newValueDecoder(&value)
	if err != nil {
		return records, location
	}
	for _, element := range asList(values) {
		value = rawValue{}
		if rec, ok := toRecord(decoder, &value, element); ok {
			records = append(records, rec)
		}
	}
	return records, location
}

// Locate returns the first populated value list and the name of the extractor
// that found it. Later extractors are never consulted once one matches.
func (n *Normalizer) Locate(payload domain.RawPayload) (any, string, bool) {
	if len(payload) == 0 {
		return nil, "", false
	}
	for _, extractor := range n.extractors {
		if found, ok := extractor.Extract(payload); ok {
			return found, extractor.Name, true
		}
	}
	return nil, "", false
}

// newValueDecoder decodes value elements into result. Weak typing renders
// numeric keys and labels in their exact integer form.
func newValueDecoder(result *rawValue) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       lenientBoolHook,
		WeaklyTypedInput: true,
		Result:           result,
	})
}

func toRecord(decoder *mapstructure.Decoder, value *rawValue, element any) (domain.ValueRecord, bool) {
	if element == nil || reflect.ValueOf(element).Kind() != reflect.Map {
		return domain.ValueRecord{}, false
	}
	if err := decoder.Decode(element); err != nil {
		return domain.ValueRecord{}, false
	}

	return domain.ValueRecord{
		Key:       value.FullName,
		Label:     value.Label,
		IsDefault: value.Default,
	}, true
}

// lenientBoolHook maps any flag representation onto a bool instead of
// failing the element on values like "" or "yes".
func lenientBoolHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Bool {
		return data, nil
	}
	return convert.ToBool(data), nil
}
