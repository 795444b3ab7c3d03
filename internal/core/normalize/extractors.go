package normalize

import (
	"reflect"
	"strings"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
)

// Extractor probes one location of a field definition for its value list.
// Path is a dot-separated list of keys relative to the payload root.
type Extractor struct {
	Name string
	Path string
}

const (
	ExtractorValueSetDefinition = "valueSetDefinition"
	ExtractorPicklistValues     = "picklistValues"
	ExtractorValueSetValues     = "valueSetValues"
)

// DefaultExtractors lists the known value list locations in priority order:
// the current value set definition, the legacy picklist container, then the
// alternate flat value set list.
var DefaultExtractors = []Extractor{
	{Name: ExtractorValueSetDefinition, Path: "valueSet.valueSetDefinition.value"},
	{Name: ExtractorPicklistValues, Path: "picklist.picklistValues"},
	{Name: ExtractorValueSetValues, Path: "valueSet.values"},
}

// Extract returns the value found at the extractor's path when it is populated.
// Values are returned as decoded, without any re-encoding.
func (e Extractor) Extract(payload domain.RawPayload) (any, bool) {
	var current any = map[string]any(payload)
	for _, key := range strings.Split(e.Path, ".") {
		node, ok := asMap(current)
		if !ok {
			return nil, false
		}
		if current, ok = node[key]; !ok {
			return nil, false
		}
	}
	if !populated(current) {
		return nil, false
	}
	return current, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case domain.RawPayload:
		return m, true
	}
	return nil, false
}

// populated rejects missing paths, nulls and empty lists, objects or strings.
func populated(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// asList wraps a bare object into a one-element list. XML-derived payloads
// collapse single-element lists, so cardinality cannot be trusted.
func asList(v any) []any {
	switch list := v.(type) {
	case []any:
		return list
	case []map[string]any:
		out := make([]any, len(list))
		for i, m := range list {
			out[i] = m
		}
		return out
	}
	return []any{v}
}
