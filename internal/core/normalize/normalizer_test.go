package normalize_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/picklist-drift-detector/internal/core/domain"
	"github.com/olusolaa/picklist-drift-detector/internal/core/normalize"
)

func values() []any {
	return []any{
		map[string]any{"fullName": "Active", "label": "Active", "default": "true"},
		map[string]any{"fullName": "Closed", "label": "Closed", "default": "false"},
	}
}

func canonical() []domain.ValueRecord {
	return []domain.ValueRecord{
		{Key: "Active", Label: "Active", IsDefault: true},
		{Key: "Closed", Label: "Closed", IsDefault: false},
	}
}

func valueSetDefinitionPayload(v any) domain.RawPayload {
	return domain.RawPayload{
		"fullName": "Account.Status__c",
		"type":     "Picklist",
		"valueSet": map[string]any{
			"restricted": "true",
			"valueSetDefinition": map[string]any{
				"sorted": "false",
				"value":  v,
			},
		},
	}
}

func picklistPayload(v any) domain.RawPayload {
	return domain.RawPayload{
		"fullName": "Account.Status__c",
		"picklist": map[string]any{"picklistValues": v},
	}
}

func valueSetValuesPayload(v any) domain.RawPayload {
	return domain.RawPayload{
		"fullName": "Account.Status__c",
		"valueSet": map[string]any{"values": v},
	}
}

func TestNormalize_ShapeEquivalence(t *testing.T) {
	testCases := []struct {
		name    string
		payload domain.RawPayload
	}{
		{"Value set definition", valueSetDefinitionPayload(values())},
		{"Legacy picklist values", picklistPayload(values())},
		{"Value set values", valueSetValuesPayload(values())},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, canonical(), normalize.Normalize(tc.payload))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	p := valueSetDefinitionPayload(values())
	assert.Equal(t, normalize.Normalize(p), normalize.Normalize(p))
}

func TestNormalize_SingleValueCoercion(t *testing.T) {
	single := map[string]any{"fullName": "Active", "label": "Active", "default": "true"}

	got := normalize.Normalize(valueSetDefinitionPayload(single))
	truncated := normalize.Normalize(valueSetDefinitionPayload(values()[:1]))

	require.Len(t, got, 1)
	assert.Equal(t, truncated, got)
	assert.Equal(t, domain.ValueRecord{Key: "Active", Label: "Active", IsDefault: true}, got[0])
}

func TestNormalize_Precedence(t *testing.T) {
	payload := domain.RawPayload{
		"valueSet": map[string]any{
			"valueSetDefinition": map[string]any{
				"value": []any{map[string]any{"fullName": "Current", "label": "Current"}},
			},
			"values": []any{map[string]any{"fullName": "Alternate", "label": "Alternate"}},
		},
		"picklist": map[string]any{
			"picklistValues": []any{map[string]any{"fullName": "Legacy", "label": "Legacy"}},
		},
	}

	got := normalize.Normalize(payload)
	require.Len(t, got, 1)
	assert.Equal(t, "Current", got[0].Key)

	_, name, ok := normalize.New().Locate(payload)
	require.True(t, ok)
	assert.Equal(t, normalize.ExtractorValueSetDefinition, name)
}

func TestNormalize_EmptyEarlierLocationFallsThrough(t *testing.T) {
	payload := domain.RawPayload{
		"valueSet": map[string]any{
			"valueSetDefinition": map[string]any{"value": []any{}},
		},
		"picklist": map[string]any{
			"picklistValues": []any{map[string]any{"fullName": "Legacy", "label": "Legacy"}},
		},
	}

	got := normalize.Normalize(payload)
	require.Len(t, got, 1)
	assert.Equal(t, "Legacy", got[0].Key)
}

func TestNormalize_EmptyOnUnknownShape(t *testing.T) {
	testCases := []struct {
		name    string
		payload domain.RawPayload
	}{
		{"Nil payload", nil},
		{"Empty payload", domain.RawPayload{}},
		{"Global value set reference only", domain.RawPayload{
			"valueSet": map[string]any{"valueSetName": "Regions"},
		}},
		{"Unrelated shape", domain.RawPayload{
			"options": []any{map[string]any{"fullName": "A"}},
		}},
		{"Null list", valueSetDefinitionPayload(nil)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalize.Normalize(tc.payload)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestNormalize_FieldMapping(t *testing.T) {
	payload := picklistPayload([]any{
		map[string]any{"fullName": "A", "label": "Alpha"},
		map[string]any{"fullName": "B", "label": "Beta", "default": true},
		map[string]any{"fullName": "C", "label": "Gamma", "default": "yes-ish"},
		map[string]any{"fullName": 42, "label": 7, "default": 1},
		"not-an-object",
	})

	assert.Equal(t, []domain.ValueRecord{
		{Key: "A", Label: "Alpha", IsDefault: false},
		{Key: "B", Label: "Beta", IsDefault: true},
		{Key: "C", Label: "Gamma", IsDefault: false},
		{Key: "42", Label: "7", IsDefault: true},
	}, normalize.Normalize(payload))
}

func TestNormalize_CustomExtractors(t *testing.T) {
	n := normalize.New(normalize.Extractor{Name: "customValue", Path: "customValue"})
	payload := domain.RawPayload{
		"customValue": map[string]any{"fullName": "EMEA", "label": "EMEA", "default": "false"},
	}

	assert.Equal(t, []domain.ValueRecord{{Key: "EMEA", Label: "EMEA"}}, n.Normalize(payload))
	assert.Empty(t, n.Normalize(valueSetDefinitionPayload(values())))
}

func TestNormalizeLocated(t *testing.T) {
	n := normalize.New()

	records, location := n.NormalizeLocated(picklistPayload(values()))
	assert.Equal(t, canonical(), records)
	assert.Equal(t, normalize.ExtractorPicklistValues, location)

	records, location = n.NormalizeLocated(domain.RawPayload{"type": "Text"})
	assert.Empty(t, records)
	assert.Equal(t, "", location)
}

func TestNormalize_KeysAndLabelsKeptExact(t *testing.T) {
	payload := valueSetValuesPayload([]any{
		map[string]any{"fullName": int64(12345678901234567), "label": "a\xffb"},
		map[string]any{"fullName": json.Number("98765432109876543"), "label": "Big", "default": json.Number("1")},
		map[string]any{"fullName": uint64(18446744073709551615), "label": "Max"},
	})

	assert.Equal(t, []domain.ValueRecord{
		{Key: "12345678901234567", Label: "a\xffb"},
		{Key: "98765432109876543", Label: "Big", IsDefault: true},
		{Key: "18446744073709551615", Label: "Max"},
	}, normalize.Normalize(payload))
}

func TestNormalize_NestedRawPayload(t *testing.T) {
	payload := domain.RawPayload{
		"valueSet": domain.RawPayload{"values": []map[string]any{
			{"fullName": "Active", "label": "Active", "default": "true"},
			{"fullName": "Closed", "label": "Closed"},
		}},
	}

	assert.Equal(t, canonical(), normalize.Normalize(payload))
}
