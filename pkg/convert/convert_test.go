package convert_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olusolaa/picklist-drift-detector/pkg/convert"
)

type flag string

func TestToBool(t *testing.T) {
	truthy := true
	testCases := []struct {
		name  string
		input any
		want  bool
	}{
		{"nil", nil, false},
		{"bool true", true, true},
		{"bool false", false, false},
		{"string true", "true", true},
		{"string padded", " TRUE ", true},
		{"string false", "false", false},
		{"string garbage", "maybe", false},
		{"empty string", "", false},
		{"int one", 1, true},
		{"int zero", 0, false},
		{"float", 1.0, true},
		{"json number", json.Number("1"), true},
		{"json number zero", json.Number("0.0"), false},
		{"named string", flag("true"), true},
		{"pointer", &truthy, true},
		{"map", map[string]any{"a": 1}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, convert.ToBool(tc.input))
		})
	}
}
