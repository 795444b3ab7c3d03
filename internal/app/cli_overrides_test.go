package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFieldsOverride(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "   ", nil},
		{"plain list", "Industry, Rating ,", []string{"Industry", "Rating"}},
		{"qualified", "Account.Industry", []string{"Account.Industry"}},
		{"grouped", "Account=Industry,Rating; Case=Origin", []string{"Account.Industry", "Account.Rating", "Case.Origin"}},
		{"group without object is skipped", "=Industry;Case=Origin", []string{"Case.Origin"}},
		{"empty groups", ";;Account=;", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseFieldsOverride(tc.input))
		})
	}
}
