package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthAndYear(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "january",
			input:    "2025-01",
			expected: "Enero 2025",
		},
		{
			name:     "december",
			input:    "2024-12",
			expected: "Diciembre 2024",
		},
		{
			name:     "mid year",
			input:    "2023-07",
			expected: "Julio 2023",
		},
		{
			name:     "month out of range",
			input:    "2025-13",
			expected: "",
		},
		{
			name:     "month zero",
			input:    "2025-00",
			expected: "",
		},
		{
			name:     "missing segment",
			input:    "2025",
			expected: "",
		},
		{
			name:     "too many segments",
			input:    "2025-01-15",
			expected: "",
		},
		{
			name:     "non numeric year",
			input:    "abcd-01",
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MonthAndYear(tc.input))
		})
	}
}

func TestNextMonthKey(t *testing.T) {
	testCases := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "mid month",
			input:    time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			expected: "2025-02",
		},
		{
			name:     "year rollover",
			input:    time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			expected: "2025-01",
		},
		{
			name:     "end of long month into short month",
			input:    time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			expected: "2025-02",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NextMonthKey(tc.input))
		})
	}
}

func TestParseMonthKey(t *testing.T) {
	parsed, err := ParseMonthKey("2025-03")
	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())

	_, err = ParseMonthKey("2025-3")
	assert.Error(t, err)
}
