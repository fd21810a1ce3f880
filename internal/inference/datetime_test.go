package inference

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDatetimeFormats(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024/01/15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-01-15 13:45:00", time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)},
		{"2024-01-15T13:45:00Z", time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)},
		{"1/15/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"Jan 15, 2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"15 January 2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		parsed, outcome := ParseDatetime(tc.input)
		assert.Equal(t, ParseOK, outcome, "input %q", tc.input)
		assert.True(t, parsed.Equal(tc.want), "input %q parsed as %v", tc.input, parsed)
	}
}

func TestParseDatetimeMalformed(t *testing.T) {
	// date-shaped but impossible values are malformed, not a non-match
	for _, input := range []string{"2024-13-45", "2024-00-10", "99/99/2024"} {
		_, outcome := ParseDatetime(input)
		assert.Equal(t, ParseMalformed, outcome, "input %q", input)
	}
}

func TestParseDatetimeNoMatch(t *testing.T) {
	for _, input := range []string{"", "hello", "12345", "a-b-c"} {
		_, outcome := ParseDatetime(input)
		assert.Equal(t, ParseNoMatch, outcome, "input %q", input)
	}
}
