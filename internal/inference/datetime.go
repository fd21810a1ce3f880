package inference

import (
	"regexp"
	"strings"
	"time"
)

// ParseOutcome is the explicit three-way result of datetime coercion:
// a clean parse, a value that does not look like a date at all, or a value
// that matches a date shape but fails to parse (e.g. month 13).
type ParseOutcome int

const (
	ParseOK ParseOutcome = iota
	ParseNoMatch
	ParseMalformed
)

type datePattern struct {
	re      *regexp.Regexp
	layouts []string
}

var datePatterns = []datePattern{
	{
		re:      regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		layouts: []string{"2006-01-02"},
	},
	{
		re:      regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}`),
		layouts: []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04"},
	},
	{
		re:      regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`),
		layouts: []string{"2006/01/02"},
	},
	{
		re:      regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		layouts: []string{"1/2/2006", "2/1/2006"},
	},
	{
		re:      regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`),
		layouts: []string{"1-2-2006", "2-1-2006"},
	},
	{
		re:      regexp.MustCompile(`^[A-Za-z]{3,9} \d{1,2}, \d{4}$`),
		layouts: []string{"January 2, 2006", "Jan 2, 2006"},
	},
	{
		re:      regexp.MustCompile(`^\d{1,2} [A-Za-z]{3,9} \d{4}$`),
		layouts: []string{"2 January 2006", "2 Jan 2006"},
	},
}

// ParseDatetime attempts to interpret a raw string as a datetime
func ParseDatetime(value string) (time.Time, ParseOutcome) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, ParseNoMatch
	}

	matched := false
	for _, p := range datePatterns {
		if !p.re.MatchString(s) {
			continue
		}
		matched = true
		for _, layout := range p.layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, ParseOK
			}
		}
	}

	if matched {
		return time.Time{}, ParseMalformed
	}
	return time.Time{}, ParseNoMatch
}
