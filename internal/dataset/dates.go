package dataset

import (
	"strings"
	"time"
)

// dayFirstLayouts are tried in order. Ambiguous numeric dates are read as
// DD/MM/YYYY, matching the exports this system ingests.
var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDayFirst parses a date string with day-first interpretation.
// Returns false for anything unparsable; callers treat that as a null cell.
func ParseDayFirst(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
