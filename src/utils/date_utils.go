package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ReportTimeLayouts are the layouts Genbox / MT4 exports write timestamps in.
// They are tried before the generic parser so report dates never depend on
// its heuristics.
var ReportTimeLayouts = []string{
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006.01.02",
}

// IsMissingTimestamp reports whether s marks an absent timestamp: blank text
// or one of the NaT/NaN placeholders some exports write for it.
func IsMissingTimestamp(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nat", "nan":
		return true
	}
	return false
}

// ParseTimestamp parses a report timestamp. Zone-less values are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range ReportTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseIn(v, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse timestamp '%s': %w", s, err)
	}
	return t, nil
}
