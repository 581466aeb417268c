package search

import (
	"fmt"
	"strings"
	"time"
)

// ParseDatetime parses a STAC datetime search parameter: a single RFC3339
// instant, or two RFC3339 values separated by "/" with ".." meaning
// open-ended on that side. Either return value may be nil.
func ParseDatetime(datetime string) (*time.Time, *time.Time, error) {
	datetime = strings.TrimSpace(datetime)
	if datetime == "" {
		return nil, nil, nil
	}

	if !strings.Contains(datetime, "/") {
		t, err := time.Parse(time.RFC3339, datetime)
		if err != nil {
			return nil, nil, fmt.Errorf("search: invalid datetime %q: %w", datetime, err)
		}
		return &t, &t, nil
	}

	parts := strings.SplitN(datetime, "/", 2)
	start, err := parseIntervalBound(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("search: invalid datetime interval start: %w", err)
	}
	end, err := parseIntervalBound(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("search: invalid datetime interval end: %w", err)
	}
	return start, end, nil
}

func parseIntervalBound(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == ".." {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DatetimeMatches reports whether instant t falls within the [start, end]
// interval, with a nil bound meaning unbounded on that side.
func DatetimeMatches(start, end *time.Time, t time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}
