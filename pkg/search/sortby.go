package search

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SortField is one sortby criterion; the text form uses "+field"/"-field",
// with a bare field name defaulting to ascending.
type SortField struct {
	Field string `json:"field"`
	Asc   bool   `json:"-"`
}

// MarshalJSON writes {"field": ..., "direction": "asc"|"desc"}, the POST form.
func (s SortField) MarshalJSON() ([]byte, error) {
	direction := "desc"
	if s.Asc {
		direction = "asc"
	}
	return []byte(fmt.Sprintf(`{"field":%q,"direction":%q}`, s.Field, direction)), nil
}

// UnmarshalJSON reads the POST form; any direction other than "desc" is ascending.
func (s *SortField) UnmarshalJSON(data []byte) error {
	var raw struct {
		Field     string `json:"field"`
		Direction string `json:"direction"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Field = raw.Field
	s.Asc = !strings.EqualFold(raw.Direction, "desc")
	return nil
}

// ParseSortby parses the comma-separated "+field,-field,field" text form.
func ParseSortby(s string) ([]SortField, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]SortField, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		asc := true
		field := part
		switch part[0] {
		case '+':
			field = part[1:]
		case '-':
			asc = false
			field = part[1:]
		}
		if field == "" {
			return nil, fmt.Errorf("search: empty field name in sortby %q", s)
		}
		out = append(out, SortField{Field: field, Asc: asc})
	}
	return out, nil
}

// SortbyString renders sort fields back to the text form.
func SortbyString(fields []SortField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		prefix := "+"
		if !f.Asc {
			prefix = "-"
		}
		parts[i] = prefix + f.Field
	}
	return strings.Join(parts, ",")
}

// Apply sorts items in place by the given sort fields, using key to extract
// a comparable value for a field name; stable across ties so multiple
// fields compose left to right.
func Apply[T any](items []T, fields []SortField, key func(item T, field string) any) {
	sort.SliceStable(items, func(i, j int) bool {
		for _, f := range fields {
			vi, vj := key(items[i], f.Field), key(items[j], f.Field)
			cmp := compareAny(vi, vj)
			if cmp == 0 {
				continue
			}
			if f.Asc {
				return cmp < 0
			}
			return cmp > 0
		}
		return false
	})
}

func compareAny(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case int:
		bv, _ := b.(int)
		return av - bv
	default:
		return 0
	}
}
