package search_test

import (
	"testing"
	"time"

	"github.com/robert-malhotra/stac-go/pkg/search"
)

func TestParseDatetimeSingleInstant(t *testing.T) {
	start, end, err := search.ParseDatetime("2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("ParseDatetime: %v", err)
	}
	if start == nil || end == nil || !start.Equal(*end) {
		t.Errorf("start=%v end=%v", start, end)
	}
}

func TestParseDatetimeOpenEndedStart(t *testing.T) {
	start, end, err := search.ParseDatetime("../2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("ParseDatetime: %v", err)
	}
	if start != nil {
		t.Errorf("expected nil start, got %v", start)
	}
	if end == nil {
		t.Error("expected non-nil end")
	}
}

func TestParseDatetimeOpenEndedEnd(t *testing.T) {
	start, end, err := search.ParseDatetime("2024-01-01T00:00:00Z/..")
	if err != nil {
		t.Fatalf("ParseDatetime: %v", err)
	}
	if end != nil {
		t.Errorf("expected nil end, got %v", end)
	}
	if start == nil {
		t.Error("expected non-nil start")
	}
}

func TestDatetimeMatchesBounds(t *testing.T) {
	start, end, _ := search.ParseDatetime("2024-01-01T00:00:00Z/2024-02-01T00:00:00Z")
	inside, _ := time.Parse(time.RFC3339, "2024-01-15T00:00:00Z")
	outside, _ := time.Parse(time.RFC3339, "2024-03-01T00:00:00Z")

	if !search.DatetimeMatches(start, end, inside) {
		t.Error("expected instant inside interval to match")
	}
	if search.DatetimeMatches(start, end, outside) {
		t.Error("expected instant outside interval to not match")
	}
}
