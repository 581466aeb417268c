package search_test

import (
	"testing"

	"github.com/robert-malhotra/stac-go/pkg/search"
)

func TestParseSortbyMixedPrefixes(t *testing.T) {
	fields, err := search.ParseSortby("+a,-b,c")
	if err != nil {
		t.Fatalf("ParseSortby: %v", err)
	}
	want := []search.SortField{{Field: "a", Asc: true}, {Field: "b", Asc: false}, {Field: "c", Asc: true}}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("fields[%d] = %+v, want %+v", i, fields[i], want[i])
		}
	}
}

func TestParseSortbyEmpty(t *testing.T) {
	fields, err := search.ParseSortby("")
	if err != nil || fields != nil {
		t.Errorf("ParseSortby(\"\") = %v, %v", fields, err)
	}
}

func TestParseSortbyRejectsEmptyFieldName(t *testing.T) {
	if _, err := search.ParseSortby("+"); err == nil {
		t.Fatal("expected error for bare prefix with no field name")
	}
}

func TestSortbyStringRoundTrip(t *testing.T) {
	fields, _ := search.ParseSortby("+a,-b,c")
	got := search.SortbyString(fields)
	if got != "+a,-b,+c" {
		t.Errorf("SortbyString = %q", got)
	}
}

func TestApplySortsStableMultiField(t *testing.T) {
	type row struct {
		name string
		rank int
	}
	rows := []row{{"b", 1}, {"a", 1}, {"c", 0}}
	fields := []search.SortField{{Field: "rank", Asc: true}, {Field: "name", Asc: true}}

	search.Apply(rows, fields, func(r row, field string) any {
		if field == "rank" {
			return r.rank
		}
		return r.name
	})

	want := []string{"c", "a", "b"}
	for i, w := range want {
		if rows[i].name != w {
			t.Errorf("rows[%d] = %+v, want name %q", i, rows[i], w)
		}
	}
}
