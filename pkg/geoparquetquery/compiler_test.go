package geoparquetquery

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/robert-malhotra/stac-go/pkg/search"
)

func TestProjectColumnsGeometryCastToWKB(t *testing.T) {
	cols := projectColumns([]string{"id", "geometry", "collection"}, nil)
	found := false
	for _, c := range cols {
		if c == "ST_AsWKB(geometry)::BLOB AS geometry" {
			found = true
		}
	}
	if !found {
		t.Errorf("cols = %v, expected a WKB-cast geometry projection", cols)
	}
}

func TestProjectColumnsFieldsPruning(t *testing.T) {
	params := &search.Params{Fields: search.ParseFields("collection")}
	cols := projectColumns([]string{"id", "geometry", "collection", "eo:cloud_cover"}, params)
	for _, c := range cols {
		if strings.Contains(c, "eo:cloud_cover") {
			t.Errorf("expected eo:cloud_cover pruned, got %v", cols)
		}
	}
}

func TestCompileQueryBboxPushDown(t *testing.T) {
	params := &search.Params{Bbox: []float64{-10, -10, 10, 10}}
	sqlText, args, err := compileQuery("data.parquet", []string{"id", "geometry"}, params, 100)
	if err != nil {
		t.Fatalf("compileQuery: %v", err)
	}
	if !strings.Contains(sqlText, "ST_Intersects(geometry, ST_MakeEnvelope(?, ?, ?, ?))") {
		t.Errorf("sql = %q, expected ST_Intersects push-down", sqlText)
	}
	if len(args) != 4 {
		t.Errorf("args = %v", args)
	}
}

func TestCompileQueryIDsPushDown(t *testing.T) {
	params := &search.Params{IDs: []string{"a", "b"}}
	sqlText, args, err := compileQuery("data.parquet", []string{"id"}, params, 100)
	if err != nil {
		t.Fatalf("compileQuery: %v", err)
	}
	if !strings.Contains(sqlText, `"id" IN (?, ?)`) {
		t.Errorf("sql = %q", sqlText)
	}
	if len(args) != 2 || args[0] != "a" || args[1] != "b" {
		t.Errorf("args = %v", args)
	}
}

func TestCompileQueryLimitBoundedByMaxItems(t *testing.T) {
	limit := 5000
	params := &search.Params{Limit: &limit}
	sqlText, _, err := compileQuery("data.parquet", []string{"id"}, params, 100)
	if err != nil {
		t.Fatalf("compileQuery: %v", err)
	}
	if !strings.Contains(sqlText, "LIMIT 100") {
		t.Errorf("sql = %q, expected the row cap to win over a larger requested limit", sqlText)
	}
}

func TestTranslateFilterToSQLComparison(t *testing.T) {
	filter := json.RawMessage(`{"op": "<", "args": [{"property": "eo:cloud_cover"}, 20]}`)
	cond, args, err := translateFilterToSQL(filter)
	if err != nil {
		t.Fatalf("translateFilterToSQL: %v", err)
	}
	if cond != `"eo:cloud_cover" < ?` {
		t.Errorf("cond = %q", cond)
	}
	if len(args) != 1 || args[0] != float64(20) {
		t.Errorf("args = %v", args)
	}
}

func TestTranslateFilterToSQLAndOr(t *testing.T) {
	filter := json.RawMessage(`{
		"op": "and",
		"args": [
			{"op": "=", "args": [{"property": "collection"}, "sentinel-2"]},
			{"op": ">=", "args": [{"property": "eo:cloud_cover"}, 0]}
		]
	}`)
	cond, args, err := translateFilterToSQL(filter)
	if err != nil {
		t.Fatalf("translateFilterToSQL: %v", err)
	}
	if !strings.Contains(cond, " AND ") {
		t.Errorf("cond = %q, expected an AND join", cond)
	}
	if len(args) != 2 {
		t.Errorf("args = %v", args)
	}
}

func TestTranslateFilterToSQLUnsupportedOperator(t *testing.T) {
	filter := json.RawMessage(`{"op": "frobnicate", "args": []}`)
	if _, _, err := translateFilterToSQL(filter); err == nil {
		t.Fatal("expected an error for an unsupported operator")
	}
}

func TestQuoteIdentEscapesDoubleQuotes(t *testing.T) {
	if got := quoteIdent(`weird"name`); got != `"weird""name"` {
		t.Errorf("quoteIdent = %q", got)
	}
}

func TestQuoteLiteralEscapesSingleQuotes(t *testing.T) {
	if got := quoteLiteral("o'brien.parquet"); got != "'o''brien.parquet'" {
		t.Errorf("quoteLiteral = %q", got)
	}
}
