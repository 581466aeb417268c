package format_test

import (
	"testing"

	"github.com/robert-malhotra/stac-go/pkg/format"
)

func TestInferFromHref(t *testing.T) {
	cases := map[string]format.Kind{
		"item.json":         format.KindJSON,
		"items.ndjson":      format.KindNDJSON,
		"items.parquet":     format.KindGeoparquet,
		"items.geoparquet":  format.KindGeoparquet,
		"collection.geojson": format.KindJSON,
		"unknown.bin":        format.KindJSON,
	}
	for href, want := range cases {
		if got := format.InferFromHref(href).Kind; got != want {
			t.Errorf("InferFromHref(%q) = %v, want %v", href, got, want)
		}
	}
}

func TestParseBracketedCompression(t *testing.T) {
	f, err := format.Parse("geoparquet[snappy]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Kind != format.KindGeoparquet || f.Compression != "snappy" {
		t.Errorf("Parse = %+v", f)
	}
}

func TestParseUnrecognized(t *testing.T) {
	if _, err := format.Parse("shapefile"); err == nil {
		t.Fatal("expected error for unrecognized format")
	}
}

func TestFormatMediaType(t *testing.T) {
	cases := map[format.Format]string{
		format.JSON(false):       "application/json",
		format.JSON(true):        "application/json",
		format.NDJSON():          "application/x-ndjson",
		format.Geoparquet(""):    "application/vnd.apache.parquet",
		format.Geoparquet("lz4raw"): "application/vnd.apache.parquet",
	}
	for f, want := range cases {
		if got := f.MediaType(); got != want {
			t.Errorf("MediaType(%q) = %q, want %q", f.String(), got, want)
		}
	}
}

func TestFormatStringRoundTrip(t *testing.T) {
	cases := []format.Format{
		format.JSON(false),
		format.JSON(true),
		format.NDJSON(),
		format.Geoparquet(""),
		format.Geoparquet("zstd"),
	}
	for _, f := range cases {
		parsed, err := format.Parse(f.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", f.String(), err)
		}
		if parsed.Kind != f.Kind {
			t.Errorf("round trip kind mismatch for %q", f.String())
		}
	}
}
