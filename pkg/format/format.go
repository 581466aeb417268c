// Package format implements the synchronous, CPU-bound STAC serialization
// codecs (JSON, NDJSON, GeoParquet) described in spec.md §4.4. No function
// in this package performs I/O; callers supply and receive bytes.
package format

import (
	"fmt"
	"path"
	"strings"
)

// Kind discriminates the closed set of supported formats.
type Kind int

const (
	KindJSON Kind = iota
	KindNDJSON
	KindGeoparquet
)

// Format is a closed union: Json{pretty}, NdJson, Geoparquet{compression}.
type Format struct {
	Kind        Kind
	Pretty      bool
	Compression string
}

// JSON builds a Json format, pretty-printed with a two-space indent when
// pretty is true.
func JSON(pretty bool) Format { return Format{Kind: KindJSON, Pretty: pretty} }

// NDJSON builds the NdJson format.
func NDJSON() Format { return Format{Kind: KindNDJSON} }

// Geoparquet builds a Geoparquet format with an optional compression codec
// name (e.g. "snappy", "zstd"); "" means no explicit compression.
func Geoparquet(compression string) Format {
	return Format{Kind: KindGeoparquet, Compression: compression}
}

// InferFromHref maps a file extension to a Format, defaulting to
// pretty-false JSON when the extension is unrecognized.
func InferFromHref(href string) Format {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(href), ".")) {
	case "ndjson":
		return NDJSON()
	case "parquet", "geoparquet":
		return Geoparquet("")
	case "json", "geojson":
		return JSON(false)
	default:
		return JSON(false)
	}
}

// Parse recognizes "json", "ndjson", "geoparquet", or a bracketed
// compression form "geoparquet[snappy]".
func Parse(s string) (Format, error) {
	name, arg, hasArg := strings.Cut(s, "[")
	name = strings.ToLower(strings.TrimSpace(name))
	if hasArg {
		arg = strings.TrimSuffix(arg, "]")
	}
	switch name {
	case "json":
		return JSON(false), nil
	case "json-pretty":
		return JSON(true), nil
	case "ndjson":
		return NDJSON(), nil
	case "geoparquet", "parquet":
		return Geoparquet(arg), nil
	default:
		return Format{}, fmt.Errorf("format: unrecognized format %q", s)
	}
}

// MediaType returns the canonical STAC media type string for f, used when
// writing a Link.Type that points at an entity in this format.
func (f Format) MediaType() string {
	switch f.Kind {
	case KindJSON:
		return "application/json"
	case KindNDJSON:
		return "application/x-ndjson"
	case KindGeoparquet:
		return "application/vnd.apache.parquet"
	default:
		return "application/octet-stream"
	}
}

func (f Format) String() string {
	switch f.Kind {
	case KindJSON:
		if f.Pretty {
			return "json-pretty"
		}
		return "json"
	case KindNDJSON:
		return "ndjson"
	case KindGeoparquet:
		if f.Compression != "" {
			return fmt.Sprintf("geoparquet[%s]", f.Compression)
		}
		return "geoparquet"
	default:
		return "unknown"
	}
}
