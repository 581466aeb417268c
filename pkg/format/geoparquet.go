package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geojson"
	"github.com/segmentio/parquet-go"
	"github.com/segmentio/parquet-go/compress"

	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// geojsonGeometry wraps a decoded orb.Geometry back into the geojson.Geometry
// envelope Item.Geometry carries.
func geojsonGeometry(g orb.Geometry) *geojson.Geometry {
	return geojson.NewGeometry(g)
}

// GeoParquet support, grounded on the real-world planetlabs/gpq codec: a
// segmentio/parquet-go row writer with a WKB geometry column and GeoParquet
// "geo" metadata, rather than an Apache Arrow table (no Arrow-Go library
// appears anywhere in the example pack).

const geoMetadataKey = "geo"
const geoparquetVersion = "1.0.0-beta.1"

// ErrMixedBboxDimension is returned when the items being encoded mix 2D and
// 3D bboxes: a GeoParquet file's bbox column has a single fixed shape, so
// the core refuses to write a 2D item alongside a 3D one, per spec.md §9.
var ErrMixedBboxDimension = errors.New("format: mixed 2D/3D bbox dimensionality in geoparquet write")

// datetimeColumns lists the datetime-valued property names of the
// stac-geoparquet profile. The writer does not consult it: only "datetime"
// is written as its own timestamp column (flatRow.Datetime), and the other
// names stay inside the properties JSON column.
var datetimeColumns = map[string]bool{
	"datetime": true, "start_datetime": true, "end_datetime": true,
	"created": true, "updated": true, "expires": true,
	"published": true, "unpublished": true,
}

// geoMetadata mirrors the GeoParquet file metadata schema.
type geoMetadata struct {
	Version       string                    `json:"version"`
	PrimaryColumn string                    `json:"primary_column"`
	Columns       map[string]geometryColumn `json:"columns"`
}

type geometryColumn struct {
	Encoding     string   `json:"encoding"`
	GeometryType []string `json:"geometry_types"`
	Bounds       []float64 `json:"bbox,omitempty"`
}

// flatRow is the columnar row shape written to parquet: structural fields
// plus JSON-blob columns for the open-schema regions (properties, links,
// assets) and a normalized bbox struct.
type flatRow struct {
	ID         string  `parquet:"id"`
	Collection string  `parquet:"collection,optional"`
	Geometry   []byte  `parquet:"geometry"`
	Bbox       *bboxRow `parquet:"bbox,optional"`
	Datetime   *int64  `parquet:"datetime,optional,timestamp"`
	Properties string  `parquet:"properties"`
	Links      string  `parquet:"links,optional"`
	Assets     string  `parquet:"assets,optional"`
}

type bboxRow struct {
	Xmin float64  `parquet:"xmin"`
	Ymin float64  `parquet:"ymin"`
	Zmin *float64 `parquet:"zmin,optional"`
	Xmax float64  `parquet:"xmax"`
	Ymax float64  `parquet:"ymax"`
	Zmax *float64 `parquet:"zmax,optional"`
}

func toBboxRow(b *stac.Bbox) (*bboxRow, error) {
	if b == nil {
		return nil, nil
	}
	if !b.Is3D {
		return &bboxRow{Xmin: b.Xmin, Ymin: b.Ymin, Xmax: b.Xmax, Ymax: b.Ymax}, nil
	}
	zmin, zmax := b.Zmin, b.Zmax
	return &bboxRow{Xmin: b.Xmin, Ymin: b.Ymin, Zmin: &zmin, Xmax: b.Xmax, Ymax: b.Ymax, Zmax: &zmax}, nil
}

func fromBboxRow(b *bboxRow) *stac.Bbox {
	if b == nil {
		return nil
	}
	if b.Zmin != nil && b.Zmax != nil {
		box := stac.NewBbox3D(b.Xmin, b.Ymin, *b.Zmin, b.Xmax, b.Ymax, *b.Zmax)
		return &box
	}
	box := stac.NewBbox2D(b.Xmin, b.Ymin, b.Xmax, b.Ymax)
	return &box
}

func codecFor(name string) (compress.Codec, error) {
	switch name {
	case "", "uncompressed":
		return &parquet.Uncompressed, nil
	case "snappy":
		return &parquet.Snappy, nil
	case "gzip":
		return &parquet.Gzip, nil
	case "zstd":
		return &parquet.Zstd, nil
	case "brotli":
		return &parquet.Brotli, nil
	case "lz4raw":
		return &parquet.Lz4Raw, nil
	default:
		return nil, fmt.Errorf("format: unknown geoparquet compression codec %q", name)
	}
}

// EncodeGeoparquet writes items (from an Item or an ItemCollection) as a
// single GeoParquet file. Supported only for Item and ItemCollection, per
// spec.md §4.4.
func EncodeGeoparquet(entity stac.Entity, compression string) ([]byte, error) {
	items, err := itemsOf(entity)
	if err != nil {
		return nil, err
	}

	codec, err := codecFor(compression)
	if err != nil {
		return nil, err
	}

	var is3D *bool
	for _, item := range items {
		if item.Bbox == nil {
			continue
		}
		if is3D == nil {
			b := item.Bbox.Is3D
			is3D = &b
		} else if *is3D != item.Bbox.Is3D {
			return nil, ErrMixedBboxDimension
		}
	}

	rows := make([]flatRow, len(items))
	var unionBounds *stac.Bbox
	for i, item := range items {
		row, err := flattenItem(item)
		if err != nil {
			return nil, fmt.Errorf("format: flattening item %q: %w", item.Id, err)
		}
		rows[i] = row
		if item.Bbox != nil {
			unionBounds = unionBbox(unionBounds, item.Bbox)
		}
	}

	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[flatRow](&buf, parquet.Compression(codec))

	meta := geoMetadata{
		Version:       geoparquetVersion,
		PrimaryColumn: "geometry",
		Columns: map[string]geometryColumn{
			"geometry": {Encoding: "WKB", GeometryType: []string{}},
		},
	}
	if unionBounds != nil {
		meta.Columns["geometry"] = geometryColumn{Encoding: "WKB", GeometryType: []string{}, Bounds: unionBounds.Slice()}
	}

	if _, err := writer.Write(rows); err != nil {
		return nil, fmt.Errorf("format: writing geoparquet rows: %w", err)
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("format: encoding geo metadata: %w", err)
	}
	writer.SetKeyValueMetadata(geoMetadataKey, string(metaJSON))
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("format: closing geoparquet writer: %w", err)
	}
	return buf.Bytes(), nil
}

func itemsOf(entity stac.Entity) ([]*stac.Item, error) {
	switch v := entity.(type) {
	case *stac.Item:
		return []*stac.Item{v}, nil
	case *stac.ItemCollection:
		return v.Features, nil
	default:
		return nil, fmt.Errorf("format: geoparquet supports only Item and ItemCollection, got %s", entity.EntityType())
	}
}

func unionBbox(a *stac.Bbox, b *stac.Bbox) *stac.Bbox {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := stac.Bbox{
		Xmin: math.Min(a.Xmin, b.Xmin), Ymin: math.Min(a.Ymin, b.Ymin),
		Xmax: math.Max(a.Xmax, b.Xmax), Ymax: math.Max(a.Ymax, b.Ymax),
		Is3D: a.Is3D || b.Is3D,
	}
	if out.Is3D {
		aZmin, aZmax := a.Zmin, a.Zmax
		if !a.Is3D {
			aZmin, aZmax = b.Zmin, b.Zmax
		}
		bZmin, bZmax := b.Zmin, b.Zmax
		if !b.Is3D {
			bZmin, bZmax = a.Zmin, a.Zmax
		}
		out.Zmin = math.Min(aZmin, bZmin)
		out.Zmax = math.Max(aZmax, bZmax)
	}
	return &out
}

func flattenItem(item *stac.Item) (flatRow, error) {
	var geomBytes []byte
	if item.Geometry != nil && item.Geometry.Geometry != nil {
		b, err := wkb.Marshal(item.Geometry.Geometry)
		if err != nil {
			return flatRow{}, fmt.Errorf("encoding geometry as wkb: %w", err)
		}
		geomBytes = b
	}

	bboxRow, err := toBboxRow(item.Bbox)
	if err != nil {
		return flatRow{}, err
	}

	propsJSON, err := json.Marshal(item.Properties)
	if err != nil {
		return flatRow{}, fmt.Errorf("encoding properties: %w", err)
	}
	linksJSON, err := json.Marshal(item.Links)
	if err != nil {
		return flatRow{}, fmt.Errorf("encoding links: %w", err)
	}
	assetsJSON, err := json.Marshal(item.Assets)
	if err != nil {
		return flatRow{}, fmt.Errorf("encoding assets: %w", err)
	}

	var dt *int64
	if item.Properties != nil && item.Properties.Datetime != nil {
		if t, err := time.Parse(time.RFC3339, *item.Properties.Datetime); err == nil {
			ms := t.UnixMilli()
			dt = &ms
		}
	}

	return flatRow{
		ID:         item.Id,
		Collection: item.Collection,
		Geometry:   geomBytes,
		Bbox:       bboxRow,
		Datetime:   dt,
		Properties: string(propsJSON),
		Links:      string(linksJSON),
		Assets:     string(assetsJSON),
	}, nil
}

// DecodeGeoparquet reads a GeoParquet file, rebuilding Items from the flat
// row representation and reversing the bbox struct flattening. A single
// row is returned as an Item; more than one is wrapped in an ItemCollection.
func DecodeGeoparquet(data []byte) (stac.Entity, error) {
	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("format: opening geoparquet file: %w", err)
	}

	reader := parquet.NewGenericReader[flatRow](file)
	defer reader.Close()

	var rows []flatRow
	buf := make([]flatRow, 128)
	for {
		n, err := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if err != nil {
			break
		}
	}

	items := make([]*stac.Item, len(rows))
	for i, row := range rows {
		item, err := inflateRow(row)
		if err != nil {
			return nil, fmt.Errorf("format: inflating row %d: %w", i, err)
		}
		items[i] = item
	}

	if len(items) == 1 {
		return items[0], nil
	}
	return stac.NewItemCollection(items), nil
}

func inflateRow(row flatRow) (*stac.Item, error) {
	item := stac.NewItem(row.ID)
	item.Collection = row.Collection

	if len(row.Geometry) > 0 {
		geom, err := wkb.Unmarshal(row.Geometry)
		if err != nil {
			return nil, fmt.Errorf("decoding geometry: %w", err)
		}
		item.Geometry = geojsonGeometry(geom)
	}
	item.Bbox = fromBboxRow(row.Bbox)

	if row.Properties != "" {
		props := &stac.Properties{}
		if err := json.Unmarshal([]byte(row.Properties), props); err != nil {
			return nil, fmt.Errorf("decoding properties: %w", err)
		}
		item.Properties = props
	}
	if row.Links != "" {
		var links []*stac.Link
		if err := json.Unmarshal([]byte(row.Links), &links); err != nil {
			return nil, fmt.Errorf("decoding links: %w", err)
		}
		item.Links = links
	}
	if row.Assets != "" {
		var assets map[string]*stac.Asset
		if err := json.Unmarshal([]byte(row.Assets), &assets); err != nil {
			return nil, fmt.Errorf("decoding assets: %w", err)
		}
		item.Assets = assets
	}
	return item, nil
}
