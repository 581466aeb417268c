package geoparquetquery

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geojson"

	"github.com/robert-malhotra/stac-go/pkg/search"
	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// DefaultMaxItems is the row cap used when Query.MaxItems is not positive;
// a larger params.Limit is bounded by it.
const DefaultMaxItems = 10000

// Query executes a single push-down search against a GeoParquet href.
type Query struct {
	Href     string
	Params   *search.Params
	MaxItems int
}

// Execute runs the query against pool and materializes matched rows into
// Items, per spec.md §4.8 step 4. Columns are read either as this module's
// own properties/links/assets JSON-blob columns (see pkg/format's
// GeoParquet codec) or, for any column not among the handful of named STAC
// fields, as an individually flattened extension property — covering files
// written to either shape of the stac-geoparquet profile.
func (q *Query) Execute(ctx context.Context, pool *Pool) (*stac.ItemCollection, error) {
	conn, err := pool.Open(ctx, q.Href)
	if err != nil {
		return nil, err
	}

	columns, err := describeColumns(ctx, conn, q.Href)
	if err != nil {
		return nil, err
	}

	maxItems := q.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	sqlText, args, err := compileQuery(q.Href, columns, q.Params, maxItems)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("geoparquetquery: querying %s: %w", q.Href, err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}
	return stac.NewItemCollection(items), nil
}

func scanItems(rows *sql.Rows) ([]*stac.Item, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var items []*stac.Item
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("geoparquetquery: scanning row: %w", err)
		}
		item, err := rowToItem(columns, values)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func rowToItem(columns []string, values []any) (*stac.Item, error) {
	item := stac.NewItem("")
	for i, name := range columns {
		v := values[i]
		if v == nil {
			continue
		}
		switch name {
		case "id":
			if s, ok := v.(string); ok {
				item.Id = s
			}
		case "collection":
			if s, ok := v.(string); ok {
				item.Collection = s
			}
		case "geometry":
			wkbBytes, ok := v.([]byte)
			if !ok {
				continue
			}
			geom, err := wkb.Unmarshal(wkbBytes)
			if err != nil {
				return nil, fmt.Errorf("geoparquetquery: decoding geometry: %w", err)
			}
			item.Geometry = geojson.NewGeometry(geom)
		case "datetime":
			t, err := toTime(v)
			if err != nil {
				return nil, fmt.Errorf("geoparquetquery: decoding datetime: %w", err)
			}
			if t != nil {
				s := t.UTC().Format(time.RFC3339)
				item.Properties.Datetime = &s
			}
		case "properties":
			s, ok := v.(string)
			if !ok || s == "" {
				continue
			}
			var extra map[string]json.RawMessage
			if err := json.Unmarshal([]byte(s), &extra); err != nil {
				return nil, fmt.Errorf("geoparquetquery: decoding properties column: %w", err)
			}
			for k, raw := range extra {
				if _, err := item.SetField(k, raw); err != nil {
					return nil, fmt.Errorf("geoparquetquery: setting property %q: %w", k, err)
				}
			}
		case "links", "assets", "bbox":
			// Links/assets/bbox aren't needed to satisfy a search result's
			// item content and are intentionally not reconstructed here.
		default:
			if _, err := item.SetField(name, v); err != nil {
				return nil, fmt.Errorf("geoparquetquery: setting property %q: %w", name, err)
			}
		}
	}
	return item, nil
}

// toTime coerces a scanned datetime value: the duckdb driver returns
// TIMESTAMP columns as time.Time, but this module's own GeoParquet writer
// (pkg/format) stores datetime as epoch milliseconds, so both are accepted.
func toTime(v any) (*time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return &t, nil
	case int64:
		ts := time.UnixMilli(t).UTC()
		return &ts, nil
	default:
		return nil, fmt.Errorf("unsupported datetime representation %T", v)
	}
}
