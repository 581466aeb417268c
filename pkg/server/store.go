package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/robert-malhotra/stac-go/pkg/search"
	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// ItemSource answers a search request with a matching ItemCollection.
// Implementations mount either an in-memory set of items (MemoryItemSource)
// or a GeoparquetQuery-backed href; pkg/server only depends on the
// interface, matching spec.md §6's "full API server is an external
// collaborator" framing — this package supplies the boundary, not the data.
type ItemSource interface {
	Search(ctx context.Context, params *search.Params) ([]*stac.Item, error)
}

// MemoryItemSource evaluates search.Params against a fixed slice of items
// using the client-side predicate evaluation spec.md §4.6 describes
// (search.Matches, search.EvaluateFilter, search.DatetimeMatches), the same
// evaluation path a SearchClient-less embedder would use for a small, fully
// loaded catalog.
type MemoryItemSource struct {
	Items []*stac.Item
}

// NewMemoryItemSource builds a MemoryItemSource over items.
func NewMemoryItemSource(items []*stac.Item) *MemoryItemSource {
	return &MemoryItemSource{Items: items}
}

// Search implements ItemSource.
func (m *MemoryItemSource) Search(ctx context.Context, params *search.Params) ([]*stac.Item, error) {
	var matched []*stac.Item
	for _, item := range m.Items {
		if !search.Matches(params, item) {
			continue
		}
		if params.Datetime != "" {
			ok, err := itemDatetimeMatches(params, item)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		if len(params.Filter) > 0 {
			ok, err := search.EvaluateFilter(params.Filter, item)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		matched = append(matched, item)
	}

	if len(params.Sortby) > 0 {
		search.Apply(matched, params.Sortby, itemSortKey)
	}

	if params.Limit != nil && *params.Limit >= 0 && *params.Limit < len(matched) {
		matched = matched[:*params.Limit]
	}
	return matched, nil
}

func itemDatetimeMatches(params *search.Params, item *stac.Item) (bool, error) {
	start, end, err := search.ParseDatetime(params.Datetime)
	if err != nil {
		return false, err
	}
	if item.Properties == nil || item.Properties.Datetime == nil {
		return false, nil
	}
	t, err := time.Parse(time.RFC3339, *item.Properties.Datetime)
	if err != nil {
		return false, err
	}
	return search.DatetimeMatches(start, end, t), nil
}

func itemSortKey(item *stac.Item, field string) any {
	switch field {
	case "id":
		return item.Id
	case "collection":
		return item.Collection
	case "datetime", "properties.datetime":
		if item.Properties != nil && item.Properties.Datetime != nil {
			return *item.Properties.Datetime
		}
		return ""
	default:
		raw, ok := item.Field(field)
		if !ok {
			return nil
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil
		}
		return v
	}
}
