// Package search implements the STAC search parameter model described in
// spec.md §4.6: GET/POST parameter conversion, sortby/fields parsing, CQL2
// filter carriage, and client-side predicate evaluation.
package search

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/planetlabs/go-ogc/filter"
)

// FilterLang names the CQL2 carriage format.
type FilterLang string

const (
	FilterLangCQL2Text FilterLang = "cql2-text"
	FilterLangCQL2JSON FilterLang = "cql2-json"
)

// Params is the full STAC search parameter set, per spec.md §4.6's table.
type Params struct {
	Limit       *int
	Bbox        []float64
	Datetime    string
	Intersects  *geojson.Geometry
	IDs         []string
	Collections []string
	Fields      *FieldSelection
	Sortby      []SortField
	FilterLang  FilterLang
	FilterCRS   string
	Filter      json.RawMessage
	Query       json.RawMessage
	Token       string
}

// ErrBboxIntersectsConflict is returned when both bbox and intersects are set.
var ErrBboxIntersectsConflict = fmt.Errorf("search: bbox and intersects are mutually exclusive")

// ErrInvalidDatetimeOrder is returned when a datetime interval's start is after its end.
var ErrInvalidDatetimeOrder = fmt.Errorf("search: datetime interval start is after end")

// ErrInvalidFilterCRS is returned for any filter-crs other than CRS84.
var ErrInvalidFilterCRS = fmt.Errorf("search: filter-crs must be CRS84")

// Validate checks the cross-field invariants spec.md §4.6 names.
func (p *Params) Validate() error {
	if len(p.Bbox) > 0 && p.Intersects != nil {
		return ErrBboxIntersectsConflict
	}
	if len(p.Bbox) != 0 && len(p.Bbox) != 4 && len(p.Bbox) != 6 {
		return fmt.Errorf("search: bbox must have 4 or 6 values, got %d", len(p.Bbox))
	}
	if p.Datetime != "" {
		start, end, err := ParseDatetime(p.Datetime)
		if err != nil {
			return err
		}
		if start != nil && end != nil && start.After(*end) {
			return ErrInvalidDatetimeOrder
		}
	}
	if p.FilterCRS != "" && !strings.EqualFold(p.FilterCRS, "CRS84") {
		return ErrInvalidFilterCRS
	}
	if len(p.Filter) > 0 && p.FilterLang == FilterLangCQL2JSON {
		var f filter.Filter
		if err := json.Unmarshal(p.Filter, &f); err != nil {
			return fmt.Errorf("search: invalid cql2-json filter: %w", err)
		}
	}
	return nil
}

// FromQuery parses a GET-form query string into Params.
func FromQuery(query url.Values) (*Params, error) {
	p := &Params{FilterLang: FilterLangCQL2Text}

	if s := query.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("search: invalid limit: %w", err)
		}
		p.Limit = &n
	}

	if s := query.Get("bbox"); s != "" {
		bbox, err := parseFloatList(s)
		if err != nil {
			return nil, fmt.Errorf("search: invalid bbox: %w", err)
		}
		p.Bbox = bbox
	}

	p.Datetime = query.Get("datetime")

	if s := query.Get("intersects"); s != "" {
		geom := &geojson.Geometry{}
		if err := json.Unmarshal([]byte(s), geom); err != nil {
			return nil, fmt.Errorf("search: invalid intersects geometry: %w", err)
		}
		p.Intersects = geom
	}

	if s := query.Get("ids"); s != "" {
		p.IDs = splitTrimmed(s)
	}
	if s := query.Get("collections"); s != "" {
		p.Collections = splitTrimmed(s)
	}
	if s := query.Get("fields"); s != "" {
		p.Fields = ParseFields(s)
	}
	if s := query.Get("sortby"); s != "" {
		sortby, err := ParseSortby(s)
		if err != nil {
			return nil, err
		}
		p.Sortby = sortby
	}
	if s := query.Get("filter-lang"); s != "" {
		p.FilterLang = FilterLang(s)
	}
	p.FilterCRS = query.Get("filter-crs")
	if s := query.Get("filter"); s != "" {
		p.Filter = json.RawMessage(s)
	}
	if s := query.Get("query"); s != "" {
		p.Query = json.RawMessage(s)
	}
	p.Token = query.Get("token")

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ToQuery renders Params as GET-form query parameters: ids/collections are
// comma-joined, intersects is JSON-encoded, per spec.md §4.6.
func (p *Params) ToQuery() url.Values {
	q := url.Values{}
	if p.Limit != nil {
		q.Set("limit", strconv.Itoa(*p.Limit))
	}
	if len(p.Bbox) > 0 {
		q.Set("bbox", joinFloats(p.Bbox))
	}
	if p.Datetime != "" {
		q.Set("datetime", p.Datetime)
	}
	if p.Intersects != nil {
		if data, err := json.Marshal(p.Intersects); err == nil {
			q.Set("intersects", string(data))
		}
	}
	if len(p.IDs) > 0 {
		q.Set("ids", strings.Join(p.IDs, ","))
	}
	if len(p.Collections) > 0 {
		q.Set("collections", strings.Join(p.Collections, ","))
	}
	if p.Fields != nil {
		q.Set("fields", p.Fields.String())
	}
	if len(p.Sortby) > 0 {
		q.Set("sortby", SortbyString(p.Sortby))
	}
	if p.FilterLang != "" {
		q.Set("filter-lang", string(p.FilterLang))
	}
	if p.FilterCRS != "" {
		q.Set("filter-crs", p.FilterCRS)
	}
	if len(p.Filter) > 0 {
		q.Set("filter", string(p.Filter))
	}
	if len(p.Query) > 0 {
		q.Set("query", string(p.Query))
	}
	if p.Token != "" {
		q.Set("token", p.Token)
	}
	return q
}

// ToJSON renders Params as the POST-form body: arrays and embedded objects
// instead of comma-joined strings, per spec.md §4.6.
func (p *Params) ToJSON() ([]byte, error) {
	body := map[string]any{}
	if p.Limit != nil {
		body["limit"] = *p.Limit
	}
	if len(p.Bbox) > 0 {
		body["bbox"] = p.Bbox
	}
	if p.Datetime != "" {
		body["datetime"] = p.Datetime
	}
	if p.Intersects != nil {
		body["intersects"] = p.Intersects
	}
	if len(p.IDs) > 0 {
		body["ids"] = p.IDs
	}
	if len(p.Collections) > 0 {
		body["collections"] = p.Collections
	}
	if p.Fields != nil {
		body["fields"] = p.Fields
	}
	if len(p.Sortby) > 0 {
		body["sortby"] = p.Sortby
	}
	if p.FilterLang != "" {
		body["filter-lang"] = string(p.FilterLang)
	}
	if p.FilterCRS != "" {
		body["filter-crs"] = p.FilterCRS
	}
	if len(p.Filter) > 0 {
		var parsed any
		if err := json.Unmarshal(p.Filter, &parsed); err == nil {
			body["filter"] = parsed
		} else {
			body["filter"] = string(p.Filter)
		}
	}
	if len(p.Query) > 0 {
		var parsed any
		if err := json.Unmarshal(p.Query, &parsed); err == nil {
			body["query"] = parsed
		}
	}
	if p.Token != "" {
		body["token"] = p.Token
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("search: encoding POST body: %w", err)
	}
	return data, nil
}

// postBody mirrors the POST search body shape ToJSON produces, for FromJSON
// to decode back into typed Params fields.
type postBody struct {
	Limit       *int              `json:"limit,omitempty"`
	Bbox        []float64         `json:"bbox,omitempty"`
	Datetime    string            `json:"datetime,omitempty"`
	Intersects  *geojson.Geometry `json:"intersects,omitempty"`
	IDs         []string          `json:"ids,omitempty"`
	Collections []string          `json:"collections,omitempty"`
	Fields      *FieldSelection   `json:"fields,omitempty"`
	Sortby      []SortField       `json:"sortby,omitempty"`
	FilterLang  string            `json:"filter-lang,omitempty"`
	FilterCRS   string            `json:"filter-crs,omitempty"`
	Filter      json.RawMessage   `json:"filter,omitempty"`
	Query       json.RawMessage   `json:"query,omitempty"`
	Token       string            `json:"token,omitempty"`
}

// FromJSON parses a POST-form search body into Params, the inverse of
// ToJSON, per spec.md §4.6's GET<->POST parameter conversion.
func FromJSON(data []byte) (*Params, error) {
	var body postBody
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("search: invalid POST search body: %w", err)
	}

	p := &Params{
		Limit:       body.Limit,
		Bbox:        body.Bbox,
		Datetime:    body.Datetime,
		Intersects:  body.Intersects,
		IDs:         body.IDs,
		Collections: body.Collections,
		Fields:      body.Fields,
		Sortby:      body.Sortby,
		FilterLang:  FilterLangCQL2Text,
		FilterCRS:   body.FilterCRS,
		Filter:      body.Filter,
		Query:       body.Query,
		Token:       body.Token,
	}
	if body.FilterLang != "" {
		p.FilterLang = FilterLang(body.FilterLang)
	} else if len(body.Filter) > 0 {
		p.FilterLang = FilterLangCQL2JSON
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloatList(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
