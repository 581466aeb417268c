package searchclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/robert-malhotra/stac-go/pkg/search"
	"github.com/robert-malhotra/stac-go/pkg/searchclient"
)

func landingPageJSON(searchHref string) string {
	return `{
		"type": "Catalog",
		"stac_version": "1.1.0",
		"id": "root",
		"description": "test landing page",
		"conformsTo": ["https://api.stacspec.org/v1.0.0/core", "https://api.stacspec.org/v1.0.0/item-search"],
		"links": [
			{"rel": "self", "href": "` + searchHref + `/"},
			{"rel": "search", "href": "` + searchHref + `/search", "method": "GET"},
			{"rel": "search", "href": "` + searchHref + `/search", "method": "POST"}
		]
	}`
}

func TestClientConformsTo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(landingPageJSON("")))
	}))
	defer srv.Close()

	c := searchclient.New(srv.URL)
	conforms, err := c.ConformsTo(context.Background())
	if err != nil {
		t.Fatalf("ConformsTo: %v", err)
	}
	if len(conforms) != 2 {
		t.Fatalf("conformsTo = %v", conforms)
	}
}

func TestClientSearchGETSinglePage(t *testing.T) {
	var sawMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte(landingPageJSON("")))
			return
		}
		sawMethod = r.Method
		w.Write([]byte(`{
			"type": "FeatureCollection",
			"features": [
				{"type": "Feature", "stac_version": "1.1.0", "id": "a", "geometry": null, "properties": {"datetime": "2024-01-01T00:00:00Z"}, "links": [], "assets": {}},
				{"type": "Feature", "stac_version": "1.1.0", "id": "b", "geometry": null, "properties": {"datetime": "2024-01-01T00:00:00Z"}, "links": [], "assets": {}}
			],
			"links": []
		}`))
	}))
	defer srv.Close()

	c := searchclient.New(srv.URL)
	stream := c.Search(&search.Params{})

	var ids []string
	for {
		item, err := stream.Next(context.Background())
		if err != nil {
			break
		}
		ids = append(ids, item.Id)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("ids = %v", ids)
	}
	if sawMethod != http.MethodGet {
		t.Errorf("method = %s, want GET", sawMethod)
	}
}

func TestClientSearchPOSTWhenIntersectsPresent(t *testing.T) {
	var sawMethod, sawContentType string
	var sawBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte(landingPageJSON("")))
			return
		}
		sawMethod = r.Method
		sawContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&sawBody)
		w.Write([]byte(`{"type": "FeatureCollection", "features": [], "links": []}`))
	}))
	defer srv.Close()

	c := searchclient.New(srv.URL)
	p, err := search.FromQuery(map[string][]string{"intersects": {`{"type":"Point","coordinates":[1,2]}`}})
	if err != nil {
		t.Fatalf("FromQuery: %v", err)
	}
	stream := c.Search(p)
	if _, err := stream.Next(context.Background()); err == nil {
		t.Fatalf("expected io.EOF on empty result set")
	}
	if sawMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", sawMethod)
	}
	if sawContentType != "application/json" {
		t.Errorf("content-type = %s", sawContentType)
	}
	if _, ok := sawBody["intersects"]; !ok {
		t.Error("expected intersects in the POST body")
	}
}

func TestClientSearchPOSTWhenCQL2JSONFilterPresent(t *testing.T) {
	var sawMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte(landingPageJSON("")))
			return
		}
		sawMethod = r.Method
		w.Write([]byte(`{"type": "FeatureCollection", "features": [], "links": []}`))
	}))
	defer srv.Close()

	c := searchclient.New(srv.URL)
	p, err := search.FromQuery(map[string][]string{
		"filter-lang": {"cql2-json"},
		"filter":      {`{"op": "<", "args": [{"property": "eo:cloud_cover"}, 20]}`},
	})
	if err != nil {
		t.Fatalf("FromQuery: %v", err)
	}
	stream := c.Search(p)
	if _, err := stream.Next(context.Background()); err == nil {
		t.Fatalf("expected io.EOF on empty result set")
	}
	if sawMethod != http.MethodPost {
		t.Errorf("method = %s, want POST for a cql2-json filter", sawMethod)
	}
}

func TestClientSearchGETWhenCQL2TextFilterPresent(t *testing.T) {
	var sawMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte(landingPageJSON("")))
			return
		}
		sawMethod = r.Method
		w.Write([]byte(`{"type": "FeatureCollection", "features": [], "links": []}`))
	}))
	defer srv.Close()

	c := searchclient.New(srv.URL)
	p, err := search.FromQuery(map[string][]string{
		"filter": {`eo:cloud_cover < 20`},
	})
	if err != nil {
		t.Fatalf("FromQuery: %v", err)
	}
	stream := c.Search(p)
	if _, err := stream.Next(context.Background()); err == nil {
		t.Fatalf("expected io.EOF on empty result set")
	}
	if sawMethod != http.MethodGet {
		t.Errorf("method = %s, want GET for a cql2-text filter", sawMethod)
	}
}
