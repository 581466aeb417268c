package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/robert-malhotra/stac-go/pkg/server"
	"github.com/robert-malhotra/stac-go/pkg/stac"
)

func newTestServer(t *testing.T, items []*stac.Item) *httptest.Server {
	t.Helper()
	srv, err := server.New(server.Options{
		BaseURL: "http://example.com",
		Source:  server.NewMemoryItemSource(items),
	})
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	return httptest.NewServer(srv.Router())
}

func newItem(id, collection string) *stac.Item {
	item := stac.NewItem(id)
	item.Collection = collection
	return item
}

func TestLandingPageAdvertisesSearchLinks(t *testing.T) {
	ts := newTestServer(t, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var catalog stac.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		t.Fatalf("decode: %v", err)
	}

	found := map[string]bool{}
	for _, link := range catalog.Links {
		found[link.Rel] = true
	}
	if !found["search"] || !found["conformance"] {
		t.Errorf("links = %+v, expected search and conformance rels", catalog.Links)
	}
}

func TestConformanceListsFilterClasses(t *testing.T) {
	ts := newTestServer(t, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/conformance")
	if err != nil {
		t.Fatalf("GET /conformance: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		ConformsTo []string `json:"conformsTo"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.ConformsTo) == 0 {
		t.Fatal("expected a non-empty conformsTo list")
	}
}

func TestSearchGETFiltersByCollection(t *testing.T) {
	ts := newTestServer(t, []*stac.Item{
		newItem("a", "sentinel-2"),
		newItem("b", "landsat-8"),
	})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/search?collections=sentinel-2")
	if err != nil {
		t.Fatalf("GET /search: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var fc stac.ItemCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fc.Features) != 1 || fc.Features[0].Id != "a" {
		t.Errorf("features = %+v, expected only item a", fc.Features)
	}
}

func TestSearchPOSTWithIDsFilter(t *testing.T) {
	ts := newTestServer(t, []*stac.Item{
		newItem("a", "sentinel-2"),
		newItem("b", "sentinel-2"),
	})
	defer ts.Close()

	body, err := json.Marshal(map[string]any{"ids": []string{"b"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(ts.URL+"/search", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /search: %v", err)
	}
	defer resp.Body.Close()

	var fc stac.ItemCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fc.Features) != 1 || fc.Features[0].Id != "b" {
		t.Errorf("features = %+v, expected only item b", fc.Features)
	}
}

func TestSearchInvalidParamsReturnsBadRequest(t *testing.T) {
	ts := newTestServer(t, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/search?bbox=not-a-number")
	if err != nil {
		t.Fatalf("GET /search: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
