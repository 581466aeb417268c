package href_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/robert-malhotra/stac-go/pkg/href"
	"github.com/robert-malhotra/stac-go/pkg/stac"
)

type memFetcher map[string]string

func (m memFetcher) Fetch(_ context.Context, href string) ([]byte, error) {
	data, ok := m[href]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", href)
	}
	return []byte(data), nil
}

func tree() memFetcher {
	return memFetcher{
		"/catalog.json": `{
			"type": "Catalog", "stac_version": "1.1.0", "id": "root", "description": "root",
			"links": [
				{"rel": "self", "href": "/catalog.json"},
				{"rel": "child", "href": "./child-a/catalog.json"},
				{"rel": "child", "href": "./child-b/catalog.json"},
				{"rel": "item", "href": "./item-1.json"}
			]
		}`,
		"/child-a/catalog.json": `{
			"type": "Catalog", "stac_version": "1.1.0", "id": "child-a", "description": "a",
			"links": [{"rel": "self", "href": "/child-a/catalog.json"}]
		}`,
		"/child-b/catalog.json": `{
			"type": "Catalog", "stac_version": "1.1.0", "id": "child-b", "description": "b",
			"links": [{"rel": "self", "href": "/child-b/catalog.json"}]
		}`,
		"/item-1.json": `{
			"type": "Feature", "stac_version": "1.1.0", "id": "item-1",
			"geometry": null,
			"properties": {"datetime": "2024-01-01T00:00:00Z"},
			"links": [{"rel": "self", "href": "/item-1.json"}],
			"assets": {}
		}`,
	}
}

func TestResolveBuildsTree(t *testing.T) {
	fetcher := tree()
	root, err := href.Resolve(context.Background(), fetcher, "/catalog.json")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	cat, ok := root.Entity.(*stac.Catalog)
	if !ok || cat.Id != "root" {
		t.Fatalf("root entity = %+v", root.Entity)
	}
	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children))
	}
	if len(root.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(root.Items))
	}

	ids := []string{}
	for _, c := range root.Children {
		ids = append(ids, c.Entity.(*stac.Catalog).Id)
	}
	sort.Strings(ids)
	if ids[0] != "child-a" || ids[1] != "child-b" {
		t.Errorf("child ids = %v", ids)
	}

	item, ok := root.Items[0].Entity.(*stac.Item)
	if !ok || item.Id != "item-1" {
		t.Fatalf("item entity = %+v", root.Items[0].Entity)
	}
}

func TestResolveRemovesResolvedLinks(t *testing.T) {
	fetcher := tree()
	root, err := href.Resolve(context.Background(), fetcher, "/catalog.json")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	cat := root.Entity.(*stac.Catalog)
	for _, l := range cat.Links {
		if l.Rel == stac.RelChild || l.Rel == stac.RelItem {
			t.Errorf("resolved link still present: %+v", l)
		}
		if l.Rel == stac.RelSelf && l.Href != "/catalog.json" {
			t.Errorf("self link unexpectedly changed: %q", l.Href)
		}
	}
}

func TestResolveMissingLinkErrors(t *testing.T) {
	fetcher := tree()
	delete(fetcher, "/item-1.json")
	_, err := href.Resolve(context.Background(), fetcher, "/catalog.json")
	if err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestValuesBreadthFirst(t *testing.T) {
	fetcher := tree()
	root, err := href.Resolve(context.Background(), fetcher, "/catalog.json")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	values := href.Values(root)
	if len(values) != 4 {
		t.Fatalf("values = %d, want 4", len(values))
	}
	if values[0].EntityType() != stac.TypeCatalog {
		t.Errorf("first value type = %s", values[0].EntityType())
	}
}

func TestResolveWithItemSearchResolver(t *testing.T) {
	fetcher := memFetcher{
		"/collection.json": `{
			"type": "Collection", "stac_version": "1.1.0", "id": "col", "description": "c",
			"license": "proprietary", "extent": {"spatial": {"bbox": [[-1,-1,1,1]]}, "temporal": {"interval": [["2024-01-01T00:00:00Z", null]]}},
			"links": [
				{"rel": "self", "href": "/collection.json"},
				{"rel": "items", "href": "/collection/items"}
			]
		}`,
		"/collection/items?limit=2&sortby=id": `{
			"type": "FeatureCollection", "stac_version": "1.1.0",
			"features": [
				{"type": "Feature", "stac_version": "1.1.0", "id": "a", "geometry": null, "properties": {}, "links": [], "assets": {}},
				{"type": "Feature", "stac_version": "1.1.0", "id": "b", "geometry": null, "properties": {}, "links": [], "assets": {}}
			],
			"links": []
		}`,
	}

	root, err := href.Resolve(context.Background(), fetcher, "/collection.json",
		href.WithItemResolver(&href.ItemSearchResolver{Limit: 2, Sortby: "id"}))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(root.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(root.Items))
	}
	col := root.Entity.(*stac.Collection)
	found := false
	for _, l := range col.Links {
		if l.Rel == stac.RelItems {
			found = true
		}
	}
	if !found {
		t.Error("items link was removed, but only child/item rels should be stripped")
	}
}
