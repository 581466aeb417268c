package migrate_test

import (
	"encoding/json"
	"testing"

	"github.com/robert-malhotra/stac-go/pkg/migrate"
)

const bandFixture = `{
  "type": "Feature",
  "stac_version": "1.0.0",
  "id": "item",
  "geometry": null,
  "properties": {"datetime": "2024-01-01T00:00:00Z"},
  "links": [{"rel": "self", "href": "/data/item.json"}],
  "assets": {
    "data": {
      "href": "data.tif",
      "eo:bands": [{"name": "r", "common_name": "red"}, {"name": "g", "common_name": "green"}],
      "raster:bands": [{"data_type": "uint16"}, {"data_type": "uint16"}]
    }
  }
}`

func TestMigrateBandConsolidation(t *testing.T) {
	var tree map[string]any
	if err := json.Unmarshal([]byte(bandFixture), &tree); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	migrated, err := migrate.Tree(tree, migrate.V1_0_0, migrate.V1_1_0)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	assets := migrated["assets"].(map[string]any)
	asset := assets["data"].(map[string]any)

	if _, ok := asset["eo:bands"]; ok {
		t.Error("expected eo:bands removed")
	}
	if _, ok := asset["raster:bands"]; ok {
		t.Error("expected raster:bands removed")
	}

	if asset["data_type"] != "uint16" {
		t.Errorf("expected data_type hoisted to uint16, got %v", asset["data_type"])
	}

	bands, ok := asset["bands"].([]any)
	if !ok || len(bands) != 2 {
		t.Fatalf("expected 2 bands, got %v", asset["bands"])
	}
	band0 := bands[0].(map[string]any)
	if band0["name"] != "r" || band0["eo:common_name"] != "red" {
		t.Errorf("band0 = %+v", band0)
	}
	if _, ok := band0["data_type"]; ok {
		t.Error("expected data_type hoisted out of band0")
	}

	link := migrated["links"].([]any)[0].(map[string]any)
	if link["href"] != "file:///data/item.json" {
		t.Errorf("self link href = %v", link["href"])
	}

	if migrated["stac_version"] != migrate.V1_1_0 {
		t.Errorf("stac_version = %v", migrated["stac_version"])
	}
}

func TestMigrateLicenseRewrite(t *testing.T) {
	tree := map[string]any{
		"type":         "Collection",
		"stac_version": "1.0.0",
		"license":      "various",
	}
	migrated, err := migrate.Tree(tree, migrate.V1_0_0, migrate.V1_1_0)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if migrated["license"] != "other" {
		t.Errorf("license = %v, want other", migrated["license"])
	}
}

func TestMigrateSameVersionIsNoop(t *testing.T) {
	tree := map[string]any{"stac_version": "1.0.0"}
	migrated, err := migrate.Tree(tree, migrate.V1_0_0, migrate.V1_0_0)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if migrated["stac_version"] != "1.0.0" {
		t.Errorf("stac_version changed on no-op migration: %v", migrated["stac_version"])
	}
}

func TestMigrateUnsupportedBackward(t *testing.T) {
	tree := map[string]any{"stac_version": "1.1.0"}
	_, err := migrate.Tree(tree, migrate.V1_1_0, migrate.V1_0_0)
	if err == nil {
		t.Fatal("expected error migrating backward")
	}
}

func TestMigrateUnsupportedUnknownVersion(t *testing.T) {
	tree := map[string]any{"stac_version": "0.9.0"}
	_, err := migrate.Tree(tree, "0.9.0", migrate.V1_1_0)
	if err == nil {
		t.Fatal("expected error for unknown source version")
	}
}
