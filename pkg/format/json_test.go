package format_test

import (
	"strings"
	"testing"

	"github.com/robert-malhotra/stac-go/pkg/format"
	"github.com/robert-malhotra/stac-go/pkg/stac"
)

func TestEncodeDecodeJSONRoundTrip(t *testing.T) {
	cat := stac.NewCatalog("root", "a root catalog")
	data, err := format.EncodeJSON(cat, false)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	entity, err := format.DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	got, ok := entity.(*stac.Catalog)
	if !ok || got.Id != "root" {
		t.Fatalf("decoded entity = %+v", entity)
	}
}

func TestEncodeJSONPrettyIndents(t *testing.T) {
	cat := stac.NewCatalog("root", "a root catalog")
	data, err := format.EncodeJSON(cat, true)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Errorf("expected two-space indented output, got %s", data)
	}
}

func TestDecodeJSONDiscriminantMismatch(t *testing.T) {
	_, err := format.DecodeJSON([]byte(`{"type": "NotAThing"}`))
	if err == nil {
		t.Fatal("expected error for unknown discriminant")
	}
}
