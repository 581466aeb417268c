package href_test

import (
	"testing"

	"github.com/robert-malhotra/stac-go/pkg/href"
	"github.com/robert-malhotra/stac-go/pkg/stac"
)

func TestSelfRootParentLinks(t *testing.T) {
	cat := stac.NewCatalog("root", "a root catalog")
	cat.Links = []*stac.Link{
		stac.NewLink("./catalog.json", stac.RelSelf),
		stac.NewLink("./catalog.json", stac.RelRoot),
		stac.NewLink("../catalog.json", stac.RelParent),
		stac.NewLink("./child-a/catalog.json", stac.RelChild),
		stac.NewLink("./child-b/catalog.json", stac.RelChild),
	}

	if got := href.SelfLink(cat); got == nil || got.Href != "./catalog.json" {
		t.Errorf("SelfLink = %+v", got)
	}
	if got := href.RootLink(cat); got == nil {
		t.Error("RootLink = nil")
	}
	if got := href.ParentLink(cat); got == nil {
		t.Error("ParentLink = nil")
	}
	if got := href.ChildLinks(cat); len(got) != 2 {
		t.Errorf("ChildLinks len = %d, want 2", len(got))
	}
}

func TestMakeRelativeLinksAbsolute(t *testing.T) {
	cat := stac.NewCatalog("root", "a root catalog")
	cat.SetSelfHref("/data/catalog.json")
	cat.Links = []*stac.Link{
		stac.NewLink("./child/catalog.json", stac.RelChild),
		stac.NewLink("http://example.com/absolute.json", stac.RelChild),
	}

	href.MakeRelativeLinksAbsolute(cat)

	if got := cat.Links[0].Href; got != "/data/child/catalog.json" {
		t.Errorf("child href = %q", got)
	}
	if got := cat.Links[1].Href; got != "http://example.com/absolute.json" {
		t.Errorf("absolute child href changed: %q", got)
	}
}

func TestRemoveStructuralLinks(t *testing.T) {
	cat := stac.NewCatalog("root", "a root catalog")
	cat.Links = []*stac.Link{
		stac.NewLink("./catalog.json", stac.RelSelf),
		stac.NewLink("./child/catalog.json", stac.RelChild),
		stac.NewLink("./catalog.json", stac.RelAlternate),
	}

	href.RemoveStructuralLinks(cat)

	if len(cat.Links) != 1 || cat.Links[0].Rel != stac.RelAlternate {
		t.Errorf("links after removal = %+v", cat.Links)
	}
}

func TestSetSelfFromHrefAppendsWhenMissing(t *testing.T) {
	cat := stac.NewCatalog("root", "a root catalog")
	href.SetSelfFromHref(cat, "/data/catalog.json")

	if cat.SelfHref() != "/data/catalog.json" {
		t.Errorf("SelfHref = %q", cat.SelfHref())
	}
	self := href.SelfLink(cat)
	if self == nil || self.Href != "/data/catalog.json" {
		t.Errorf("self link = %+v", self)
	}
}

func TestSetSelfFromHrefRewritesExisting(t *testing.T) {
	cat := stac.NewCatalog("root", "a root catalog")
	cat.Links = []*stac.Link{stac.NewLink("/old/catalog.json", stac.RelSelf)}

	href.SetSelfFromHref(cat, "/new/catalog.json")

	if len(cat.Links) != 1 {
		t.Fatalf("expected self link rewritten in place, got %d links", len(cat.Links))
	}
	if cat.Links[0].Href != "/new/catalog.json" {
		t.Errorf("self link href = %q", cat.Links[0].Href)
	}
}
