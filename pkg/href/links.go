package href

import "github.com/robert-malhotra/stac-go/pkg/stac"

// SelfLink returns the entity's "self" link, if any.
func SelfLink(e stac.Entity) *stac.Link {
	return firstWithRel(e, stac.RelSelf)
}

// RootLink returns the entity's "root" link, if any.
func RootLink(e stac.Entity) *stac.Link {
	return firstWithRel(e, stac.RelRoot)
}

// ParentLink returns the entity's "parent" link, if any.
func ParentLink(e stac.Entity) *stac.Link {
	return firstWithRel(e, stac.RelParent)
}

// ChildLinks returns every "child" link on the entity, in document order.
func ChildLinks(e stac.Entity) []*stac.Link {
	return allWithRel(e, stac.RelChild)
}

// ItemLinks returns every "item" link on the entity, in document order.
func ItemLinks(e stac.Entity) []*stac.Link {
	return allWithRel(e, stac.RelItem)
}

func firstWithRel(e stac.Entity, rel string) *stac.Link {
	for _, l := range e.GetLinks() {
		if l.Rel == rel {
			return l
		}
	}
	return nil
}

func allWithRel(e stac.Entity, rel string) []*stac.Link {
	var out []*stac.Link
	for _, l := range e.GetLinks() {
		if l.Rel == rel {
			out = append(out, l)
		}
	}
	return out
}

// MakeRelativeLinksAbsolute rewrites every link href on e that is not
// already a URL to be absolute against e's own self href.
// It is a no-op if the entity carries no self href.
func MakeRelativeLinksAbsolute(e stac.Entity) {
	base := e.SelfHref()
	if base == "" {
		return
	}
	for _, l := range e.GetLinks() {
		if !IsURL(l.Href) {
			l.Href = Absolute(l.Href, base)
		}
	}
}

// RemoveStructuralLinks strips self/root/parent/child/item links from e,
// used when re-hosting a catalog tree at a new location before the caller
// re-derives its own structural links.
func RemoveStructuralLinks(e stac.Entity) {
	links := e.GetLinks()
	kept := links[:0]
	for _, l := range links {
		if !l.IsStructural() {
			kept = append(kept, l)
		}
	}
	e.SetLinks(kept)
}

// removeLinksWithRel strips every link on e whose rel is in rels, leaving
// the rest (including self/root/parent) untouched.
func removeLinksWithRel(e stac.Entity, rels ...string) {
	want := make(map[string]bool, len(rels))
	for _, r := range rels {
		want[r] = true
	}
	links := e.GetLinks()
	kept := links[:0]
	for _, l := range links {
		if !want[l.Rel] {
			kept = append(kept, l)
		}
	}
	e.SetLinks(kept)
}

// SetSelfFromHref sets e's self href and, if present, rewrites its "self"
// link to match; otherwise it appends a fresh one.
func SetSelfFromHref(e stac.Entity, href string) {
	e.SetSelfHref(href)
	if l := SelfLink(e); l != nil {
		l.Href = href
		return
	}
	e.SetLinks(append(e.GetLinks(), stac.NewLink(href, stac.RelSelf)))
}
