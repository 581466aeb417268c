package search

import (
	"github.com/paulmach/orb"

	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// Matches evaluates Params against item for client-side (in-process)
// search, per spec.md §4.6: collection-membership, id-membership, and,
// when intersects is set, a bounding-box intersection test against the
// item's geometry (orb carries no general polygon/polygon predicate, so
// this is the envelope-level approximation real orb-based services use).
func Matches(p *Params, item *stac.Item) bool {
	if len(p.Collections) > 0 && !contains(p.Collections, item.Collection) {
		return false
	}
	if len(p.IDs) > 0 && !contains(p.IDs, item.Id) {
		return false
	}
	if p.Intersects != nil {
		if item.Geometry == nil || item.Geometry.Geometry == nil {
			return false
		}
		if !boundsIntersect(p.Intersects.Geometry, item.Geometry.Geometry) {
			return false
		}
	}
	if len(p.Bbox) > 0 && item.Geometry != nil && item.Geometry.Geometry != nil {
		if !boundsIntersectBbox(p.Bbox, item.Geometry.Geometry) {
			return false
		}
	}
	return true
}

func boundsIntersect(a, b orb.Geometry) bool {
	return a.Bound().Intersects(b.Bound())
}

func boundsIntersectBbox(bbox []float64, geom orb.Geometry) bool {
	var bound orb.Bound
	if len(bbox) == 6 {
		bound = orb.Bound{Min: orb.Point{bbox[0], bbox[1]}, Max: orb.Point{bbox[3], bbox[4]}}
	} else {
		bound = orb.Bound{Min: orb.Point{bbox[0], bbox[1]}, Max: orb.Point{bbox[2], bbox[3]}}
	}
	return bound.Intersects(geom.Bound())
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}
