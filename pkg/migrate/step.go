package migrate

import (
	"encoding/json"
	"strings"
)

// rewriteBands consolidates eo:bands and raster:bands into a unified
// "bands" array per asset, hoisting values common to more than one band
// onto the parent asset, per spec.md §4.2 step 1.
func rewriteBands(asset map[string]any) {
	eoBands, _ := asset["eo:bands"].([]any)
	rasterBands, _ := asset["raster:bands"].([]any)
	n := len(eoBands)
	if len(rasterBands) > n {
		n = len(rasterBands)
	}
	if n == 0 {
		return
	}

	bands := make([]map[string]any, n)
	for i := range bands {
		band := map[string]any{}
		if i < len(eoBands) {
			if entry, ok := eoBands[i].(map[string]any); ok {
				for k, v := range entry {
					if k == "name" {
						band["name"] = v
					} else {
						band["eo:"+k] = v
					}
				}
			}
		}
		if i < len(rasterBands) {
			if entry, ok := rasterBands[i].(map[string]any); ok {
				for k, v := range entry {
					switch k {
					case "nodata", "data_type", "statistics", "unit":
						band[k] = v
					default:
						band["raster:"+k] = v
					}
				}
			}
		}
		bands[i] = band
	}

	hoistCommonValues(asset, bands)

	anyNonEmpty := false
	out := make([]any, n)
	for i, band := range bands {
		if len(band) > 0 {
			anyNonEmpty = true
		}
		out[i] = band
	}

	delete(asset, "eo:bands")
	delete(asset, "raster:bands")
	if anyNonEmpty {
		asset["bands"] = out
	}
}

// hoistCommonValues finds, for every field key present across bands, the
// most frequent value; if that value appears in more than one band, it is
// removed from each band and set once on the parent asset.
func hoistCommonValues(asset map[string]any, bands []map[string]any) {
	keys := map[string]bool{}
	for _, band := range bands {
		for k := range band {
			keys[k] = true
		}
	}

	for k := range keys {
		counts := map[string]int{}
		raws := map[string]any{}
		for _, band := range bands {
			v, ok := band[k]
			if !ok {
				continue
			}
			enc, err := json.Marshal(v)
			if err != nil {
				continue
			}
			counts[string(enc)]++
			raws[string(enc)] = v
		}

		bestKey, bestCount := "", 0
		for enc, count := range counts {
			if count > bestCount {
				bestKey, bestCount = enc, count
			}
		}
		if bestCount <= 1 {
			continue
		}

		for _, band := range bands {
			v, ok := band[k]
			if !ok {
				continue
			}
			enc, err := json.Marshal(v)
			if err == nil && string(enc) == bestKey {
				delete(band, k)
			}
		}
		asset[k] = raws[bestKey]
	}
}

// rewriteSelfLink rewrites any links[i] with rel=="self" whose href begins
// with "/" to "file://<href>", per spec.md §4.2 step 2.
func rewriteSelfLink(tree map[string]any) {
	links, _ := tree["links"].([]any)
	for _, l := range links {
		link, ok := l.(map[string]any)
		if !ok {
			continue
		}
		if rel, _ := link["rel"].(string); rel != "self" {
			continue
		}
		href, _ := link["href"].(string)
		if strings.HasPrefix(href, "/") {
			link["href"] = "file://" + href
		}
	}
}

// rewriteLicense replaces "proprietary" or "various" with "other", in
// properties for Items and at the top level for Catalog/Collection, per
// spec.md §4.2 steps 3 and 4.
func rewriteLicense(tree map[string]any) {
	target := tree
	if typ, _ := tree["type"].(string); typ == "Feature" {
		if props, ok := tree["properties"].(map[string]any); ok {
			target = props
		} else {
			return
		}
	}
	license, ok := target["license"].(string)
	if !ok {
		return
	}
	if license == "proprietary" || license == "various" {
		target["license"] = "other"
	}
}

// rewriteToV1_1_0Beta1 applies the full 1.0.0 -> 1.1.0-beta.1 rewrite
// described in spec.md §4.2.
func rewriteToV1_1_0Beta1(tree map[string]any) error {
	if assets, ok := tree["assets"].(map[string]any); ok {
		for _, a := range assets {
			if asset, ok := a.(map[string]any); ok {
				rewriteBands(asset)
			}
		}
	}
	rewriteSelfLink(tree)
	rewriteLicense(tree)
	return nil
}

// noopStep is used for hops whose entire content was already folded into
// an earlier step (e.g. 1.1.0-beta.1 -> 1.1.0 is a pure version bump).
func noopStep(tree map[string]any) error { return nil }
