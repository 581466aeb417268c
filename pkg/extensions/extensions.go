// Package extensions implements the prefix-keyed extension discipline laid
// out in spec.md §4.1: typed payload views over an entity's open-schema
// region, keyed by a well-known identifier URL and field prefix.
package extensions

import (
	"strings"

	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// Extension is implemented by a typed extension payload, e.g. Projection or Raster.
type Extension interface {
	// Identifier is the full schema URL this payload's type conforms to.
	Identifier() string
	// IdentifierPrefix is the scheme+host+path segment Has matches against,
	// e.g. "https://stac-extensions.github.io/eo/".
	IdentifierPrefix() string
	// Prefix is the short field prefix, e.g. "eo".
	Prefix() string
}

// Has reports whether entity claims conformance with E via its extension
// identifier list, matching on the scheme+host+path prefix up to and
// including the segment after the domain (e.g.
// "https://stac-extensions.github.io/eo/").
func Has[E Extension](entity stac.Container) bool {
	var zero E
	prefix := zero.IdentifierPrefix()
	for _, id := range entity.Extensions() {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

// Get projects the entity's prefix-keyed fields onto a typed payload E, if
// the entity claims the extension.
func Get[E Extension](entity stac.Container) (E, bool, error) {
	var zero E
	if !Has[E](entity) {
		return zero, false, nil
	}
	payload, err := stac.WithPrefix[E](entity.Fields(), zero.Prefix())
	if err != nil {
		return zero, true, err
	}
	return payload, true, nil
}

// Set replaces any prior fields sharing the extension's prefix, registers
// the extension identifier (de-duplicated), and serializes payload into
// the entity's fields.
func Set[E Extension](entity stac.Container, payload E) error {
	stac.RemovePrefix(entity.Fields(), payload.Prefix())
	if err := stac.SetWithPrefix(entity.Fields(), payload.Prefix(), payload); err != nil {
		return err
	}
	entity.SetExtensions(addUnique(entity.Extensions(), payload.Identifier()))
	return nil
}

// Remove deletes the extension's prefixed fields and drops any matching
// extension identifier. It is idempotent.
func Remove[E Extension](entity stac.Container) {
	var zero E
	stac.RemovePrefix(entity.Fields(), zero.Prefix())
	prefix := zero.IdentifierPrefix()
	kept := entity.Extensions()[:0:0]
	for _, id := range entity.Extensions() {
		if !strings.HasPrefix(id, prefix) {
			kept = append(kept, id)
		}
	}
	entity.SetExtensions(kept)
}

func addUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
