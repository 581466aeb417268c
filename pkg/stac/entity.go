package stac

import "encoding/json"

// Entity is implemented by every STAC value that carries links and an
// in-memory self href: Catalog, Collection, Item, and ItemCollection.
type Entity interface {
	EntityType() string
	GetLinks() []*Link
	SetLinks([]*Link)
	SelfHref() string
	SetSelfHref(string)
}

// Container is an Entity that additionally carries the open-schema region
// and extension identifier list used by pkg/extensions. Catalog, Collection
// and Item all implement it (ItemCollection does not: it has no id or
// extension list of its own).
type Container interface {
	Entity
	Field(key string) (json.RawMessage, bool)
	SetField(key string, value any) (json.RawMessage, error)
	RemoveField(key string) bool
	Fields() *Fields
	Extensions() []string
	SetExtensions([]string)
}

var (
	_ Container = (*Catalog)(nil)
	_ Container = (*Collection)(nil)
	_ Container = (*Item)(nil)
	_ Entity    = (*ItemCollection)(nil)
)
