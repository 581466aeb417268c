package stac

import (
	"encoding/json"
	"fmt"
)

// TypeCatalog is the Catalog discriminant.
const TypeCatalog = "Catalog"

// CurrentVersion is the STAC version produced by newly constructed entities.
const CurrentVersion = "1.1.0"

// Catalog is the simplest STAC entity: an id, a description, and a set of links.
type Catalog struct {
	Version        string  `json:"stac_version"`
	Id             string  `json:"id"`
	Title          string  `json:"title,omitempty"`
	Description    string  `json:"description"`
	StacExtensions []string `json:"stac_extensions,omitempty"`
	Links          []*Link `json:"links"`

	Additional *Fields `json:"-"`
	selfHref   string
}

// NewCatalog builds a Catalog with the minimum required fields.
func NewCatalog(id, description string) *Catalog {
	return &Catalog{
		Version:     CurrentVersion,
		Id:          id,
		Description: description,
		Links:       []*Link{},
		Additional:  NewFields(),
	}
}

// EntityType returns the fixed discriminant for Catalog.
func (c *Catalog) EntityType() string { return TypeCatalog }

// GetLinks returns the entity's links.
func (c *Catalog) GetLinks() []*Link { return c.Links }

// SetLinks replaces the entity's links.
func (c *Catalog) SetLinks(links []*Link) { c.Links = links }

// SelfHref returns the in-memory provenance href, never serialized.
func (c *Catalog) SelfHref() string { return c.selfHref }

// SetSelfHref sets the in-memory provenance href.
func (c *Catalog) SetSelfHref(href string) { c.selfHref = href }

// Extensions returns the entity's extension identifier list.
func (c *Catalog) Extensions() []string { return c.StacExtensions }

// SetExtensions replaces the entity's extension identifier list.
func (c *Catalog) SetExtensions(ids []string) { c.StacExtensions = ids }

// Field reads a key from the catalog's open-schema (top-level) region.
func (c *Catalog) Field(key string) (json.RawMessage, bool) {
	return c.fields().Field(key)
}

// SetField writes a key into the catalog's open-schema (top-level) region.
func (c *Catalog) SetField(key string, value any) (json.RawMessage, error) {
	return c.fields().SetField(key, value)
}

// RemoveField deletes a key from the catalog's open-schema region.
func (c *Catalog) RemoveField(key string) bool {
	return c.fields().Remove(key)
}

// Fields returns the catalog's open-schema field map.
func (c *Catalog) Fields() *Fields { return c.fields() }

func (c *Catalog) fields() *Fields {
	if c.Additional == nil {
		c.Additional = NewFields()
	}
	return c.Additional
}

type catalogAlias Catalog

// MarshalJSON writes the type discriminant and merges additional fields.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal((*catalogAlias)(c))
	if err != nil {
		return nil, err
	}
	base, err = mergeAdditional(base, c.Additional)
	if err != nil {
		return nil, err
	}
	return injectType(base, TypeCatalog)
}

// UnmarshalJSON validates the discriminant and captures unrecognized keys.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	if err := checkDiscriminant(data, TypeCatalog); err != nil {
		return err
	}
	if err := json.Unmarshal(data, (*catalogAlias)(c)); err != nil {
		return err
	}
	if c.Id == "" {
		return ErrMissingID
	}
	extra, err := extractAdditional(data, "type", "stac_version", "id", "title", "description", "stac_extensions", "links")
	if err != nil {
		return err
	}
	c.Additional = extra
	return nil
}

// injectType sets "type": value in an already-encoded JSON object.
func injectType(data []byte, value string) ([]byte, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("injecting type discriminant: %w", err)
	}
	typeJSON, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	obj["type"] = typeJSON
	return json.Marshal(obj)
}

// checkDiscriminant validates that data's "type" field equals want.
func checkDiscriminant(data []byte, want string) error {
	var probe struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingType, err)
	}
	if probe.Type == nil {
		return ErrMissingType
	}
	if *probe.Type != want {
		return fmt.Errorf("%w: expected %q, got %q", ErrWrongDiscriminant, want, *probe.Type)
	}
	return nil
}
