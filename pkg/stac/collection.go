package stac

import "encoding/json"

// TypeCollection is the Collection discriminant.
const TypeCollection = "Collection"

// Collection is a Catalog superset describing a homogeneous group of Items.
type Collection struct {
	Version        string   `json:"stac_version"`
	Id             string   `json:"id"`
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description"`
	StacExtensions []string `json:"stac_extensions,omitempty"`
	Links          []*Link  `json:"links"`

	License     string                         `json:"license"`
	Extent      Extent                         `json:"extent"`
	Providers   []Provider                     `json:"providers,omitempty"`
	Summaries   map[string]json.RawMessage     `json:"summaries,omitempty"`
	Assets      map[string]*Asset              `json:"assets,omitempty"`
	ItemAssets  map[string]*ItemAssetDefinition `json:"item_assets,omitempty"`

	Additional *Fields `json:"-"`
	selfHref   string
}

// NewCollection builds a Collection with the minimum required fields.
func NewCollection(id, description, license string) *Collection {
	return &Collection{
		Version:     CurrentVersion,
		Id:          id,
		Description: description,
		License:     license,
		Links:       []*Link{},
		Additional:  NewFields(),
	}
}

func (c *Collection) EntityType() string            { return TypeCollection }
func (c *Collection) GetLinks() []*Link              { return c.Links }
func (c *Collection) SetLinks(links []*Link)         { c.Links = links }
func (c *Collection) SelfHref() string               { return c.selfHref }
func (c *Collection) SetSelfHref(href string)        { c.selfHref = href }
func (c *Collection) Extensions() []string           { return c.StacExtensions }
func (c *Collection) SetExtensions(ids []string)     { c.StacExtensions = ids }

func (c *Collection) Field(key string) (json.RawMessage, bool) { return c.fields().Field(key) }

func (c *Collection) SetField(key string, value any) (json.RawMessage, error) {
	return c.fields().SetField(key, value)
}

func (c *Collection) RemoveField(key string) bool { return c.fields().Remove(key) }

func (c *Collection) Fields() *Fields { return c.fields() }

func (c *Collection) fields() *Fields {
	if c.Additional == nil {
		c.Additional = NewFields()
	}
	return c.Additional
}

type collectionAlias Collection

var collectionKnownKeys = []string{
	"type", "stac_version", "id", "title", "description", "stac_extensions", "links",
	"license", "extent", "providers", "summaries", "assets", "item_assets",
}

// MarshalJSON writes the type discriminant and merges additional fields.
func (c *Collection) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal((*collectionAlias)(c))
	if err != nil {
		return nil, err
	}
	base, err = mergeAdditional(base, c.Additional)
	if err != nil {
		return nil, err
	}
	return injectType(base, TypeCollection)
}

// UnmarshalJSON validates the discriminant and captures unrecognized keys.
func (c *Collection) UnmarshalJSON(data []byte) error {
	if err := checkDiscriminant(data, TypeCollection); err != nil {
		return err
	}
	if err := json.Unmarshal(data, (*collectionAlias)(c)); err != nil {
		return err
	}
	if c.Id == "" {
		return ErrMissingID
	}
	extra, err := extractAdditional(data, collectionKnownKeys...)
	if err != nil {
		return err
	}
	c.Additional = extra
	return nil
}
