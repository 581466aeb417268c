package stac

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/paulmach/orb/geojson"
)

// TypeItem is the Item discriminant, a GeoJSON Feature.
const TypeItem = "Feature"

// Item is a GeoJSON Feature describing a single spatiotemporal asset.
type Item struct {
	Version        string            `json:"stac_version"`
	Id             string            `json:"id"`
	StacExtensions []string          `json:"stac_extensions,omitempty"`
	Geometry       *geojson.Geometry `json:"geometry"`
	Bbox           *Bbox             `json:"bbox,omitempty"`
	Properties     *Properties       `json:"properties"`
	Links          []*Link           `json:"links"`
	Assets         map[string]*Asset `json:"assets"`
	Collection     string            `json:"collection,omitempty"`

	selfHref string
}

// NewItem builds an Item with the minimum required fields.
func NewItem(id string) *Item {
	return &Item{
		Version:    CurrentVersion,
		Id:         id,
		Properties: &Properties{Additional: NewFields()},
		Links:      []*Link{},
		Assets:     map[string]*Asset{},
	}
}

func (it *Item) EntityType() string        { return TypeItem }
func (it *Item) GetLinks() []*Link          { return it.Links }
func (it *Item) SetLinks(links []*Link)     { it.Links = links }
func (it *Item) SelfHref() string           { return it.selfHref }
func (it *Item) SetSelfHref(href string)    { it.selfHref = href }
func (it *Item) Extensions() []string       { return it.StacExtensions }
func (it *Item) SetExtensions(ids []string) { it.StacExtensions = ids }

// Field reads a key from the item's properties (the item's open-schema region).
func (it *Item) Field(key string) (json.RawMessage, bool) {
	return it.properties().Field(key)
}

// SetField writes a key into the item's properties.
func (it *Item) SetField(key string, value any) (json.RawMessage, error) {
	return it.properties().SetField(key, value)
}

// RemoveField deletes a key from the item's properties.
func (it *Item) RemoveField(key string) bool {
	return it.properties().Remove(key)
}

// Fields returns the item's open-schema field map (its Properties.Additional).
func (it *Item) Fields() *Fields { return it.properties() }

func (it *Item) properties() *Fields {
	if it.Properties == nil {
		it.Properties = &Properties{}
	}
	if it.Properties.Additional == nil {
		it.Properties.Additional = NewFields()
	}
	return it.Properties.Additional
}

// Validate checks the Item invariants spec.md §3 requires beyond what
// UnmarshalJSON already enforces: datetime nullability and the
// geometry/bbox pairing.
func (it *Item) Validate() error {
	if it.Id == "" {
		return ErrMissingID
	}
	if it.Properties == nil {
		return fmt.Errorf("%w: properties is required", ErrInvalidAttrName)
	}
	if it.Geometry == nil && it.Bbox != nil {
		return fmt.Errorf("%w: geometry may be null only when bbox is absent", ErrMissingGeometry)
	}
	if it.Properties.Datetime == nil {
		if it.Properties.StartDatetime == nil || it.Properties.EndDatetime == nil {
			return fmt.Errorf("%w: null datetime requires start_datetime and end_datetime", ErrInvalidDatetime)
		}
		if _, err := time.Parse(time.RFC3339, *it.Properties.StartDatetime); err != nil {
			return fmt.Errorf("%w: start_datetime: %v", ErrInvalidDatetime, err)
		}
		if _, err := time.Parse(time.RFC3339, *it.Properties.EndDatetime); err != nil {
			return fmt.Errorf("%w: end_datetime: %v", ErrInvalidDatetime, err)
		}
	} else if _, err := time.Parse(time.RFC3339, *it.Properties.Datetime); err != nil {
		return fmt.Errorf("%w: datetime: %v", ErrInvalidDatetime, err)
	}
	return nil
}

type itemAlias Item

// MarshalJSON writes the type discriminant.
func (it *Item) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal((*itemAlias)(it))
	if err != nil {
		return nil, err
	}
	return injectType(base, TypeItem)
}

// UnmarshalJSON validates the discriminant and decodes the named fields.
// Extension and other open fields live inside Properties, not at the top
// level, so no Additional capture happens here.
func (it *Item) UnmarshalJSON(data []byte) error {
	if err := checkDiscriminant(data, TypeItem); err != nil {
		return err
	}
	if err := json.Unmarshal(data, (*itemAlias)(it)); err != nil {
		return err
	}
	if it.Id == "" {
		return ErrMissingID
	}
	return nil
}
