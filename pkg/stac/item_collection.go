package stac

import "encoding/json"

// TypeItemCollection is the ItemCollection discriminant, a GeoJSON FeatureCollection.
const TypeItemCollection = "FeatureCollection"

// ItemCollection is a GeoJSON FeatureCollection of Items with STAC pagination extras.
type ItemCollection struct {
	Features       []*Item `json:"features"`
	Links          []*Link `json:"links,omitempty"`
	NumberMatched  *int    `json:"numberMatched,omitempty"`
	NumberReturned *int    `json:"numberReturned,omitempty"`

	selfHref string
}

// NewItemCollection wraps items as an ItemCollection.
func NewItemCollection(items []*Item) *ItemCollection {
	n := len(items)
	return &ItemCollection{Features: items, Links: []*Link{}, NumberReturned: &n}
}

func (ic *ItemCollection) EntityType() string     { return TypeItemCollection }
func (ic *ItemCollection) GetLinks() []*Link      { return ic.Links }
func (ic *ItemCollection) SetLinks(links []*Link) { ic.Links = links }
func (ic *ItemCollection) SelfHref() string       { return ic.selfHref }
func (ic *ItemCollection) SetSelfHref(h string)   { ic.selfHref = h }

// linkByRel returns the first link with the matching rel, or nil.
func (ic *ItemCollection) linkByRel(rel string) *Link {
	for _, l := range ic.Links {
		if l.Rel == rel {
			return l
		}
	}
	return nil
}

// Next returns the "next" pagination link, if any.
func (ic *ItemCollection) Next() *Link { return ic.linkByRel(RelNext) }

// Prev returns the "prev" pagination link, if any.
func (ic *ItemCollection) Prev() *Link { return ic.linkByRel(RelPrev) }

// First returns the "first" pagination link, if any.
func (ic *ItemCollection) First() *Link { return ic.linkByRel(RelFirst) }

// Last returns the "last" pagination link, if any.
func (ic *ItemCollection) Last() *Link { return ic.linkByRel(RelLast) }

type itemCollectionAlias ItemCollection

// MarshalJSON writes the type discriminant.
func (ic *ItemCollection) MarshalJSON() ([]byte, error) {
	if ic.Features == nil {
		ic.Features = []*Item{}
	}
	base, err := json.Marshal((*itemCollectionAlias)(ic))
	if err != nil {
		return nil, err
	}
	return injectType(base, TypeItemCollection)
}

// UnmarshalJSON accepts either a proper FeatureCollection object or a bare
// JSON array of items.
func (ic *ItemCollection) UnmarshalJSON(data []byte) error {
	if firstNonSpace(data) == '[' {
		var items []*Item
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		ic.Features = items
		return nil
	}
	if err := checkDiscriminant(data, TypeItemCollection); err != nil {
		return err
	}
	if err := json.Unmarshal(data, (*itemCollectionAlias)(ic)); err != nil {
		return err
	}
	if ic.Features == nil {
		ic.Features = []*Item{}
	}
	return nil
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b
		}
	}
	return 0
}
