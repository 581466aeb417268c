package stac

import "encoding/json"

// Canonical link rel values with defined structural meaning.
const (
	RelSelf      = "self"
	RelRoot      = "root"
	RelParent    = "parent"
	RelChild     = "child"
	RelItem      = "item"
	RelCollection = "collection"
	RelNext      = "next"
	RelPrev      = "prev"
	RelFirst     = "first"
	RelLast      = "last"
	RelCanonical = "canonical"
	RelAlternate = "alternate"
	RelItems     = "items"
)

// structuralRels are the rels removed by RemoveStructuralLinks, used when
// re-hosting a catalog tree at a new location.
var structuralRels = map[string]bool{
	RelSelf: true, RelRoot: true, RelParent: true, RelChild: true, RelItem: true,
}

// Link is a typed hyperlink connecting STAC entities.
type Link struct {
	Href   string          `json:"href"`
	Rel    string          `json:"rel"`
	Type   string          `json:"type,omitempty"`
	Title  string          `json:"title,omitempty"`
	Method string          `json:"method,omitempty"`
	Body   json.RawMessage `json:"body,omitempty"`

	Additional *Fields `json:"-"`
}

// NewLink builds a Link with the required href/rel pair.
func NewLink(href, rel string) *Link {
	return &Link{Href: href, Rel: rel}
}

// IsStructural reports whether the link's rel is one of self/root/parent/child/item.
func (l *Link) IsStructural() bool {
	return structuralRels[l.Rel]
}

// linkAlias avoids infinite recursion through MarshalJSON/UnmarshalJSON.
type linkAlias Link

// MarshalJSON flattens Additional fields alongside the named link fields.
func (l *Link) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal((*linkAlias)(l))
	if err != nil {
		return nil, err
	}
	return mergeAdditional(base, l.Additional)
}

// UnmarshalJSON decodes the named link fields and captures the rest into Additional.
func (l *Link) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*linkAlias)(l)); err != nil {
		return err
	}
	extra, err := extractAdditional(data, "href", "rel", "type", "title", "method", "body")
	if err != nil {
		return err
	}
	l.Additional = extra
	return nil
}
