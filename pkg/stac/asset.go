package stac

import "encoding/json"

// Asset is a downloadable or referenceable file associated with an entity.
// Unlike entities, assets do not track extension identifiers directly;
// extension payloads on assets live as namespaced keys in Additional.
type Asset struct {
	Href        string   `json:"href"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Created     string   `json:"created,omitempty"`
	Updated     string   `json:"updated,omitempty"`

	Additional *Fields `json:"-"`
}

// NewAsset builds an Asset with only the required href.
func NewAsset(href string) *Asset {
	return &Asset{Href: href, Additional: NewFields()}
}

// Field reads a key from the asset's additional fields.
func (a *Asset) Field(key string) (json.RawMessage, bool) {
	return a.Additional.Field(key)
}

// SetField writes a key into the asset's additional fields.
func (a *Asset) SetField(key string, value any) (json.RawMessage, error) {
	if a.Additional == nil {
		a.Additional = NewFields()
	}
	return a.Additional.SetField(key, value)
}

type assetAlias Asset

// MarshalJSON flattens Additional alongside the named asset fields.
func (a *Asset) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal((*assetAlias)(a))
	if err != nil {
		return nil, err
	}
	return mergeAdditional(base, a.Additional)
}

// UnmarshalJSON decodes the named asset fields and captures the rest into Additional.
func (a *Asset) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*assetAlias)(a)); err != nil {
		return err
	}
	extra, err := extractAdditional(data, "href", "title", "description", "type", "roles", "created", "updated")
	if err != nil {
		return err
	}
	a.Additional = extra
	return nil
}
