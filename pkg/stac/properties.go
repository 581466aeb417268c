package stac

import "encoding/json"

// Properties holds an Item's datetime fields plus every other property,
// including namespaced extension fields, in Additional.
type Properties struct {
	Datetime      *string `json:"datetime"`
	StartDatetime *string `json:"start_datetime,omitempty"`
	EndDatetime   *string `json:"end_datetime,omitempty"`

	Additional *Fields `json:"-"`
}

// NewProperties builds Properties with a single RFC3339 instant.
func NewProperties(datetime string) *Properties {
	return &Properties{Datetime: &datetime, Additional: NewFields()}
}

func (p *Properties) fields() *Fields {
	if p.Additional == nil {
		p.Additional = NewFields()
	}
	return p.Additional
}

// Field reads a key from the item's open-schema (properties) region.
func (p *Properties) Field(key string) (json.RawMessage, bool) { return p.fields().Field(key) }

// SetField writes a key into the item's open-schema (properties) region.
func (p *Properties) SetField(key string, value any) (json.RawMessage, error) {
	return p.fields().SetField(key, value)
}

// RemoveField deletes a key from the item's open-schema region.
func (p *Properties) RemoveField(key string) bool { return p.fields().Remove(key) }

type propertiesAlias Properties

// MarshalJSON merges the datetime fields with the open-schema region.
func (p *Properties) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal((*propertiesAlias)(p))
	if err != nil {
		return nil, err
	}
	return mergeAdditional(base, p.Additional)
}

// UnmarshalJSON decodes the datetime fields and captures the rest as open fields.
func (p *Properties) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*propertiesAlias)(p)); err != nil {
		return err
	}
	extra, err := extractAdditional(data, "datetime", "start_datetime", "end_datetime")
	if err != nil {
		return err
	}
	p.Additional = extra
	return nil
}
