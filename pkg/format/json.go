package format

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/robert-malhotra/stac-go/pkg/href"
	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// EncodeJSON serializes an entity, indenting with two spaces when pretty is true.
func EncodeJSON(entity stac.Entity, pretty bool) ([]byte, error) {
	if !pretty {
		data, err := json.Marshal(entity)
		if err != nil {
			return nil, fmt.Errorf("format: encoding json: %w", err)
		}
		return data, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entity); err != nil {
		return nil, fmt.Errorf("format: encoding pretty json: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DecodeJSON parses data as any STAC entity, dispatching on its type
// discriminant; malformed JSON and discriminant mismatches are both errors.
func DecodeJSON(data []byte) (stac.Entity, error) {
	entity, err := href.ParseEntity(data)
	if err != nil {
		return nil, fmt.Errorf("format: decoding json: %w", err)
	}
	return entity, nil
}
