package stac

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// mergeAdditional merges the keys of additional on top of a JSON object
// already encoded in base. Used by types that marshal a fixed struct and
// then splice an open-schema Fields map alongside it. base's own key order
// is preserved (it follows the struct's field declaration order); any
// additional key not already present in base is appended in additional's
// own insertion order, matching Fields' ordered-map contract.
func mergeAdditional(base []byte, additional *Fields) ([]byte, error) {
	if additional.Len() == 0 {
		return base, nil
	}
	order, values, err := decodeOrderedObject(base)
	if err != nil {
		return nil, fmt.Errorf("merging additional fields: %w", err)
	}
	for _, k := range additional.Keys() {
		v, _ := additional.Field(k)
		if _, exists := values[k]; !exists {
			order = append(order, k)
		}
		values[k] = v
	}
	return encodeOrderedObject(order, values)
}

// extractAdditional decodes data as a JSON object and returns a Fields
// value holding every key not in known, preserving source key order.
func extractAdditional(data []byte, known ...string) (*Fields, error) {
	var all Fields
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decoding object for additional fields: %w", err)
	}
	for _, k := range known {
		all.Remove(k)
	}
	return &all, nil
}

// decodeOrderedObject decodes a flat JSON object, returning its keys in
// source order alongside a lookup of their raw values.
func decodeOrderedObject(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected JSON object, got %v", tok)
	}
	var order []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected string key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("decoding field %q: %w", key, err)
		}
		order = append(order, key)
		values[key] = raw
	}
	return order, values, nil
}

// encodeOrderedObject renders keys (in the given order) and their values as
// a flat JSON object.
func encodeOrderedObject(order []string, values map[string]json.RawMessage) ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range order {
		if i > 0 {
			b.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(keyJSON)
		b.WriteByte(':')
		v := values[k]
		if len(v) == 0 {
			b.WriteString("null")
		} else {
			b.Write(v)
		}
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
