package stac

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Fields is an insertion-ordered JSON object. It backs every entity's
// open-schema region: top-level additional fields for Catalog/Collection,
// properties for Item, additional_fields for Asset.
type Fields struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewFields returns an empty Fields map.
func NewFields() *Fields {
	return &Fields{values: make(map[string]json.RawMessage)}
}

// Field returns the raw JSON value stored under key, and whether it was present.
func (f *Fields) Field(key string) (json.RawMessage, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[key]
	return v, ok
}

// Get decodes the value stored under key into v. Returns false if key is absent.
func (f *Fields) Get(key string, v any) (bool, error) {
	raw, ok := f.Field(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decoding field %q: %w", key, err)
	}
	return true, nil
}

// SetField stores value under key, returning the previous raw value if any.
func (f *Fields) SetField(key string, value any) (json.RawMessage, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding field %q: %w", key, err)
	}
	return f.setRaw(key, raw), nil
}

func (f *Fields) setRaw(key string, raw json.RawMessage) json.RawMessage {
	if f.values == nil {
		f.values = make(map[string]json.RawMessage)
	}
	prev, existed := f.values[key]
	f.values[key] = raw
	if !existed {
		f.keys = append(f.keys, key)
	}
	return prev
}

// Remove deletes key, returning whether it was present.
func (f *Fields) Remove(key string) bool {
	if f == nil {
		return false
	}
	if _, ok := f.values[key]; !ok {
		return false
	}
	delete(f.values, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Len reports the number of keys.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// WithPrefix deserializes all keys beginning with "prefix:" (with the
// prefix and colon stripped) into a typed structure T.
func WithPrefix[T any](f *Fields, prefix string) (T, error) {
	var out T
	sub := map[string]json.RawMessage{}
	want := prefix + ":"
	for _, k := range f.Keys() {
		if strings.HasPrefix(k, want) {
			raw, _ := f.Field(k)
			sub[strings.TrimPrefix(k, want)] = raw
		}
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return out, fmt.Errorf("marshaling prefix %q payload: %w", prefix, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding prefix %q payload: %w", prefix, err)
	}
	return out, nil
}

// SetWithPrefix serializes payload to a JSON object and injects each key as
// "prefix:key", erroring if payload does not serialize to a JSON object.
func SetWithPrefix(f *Fields, prefix string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding prefix %q payload: %w", prefix, err)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: prefix %q payload must serialize to a JSON object", err, prefix)
	}
	for k, v := range obj {
		f.setRaw(prefix+":"+k, v)
	}
	return nil
}

// RemovePrefix deletes every key matching "prefix:*".
func RemovePrefix(f *Fields, prefix string) {
	want := prefix + ":"
	for _, k := range f.Keys() {
		if strings.HasPrefix(k, want) {
			f.Remove(k)
		}
	}
}

// MarshalJSON renders the fields as a flat JSON object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range f.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(keyJSON)
		b.WriteByte(':')
		v, _ := f.Field(k)
		if len(v) == 0 {
			b.WriteString("null")
		} else {
			b.Write(v)
		}
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// UnmarshalJSON populates the fields from a flat JSON object, preserving
// key order as encountered by the decoder.
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object for fields, got %v", tok)
	}
	*f = Fields{values: make(map[string]json.RawMessage)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding field %q: %w", key, err)
		}
		f.setRaw(key, raw)
	}
	return nil
}

// Clone returns a deep copy of f.
func (f *Fields) Clone() *Fields {
	if f == nil {
		return NewFields()
	}
	out := &Fields{
		keys:   append([]string(nil), f.keys...),
		values: make(map[string]json.RawMessage, len(f.values)),
	}
	for k, v := range f.values {
		cp := make(json.RawMessage, len(v))
		copy(cp, v)
		out.values[k] = cp
	}
	return out
}
