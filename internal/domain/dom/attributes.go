package dom

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Attribute is one key/value pair of an element.
type Attribute struct {
	Key   string
	Value string
}

// Attributes is an element's attribute map in source order. Order is
// load-bearing: the attributes fingerprint hashes pairs in iteration order,
// so decoding must not round-trip through an unordered Go map.
type Attributes []Attribute

// Get returns the value for key and whether it is present.
func (a Attributes) Get(key string) (string, bool) {
	for _, kv := range a {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key if present, otherwise appends the pair.
func (a *Attributes) Set(key, value string) {
	for i, kv := range *a {
		if kv.Key == key {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attribute{Key: key, Value: value})
}

// Clone returns an independent copy.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	copy(out, a)
	return out
}

// MarshalJSON renders the attributes as a JSON object in iteration order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving its member order, which a
// plain map[string]string would discard.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*a = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("attributes: expected object, got %v", tok)
	}

	out := Attributes{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("attributes: non-string key %v", keyTok)
		}

		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("attributes: value for %q: %w", key, err)
		}
		out = append(out, Attribute{Key: key, Value: val})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = out
	return nil
}
