package suite

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotObject = errors.New("not a json object")

type field struct {
	key   string
	value json.RawMessage
}

// Object is a JSON object that remembers the order of its keys, so a test
// definition round-trips with its fields where the author put them.
type Object struct {
	fields []field
}

func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.fields))
	for _, f := range o.fields {
		keys = append(keys, f.key)
	}
	return keys
}

func (o *Object) Get(key string) (json.RawMessage, bool) {
	for _, f := range o.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

// Decode unmarshals the value under key into v.
func (o *Object) Decode(key string, v any) (bool, error) {
	raw, ok := o.Get(key)
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

// Set replaces the value under key in place, or appends it.
func (o *Object) Set(key string, v any) error {
	raw, err := marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	for i := range o.fields {
		if o.fields[i].key == key {
			o.fields[i].value = raw
			return nil
		}
	}
	o.fields = append(o.fields, field{key: key, value: raw})
	return nil
}

func (o *Object) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	o.fields = o.fields[:0]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}

		// duplicate keys keep the first position and the last value
		if _, dup := o.Get(key); dup {
			if err := o.Set(key, value); err != nil {
				return err
			}
			continue
		}
		o.fields = append(o.fields, field{key: key, value: value})
	}

	_, err = dec.Token()
	return err
}

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(f.value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshal(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
