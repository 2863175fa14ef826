package suite

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// ParseYAML reads a sequence of mappings. Mapping keys keep their order.
func ParseYAML(data []byte) (Suite, error) {
	var docs []yaml.MapSlice
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse test definitions: %w", err)
	}

	s := make(Suite, 0, len(docs))
	for i, doc := range docs {
		test, err := fromMapSlice(doc)
		if err != nil {
			return nil, fmt.Errorf("test %d: %w", i, err)
		}
		s = append(s, test)
	}

	return s, nil
}

func fromMapSlice(ms yaml.MapSlice) (*Object, error) {
	o := &Object{}
	for _, item := range ms {
		key := fmt.Sprint(item.Key)
		value, err := plain(item.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if err := o.Set(key, value); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// plain converts yaml.v2 values into types encoding/json accepts.
func plain(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case yaml.MapSlice:
		return fromMapSlice(v)
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, val := range v {
			p, err := plain(val)
			if err != nil {
				return nil, err
			}
			m[fmt.Sprint(k)] = p
		}
		return m, nil
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			p, err := plain(val)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	default:
		return v, nil
	}
}
