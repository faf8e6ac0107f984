package element

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var ErrInvalidDescriptor = errors.New("element: invalid node descriptor")

// From converts a loosely typed value into a Node. nil and false are empty,
// strings are text, numeric kinds are numbers and maps with a string "type"
// entry are composites. Anything else is rejected.
func From(v any) (Node, error) {
	switch v := v.(type) {
	case nil:
		return Empty{}, nil
	case Node:
		return v, nil
	case bool:
		if v {
			return nil, fmt.Errorf("%w: true is not renderable", ErrInvalidDescriptor)
		}
		return Empty{}, nil
	case string:
		return Text(v), nil
	case int:
		return Number(v), nil
	case int8:
		return Number(v), nil
	case int16:
		return Number(v), nil
	case int32:
		return Number(v), nil
	case int64:
		return Number(v), nil
	case uint:
		return Number(v), nil
	case uint8:
		return Number(v), nil
	case uint16:
		return Number(v), nil
	case uint32:
		return Number(v), nil
	case uint64:
		return Number(v), nil
	case float32:
		return Number(v), nil
	case float64:
		return Number(v), nil
	case map[string]any:
		return compositeFrom(v)
	default:
		return nil, fmt.Errorf("%w: unsupported %T", ErrInvalidDescriptor, v)
	}
}

func compositeFrom(m map[string]any) (*Composite, error) {
	typ, ok := m["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("%w: composite needs a non-empty string type", ErrInvalidDescriptor)
	}
	c := &Composite{Type: typ}

	switch key := m["key"].(type) {
	case nil:
	case string:
		c.Key = key
	case int:
		c.Key = fmt.Sprint(key)
	default:
		return nil, fmt.Errorf("%w: key must be a string or int, got %T", ErrInvalidDescriptor, key)
	}

	if props, ok := m["props"]; ok && props != nil {
		pm, ok := props.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: props must be a mapping, got %T", ErrInvalidDescriptor, props)
		}
		c.Props = pm
	}
	return c, nil
}

// Pair is one prev/next comparison loaded from a fixture file.
type Pair struct {
	Name string
	Prev Node
	Next Node
}

type rawPair struct {
	Name string `yaml:"name"`
	Prev any    `yaml:"prev"`
	Next any    `yaml:"next"`
}

// DecodePairs reads a YAML (or JSON) list of {name, prev, next} entries.
func DecodePairs(r io.Reader) ([]Pair, error) {
	var raw []rawPair
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding pairs: %w", err)
	}

	pairs := make([]Pair, 0, len(raw))
	for i, rp := range raw {
		name := rp.Name
		if name == "" {
			name = fmt.Sprintf("pair %d", i+1)
		}
		prev, err := From(rp.Prev)
		if err != nil {
			return nil, fmt.Errorf("%s prev: %w", name, err)
		}
		next, err := From(rp.Next)
		if err != nil {
			return nil, fmt.Errorf("%s next: %w", name, err)
		}
		pairs = append(pairs, Pair{Name: name, Prev: prev, Next: next})
	}
	return pairs, nil
}
