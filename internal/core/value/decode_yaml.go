// If you are AI: This file decodes YAML text into the tagged value model.
// Mapping keys keep document order; aliases are expanded and merge keys applied.

package value

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeYAML reads the first YAML document from r.
// Mapping keys keep their order; aliases are expanded and merge keys applied.
func DecodeYAML(r io.Reader) (Value, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	d := &yamlDecoder{visiting: make(map[*yaml.Node]bool)}
	v, err := d.node(&doc, 0)
	if err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return v, nil
}

// yamlDecoder tracks alias targets being expanded to reject alias cycles.
type yamlDecoder struct {
	visiting map[*yaml.Node]bool
}

// node converts a single YAML node.
func (d *yamlDecoder) node(n *yaml.Node, depth int) (Value, error) {
	if depth > MaxDepth {
		return nil, ErrCyclicStructure
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return d.node(n.Content[0], depth)
	case yaml.AliasNode:
		if d.visiting[n.Alias] {
			return nil, fmt.Errorf("%w: alias *%s at line %d", ErrCyclicStructure, n.Value, n.Line)
		}
		d.visiting[n.Alias] = true
		defer delete(d.visiting, n.Alias)
		return d.node(n.Alias, depth+1)
	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(n.Content))
		for _, child := range n.Content {
			elem, err := d.node(child, depth+1)
			if err != nil {
				return nil, err
			}
			seq = append(seq, elem)
		}
		return seq, nil
	case yaml.MappingNode:
		return d.mapping(n, depth)
	case yaml.ScalarNode:
		return scalar(n)
	default:
		return nil, fmt.Errorf("%w: yaml node kind %d at line %d", ErrUnsupportedValue, n.Kind, n.Line)
	}
}

// mapping converts a mapping node, expanding merge keys in place.
func (d *yamlDecoder) mapping(n *yaml.Node, depth int) (Value, error) {
	m := make(Mapping, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]

		if key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge" {
			merged, err := d.merge(val, depth)
			if err != nil {
				return nil, err
			}
			m = append(m, merged...)
			continue
		}

		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: non-scalar mapping key at line %d", ErrUnsupportedValue, key.Line)
		}
		member, err := d.node(val, depth+1)
		if err != nil {
			return nil, err
		}
		m = append(m, Member{Key: key.Value, Value: member})
	}
	return m, nil
}

// merge resolves the value of a "<<" key into the members it contributes.
func (d *yamlDecoder) merge(val *yaml.Node, depth int) (Mapping, error) {
	sources := []*yaml.Node{val}
	if val.Kind == yaml.SequenceNode {
		sources = val.Content
	}

	var out Mapping
	for _, src := range sources {
		v, err := d.node(src, depth+1)
		if err != nil {
			return nil, err
		}
		m, ok := v.(Mapping)
		if !ok {
			return nil, fmt.Errorf("%w: merge of non-mapping at line %d", ErrUnsupportedValue, src.Line)
		}
		out = append(out, m...)
	}
	return out, nil
}

// scalar converts a scalar node according to its resolved tag.
func scalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return Number(f), nil
	default:
		return Text(n.Value), nil
	}
}
