package normalize

import "fmt"

// Schema describes the shape and formats of expected result data. It mirrors
// the results_schema block of an eval config: a type, an optional format
// refining leaf comparison semantics, and items/properties for containers.
type Schema struct {
	Type       string             `json:"type" yaml:"type"`
	Format     string             `json:"format,omitempty" yaml:"format,omitempty"`
	Items      *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Unordered  bool               `json:"unordered,omitempty" yaml:"unordered,omitempty"`
}

// formatKinds maps schema format names to leaf kinds.
var formatKinds = map[string]Kind{
	"currency":    KindCurrency,
	"date":        KindDate,
	"date-time":   KindDate,
	"duration":    KindDuration,
	"distance":    KindDistance,
	"boolean":     KindBoolean,
	"number":      KindNumber,
	"coordinates": KindCoordinates,
	"url":         KindURL,
	"uri":         KindURL,
}

// LeafKind resolves the comparison kind for a leaf described by this schema.
// Format wins over type; an unknown or absent format falls back to the type,
// and everything else compares as a string.
func (s *Schema) LeafKind() Kind {
	if s != nil {
		if k, ok := formatKinds[s.Format]; ok {
			return k
		}
		switch s.Type {
		case "number", "integer":
			return KindNumber
		case "boolean":
			return KindBoolean
		}
	}
	return KindString
}

// Node is one position in a normalized expectation tree. Exactly one of Leaf,
// List, or Map is set.
type Node struct {
	Leaf      Value
	List      []*Node
	Unordered bool
	Map       map[string]*Node
}

// IsLeaf reports whether the node carries a scalar value.
func (n *Node) IsLeaf() bool { return n.Leaf != nil }

// BuildExpected normalizes raw expected data into a tree guided by schema.
// Without a schema the shape of the data drives the result: the root list is
// a sequence of answers, maps become map nodes, and a nested scalar list is
// an alternatives set rather than a sequence.
func BuildExpected(raw any, schema *Schema) (*Node, error) {
	return buildNode(raw, schema, true)
}

func buildNode(raw any, schema *Schema, root bool) (*Node, error) {
	if schema != nil {
		switch schema.Type {
		case "array":
			items, ok := raw.([]any)
			if !ok {
				items = []any{raw}
			}
			return buildList(items, schema.Items, schema.Unordered)
		case "object":
			m, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("expected object, got %T", raw)
			}
			return buildMap(m, schema.Properties)
		default:
			v, err := Parse(schema.LeafKind(), raw)
			if err != nil {
				return nil, err
			}
			return &Node{Leaf: v}, nil
		}
	}

	switch v := raw.(type) {
	case map[string]any:
		return buildMap(v, nil)
	case []any:
		if root || containerElements(v) {
			return buildList(v, nil, false)
		}
		// nested scalar list: alternatives
	}
	val, err := Infer(raw)
	if err != nil {
		return nil, err
	}
	return &Node{Leaf: val}, nil
}

func buildList(items []any, itemSchema *Schema, unordered bool) (*Node, error) {
	nodes := make([]*Node, 0, len(items))
	for i, item := range items {
		child, err := buildNode(item, itemSchema, false)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		nodes = append(nodes, child)
	}
	return &Node{List: nodes, Unordered: unordered}, nil
}

func buildMap(m map[string]any, props map[string]*Schema) (*Node, error) {
	node := &Node{Map: make(map[string]*Node, len(m))}
	for k, v := range m {
		child, err := buildNode(v, props[k], false)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		node.Map[k] = child
	}
	return node, nil
}

// containerElements reports whether a list's elements are themselves
// containers, which makes the list a sequence rather than an alternatives set.
func containerElements(items []any) bool {
	for _, item := range items {
		switch item.(type) {
		case map[string]any, []any:
			return true
		}
	}
	return false
}
