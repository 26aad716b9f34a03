package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// NodeKind tags the shape of a Node.
type NodeKind int

const (
	// NodeScalar is a string, number, boolean or null.
	NodeScalar NodeKind = iota + 1
	// NodeArray is an ordered list of nodes.
	NodeArray
	// NodeObject is a set of named nodes.
	NodeObject
)

// String returns the name of the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeScalar:
		return "scalar"
	case NodeArray:
		return "array"
	case NodeObject:
		return "object"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is a JSON value from the sample rows of a table.
// Exactly one of Value, Items or Fields is meaningful, as selected by Kind.
type Node struct {
	Kind   NodeKind
	Value  string // scalar text; empty when Null
	Null   bool
	Items  []Node
	Fields map[string]Node
}

// ScalarNode returns a non-null scalar node.
func ScalarNode(value string) Node {
	return Node{Kind: NodeScalar, Value: value}
}

// ArrayNode returns an array node.
func ArrayNode(items ...Node) Node {
	return Node{Kind: NodeArray, Items: items}
}

// ObjectNode returns an object node.
func ObjectNode(fields map[string]Node) Node {
	return Node{Kind: NodeObject, Fields: fields}
}

// UnmarshalJSON decodes any JSON value into its tagged form.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("%w: empty value", ErrInvalidNode)
	}

	switch trimmed[0] {
	case '{':
		var fields map[string]Node
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidNode, err)
		}
		*n = ObjectNode(fields)
	case '[':
		var items []Node
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidNode, err)
		}
		*n = ArrayNode(items...)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidNode, err)
		}
		*n = ScalarNode(s)
	default:
		text := string(trimmed)
		if text == "null" {
			*n = Node{Kind: NodeScalar, Null: true}
			return nil
		}
		*n = ScalarNode(text)
	}
	return nil
}

// Field returns the named field of an object node.
func (n Node) Field(name string) (Node, bool) {
	if n.Kind != NodeObject {
		return Node{}, false
	}
	f, ok := n.Fields[name]
	return f, ok
}

// String renders the node as short descriptive text. Null renders as "".
func (n Node) String() string {
	switch n.Kind {
	case NodeScalar:
		return n.Value
	case NodeArray:
		parts := make([]string, 0, len(n.Items))
		for _, item := range n.Items {
			parts = append(parts, item.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case NodeObject:
		keys := make([]string, 0, len(n.Fields))
		for k := range n.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+n.Fields[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}
