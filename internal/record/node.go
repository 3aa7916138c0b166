// Package record holds the declarative record tree handed to the compilers:
// named nodes with string attributes and ordered children.
package record

import (
	"strconv"
	"strings"
)

// Node — узел декларативной записи.
type Node struct {
	Name     string            `yaml:"name"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Children []*Node           `yaml:"children,omitempty"`
}

// NewNode creates a node with the given attributes as key/value pairs.
// Odd trailing keys are ignored.
func NewNode(name string, kv ...string) *Node {
	n := &Node{Name: name}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Set(kv[i], kv[i+1])
	}
	return n
}

// Set sets attribute key to value.
func (n *Node) Set(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Has reports whether attribute key is present.
func (n *Node) Has(key string) bool {
	_, ok := n.Attrs[key]
	return ok
}

// Attr returns attribute key (exact key match).
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// Int returns attribute key parsed as an integer.
// ok is false when the attribute is missing or not an integer.
func (n *Node) Int(key string) (int, bool) {
	v, ok := n.Attrs[key]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return i, true
}

// FirstInt returns the first present integer attribute among keys.
func (n *Node) FirstInt(keys ...string) (int, bool) {
	for _, k := range keys {
		if v, ok := n.Int(k); ok {
			return v, true
		}
	}
	return 0, false
}

// Bool returns attribute key as a flag: non-zero integers are true.
func (n *Node) Bool(key string) (bool, bool) {
	v, ok := n.Int(key)
	if !ok {
		return false, false
	}
	return v != 0, true
}

// Child returns the first child named name, nil if none.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all children named name, in document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
