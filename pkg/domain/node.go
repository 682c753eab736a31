package domain

import "strings"

// PathSeparator joins node names when a path is rendered as a single string.
// It mirrors the relation syntax of the input table.
const PathSeparator = " -> "

// Node represents one process in the resolved pipeline tree.
//
// Name is the identity used during tree construction; two rows naming the
// same process resolve to the same Node instance. Label, Module, Params and
// Kwargs are presentation and generation attributes copied from the last row
// that described the node.
type Node struct {
	Name   string `json:"name" yaml:"name"`
	Label  string `json:"label" yaml:"label"`
	Module string `json:"module" yaml:"module"`
	Params string `json:"params,omitempty" yaml:"params,omitempty"`

	// Kwargs holds the parsed Params plus the injected "child" key and,
	// for non-root nodes, the "parent" key.
	Kwargs map[string]string `json:"kwargs,omitempty" yaml:"kwargs,omitempty"`

	Parent   *Node   `json:"-" yaml:"-"`
	Children []*Node `json:"-" yaml:"-"`
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Root walks up the parent chain and returns the tree root.
func (n *Node) Root() *Node {
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// SetParent attaches the node to a new parent, detaching it from the previous
// one first. The last relation processed for a node wins.
func (n *Node) SetParent(p *Node) {
	if n.Parent == p {
		return
	}
	if n.Parent != nil {
		n.Parent.removeChild(n)
	}
	n.Parent = p
	if p != nil {
		p.Children = append(p.Children, n)
	}
}

func (n *Node) removeChild(c *Node) {
	for i, child := range n.Children {
		if child == c {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// Path returns the names from the root down to this node, joined by the
// relation arrow: "A -> B -> D".
func (n *Node) Path() string {
	var names []string
	for cur := n; cur != nil; cur = cur.Parent {
		names = append(names, cur.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSeparator)
}

// Attr resolves a named attribute for rendering. The fixed fields are tried
// first, then Kwargs. Unknown attributes resolve to the empty string.
func (n *Node) Attr(name string) string {
	switch name {
	case "name":
		return n.Name
	case "label":
		return n.Label
	case "module":
		return n.Module
	case "params":
		return n.Params
	default:
		return n.Kwargs[name]
	}
}
