package doctree

import "strings"

// NodeID indexes a node within its owning Tree. Nodes live in a flat arena
// and reference each other by index, so parent back-references cannot form
// ownership cycles and the tree owns every node.
type NodeID int

// Root is the synthetic top node present in every Tree. It carries no
// content and sits at indentation -1 so any real line nests under it.
const Root NodeID = 0

// Node is one structural unit of a document.
type Node struct {
	Content       string // raw line(s), indentation preserved
	Indent        int    // indentation depth at time of insertion
	Marker        string // leading list/numbering marker, if any
	SectionHeader bool
	Table         bool
	Parent        NodeID
	Children      []NodeID
}

// Tree is a document structure tree backed by a node arena.
type Tree struct {
	nodes []Node
}

// New returns a tree containing only the root node.
func New() *Tree {
	return &Tree{nodes: []Node{{Parent: -1, Indent: -1}}}
}

// Len reports the number of nodes, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node for id. The pointer stays valid until the next Add.
func (t *Tree) Node(id NodeID) *Node { return &t.nodes[id] }

// Add appends n as the last child of parent and returns its id. Children of
// a node always have indentation >= the node's own.
func (t *Tree) Add(parent NodeID, n Node) NodeID {
	n.Parent = parent
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// ContextPath returns the trimmed texts of the ancestors of id that are
// flagged as section headers, ordered root first.
func (t *Tree) ContextPath(id NodeID) []string {
	var path []string
	for cur := t.nodes[id].Parent; cur > Root; cur = t.nodes[cur].Parent {
		n := t.nodes[cur]
		if n.SectionHeader {
			if txt := strings.TrimSpace(n.Content); txt != "" {
				path = append(path, txt)
			}
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Walk visits every node except the root depth-first in document order.
func (t *Tree) Walk(fn func(id NodeID, n *Node)) {
	var visit func(NodeID)
	visit = func(id NodeID) {
		if id != Root {
			fn(id, &t.nodes[id])
		}
		for _, c := range t.nodes[id].Children {
			visit(c)
		}
	}
	visit(Root)
}

// SubtreeText returns the content of id and all its descendants, in document
// order.
func (t *Tree) SubtreeText(id NodeID) string {
	var b strings.Builder
	var visit func(NodeID)
	visit = func(cur NodeID) {
		if cur != Root {
			if c := t.nodes[cur].Content; strings.TrimSpace(c) != "" {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
				b.WriteString(c)
			}
		}
		for _, child := range t.nodes[cur].Children {
			visit(child)
		}
	}
	visit(id)
	return b.String()
}
