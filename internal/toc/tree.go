package toc

// RootIndex is the arena slot of the implicit document-title node.
const RootIndex = 0

// Node is one entry of the outline. Placeholders that fill a skipped
// level have an empty ID and Text.
type Node struct {
	ID       string
	Text     string
	Children []int // arena indices, document order
}

// Tree is an outline stored as an arena of nodes. Index 0 is the root,
// which has children only.
type Tree struct {
	nodes []Node
}

func newTree() *Tree {
	return &Tree{nodes: []Node{{}}}
}

// add appends a node under parent and returns its index.
func (t *Tree) add(parent int, id, text string) int {
	t.nodes = append(t.nodes, Node{ID: id, Text: text})
	idx := len(t.nodes) - 1
	t.nodes[parent].Children = append(t.nodes[parent].Children, idx)
	return idx
}

// Node returns the node stored at index i.
func (t *Tree) Node(i int) Node {
	return t.nodes[i]
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return t.nodes[RootIndex]
}

// Len is the number of nodes below the root, placeholders included.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Section is the nested, JSON-friendly form of a tree node.
type Section struct {
	ID       string     `json:"id"`
	Text     string     `json:"text"`
	Children []*Section `json:"children"`
}

// Sections returns the root's children as nested sections. Children is
// never nil so that leaves encode as [].
func (t *Tree) Sections() []*Section {
	return t.sections(RootIndex)
}

func (t *Tree) sections(i int) []*Section {
	out := make([]*Section, 0, len(t.nodes[i].Children))
	for _, c := range t.nodes[i].Children {
		n := t.nodes[c]
		out = append(out, &Section{
			ID:       n.ID,
			Text:     n.Text,
			Children: t.sections(c),
		})
	}
	return out
}
