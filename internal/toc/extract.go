package toc

import "strconv"

// Extract rebuilds the heading hierarchy from a flat, leveled sequence.
//
// Headings without an id get prefix+scanIndex written back to them. The
// nesting depth of a heading is its rank minus one (h2 is depth 1, h3 is
// depth 2); skipped depths are filled with empty placeholder nodes.
func Extract(headings []Heading, prefix string) *Tree {
	t := newTree()

	// active[d] is the node whose child list is open at depth d.
	active := []int{RootIndex}

	for i, h := range headings {
		if h.ID() == "" {
			h.SetID(prefix + strconv.Itoa(i))
		}

		depth := h.Level() - 1
		if depth < 1 {
			depth = 1
		}

		for len(active) < depth {
			active = append(active, t.add(active[len(active)-1], "", ""))
		}
		active = active[:depth]

		idx := t.add(active[depth-1], h.ID(), h.Text())
		active = append(active, idx)
	}

	return t
}
