package doctree

import "strings"

// DocTree is the root of a parsed non-HTML document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for untitled text blocks)
	Text     string     // Body text; paragraphs separated by blank lines
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections
}

// Paragraphs splits Text on blank lines, dropping empty pieces.
func (n *DocNode) Paragraphs() []string {
	var out []string
	for _, p := range strings.Split(n.Text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
