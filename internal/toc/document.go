// Package toc builds an in-page table of contents. It scans the section
// headings of a document, rebuilds their nesting as a tree and renders the
// tree as nested ordered lists of fragment links.
package toc

import "golang.org/x/net/html"

const (
	// DefaultContainerID is the id of the element that receives the list.
	DefaultContainerID = "toc"
	// DefaultIDPrefix prefixes synthesized heading ids ("s-0", "s-1", ...).
	DefaultIDPrefix = "s-"
)

// Heading is one scanned section heading. SetID writes through to the
// source element.
type Heading interface {
	// Level is the HTML heading rank: 2 for h2, 3 for h3.
	Level() int
	ID() string
	SetID(id string)
	Text() string
}

// Container is the element the rendered list is attached to.
type Container interface {
	AppendChild(n *html.Node)
	// RemoveChildren drops everything previously attached.
	RemoveChildren()
}

// Document is the query capability Build needs from a page.
type Document interface {
	// Headings returns the recognized headings (h2, h3) in document order.
	Headings() []Heading
	// Container looks up an element by id.
	Container(id string) (Container, bool)
}
