// Package htmldoc exposes a parsed HTML page as a toc.Document.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/pagetoc/internal/toc"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document wraps the root of an x/net/html tree.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document. Fragments are completed with the
// implied html/head/body elements.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// New wraps an already parsed tree.
func New(root *html.Node) *Document {
	return &Document{root: root}
}

// Root returns the underlying document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Render serialises the document, including any changes made to it.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Headings returns every h2 and h3 element in document order.
func (d *Document) Headings() []toc.Heading {
	var out []toc.Heading
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.DataAtom); level > 0 {
				out = append(out, &heading{node: n, level: level, text: textContent(n)})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return out
}

// Container returns the first element whose id attribute equals id.
func (d *Document) Container(id string) (toc.Container, bool) {
	n := findByID(d.root, id)
	if n == nil {
		return nil, false
	}
	return &container{node: n}, true
}

// Title returns the text of <title>, or "" when the page has none.
func (d *Document) Title() string {
	if n := findElement(d.root, atom.Title); n != nil {
		return textContent(n)
	}
	return ""
}

// EnsureContainer inserts an empty <nav id="..."> as the first child of
// <body> unless an element with that id already exists. It reports whether
// a container was inserted.
func (d *Document) EnsureContainer(id string) bool {
	if findByID(d.root, id) != nil {
		return false
	}
	body := findElement(d.root, atom.Body)
	if body == nil {
		body = d.root
	}
	nav := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Nav,
		Data:     "nav",
		Attr:     []html.Attribute{{Key: "id", Val: id}},
	}
	body.InsertBefore(nav, body.FirstChild)
	return true
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(buf.String())
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func findByID(n *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// heading is an h2/h3 element. Its text is captured at scan time.
type heading struct {
	node  *html.Node
	level int
	text  string
}

func (h *heading) Level() int      { return h.level }
func (h *heading) ID() string      { return attr(h.node, "id") }
func (h *heading) SetID(id string) { setAttr(h.node, "id", id) }
func (h *heading) Text() string    { return h.text }

type container struct {
	node *html.Node
}

func (c *container) AppendChild(n *html.Node) {
	c.node.AppendChild(n)
}

func (c *container) RemoveChildren() {
	for c.node.FirstChild != nil {
		c.node.RemoveChild(c.node.FirstChild)
	}
}
