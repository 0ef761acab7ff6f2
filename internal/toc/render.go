package toc

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render returns the whole tree as an <ol>. An empty tree yields an empty
// <ol>, never nil.
func Render(t *Tree) *html.Node {
	return t.RenderList(RootIndex)
}

// RenderList renders the children of node i as an <ol> of items.
func (t *Tree) RenderList(i int) *html.Node {
	ol := element(atom.Ol)
	for _, c := range t.nodes[i].Children {
		ol.AppendChild(t.renderItem(c))
	}
	return ol
}

// renderItem emits <li><a href="#id" title="text">text</a><ol>...</ol></li>.
// The nested list is present even for leaves.
func (t *Tree) renderItem(i int) *html.Node {
	n := t.nodes[i]

	a := element(atom.A)
	a.Attr = []html.Attribute{
		{Key: "title", Val: n.Text},
		{Key: "href", Val: "#" + n.ID},
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})

	li := element(atom.Li)
	li.AppendChild(a)
	li.AppendChild(t.RenderList(i))
	return li
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
