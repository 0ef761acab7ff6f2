package page

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagetoc/internal/doctree"
	"github.com/dgallion1/pagetoc/internal/htmldoc"
)

// Section depth 1 renders as h2, depth 2 as h3; anything deeper is h4 and
// stays out of the outline.
var treeShell = template.Must(template.New("tree").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<article>
{{range .Sections}}{{template "section" .}}{{end}}</article>
</body>
</html>
{{define "section"}}<section>
{{if .Title}}{{if eq .Rank 2}}<h2>{{.Title}}</h2>{{else if eq .Rank 3}}<h3>{{.Title}}</h3>{{else}}<h4>{{.Title}}</h4>{{end}}
{{end}}{{range .Paragraphs}}<p>{{.}}</p>
{{end}}{{range .Children}}{{template "section" .}}{{end}}</section>
{{end}}`))

type sectionView struct {
	Title      string
	Rank       int
	Paragraphs []string
	Children   []sectionView
}

func renderTree(tree *doctree.DocTree) (*htmldoc.Document, error) {
	view := struct {
		Title    string
		Sections []sectionView
	}{
		Title:    tree.Title,
		Sections: sectionViews(tree.Children, 2),
	}

	var out bytes.Buffer
	if err := treeShell.Execute(&out, view); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return htmldoc.Parse(&out)
}

func sectionViews(nodes []*doctree.DocNode, rank int) []sectionView {
	views := make([]sectionView, 0, len(nodes))
	for _, n := range nodes {
		views = append(views, sectionView{
			Title:      n.Title,
			Rank:       rank,
			Paragraphs: n.Paragraphs(),
			Children:   sectionViews(n.Children, rank+1),
		})
	}
	return views
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
