package page

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/dgallion1/pagetoc/internal/htmldoc"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		ghtml.WithUnsafe(),
	),
)

var markdownShell = template.Must(template.New("markdown").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
</head>
<body>
{{if .AddHeading}}<h1>{{.Title}}</h1>
{{end}}<article>{{.Content}}</article>
</body>
</html>`))

// loadMarkdown renders Markdown into a page. The first level-1 heading, if
// any, becomes the page title; otherwise the filename does and is added as
// an h1.
func loadMarkdown(filename string, src []byte) (*htmldoc.Document, error) {
	root := markdown.Parser().Parse(text.NewReader(src))

	var body bytes.Buffer
	if err := markdown.Renderer().Render(&body, src, root); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	title := firstTitle(root, src)
	view := struct {
		Title      string
		AddHeading bool
		Content    template.HTML
	}{
		Title:      title,
		AddHeading: title == "",
		Content:    template.HTML(body.String()),
	}
	if view.Title == "" {
		view.Title = titleFromFilename(filename)
	}

	var out bytes.Buffer
	if err := markdownShell.Execute(&out, view); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return htmldoc.Parse(&out)
}

func firstTitle(root ast.Node, src []byte) string {
	var title string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = inlineText(h, src)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

// inlineText concatenates the text leaves under n, descending through
// emphasis, links and code spans.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}
