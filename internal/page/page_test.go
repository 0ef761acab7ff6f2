package page

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/pagetoc/internal/toc"
)

func TestRender_Markdown(t *testing.T) {
	input := `# Study

Abstract text.

## Intro

### Background

## Methods
`
	out, err := Render("study.md", []byte(input), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Result.Rendered {
		t.Fatal("expected generated page to receive a toc")
	}

	s := out.Sections()
	if len(s) != 2 || s[0].Text != "Intro" || s[1].Text != "Methods" {
		t.Fatalf("unexpected outline: %+v", s)
	}
	if len(s[0].Children) != 1 || s[0].Children[0].ID != "s-1" {
		t.Errorf("expected Background as s-1 under Intro, got %+v", s[0].Children)
	}

	html := string(out.HTML)
	if !strings.Contains(html, "<title>Study</title>") {
		t.Errorf("expected markdown h1 as title, got %s", html)
	}
	if strings.Count(html, "<h1>") != 1 {
		t.Errorf("expected a single h1, got %s", html)
	}
	if !strings.Contains(html, `<nav id="toc"><ol>`) {
		t.Errorf("expected toc nav with list, got %s", html)
	}
	if !strings.Contains(html, `<h2 id="s-0">Intro</h2>`) {
		t.Errorf("expected synthesized id on Intro, got %s", html)
	}
}

func TestRender_MarkdownTitleWithInlineMarkup(t *testing.T) {
	out, err := Render("guide.md", []byte("# The *Quick* `go` [Guide](https://example.com)\n\n## Start\n"), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(out.HTML)
	if !strings.Contains(html, "<title>The Quick go Guide</title>") {
		t.Errorf("expected plain-text title from inline markup, got %s", html)
	}
}

func TestRender_MarkdownWithoutTitleUsesFilename(t *testing.T) {
	out, err := Render("notes/setup.markdown", []byte("## Install\n"), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(out.HTML)
	if !strings.Contains(html, "<title>setup</title>") || !strings.Contains(html, "<h1>setup</h1>") {
		t.Errorf("expected filename title and h1, got %s", html)
	}
}

func TestRender_MarkdownKeepsAuthoredContainer(t *testing.T) {
	input := "## A\n\n<div id=\"toc\"></div>\n\n## B\n"
	out, err := Render("inline.md", []byte(input), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(out.HTML)
	if strings.Contains(html, "<nav") {
		t.Errorf("expected no generated nav, got %s", html)
	}
	if !strings.Contains(html, `<div id="toc"><ol>`) {
		t.Errorf("expected list in authored container, got %s", html)
	}
}

func TestRender_HTMLWithoutContainerIsUntouched(t *testing.T) {
	input := `<html><head></head><body><h2>Intro</h2></body></html>`
	out, err := Render("page.html", []byte(input), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result.Rendered {
		t.Error("expected no toc without a container")
	}
	if string(out.HTML) != input {
		t.Errorf("expected input unchanged, got %s", out.HTML)
	}
	if len(out.Sections()) != 0 {
		t.Errorf("expected empty outline, got %+v", out.Sections())
	}
}

func TestRender_HTMLCustomContainer(t *testing.T) {
	input := `<aside id="sidebar"></aside><h2 id="top">Top</h2>`
	opts := Options{TOC: toc.Options{ContainerID: "sidebar"}}
	out, err := Render("page.htm", []byte(input), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out.HTML), `<aside id="sidebar"><ol><li><a title="Top" href="#top">Top</a><ol></ol></li></ol></aside>`) {
		t.Errorf("unexpected output: %s", out.HTML)
	}
}

func TestRender_Text(t *testing.T) {
	input := "Intro\n=====\n\nHello <world>.\n\nDetail\n------\n\nMore.\n"
	out, err := Render("doc.txt", []byte(input), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(out.HTML)
	for _, want := range []string{
		`<nav id="toc"><ol>`,
		`<h1>doc</h1>`,
		`<h2 id="s-0">Intro</h2>`,
		`<h3 id="s-1">Detail</h3>`,
		`<p>Hello &lt;world&gt;.</p>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %s in %s", want, html)
		}
	}
}

func TestLoad_Unsupported(t *testing.T) {
	_, err := Load("sheet.csv", []byte("a,b"), Options{})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.html", true},
		{"a.HTM", true},
		{"a.md", true},
		{"a.docx", true},
		{"a.pdf", true},
		{"a.txt", true},
		{"a.csv", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsSupported(tt.name); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
