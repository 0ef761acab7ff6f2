package toc

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

type fakeHeading struct {
	level int
	id    string
	text  string
}

func (h *fakeHeading) Level() int      { return h.level }
func (h *fakeHeading) ID() string      { return h.id }
func (h *fakeHeading) SetID(id string) { h.id = id }
func (h *fakeHeading) Text() string    { return h.text }

type fakeContainer struct {
	children []*html.Node
}

func (c *fakeContainer) AppendChild(n *html.Node) { c.children = append(c.children, n) }
func (c *fakeContainer) RemoveChildren()          { c.children = nil }

type fakeDoc struct {
	headings  []*fakeHeading
	container *fakeContainer
	scanned   int
}

func (d *fakeDoc) Headings() []Heading {
	d.scanned++
	out := make([]Heading, len(d.headings))
	for i, h := range d.headings {
		out[i] = h
	}
	return out
}

func (d *fakeDoc) Container(id string) (Container, bool) {
	if d.container == nil || id != DefaultContainerID {
		return nil, false
	}
	return d.container, true
}

func headings(hs ...*fakeHeading) []Heading {
	out := make([]Heading, len(hs))
	for i, h := range hs {
		out[i] = h
	}
	return out
}

func renderString(t *testing.T, n *html.Node) string {
	t.Helper()
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func TestExtract_EndToEnd(t *testing.T) {
	tree := Extract(headings(
		&fakeHeading{level: 2, text: "Intro"},
		&fakeHeading{level: 3, text: "Background"},
		&fakeHeading{level: 2, text: "Methods"},
	), DefaultIDPrefix)

	got := tree.Sections()
	if len(got) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(got))
	}

	intro := got[0]
	if intro.ID != "s-0" || intro.Text != "Intro" {
		t.Errorf("expected s-0/Intro, got %s/%s", intro.ID, intro.Text)
	}
	if len(intro.Children) != 1 {
		t.Fatalf("expected 1 child under Intro, got %d", len(intro.Children))
	}
	bg := intro.Children[0]
	if bg.ID != "s-1" || bg.Text != "Background" || len(bg.Children) != 0 {
		t.Errorf("unexpected Background node: %+v", bg)
	}

	methods := got[1]
	if methods.ID != "s-2" || methods.Text != "Methods" || len(methods.Children) != 0 {
		t.Errorf("unexpected Methods node: %+v", methods)
	}
}

func TestExtract_Empty(t *testing.T) {
	tree := Extract(nil, DefaultIDPrefix)
	if tree.Len() != 0 {
		t.Errorf("expected no nodes, got %d", tree.Len())
	}
	if len(tree.Root().Children) != 0 {
		t.Errorf("expected empty root, got %v", tree.Root().Children)
	}
	if got := renderString(t, Render(tree)); got != "<ol></ol>" {
		t.Errorf("expected empty list, got %q", got)
	}
}

func TestExtract_KeepsExistingIDs(t *testing.T) {
	hs := []*fakeHeading{
		{level: 2, id: "overview", text: "Overview"},
		{level: 3, id: "details", text: "Details"},
	}
	tree := Extract(headings(hs[0], hs[1]), DefaultIDPrefix)

	if hs[0].id != "overview" || hs[1].id != "details" {
		t.Errorf("ids were altered: %q %q", hs[0].id, hs[1].id)
	}
	s := tree.Sections()
	if s[0].ID != "overview" || s[0].Children[0].ID != "details" {
		t.Errorf("tree ids do not match source: %+v", s)
	}
}

func TestExtract_SynthesizedIDsUseScanIndex(t *testing.T) {
	hs := []*fakeHeading{
		{level: 2, text: "A"},
		{level: 2, id: "b", text: "B"},
		{level: 3, text: "C"},
		{level: 2, text: "D"},
	}
	Extract(headings(hs[0], hs[1], hs[2], hs[3]), DefaultIDPrefix)

	want := []string{"s-0", "b", "s-2", "s-3"}
	seen := map[string]bool{}
	for i, w := range want {
		if hs[i].id != w {
			t.Errorf("heading %d: expected id %q, got %q", i, w, hs[i].id)
		}
		if seen[hs[i].id] {
			t.Errorf("duplicate id %q", hs[i].id)
		}
		seen[hs[i].id] = true
	}
}

func TestExtract_LargeScanIndexStaysDistinct(t *testing.T) {
	var hs []Heading
	raw := make([]*fakeHeading, 0, 1200)
	for i := 0; i < 1200; i++ {
		h := &fakeHeading{level: 2 + i%2, text: "x"}
		// Sparse pre-existing ids leave gaps in the synthesized sequence.
		if i%7 == 0 {
			h.id = "keep-" + string(rune('a'+i%26))
		}
		raw = append(raw, h)
		hs = append(hs, h)
	}
	Extract(hs, DefaultIDPrefix)

	seen := map[string]int{}
	for i, h := range raw {
		if i%7 == 0 {
			continue
		}
		if prev, ok := seen[h.id]; ok {
			t.Fatalf("headings %d and %d share id %q", prev, i, h.id)
		}
		seen[h.id] = i
	}
	if raw[1199].id != "s-1199" {
		t.Errorf("expected s-1199, got %q", raw[1199].id)
	}
}

func TestExtract_SiblingsKeepDocumentOrder(t *testing.T) {
	tree := Extract(headings(
		&fakeHeading{level: 2, text: "Parent"},
		&fakeHeading{level: 3, text: "First"},
		&fakeHeading{level: 3, text: "Second"},
		&fakeHeading{level: 3, text: "Third"},
	), DefaultIDPrefix)

	s := tree.Sections()
	if len(s) != 1 {
		t.Fatalf("expected 1 top-level section, got %d", len(s))
	}
	var texts []string
	for _, c := range s[0].Children {
		texts = append(texts, c.Text)
	}
	if strings.Join(texts, ",") != "First,Second,Third" {
		t.Errorf("unexpected sibling order: %v", texts)
	}
}

func TestExtract_BackfillsSkippedLevel(t *testing.T) {
	tree := Extract(headings(
		&fakeHeading{level: 3, text: "Orphan"},
		&fakeHeading{level: 2, text: "Next"},
	), DefaultIDPrefix)

	s := tree.Sections()
	if len(s) != 2 {
		t.Fatalf("expected placeholder plus Next at top level, got %d", len(s))
	}
	ph := s[0]
	if ph.ID != "" || ph.Text != "" {
		t.Errorf("expected empty placeholder, got %+v", ph)
	}
	if len(ph.Children) != 1 || ph.Children[0].Text != "Orphan" {
		t.Fatalf("expected Orphan under placeholder, got %+v", ph.Children)
	}
	if s[1].Text != "Next" {
		t.Errorf("expected Next, got %q", s[1].Text)
	}
	if tree.Len() != 3 {
		t.Errorf("expected exactly one placeholder (3 nodes), got %d", tree.Len())
	}
}

func TestExtract_ShallowerHeadingClosesScope(t *testing.T) {
	tree := Extract(headings(
		&fakeHeading{level: 2, text: "A"},
		&fakeHeading{level: 3, text: "A.1"},
		&fakeHeading{level: 2, text: "B"},
		&fakeHeading{level: 3, text: "B.1"},
	), DefaultIDPrefix)

	s := tree.Sections()
	if len(s) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(s))
	}
	if len(s[0].Children) != 1 || s[0].Children[0].Text != "A.1" {
		t.Errorf("unexpected children of A: %+v", s[0].Children)
	}
	if len(s[1].Children) != 1 || s[1].Children[0].Text != "B.1" {
		t.Errorf("unexpected children of B: %+v", s[1].Children)
	}
}

func TestRender_Markup(t *testing.T) {
	tree := Extract(headings(
		&fakeHeading{level: 2, text: "Intro"},
		&fakeHeading{level: 3, text: "Background"},
		&fakeHeading{level: 2, text: "Methods"},
	), DefaultIDPrefix)

	got := renderString(t, Render(tree))
	want := `<ol>` +
		`<li><a title="Intro" href="#s-0">Intro</a><ol>` +
		`<li><a title="Background" href="#s-1">Background</a><ol></ol></li>` +
		`</ol></li>` +
		`<li><a title="Methods" href="#s-2">Methods</a><ol></ol></li>` +
		`</ol>`
	if got != want {
		t.Errorf("unexpected markup:\n got: %s\nwant: %s", got, want)
	}
}

func TestRender_EscapesText(t *testing.T) {
	tree := Extract(headings(&fakeHeading{level: 2, id: "q", text: `Fish & "Chips"`}), DefaultIDPrefix)
	got := renderString(t, Render(tree))
	if !strings.Contains(got, `title="Fish &amp; &#34;Chips&#34;"`) {
		t.Errorf("title not escaped: %s", got)
	}
	if !strings.Contains(got, `>Fish &amp; &#34;Chips&#34;</a>`) {
		t.Errorf("link text not escaped: %s", got)
	}
}

func TestBuild_NoContainerIsNoop(t *testing.T) {
	h := &fakeHeading{level: 2, text: "Intro"}
	doc := &fakeDoc{headings: []*fakeHeading{h}}

	res := Build(doc, Options{})
	if res.Rendered || res.Tree != nil {
		t.Errorf("expected no-op result, got %+v", res)
	}
	if doc.scanned != 0 {
		t.Errorf("expected no heading scan, got %d", doc.scanned)
	}
	if h.id != "" {
		t.Errorf("expected heading untouched, got id %q", h.id)
	}
}

func TestBuild_AppendsList(t *testing.T) {
	doc := &fakeDoc{
		headings:  []*fakeHeading{{level: 2, text: "Intro"}},
		container: &fakeContainer{},
	}

	res := Build(doc, Options{})
	if !res.Rendered {
		t.Fatal("expected rendered result")
	}
	if len(doc.container.children) != 1 {
		t.Fatalf("expected 1 appended list, got %d", len(doc.container.children))
	}
	if doc.container.children[0].Data != "ol" {
		t.Errorf("expected <ol>, got <%s>", doc.container.children[0].Data)
	}
}

func TestBuild_RepeatedCallsAppend(t *testing.T) {
	doc := &fakeDoc{
		headings:  []*fakeHeading{{level: 2, text: "Intro"}},
		container: &fakeContainer{},
	}

	Build(doc, Options{})
	Build(doc, Options{})
	if len(doc.container.children) != 2 {
		t.Errorf("expected 2 lists after two runs, got %d", len(doc.container.children))
	}
}

func TestBuild_ReplaceClearsPrevious(t *testing.T) {
	doc := &fakeDoc{
		headings:  []*fakeHeading{{level: 2, text: "Intro"}},
		container: &fakeContainer{},
	}

	Build(doc, Options{})
	Build(doc, Options{Replace: true})
	if len(doc.container.children) != 1 {
		t.Errorf("expected 1 list with Replace, got %d", len(doc.container.children))
	}
}

func TestBuild_CustomContainerMissing(t *testing.T) {
	doc := &fakeDoc{container: &fakeContainer{}}
	res := Build(doc, Options{ContainerID: "sidebar"})
	if res.Rendered {
		t.Error("expected no render for unknown container id")
	}
}
