package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagetoc/internal/doctree"
)

// ErrUnsupported is returned by ForFile for extensions no parser handles.
var ErrUnsupported = errors.New("unsupported file extension")

// Parser converts raw document bytes into a DocTree.
type Parser interface {
	Parse(data []byte, filename string) (*doctree.DocTree, error)
}

// Options tunes parser construction.
type Options struct {
	PDFFallbackPdftotext bool
}

// ForFile returns the parser for a filename's extension.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// titleFromFilename strips the directory and extension.
func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sectionStack nests sections by heading level. Level 0 is the document
// itself; text seen before any heading lands there.
type sectionStack struct {
	root    *doctree.DocNode
	entries []stackEntry
	pending strings.Builder
}

type stackEntry struct {
	node  *doctree.DocNode
	level int
}

func newSectionStack() *sectionStack {
	root := &doctree.DocNode{}
	return &sectionStack{
		root:    root,
		entries: []stackEntry{{node: root, level: 0}},
	}
}

// open starts a section at level, closing any open section at the same or
// a deeper level.
func (s *sectionStack) open(title string, level int) {
	s.flush()
	for len(s.entries) > 1 && s.entries[len(s.entries)-1].level >= level {
		s.entries = s.entries[:len(s.entries)-1]
	}
	node := &doctree.DocNode{Title: title}
	parent := s.entries[len(s.entries)-1].node
	parent.Children = append(parent.Children, node)
	s.entries = append(s.entries, stackEntry{node: node, level: level})
}

// text queues a paragraph for the innermost open section.
func (s *sectionStack) text(para string) {
	if para == "" {
		return
	}
	if s.pending.Len() > 0 {
		s.pending.WriteString("\n\n")
	}
	s.pending.WriteString(para)
}

func (s *sectionStack) flush() {
	t := strings.TrimSpace(s.pending.String())
	s.pending.Reset()
	if t == "" {
		return
	}
	top := s.entries[len(s.entries)-1].node
	if top.Text != "" {
		top.Text += "\n\n" + t
	} else {
		top.Text = t
	}
}

// tree closes the stack into a DocTree. Text before the first heading
// becomes an untitled leading section.
func (s *sectionStack) tree(title string) *doctree.DocTree {
	s.flush()
	tree := &doctree.DocTree{Title: title, Children: s.root.Children}
	if s.root.Text != "" {
		lead := &doctree.DocNode{Text: s.root.Text}
		tree.Children = append([]*doctree.DocNode{lead}, tree.Children...)
	}
	return tree
}
