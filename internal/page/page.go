// Package page turns source files into HTML documents ready for the
// table-of-contents pass and runs that pass.
package page

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagetoc/internal/htmldoc"
	"github.com/dgallion1/pagetoc/internal/parser"
	"github.com/dgallion1/pagetoc/internal/toc"
)

// ErrUnsupported is returned for files whose extension has no loader.
var ErrUnsupported = errors.New("unsupported file type")

// SupportedExtensions lists file extensions Load can handle.
var SupportedExtensions = map[string]bool{
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
	".txt":      true,
	".pdf":      true,
	".docx":     true,
}

// IsSupported checks a filename's extension against SupportedExtensions.
func IsSupported(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Options configures loading and the table-of-contents pass.
type Options struct {
	TOC                  toc.Options
	PDFFallbackPdftotext bool
}

func (o Options) containerID() string {
	if o.TOC.ContainerID != "" {
		return o.TOC.ContainerID
	}
	return toc.DefaultContainerID
}

// Load parses filename's contents into an HTML document.
//
// HTML input is taken as authored: if it has no container, the later
// toc pass is a no-op. Pages generated from other formats always get a
// container as the first element of <body>.
func Load(filename string, data []byte, opts Options) (*htmldoc.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".html", ".htm":
		return htmldoc.Parse(bytes.NewReader(data))

	case ".md", ".markdown":
		doc, err := loadMarkdown(filename, data)
		if err != nil {
			return nil, err
		}
		doc.EnsureContainer(opts.containerID())
		return doc, nil

	case ".txt", ".pdf", ".docx":
		p, err := parser.ForFile(filename, parser.Options{PDFFallbackPdftotext: opts.PDFFallbackPdftotext})
		if err != nil {
			return nil, err
		}
		tree, err := p.Parse(data, filename)
		if err != nil {
			return nil, err
		}
		doc, err := renderTree(tree)
		if err != nil {
			return nil, err
		}
		doc.EnsureContainer(opts.containerID())
		return doc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
}

// Output is a page after the toc pass.
type Output struct {
	HTML   []byte
	Result toc.Result
}

// Sections returns the outline, or an empty slice when nothing was rendered.
func (o *Output) Sections() []*toc.Section {
	if o.Result.Tree == nil {
		return []*toc.Section{}
	}
	return o.Result.Tree.Sections()
}

// Render loads filename, builds its table of contents and serialises the
// result.
func Render(filename string, data []byte, opts Options) (*Output, error) {
	doc, err := Load(filename, data, opts)
	if err != nil {
		return nil, err
	}

	res := toc.Build(doc, opts.TOC)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return &Output{HTML: buf.Bytes(), Result: res}, nil
}
