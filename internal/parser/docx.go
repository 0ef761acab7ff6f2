package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgallion1/pagetoc/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Paragraphs styled "Heading N" open
// sections; everything else is body text.
type DOCXParser struct{}

func (p *DOCXParser) Parse(data []byte, filename string) (*doctree.DocTree, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	stack := newSectionStack()
	title := titleFromFilename(filename)

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}

		switch style := paragraphStyle(para); {
		case strings.EqualFold(style, "Title"):
			title = text
		case headingRank(style) > 0:
			stack.open(text, headingRank(style))
		default:
			stack.text(text)
		}
	}

	return stack.tree(title), nil
}

func paragraphStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// headingRank maps "Heading2" or "heading 2" to 2; other styles map to 0.
func headingRank(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if !strings.HasPrefix(s, "heading") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "heading"))
	if err != nil || n < 1 || n > 9 {
		return 0
	}
	return n
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
