package parser

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/dgallion1/pagetoc/internal/doctree"
)

// TextParser handles plain text. A line followed by a line of "=" opens a
// top-level section, one followed by "-" opens a subsection; all other
// blank-line separated blocks are paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(data []byte, filename string) (*doctree.DocTree, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	stack := newSectionStack()
	var para []string
	endPara := func() {
		if len(para) > 0 {
			stack.text(strings.Join(para, "\n"))
			para = para[:0]
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			endPara()
			continue
		}
		if len(para) == 0 && i+1 < len(lines) {
			if level := underlineLevel(lines[i+1]); level > 0 {
				stack.open(strings.TrimSpace(line), level)
				i++
				continue
			}
		}
		para = append(para, line)
	}
	endPara()

	return stack.tree(titleFromFilename(filename)), nil
}

// underlineLevel reports 1 for "===" and 2 for "---" underlines.
func underlineLevel(line string) int {
	s := strings.TrimSpace(line)
	if len(s) < 3 {
		return 0
	}
	switch {
	case strings.Trim(s, "=") == "":
		return 1
	case strings.Trim(s, "-") == "":
		return 2
	}
	return 0
}
