package chunker

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// maxSplitLevel is the deepest heading level that starts a new section.
// Deeper headings stay inside the body of their parent section.
const maxSplitLevel = 3

// Section is a header-delimited slice of a markdown document.
type Section struct {
	// Header maps heading labels ("Header 1".."Header 3") to the heading text
	// in effect for this section, including parent headings.
	Header map[string]string `json:"header"`

	// Body is the section text with its heading line retained.
	Body string `json:"page_content"`
}

// SplitByHeaders splits markdown into sections at heading levels 1-3.
// Headings are kept in the section body. Content before the first heading
// becomes a section with empty header metadata.
func SplitByHeaders(source []byte) []Section {
	type headingMark struct {
		level int
		title string
		start int
	}

	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var marks []headingMark
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > maxSplitLevel {
			continue
		}

		lines := h.Lines()
		if lines.Len() == 0 {
			continue
		}

		// The segment starts at the heading text; back up to the start of
		// the line so the "#" markers are kept in the body.
		start := lines.At(0).Start
		for start > 0 && source[start-1] != '\n' {
			start--
		}

		marks = append(marks, headingMark{
			level: h.Level,
			title: headingText(h, source),
			start: start,
		})
	}

	var sections []Section

	// Preamble before the first heading, if any.
	end := len(source)
	if len(marks) > 0 {
		end = marks[0].start
	}
	if body := strings.TrimSpace(string(source[:end])); body != "" {
		sections = append(sections, Section{Header: map[string]string{}, Body: body})
	}

	// Active heading hierarchy, index 0 = level 1.
	active := [maxSplitLevel]string{}

	for i, mark := range marks {
		active[mark.level-1] = mark.title
		for l := mark.level; l < maxSplitLevel; l++ {
			active[l] = ""
		}

		end := len(source)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}

		header := make(map[string]string)
		for l, title := range active {
			if title != "" {
				header[fmt.Sprintf("Header %d", l+1)] = title
			}
		}

		body := strings.TrimSpace(string(source[mark.start:end]))
		if body == "" {
			continue
		}

		sections = append(sections, Section{Header: header, Body: body})
	}

	return sections
}

func headingText(h *ast.Heading, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
