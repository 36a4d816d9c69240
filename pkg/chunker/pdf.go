package chunker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Converter turns a source document into a markdown string.
type Converter interface {
	ToMarkdown(path string) (string, error)
}

// PDFConverter extracts text from a PDF and renders it as markdown.
// Heading levels are inferred from font size relative to the body text:
// there is no styling information in the extracted text beyond fonts, so
// lines set notably larger than the page median become headings.
type PDFConverter struct{}

// NewPDFConverter creates a PDF-to-markdown converter.
func NewPDFConverter() *PDFConverter {
	return &PDFConverter{}
}

// line is a horizontal run of text fragments sharing a baseline.
type line struct {
	y    float64
	size float64
	text string
}

// ToMarkdown converts the PDF at path to a markdown string, one line per
// visual text row, with larger-font rows promoted to headings.
func (c *PDFConverter) ToMarkdown(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %q: %w", path, err)
	}
	defer f.Close()

	var out strings.Builder

	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		lines := assembleLines(page.Content().Text)
		if len(lines) == 0 {
			continue
		}

		body := medianFontSize(lines)
		for _, l := range lines {
			text := strings.TrimSpace(l.text)
			if text == "" {
				continue
			}

			if prefix := headingPrefix(l.size, body); prefix != "" {
				out.WriteString("\n")
				out.WriteString(prefix)
				out.WriteString(" ")
				out.WriteString(text)
				out.WriteString("\n\n")
			} else {
				out.WriteString(text)
				out.WriteString("\n")
			}
		}
		out.WriteString("\n")
	}

	return out.String(), nil
}

// assembleLines groups text fragments into baseline rows, top to bottom.
func assembleLines(texts []pdf.Text) []line {
	if len(texts) == 0 {
		return nil
	}

	// PDF coordinates grow upward; sort top-down, then left-to-right.
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	const baselineTolerance = 2.0

	var lines []line
	current := line{y: sorted[0].Y, size: sorted[0].FontSize}
	var fragments []string

	flush := func() {
		current.text = strings.Join(fragments, "")
		lines = append(lines, current)
		fragments = nil
	}

	for _, t := range sorted {
		if current.y-t.Y > baselineTolerance {
			flush()
			current = line{y: t.Y, size: t.FontSize}
		}
		if t.FontSize > current.size {
			current.size = t.FontSize
		}
		fragments = append(fragments, t.S)
	}
	flush()

	return lines
}

func medianFontSize(lines []line) float64 {
	sizes := make([]float64, len(lines))
	for i, l := range lines {
		sizes[i] = l.size
	}
	sort.Float64s(sizes)
	return sizes[len(sizes)/2]
}

// headingPrefix maps a line's font size to a markdown heading marker.
// Rows close to the body size return "".
func headingPrefix(size, body float64) string {
	if body <= 0 {
		return ""
	}
	ratio := size / body
	switch {
	case ratio >= 1.6:
		return "#"
	case ratio >= 1.35:
		return "##"
	case ratio >= 1.15:
		return "###"
	default:
		return ""
	}
}

var _ Converter = (*PDFConverter)(nil)
