package chunker

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ledongthuc/pdf"
)

func pdfText(s string, x, y, size float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, FontSize: size}
}

var _ = Describe("assembleLines", func() {
	It("joins fragments on the same baseline left to right", func() {
		texts := []pdf.Text{
			pdfText("world", 50, 700, 10),
			pdfText("Hello ", 10, 700, 10),
		}

		lines := assembleLines(texts)
		Expect(lines).To(HaveLen(1))
		Expect(lines[0].text).To(Equal("Hello world"))
	})

	It("orders lines top to bottom", func() {
		texts := []pdf.Text{
			pdfText("bottom", 10, 100, 10),
			pdfText("top", 10, 700, 10),
			pdfText("middle", 10, 400, 10),
		}

		lines := assembleLines(texts)
		Expect(lines).To(HaveLen(3))
		Expect(lines[0].text).To(Equal("top"))
		Expect(lines[1].text).To(Equal("middle"))
		Expect(lines[2].text).To(Equal("bottom"))
	})

	It("treats near-identical baselines as one row", func() {
		texts := []pdf.Text{
			pdfText("a", 10, 700.0, 10),
			pdfText("b", 20, 699.2, 10),
		}

		lines := assembleLines(texts)
		Expect(lines).To(HaveLen(1))
	})

	It("keeps the largest fragment size as the row size", func() {
		texts := []pdf.Text{
			pdfText("1.", 10, 700, 10),
			pdfText(" Introduction", 20, 700, 18),
		}

		lines := assembleLines(texts)
		Expect(lines).To(HaveLen(1))
		Expect(lines[0].size).To(Equal(18.0))
	})

	It("returns nothing for an empty page", func() {
		Expect(assembleLines(nil)).To(BeEmpty())
	})
})

var _ = Describe("headingPrefix", func() {
	It("promotes much larger rows to top-level headings", func() {
		Expect(headingPrefix(20, 10)).To(Equal("#"))
	})

	It("maps intermediate ratios to deeper headings", func() {
		Expect(headingPrefix(14, 10)).To(Equal("##"))
		Expect(headingPrefix(12, 10)).To(Equal("###"))
	})

	It("leaves body-sized rows unmarked", func() {
		Expect(headingPrefix(10, 10)).To(Equal(""))
		Expect(headingPrefix(11, 10)).To(Equal(""))
	})

	It("never promotes when the body size is unknown", func() {
		Expect(headingPrefix(20, 0)).To(Equal(""))
	})
})
