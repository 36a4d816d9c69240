package chunker_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/docfold/docqa/pkg/chunker"
)

func TestChunker(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Chunker Suite")
}

var _ = Describe("SplitByHeaders", func() {
	It("splits a document at top-level headings", func() {
		source := "# Intro\n\nHello.\n\n# Methods\n\nDetails."

		sections := chunker.SplitByHeaders([]byte(source))

		Expect(sections).To(HaveLen(2))
		Expect(sections[0].Header).To(Equal(map[string]string{"Header 1": "Intro"}))
		Expect(sections[1].Header).To(Equal(map[string]string{"Header 1": "Methods"}))
	})

	It("keeps heading lines in the section body", func() {
		source := "# Intro\n\nHello."

		sections := chunker.SplitByHeaders([]byte(source))

		Expect(sections).To(HaveLen(1))
		Expect(sections[0].Body).To(HavePrefix("# Intro"))
		Expect(sections[0].Body).To(ContainSubstring("Hello."))
	})

	It("carries parent headings into nested section metadata", func() {
		source := "# Report\n\nTop.\n\n## Results\n\nNumbers.\n\n### Detail\n\nFine print."

		sections := chunker.SplitByHeaders([]byte(source))

		Expect(sections).To(HaveLen(3))
		Expect(sections[2].Header).To(Equal(map[string]string{
			"Header 1": "Report",
			"Header 2": "Results",
			"Header 3": "Detail",
		}))
	})

	It("clears deeper headings when a new higher-level heading starts", func() {
		source := "# A\n\n## B\n\nbody\n\n# C\n\nbody"

		sections := chunker.SplitByHeaders([]byte(source))

		last := sections[len(sections)-1]
		Expect(last.Header).To(Equal(map[string]string{"Header 1": "C"}))
	})

	It("does not split on headings deeper than level 3", func() {
		source := "# Top\n\n#### Deep\n\nStill same section."

		sections := chunker.SplitByHeaders([]byte(source))

		Expect(sections).To(HaveLen(1))
		Expect(sections[0].Body).To(ContainSubstring("#### Deep"))
	})

	It("emits content before the first heading with empty metadata", func() {
		source := "Preamble text.\n\n# First\n\nBody."

		sections := chunker.SplitByHeaders([]byte(source))

		Expect(sections).To(HaveLen(2))
		Expect(sections[0].Header).To(BeEmpty())
		Expect(sections[0].Body).To(Equal("Preamble text."))
	})

	It("preserves document order", func() {
		source := "# One\n\na\n\n# Two\n\nb\n\n# Three\n\nc"

		sections := chunker.SplitByHeaders([]byte(source))

		Expect(sections).To(HaveLen(3))
		Expect(sections[0].Header["Header 1"]).To(Equal("One"))
		Expect(sections[1].Header["Header 1"]).To(Equal("Two"))
		Expect(sections[2].Header["Header 1"]).To(Equal("Three"))
	})

	It("returns nothing for an empty document", func() {
		Expect(chunker.SplitByHeaders(nil)).To(BeEmpty())
	})
})
