package chunker_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/docfold/docqa/pkg/chunker"
	testutils "github.com/docfold/docqa/pkg/utils/test"
)

var _ = Describe("Chunker", func() {
	var (
		converter *testutils.MockConverter
		completer *testutils.MockCompleter
		ck        *chunker.Chunker
		ctx       context.Context
	)

	BeforeEach(func() {
		converter = testutils.NewMockConverter("# One\n\nalpha\n\n# Two\n\nbeta")
		completer = testutils.NewMockCompleter()
		logger := zap.NewNop()
		ck = chunker.New(converter, completer, logger)
		ctx = context.Background()
	})

	Describe("Sections", func() {
		It("converts the document and splits it into ordered sections", func() {
			sections, err := ck.Sections("/tmp/report.pdf")
			Expect(err).NotTo(HaveOccurred())
			Expect(sections).To(HaveLen(2))
			Expect(sections[0].Header["Header 1"]).To(Equal("One"))
			Expect(sections[1].Header["Header 1"]).To(Equal("Two"))
		})

		It("propagates conversion failures", func() {
			converter.Fail = true
			_, err := ck.Sections("/tmp/report.pdf")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("converting document"))
		})
	})

	Describe("Summarize", func() {
		It("returns one summary per body, order preserving", func() {
			summaries, err := ck.Summarize(ctx, []string{"alpha", "beta", "gamma"})
			Expect(err).NotTo(HaveOccurred())
			Expect(summaries).To(HaveLen(3))
			Expect(summaries[0]).To(ContainSubstring("alpha"))
			Expect(summaries[1]).To(ContainSubstring("beta"))
			Expect(summaries[2]).To(ContainSubstring("gamma"))
		})

		It("makes one model call per body", func() {
			_, err := ck.Summarize(ctx, []string{"a", "b"})
			Expect(err).NotTo(HaveOccurred())
			Expect(completer.Prompts).To(HaveLen(2))
		})

		It("aborts the whole batch on a mid-batch failure", func() {
			completer.FailOn = "beta"
			summaries, err := ck.Summarize(ctx, []string{"alpha", "beta", "gamma"})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("section 2 of 3"))
			Expect(summaries).To(BeNil())
		})

		It("handles an empty input", func() {
			summaries, err := ck.Summarize(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(summaries).To(BeEmpty())
		})
	})
})
