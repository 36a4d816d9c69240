package qdrant

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qdrant/go-client/qdrant"
)

func TestQdrant(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Qdrant Suite")
}

var _ = Describe("splitHostPort", func() {
	It("parses a bare host:port target", func() {
		host, port, err := splitHostPort("localhost:6334")
		Expect(err).NotTo(HaveOccurred())
		Expect(host).To(Equal("localhost"))
		Expect(port).To(Equal(6334))
	})

	It("parses a full URL", func() {
		host, port, err := splitHostPort("http://qdrant.internal:6999")
		Expect(err).NotTo(HaveOccurred())
		Expect(host).To(Equal("qdrant.internal"))
		Expect(port).To(Equal(6999))
	})

	It("defaults the port when absent", func() {
		host, port, err := splitHostPort("qdrant.internal")
		Expect(err).NotTo(HaveOccurred())
		Expect(host).To(Equal("qdrant.internal"))
		Expect(port).To(Equal(defaultGRPCPort))
	})

	It("rejects an empty target", func() {
		_, _, err := splitHostPort("")
		Expect(err).To(HaveOccurred())
	})

	It("rejects a non-numeric port", func() {
		_, _, err := splitHostPort("localhost:grpc")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("payloadFromQdrant", func() {
	It("extracts the page content and header fields", func() {
		fields := qdrant.NewValueMap(map[string]any{
			"header": map[string]any{
				"Header 1": "Report",
				"Header 2": "Results",
			},
			"page_content": "## Results\n\nNumbers.",
		})

		payload := payloadFromQdrant(fields)
		Expect(payload.PageContent).To(Equal("## Results\n\nNumbers."))
		Expect(payload.Header).To(Equal(map[string]string{
			"Header 1": "Report",
			"Header 2": "Results",
		}))
	})

	It("tolerates a payload without a header", func() {
		fields := qdrant.NewValueMap(map[string]any{
			"page_content": "Preamble.",
		})

		payload := payloadFromQdrant(fields)
		Expect(payload.PageContent).To(Equal("Preamble."))
		Expect(payload.Header).To(BeEmpty())
	})

	It("tolerates an empty payload", func() {
		payload := payloadFromQdrant(nil)
		Expect(payload.PageContent).To(BeEmpty())
		Expect(payload.Header).To(BeEmpty())
	})
})
