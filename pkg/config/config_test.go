package config_test

import (
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/docfold/docqa/pkg/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var allKeys = []string{
	"GROQ_MODEL",
	"GROQ_API_KEY",
	"GOOGLE_API_KEY",
	"GOOGLE_EMBEDDINGS_MODEL",
	"QDRANT_URL",
	"LISTEN_ADDR",
	"QDRANT_COLLECTION",
	"EMBEDDING_DIMENSIONS",
	"SEARCH_TOP_K",
}

func setRequired() {
	Expect(os.Setenv("GROQ_MODEL", "llama-3.3-70b-versatile")).To(Succeed())
	Expect(os.Setenv("GROQ_API_KEY", "gsk-test")).To(Succeed())
	Expect(os.Setenv("GOOGLE_API_KEY", "aiza-test")).To(Succeed())
	Expect(os.Setenv("GOOGLE_EMBEDDINGS_MODEL", "gemini-embedding-001")).To(Succeed())
	Expect(os.Setenv("QDRANT_URL", "localhost:6334")).To(Succeed())
}

var _ = Describe("Load", func() {
	BeforeEach(func() {
		for _, key := range allKeys {
			Expect(os.Unsetenv(key)).To(Succeed())
		}
	})

	AfterEach(func() {
		for _, key := range allKeys {
			Expect(os.Unsetenv(key)).To(Succeed())
		}
	})

	Context("when all required variables are set", func() {
		BeforeEach(setRequired)

		It("loads the required values", func() {
			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GroqModel).To(Equal("llama-3.3-70b-versatile"))
			Expect(cfg.GroqAPIKey).To(Equal("gsk-test"))
			Expect(cfg.GoogleAPIKey).To(Equal("aiza-test"))
			Expect(cfg.GoogleEmbeddingsModel).To(Equal("gemini-embedding-001"))
			Expect(cfg.QdrantURL).To(Equal("localhost:6334"))
		})

		It("applies defaults for the optional values", func() {
			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.ListenAddr).To(Equal(":8000"))
			Expect(cfg.QdrantCollection).To(Equal("documents"))
			Expect(cfg.EmbeddingDimensions).To(Equal(uint64(3072)))
			Expect(cfg.SearchTopK).To(Equal(3))
		})

		It("lets the environment override the optional values", func() {
			Expect(os.Setenv("LISTEN_ADDR", ":9000")).To(Succeed())
			Expect(os.Setenv("QDRANT_COLLECTION", "reports")).To(Succeed())
			Expect(os.Setenv("EMBEDDING_DIMENSIONS", "768")).To(Succeed())
			Expect(os.Setenv("SEARCH_TOP_K", "5")).To(Succeed())

			cfg, err := config.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.ListenAddr).To(Equal(":9000"))
			Expect(cfg.QdrantCollection).To(Equal("reports"))
			Expect(cfg.EmbeddingDimensions).To(Equal(uint64(768)))
			Expect(cfg.SearchTopK).To(Equal(5))
		})
	})

	Context("when required variables are missing", func() {
		It("fails and names every missing variable", func() {
			_, err := config.Load()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("GROQ_MODEL"))
			Expect(err.Error()).To(ContainSubstring("GROQ_API_KEY"))
			Expect(err.Error()).To(ContainSubstring("GOOGLE_API_KEY"))
			Expect(err.Error()).To(ContainSubstring("GOOGLE_EMBEDDINGS_MODEL"))
			Expect(err.Error()).To(ContainSubstring("QDRANT_URL"))
		})

		It("fails when only one variable is missing", func() {
			setRequired()
			Expect(os.Unsetenv("QDRANT_URL")).To(Succeed())

			_, err := config.Load()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("QDRANT_URL"))
			Expect(err.Error()).NotTo(ContainSubstring("GROQ_MODEL"))
		})
	})
})
