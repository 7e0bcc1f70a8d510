package config

import (
	"log"
	"os"
	"strconv"
	"sync"
)

type EmbeddingConfig struct {
	Provider string // "gemini" or "openai"
	Dim      int
	// Normalized declares that the configured provider returns unit-length
	// vectors. Leave false if unsure; similarity then falls back to cosine.
	Normalized bool
}

var (
	embeddingConfig *EmbeddingConfig
	embeddingOnce   sync.Once
)

func LoadEmbeddingConfig() *EmbeddingConfig {
	embeddingOnce.Do(func() {
		provider := os.Getenv("EMBEDDING_PROVIDER")
		if provider == "" {
			provider = "openai"
		}

		dim := 1536
		if raw := os.Getenv("EMBEDDING_DIM"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				log.Printf("Warning: invalid EMBEDDING_DIM %q, defaulting to %d", raw, dim)
			} else {
				dim = parsed
			}
		}

		normalized, _ := strconv.ParseBool(os.Getenv("EMBEDDING_NORMALIZED"))

		embeddingConfig = &EmbeddingConfig{
			Provider:   provider,
			Dim:        dim,
			Normalized: normalized,
		}
	})
	return embeddingConfig
}
