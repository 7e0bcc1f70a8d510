package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/recruitiq/recruit-match/internal/config"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const openAIEmbeddingModel = "text-embedding-3-small"

// OpenAIService produces embeddings through the OpenAI embeddings endpoint.
// OpenAI embedding vectors come back unit-normalized.
type OpenAIService struct {
	APIKey     string
	BaseURL    string
	client     *resty.Client
	dim        int
	normalized bool
	logger     *zap.Logger
}

func NewOpenAIService(logger *zap.Logger) *OpenAIService {
	embeddingConfig := config.LoadEmbeddingConfig()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIService{
		APIKey:     config.LoadOpenAIConfig().APIKey,
		BaseURL:    "https://api.openai.com/v1",
		client:     resty.New(),
		dim:        embeddingConfig.Dim,
		normalized: embeddingConfig.Normalized,
		logger:     logger,
	}
}

func (s *OpenAIService) Dim() int {
	return s.dim
}

func (s *OpenAIService) Normalized() bool {
	return s.normalized
}

func (s *OpenAIService) Embed(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model":      openAIEmbeddingModel,
			"input":      trimmed,
			"dimensions": s.dim,
		}).
		Post(s.BaseURL + "/embeddings")
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if resp.IsError() {
		msg := gjson.Get(resp.String(), "error.message").String()
		return nil, fmt.Errorf("embedding request returned %d: %s", resp.StatusCode(), msg)
	}

	values := gjson.Get(resp.String(), "data.0.embedding").Array()
	if len(values) != s.dim {
		return nil, fmt.Errorf("embedding has %d values, expected %d", len(values), s.dim)
	}

	vec := make([]float32, len(values))
	for i, v := range values {
		vec[i] = float32(v.Float())
	}
	return vec, nil
}
