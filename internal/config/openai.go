package config

import (
	"os"
	"sync"
)

type OpenAIConfig struct {
	APIKey string
}

var (
	openAIConfig *OpenAIConfig
	openAIOnce   sync.Once
)

func LoadOpenAIConfig() *OpenAIConfig {
	openAIOnce.Do(func() {
		openAIConfig = &OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
		}
	})
	return openAIConfig
}
