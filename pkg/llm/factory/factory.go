package factory

import (
	"fmt"
	"time"

	"homework-ai-be/pkg/llm"
	"homework-ai-be/pkg/llm/groq"
	"homework-ai-be/pkg/llm/huggingface"
	"homework-ai-be/pkg/llm/ollama"
)

// Config collects everything a provider constructor might need. Unused
// fields are ignored by providers that do not need them.
type Config struct {
	Provider      string // "groq", "ollama", "huggingface"
	Model         string
	APIKey        string
	BaseURL       string
	OllamaBaseURL string
	Timeout       time.Duration
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	switch cfg.Provider {
	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("groq provider requires an API key")
		}
		return groq.NewGroqProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, timeout), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model, timeout), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
