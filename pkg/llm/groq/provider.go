package groq

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"homework-ai-be/pkg/llm"

	openai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider talks to the Groq chat-completions API. Groq exposes an
// OpenAI-compatible surface, so the go-openai client is pointed at the Groq
// base URL instead of hand-rolling the wire format.
type GroqProvider struct {
	client *openai.Client
	model  string
}

// Ensure GroqProvider implements LLMProvider
var _ llm.LLMProvider = &GroqProvider{}

func NewGroqProvider(apiKey, baseURL, model string, timeout time.Duration) *GroqProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = baseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: timeout,
	}

	return &GroqProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (p *GroqProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Model:       p.model,
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       options.Model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
		MaxTokens:   options.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("groq chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty choices from groq api")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *GroqProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
