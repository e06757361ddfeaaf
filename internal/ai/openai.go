package ai

import (
	"context"
	"net/http"
	"strings"
)

// OpenAIBackend talks to an OpenAI-compatible local server such as LM Studio
type OpenAIBackend struct {
	cfg    Config
	client *http.Client
}

func NewOpenAIBackend(cfg Config, client *http.Client) *OpenAIBackend {
	if cfg.URL == "" || cfg.URL == defaultOllamaURL {
		cfg.URL = defaultLMStudioURL
	}
	cfg.URL = strings.TrimSuffix(cfg.URL, "/")
	return &OpenAIBackend{cfg: cfg, client: client}
}

type openAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (b *OpenAIBackend) Chat(ctx context.Context, messages []Message) (string, error) {
	reqBody := map[string]interface{}{
		"model":       b.cfg.Model,
		"messages":    messages,
		"temperature": b.cfg.Temperature,
		"max_tokens":  b.cfg.MaxTokens,
		"stream":      false,
	}

	var result openAIResponse
	if err := postJSON(ctx, b.client, "LMStudio", b.cfg.URL+"/v1/chat/completions", reqBody, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
