package ai

import (
	"context"
	"net/http"
	"strings"
)

// OllamaBackend talks to the Ollama chat endpoint
type OllamaBackend struct {
	cfg    Config
	client *http.Client
}

func NewOllamaBackend(cfg Config, client *http.Client) *OllamaBackend {
	if cfg.URL == "" {
		cfg.URL = defaultOllamaURL
	}
	return &OllamaBackend{cfg: cfg, client: client}
}

type ollamaResponse struct {
	Message *Message `json:"message"`
}

func (b *OllamaBackend) Chat(ctx context.Context, messages []Message) (string, error) {
	reqBody := map[string]interface{}{
		"model":    b.cfg.Model,
		"messages": messages,
		"stream":   false,
		"options": map[string]interface{}{
			"temperature": b.cfg.Temperature,
			"num_ctx":     b.cfg.NumCtx,
			"num_gpu":     b.cfg.NumGPU,
		},
	}

	var result ollamaResponse
	if err := postJSON(ctx, b.client, "Ollama", b.cfg.URL, reqBody, &result); err != nil {
		return "", err
	}

	if result.Message == nil || strings.TrimSpace(result.Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return result.Message.Content, nil
}
