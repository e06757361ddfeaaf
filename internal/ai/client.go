package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"

	defaultOllamaURL   = "http://localhost:11434/api/chat"
	defaultLMStudioURL = "http://localhost:1234"
	defaultModel       = "mistral"
	defaultTimeout     = 180 * time.Second
)

// ErrEmptyResponse is returned when the backend answers without any content.
var ErrEmptyResponse = errors.New("empty response from model")

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Backend sends a chat conversation to a model server and returns the reply text
type Backend interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Config holds generation backend settings
type Config struct {
	Provider    string
	URL         string
	Model       string
	Timeout     time.Duration
	Temperature float64
	NumCtx      int
	NumGPU      int
	MaxTokens   int
	MaxAttempts int
	RetryDelay  time.Duration
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderOllama,
		URL:         defaultOllamaURL,
		Model:       defaultModel,
		Timeout:     defaultTimeout,
		Temperature: 0.3,
		NumCtx:      1024,
		NumGPU:      0,
		MaxTokens:   2000,
		MaxAttempts: defaultMaxAttempts,
		RetryDelay:  defaultRetryDelay,
	}
}

// NewBackend creates the backend for the configured provider
func NewBackend(cfg Config, httpClient *http.Client) (Backend, error) {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderOllama:
		return NewOllamaBackend(cfg, httpClient), nil
	case ProviderLMStudio, "openai":
		return NewOpenAIBackend(cfg, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// postJSON sends reqBody and decodes a 2xx JSON reply into out
func postJSON(ctx context.Context, client *http.Client, name, url string, reqBody interface{}, out interface{}) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s API error (%d): %s", name, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unexpected response format from %s: %w", name, err)
	}
	return nil
}
