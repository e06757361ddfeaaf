package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/khrees2412/cvforge/internal/resume"
	"github.com/khrees2412/cvforge/pkg/logging"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 5 * time.Second
)

// GenerationError is returned once every attempt has failed
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Generator calls a Backend with bounded linear retry.
type Generator struct {
	backend     Backend
	maxAttempts int
	retryDelay  time.Duration
	log         *logging.Logger

	// sleep waits for d or until ctx is done
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGenerator wraps backend with the retry policy from cfg
func NewGenerator(backend Backend, cfg Config, log *logging.Logger) *Generator {
	if log == nil {
		log = logging.NewNop()
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	delay := cfg.RetryDelay
	if delay < 0 {
		delay = defaultRetryDelay
	}
	return &Generator{
		backend:     backend,
		maxAttempts: attempts,
		retryDelay:  delay,
		log:         log,
		sleep:       sleepContext,
	}
}

// Generate sends the prompt and returns the model's CV text. Attempt n
// failing waits n times the retry delay before the next one.
func (g *Generator) Generate(ctx context.Context, prompt resume.GenerationPrompt) (string, error) {
	messages := []Message{
		{Role: "system", Content: prompt.System},
		{Role: "user", Content: prompt.User},
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		text, err := g.backend.Chat(ctx, messages)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		g.log.Warn("generation attempt failed", "attempt", attempt, "max_attempts", g.maxAttempts, "error", err)
		if attempt == g.maxAttempts {
			break
		}

		if err := g.sleep(ctx, time.Duration(attempt)*g.retryDelay); err != nil {
			return "", err
		}
	}

	return "", &GenerationError{Attempts: g.maxAttempts, Err: lastErr}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
