package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/khrees2412/cvforge/internal/resume"
)

type scriptedBackend struct {
	calls   int
	replies []error
	text    string
}

func (b *scriptedBackend) Chat(ctx context.Context, messages []Message) (string, error) {
	b.calls++
	if b.calls <= len(b.replies) && b.replies[b.calls-1] != nil {
		return "", b.replies[b.calls-1]
	}
	return b.text, nil
}

func newTestGenerator(backend Backend, delays *[]time.Duration) *Generator {
	g := NewGenerator(backend, Config{MaxAttempts: 3, RetryDelay: 5 * time.Second}, nil)
	g.sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return g
}

func TestGeneratorFailsAfterExactlyMaxAttempts(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.URL = srv.URL
	var delays []time.Duration
	g := newTestGenerator(NewOllamaBackend(cfg, srv.Client()), &delays)

	_, err := g.Generate(context.Background(), resume.GenerationPrompt{System: "s", User: "u"})

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}
	if genErr.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", genErr.Attempts)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("backend called %d times, want 3", got)
	}
	if len(delays) != 2 || delays[0] != 5*time.Second || delays[1] != 10*time.Second {
		t.Errorf("unexpected delays %v", delays)
	}
}

func TestGeneratorRecoversOnRetry(t *testing.T) {
	backend := &scriptedBackend{replies: []error{ErrEmptyResponse}, text: "CV"}
	var delays []time.Duration
	g := newTestGenerator(backend, &delays)

	got, err := g.Generate(context.Background(), resume.GenerationPrompt{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "CV" || backend.calls != 2 {
		t.Errorf("got %q after %d calls", got, backend.calls)
	}
	if len(delays) != 1 || delays[0] != 5*time.Second {
		t.Errorf("unexpected delays %v", delays)
	}
}

func TestGeneratorWrapsLastError(t *testing.T) {
	backend := &scriptedBackend{replies: []error{errors.New("a"), errors.New("b"), ErrEmptyResponse}}
	var delays []time.Duration
	_, err := newTestGenerator(backend, &delays).Generate(context.Background(), resume.GenerationPrompt{})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected last error to be wrapped, got %v", err)
	}
}

func TestGeneratorStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	backend := &scriptedBackend{replies: []error{errors.New("timeout"), errors.New("timeout"), errors.New("timeout")}}
	g := NewGenerator(backend, Config{MaxAttempts: 3, RetryDelay: time.Hour}, nil)
	g.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := g.Generate(ctx, resume.GenerationPrompt{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times, want 1", backend.calls)
	}
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
