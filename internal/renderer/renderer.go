package renderer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/khrees2412/cvforge/pkg/logging"
)

const defaultTimeout = 60 * time.Second

// ErrDisabled is returned by a renderer that was turned off in configuration.
var ErrDisabled = errors.New("pdf rendering is disabled")

// Renderer turns CV text into a document at outPath
type Renderer interface {
	Render(ctx context.Context, text, outPath string) error
}

// Config controls the headless browser
type Config struct {
	Enabled    bool
	ChromePath string
	Timeout    time.Duration
}

// New returns a Chrome-backed renderer, or a disabled one when cfg.Enabled is false
func New(cfg Config, log *logging.Logger) Renderer {
	if !cfg.Enabled {
		return Disabled{}
	}
	if log == nil {
		log = logging.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &ChromeRenderer{chromePath: cfg.ChromePath, timeout: cfg.Timeout, log: log}
}

// Disabled always fails with ErrDisabled
type Disabled struct{}

func (Disabled) Render(ctx context.Context, text, outPath string) error {
	return ErrDisabled
}

// ChromeRenderer prints CV text to an A4 PDF with headless Chrome.
type ChromeRenderer struct {
	chromePath string
	timeout    time.Duration
	log        *logging.Logger
}

// createBrowserContext creates a new browser context with appropriate options
func (r *ChromeRenderer) createBrowserContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel2 := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		msg := fmt.Sprintf(format, v...)
		if strings.Contains(msg, "could not unmarshal event") {
			return
		}
		r.log.Debug("chromedp", "message", msg)
	}))

	return ctx, func() {
		cancel2()
		cancel()
	}
}

func (r *ChromeRenderer) Render(ctx context.Context, text, outPath string) error {
	tmpDir, err := os.MkdirTemp("", "cvforge-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(buildHTML(text)), 0o644); err != nil {
		return fmt.Errorf("failed to write html: %w", err)
	}

	browserCtx, cancel := r.createBrowserContext(ctx)
	defer cancel()
	runCtx, cancelRun := context.WithTimeout(browserCtx, r.timeout)
	defer cancelRun()

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to print pdf: %w", err)
	}

	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// buildHTML lays out each text line as its own paragraph, with a 40pt page margin.
func buildHTML(text string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>
@page { size: A4; margin: 40pt; }
body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; line-height: 1.35; color: #111; }
p { margin: 0; white-space: pre-wrap; min-height: 1.35em; }
</style></head><body>
`)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>\n")
	}
	b.WriteString("</body></html>\n")
	return b.String()
}
