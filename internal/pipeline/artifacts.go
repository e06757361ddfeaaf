package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/cvforge/pkg/models"
)

const maxSlugLength = 50

var unsafeFilenameChars = regexp.MustCompile(`(?i)[^a-z0-9-]`)

// ErrInvalidName is returned for artifact names that would escape the output directory.
var ErrInvalidName = errors.New("invalid artifact name")

// Sanitize makes s safe for use in a file name.
func Sanitize(s string) string {
	out := strings.ToLower(unsafeFilenameChars.ReplaceAllString(s, "-"))
	if len(out) > maxSlugLength {
		out = out[:maxSlugLength]
	}
	return out
}

// ArtifactWriter stores generated CVs in a local directory
type ArtifactWriter struct {
	dir    string
	now    func() time.Time
	suffix func() string
}

func NewArtifactWriter(dir string) *ArtifactWriter {
	return &ArtifactWriter{
		dir: dir,
		now: time.Now,
		suffix: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		},
	}
}

// Dir returns the output directory
func (w *ArtifactWriter) Dir() string {
	return w.dir
}

// BaseName returns the shared base name for a job's text and PDF files
func (w *ArtifactWriter) BaseName(job models.JobPosting) string {
	subject := job.Company
	if strings.TrimSpace(subject) == "" {
		subject = job.Title
	}
	if strings.TrimSpace(subject) == "" {
		subject = "job"
	}
	return fmt.Sprintf("cv_%s_%d_%s", Sanitize(subject), w.now().UnixMilli(), w.suffix())
}

// WriteText writes the CV text as <base>.txt and returns the file name
func (w *ArtifactWriter) WriteText(base, text string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := base + ".txt"
	if err := os.WriteFile(filepath.Join(w.dir, name), []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write cv text: %w", err)
	}
	return name, nil
}

// Path resolves an artifact name inside the output directory
func (w *ArtifactWriter) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(w.dir, name), nil
}

// Open opens a previously written artifact for reading
func (w *ArtifactWriter) Open(name string) (*os.File, error) {
	path, err := w.Path(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}
