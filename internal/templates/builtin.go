package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/khrees2412/cvforge/internal/lang"
)

//go:embed builtin/*.txt
var builtinFS embed.FS

// FileName returns the file name of the built-in template for a language.
func FileName(l lang.Language) string {
	switch l {
	case lang.Polish:
		return "polishCV.txt"
	default:
		return "englishCV.txt"
	}
}

// Builtins loads the bundled templates, preferring files in dir when present.
type Builtins struct {
	dir string
}

// NewBuiltins creates a loader. An empty dir disables overrides.
func NewBuiltins(dir string) *Builtins {
	return &Builtins{dir: dir}
}

// Load returns the built-in template text for a language
func (b *Builtins) Load(l lang.Language) (string, error) {
	name := FileName(l)

	if b != nil && b.dir != "" {
		data, err := os.ReadFile(filepath.Join(b.dir, name))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read template override %s: %w", name, err)
		}
	}

	data, err := builtinFS.ReadFile("builtin/" + name)
	if err != nil {
		return "", fmt.Errorf("failed to read built-in template %s: %w", name, err)
	}
	return string(data), nil
}

// All returns every built-in template keyed by language name.
func (b *Builtins) All() (map[string]string, error) {
	out := make(map[string]string, len(lang.All()))
	for _, l := range lang.All() {
		text, err := b.Load(l)
		if err != nil {
			return nil, err
		}
		out[l.String()] = text
	}
	return out, nil
}
