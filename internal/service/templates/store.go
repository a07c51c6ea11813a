// Package templates loads chat reply templates and renders them with
// mustache-style view data.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cbroglie/mustache"
)

//go:embed chat-templates/*.tmpl
var embedded embed.FS

// ErrTemplateNotFound is returned when no template exists under the name.
var ErrTemplateNotFound = errors.New("template not found")

// Store reads templates by file name from a filesystem root.
type Store struct {
	root fs.FS
}

// NewStore creates a Store backed by root.
func NewStore(root fs.FS) *Store {
	return &Store{root: root}
}

// Default returns a Store over the built-in templates.
func Default() *Store {
	sub, err := fs.Sub(embedded, "chat-templates")
	if err != nil {
		panic(fmt.Sprintf("embedded chat templates: %v", err))
	}
	return NewStore(sub)
}

// FromDir returns a Store over dir, or the built-in templates when dir is empty.
func FromDir(dir string) *Store {
	if dir == "" {
		return Default()
	}
	return NewStore(os.DirFS(dir))
}

// Load returns the raw text of the named template.
func (s *Store) Load(name string) (string, error) {
	raw, err := fs.ReadFile(s.root, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("template %q: %w", name, err)
	}
	return string(raw), nil
}

// Render substitutes view into a mustache template. {{name}} is HTML-escaped,
// {{{name}}} is inserted as-is.
func Render(text string, view map[string]string) (string, error) {
	out, err := mustache.Render(text, view)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}
