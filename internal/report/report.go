// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report persists and presents an already-built menu. It knows
// nothing about how the menu was extracted.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lunch-menu/pkg/types"
)

// Sink stores a menu durably.
type Sink interface {
	Persist(ctx context.Context, items []types.MenuItem) error
}

// PersistError reports a sink that failed to store the menu. The menu
// itself is still valid.
type PersistError struct {
	// Target names the destination (a file path or database).
	Target string
	Err    error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persisting menu to %s: %v", e.Target, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// FileSink writes the menu to a single file as JSON or YAML.
type FileSink struct {
	Path   string
	Format types.OutputFormat
}

// Persist implements Sink. The file is replaced atomically via a temporary
// file in the same directory.
func (s FileSink) Persist(_ context.Context, items []types.MenuItem) error {
	data, err := Encode(items, s.Format)
	if err != nil {
		return &PersistError{Target: s.Path, Err: err}
	}
	if err := writeFileAtomic(s.Path, data); err != nil {
		return &PersistError{Target: s.Path, Err: err}
	}
	return nil
}

// Encode renders items in the given format. JSON uses a four-space indent
// and keeps non-ASCII and HTML characters unescaped.
func Encode(items []types.MenuItem, format types.OutputFormat) ([]byte, error) {
	if items == nil {
		items = []types.MenuItem{}
	}
	switch format {
	case types.FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(items); err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return buf.Bytes(), nil
	case types.FormatYAML:
		data, err := yaml.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".menu-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Summarize renders a short human-readable listing of the menu, one dish
// per line with its price right after.
func Summarize(items []types.MenuItem) string {
	if len(items) == 0 {
		return "no menu items found\n"
	}
	width := 0
	for _, it := range items {
		if n := len([]rune(it.Dish)); n > width {
			width = n
		}
	}
	var b strings.Builder
	for _, it := range items {
		pad := width - len([]rune(it.Dish))
		fmt.Fprintf(&b, "%s%s  %s\n", it.Dish, strings.Repeat(" ", pad), it.Price)
	}
	return b.String()
}
