// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lunch-menu/pkg/types"
)

const exportLimit = 100000

// Export writes every stored menu, newest first, to w as JSON or YAML.
func (s *Store) Export(ctx context.Context, w io.Writer, format types.OutputFormat) error {
	dates, err := s.Dates(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	menus := make([]types.Menu, 0, len(dates))
	for _, d := range dates {
		m, err := s.Menu(ctx, d)
		if err != nil {
			return err
		}
		menus = append(menus, *m)
	}

	switch format {
	case types.FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(menus); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case types.FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(menus); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
