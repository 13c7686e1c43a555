// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notekit/pkg/types"
)

// Format selects the encoding used by Export.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ExportEntry is a run together with its events.
type ExportEntry struct {
	types.Run `yaml:",inline"`
	Events    []types.RunEvent `json:"events" yaml:"events"`
}

// Export writes the most recent runs and their events to w. With a non-empty
// runID only that run is written.
func (s *Store) Export(ctx context.Context, w io.Writer, format Format, runID string, limit int) error {
	var runs []types.Run
	if runID != "" {
		run, err := s.Lookup(ctx, runID)
		if err != nil {
			return err
		}
		runs = []types.Run{run}
	} else {
		var err error
		runs, err = s.Runs(ctx, limit)
		if err != nil {
			return err
		}
	}

	entries := make([]ExportEntry, 0, len(runs))
	for _, run := range runs {
		events, err := s.Events(ctx, run.ID)
		if err != nil {
			return err
		}
		if events == nil {
			events = []types.RunEvent{}
		}
		entries = append(entries, ExportEntry{Run: run, Events: events})
	}

	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}
