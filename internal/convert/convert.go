// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns exported note JSON files into Markdown files with
// YAML front matter.
package convert

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/notekit/internal/logging"
	"github.com/pdiddy/notekit/pkg/types"
)

// Converter runs one conversion batch over an input directory.
type Converter struct {
	cfg types.ConvertConfig
	log logging.Logger
	rec types.Recorder
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(c *Converter) { c.log = l }
}

// WithRecorder reports every per-note outcome to r.
func WithRecorder(r types.Recorder) Option {
	return func(c *Converter) { c.rec = r }
}

// New validates cfg and returns a Converter. An empty DayFormat selects
// day-of-month.
func New(cfg types.ConvertConfig, opts ...Option) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DayFormat == "" {
		cfg.DayFormat = types.DayOfMonth
	}
	c := &Converter{cfg: cfg, log: logging.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.Nop()
	}
	return c, nil
}

// Run clears the output directory, converts every JSON file in the input
// directory, and prints a summary to w. Notes that cannot be decoded are
// logged and counted as failed. A write error stops the run.
func (c *Converter) Run(ctx context.Context, w io.Writer) (types.BatchResult, error) {
	var result types.BatchResult

	if err := ClearDir(c.cfg.OutputDir, c.log); err != nil {
		return result, err
	}
	c.log.Info("cleared markdown directory", "dir", c.cfg.OutputDir)

	paths, err := FindInputs(c.cfg.InputDir)
	if err != nil {
		return result, err
	}
	c.log.Info("found JSON files", "count", len(paths), "dir", c.cfg.InputDir)

	written := make(map[string]int, len(paths))
	for i, path := range paths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		rec := LoadRecord(i+1, path)
		if !rec.OK() {
			c.log.Error("skipping note", "index", rec.Index, "path", path, "error", rec.Err)
			result.Failed++
			c.record(ctx, types.RunEvent{Source: path, Status: types.EventFailed, Detail: rec.Err.Error()})
			continue
		}

		art := NewArtifact(rec.Note, c.cfg.DayFormat)
		if prev, ok := written[art.Name]; ok {
			c.log.Warn("overwriting artifact", "name", art.Name, "index", rec.Index, "previous_index", prev)
		}
		out, err := art.Write(c.cfg.OutputDir)
		if err != nil {
			c.log.Error("error writing markdown file", "name", art.Name, "index", rec.Index, "error", err)
			result.Failed++
			c.record(ctx, types.RunEvent{Source: path, Status: types.EventFailed, Detail: err.Error()})
			return result, err
		}
		written[art.Name] = rec.Index
		result.Succeeded++
		c.log.Info("markdown file created", "name", art.Name, "index", rec.Index)
		c.record(ctx, types.RunEvent{Source: path, Target: out, Status: types.EventWritten})
	}

	fmt.Fprintf(w, "\nBatch summary: %d written, %d failed (total: %d)\n",
		result.Succeeded, result.Failed, result.Total())
	return result, nil
}

func (c *Converter) record(ctx context.Context, ev types.RunEvent) {
	if c.rec == nil {
		return
	}
	if err := c.rec.Record(ctx, ev); err != nil {
		c.log.Warn("ledger record failed", "source", ev.Source, "error", err)
	}
}
