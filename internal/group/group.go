// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package group moves Markdown files into year directories based on a
// YYYY-MM-DD prefix in their filenames.
package group

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/notekit/internal/logging"
	"github.com/pdiddy/notekit/pkg/types"
)

// Grouper runs one grouping pass over a directory tree.
type Grouper struct {
	cfg types.GroupConfig
	log logging.Logger
	rec types.Recorder
}

// Option configures a Grouper.
type Option func(*Grouper)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(g *Grouper) { g.log = l }
}

// WithRecorder reports every per-file outcome to r.
func WithRecorder(r types.Recorder) Option {
	return func(g *Grouper) { g.rec = r }
}

// New validates cfg and returns a Grouper.
func New(cfg types.GroupConfig, opts ...Option) (*Grouper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Grouper{cfg: cfg, log: logging.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logging.Nop()
	}
	return g, nil
}

// Run scans the input directory, creates one directory per year found, and
// moves each dated file into it. A failure on one file is logged and the
// rest still move. A summary is printed to w.
func (g *Grouper) Run(ctx context.Context, w io.Writer) (types.BatchResult, error) {
	var result types.BatchResult
	root := g.cfg.InputDir

	files, err := FindMarkdown(root, g.log)
	if err != nil {
		return result, err
	}
	groups := GroupByYear(files)
	g.log.Info("found markdown files", "count", len(files), "dated", groups.Len(), "years", len(groups))

	for _, year := range groups.Years() {
		yearDir := filepath.Join(root, year)

		if !g.cfg.DryRun {
			if err := os.MkdirAll(yearDir, 0o755); err != nil {
				g.log.Error("error creating year directory", "dir", yearDir, "error", err)
				for _, src := range groups[year] {
					result.Failed++
					g.record(ctx, types.RunEvent{Source: src, Target: yearDir, Status: types.EventFailed, Detail: err.Error()})
				}
				continue
			}
		}

		for _, src := range groups[year] {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}
			g.moveOne(ctx, src, yearDir, &result)
		}
	}

	verb := "moved"
	if g.cfg.DryRun {
		verb = "planned"
	}
	fmt.Fprintf(w, "\nBatch summary: %d %s, %d skipped, %d failed (total: %d)\n",
		result.Succeeded, verb, result.Skipped, result.Failed, result.Total())
	return result, nil
}

func (g *Grouper) moveOne(ctx context.Context, src, yearDir string, result *types.BatchResult) {
	if g.cfg.DryRun {
		dst := filepath.Join(yearDir, filepath.Base(src))
		if filepath.Clean(src) == dst {
			result.Skipped++
			g.record(ctx, types.RunEvent{Source: src, Target: dst, Status: types.EventSkipped, Detail: ErrAlreadyInPlace.Error()})
			return
		}
		g.log.Info("would move file", "file", src, "dir", yearDir)
		result.Succeeded++
		g.record(ctx, types.RunEvent{Source: src, Target: dst, Status: types.EventPlanned})
		return
	}

	dst, err := MoveFile(src, yearDir)
	switch {
	case err == nil:
		g.log.Info("moved file", "file", src, "dir", yearDir)
		result.Succeeded++
		g.record(ctx, types.RunEvent{Source: src, Target: dst, Status: types.EventMoved})
	case errors.Is(err, ErrAlreadyInPlace):
		g.log.Debug("file already grouped", "file", src)
		result.Skipped++
		g.record(ctx, types.RunEvent{Source: src, Target: dst, Status: types.EventSkipped, Detail: err.Error()})
	default:
		g.log.Error("error moving file", "file", src, "dir", yearDir, "error", err)
		result.Failed++
		g.record(ctx, types.RunEvent{Source: src, Target: dst, Status: types.EventFailed, Detail: err.Error()})
	}
}

func (g *Grouper) record(ctx context.Context, ev types.RunEvent) {
	if g.rec == nil {
		return
	}
	if err := g.rec.Record(ctx, ev); err != nil {
		g.log.Warn("ledger record failed", "source", ev.Source, "error", err)
	}
}
