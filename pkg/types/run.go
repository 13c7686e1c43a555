// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"context"
	"time"
)

// BatchResult holds the outcome of a converter or grouper run.
type BatchResult struct {
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Total returns the number of items processed.
func (r BatchResult) Total() int {
	return r.Succeeded + r.Skipped + r.Failed
}

// HasFailures reports whether any item failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// EventStatus is the outcome recorded for one processed file.
type EventStatus string

const (
	EventWritten EventStatus = "written"
	EventMoved   EventStatus = "moved"
	EventPlanned EventStatus = "planned"
	EventSkipped EventStatus = "skipped"
	EventFailed  EventStatus = "failed"
)

// Run describes one invocation of a tool as stored in the ledger.
type Run struct {
	ID         string    `json:"id" yaml:"id"`
	Tool       string    `json:"tool" yaml:"tool"`
	InputDir   string    `json:"input_dir" yaml:"input_dir"`
	OutputDir  string    `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	BatchResult `yaml:",inline"`
}

// Finished reports whether the run recorded a result.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// RunEvent is the outcome for a single file within a run.
type RunEvent struct {
	RunID  string      `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Seq    int         `json:"seq" yaml:"seq"`
	Source string      `json:"source" yaml:"source"`
	Target string      `json:"target,omitempty" yaml:"target,omitempty"`
	Status EventStatus `json:"status" yaml:"status"`
	Detail string      `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Recorder receives per-file outcomes while a run is in progress.
type Recorder interface {
	Record(ctx context.Context, ev RunEvent) error
}
