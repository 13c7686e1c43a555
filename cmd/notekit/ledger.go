// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/viper"

	"github.com/pdiddy/notekit/internal/ledger"
	"github.com/pdiddy/notekit/internal/logging"
	"github.com/pdiddy/notekit/pkg/types"
)

// runRecording wraps an optional ledger session for the duration of a run.
// A nil *runRecording records nothing.
type runRecording struct {
	store   *ledger.Store
	session *ledger.Session
	log     logging.Logger
}

// startRecording opens the configured ledger and begins a run. Ledger
// problems are logged and disable recording rather than failing the command.
func startRecording(ctx context.Context, log logging.Logger, run types.Run) *runRecording {
	path := viper.GetString("ledger.path")
	if path == "" {
		return nil
	}
	store, err := ledger.Open(path)
	if err != nil {
		log.Warn("ledger unavailable", "path", path, "error", err)
		return nil
	}
	session, err := store.BeginRun(ctx, run)
	if err != nil {
		log.Warn("ledger unavailable", "path", path, "error", err)
		store.Close()
		return nil
	}
	log.Debug("recording run", "id", session.ID(), "ledger", path)
	return &runRecording{store: store, session: session, log: log}
}

// recorder returns the session as a types.Recorder, or nil.
func (r *runRecording) recorder() types.Recorder {
	if r == nil {
		return nil
	}
	return r.session
}

// finish stores the result and closes the ledger. It still writes after ctx
// is cancelled so an interrupted run keeps its partial counts.
func (r *runRecording) finish(ctx context.Context, result types.BatchResult) {
	if r == nil {
		return
	}
	if err := r.session.Finish(context.WithoutCancel(ctx), result); err != nil {
		r.log.Warn("ledger finish failed", "id", r.session.ID(), "error", err)
	}
	r.store.Close()
	r.log.Info("run recorded", "id", r.session.ID())
}

// openLedger opens the configured ledger for reading.
func openLedger() (*ledger.Store, error) {
	path := viper.GetString("ledger.path")
	if path == "" {
		return nil, errLedgerRequired
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return ledger.Open(path)
}
