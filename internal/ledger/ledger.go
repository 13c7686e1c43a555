// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records converter and grouper runs in a SQLite database so
// past runs and their per-file outcomes can be listed later.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/notekit/pkg/types"
)

// DefaultLimit is the number of runs listed when no limit is given.
const DefaultLimit = 20

// ErrRunNotFound is returned when a run ID is unknown.
var ErrRunNotFound = errors.New("run not found")

// Store manages the ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger at path, creating parent directories and
// the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			tool TEXT NOT NULL,
			input_dir TEXT NOT NULL,
			output_dir TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			succeeded INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			source TEXT NOT NULL,
			target TEXT,
			status TEXT NOT NULL,
			detail TEXT,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_events_status ON events(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Session is an open run. It implements types.Recorder.
type Session struct {
	store *Store
	id    string

	mu  sync.Mutex
	seq int
}

// BeginRun inserts a run with a fresh ID and start time. Tool and the
// directories are taken from run; other fields are ignored.
func (s *Store) BeginRun(ctx context.Context, run types.Run) (*Session, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, tool, input_dir, output_dir, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, run.Tool, run.InputDir, run.OutputDir, formatTime(time.Now()),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}
	return &Session{store: s, id: id}, nil
}

// ID returns the run ID.
func (r *Session) ID() string {
	return r.id
}

// Record appends ev to the run. Seq and RunID are assigned here.
func (r *Session) Record(ctx context.Context, ev types.RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO events (run_id, seq, source, target, status, detail) VALUES (?, ?, ?, ?, ?, ?)`,
		r.id, r.seq+1, ev.Source, ev.Target, string(ev.Status), ev.Detail,
	)
	if err != nil {
		return fmt.Errorf("recording event for %s: %w", ev.Source, err)
	}
	r.seq++
	return nil
}

// Finish stores the batch result and finish time.
func (r *Session) Finish(ctx context.Context, result types.BatchResult) error {
	_, err := r.store.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, succeeded = ?, skipped = ?, failed = ? WHERE id = ?`,
		formatTime(time.Now()), result.Succeeded, result.Skipped, result.Failed, r.id,
	)
	if err != nil {
		return fmt.Errorf("finishing run %s: %w", r.id, err)
	}
	return nil
}

const runColumns = `id, tool, input_dir, output_dir, started_at, finished_at, succeeded, skipped, failed`

// Runs returns the most recent runs, newest first. A limit of zero or less
// uses DefaultLimit.
func (s *Store) Runs(ctx context.Context, limit int) ([]types.Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Lookup returns the run with the given ID.
func (s *Store) Lookup(ctx context.Context, id string) (types.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// Events returns the events of a run in recording order.
func (s *Store) Events(ctx context.Context, runID string) ([]types.RunEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, seq, source, target, status, detail FROM events WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []types.RunEvent
	for rows.Next() {
		var ev types.RunEvent
		var target, detail sql.NullString
		var status string
		if err := rows.Scan(&ev.RunID, &ev.Seq, &ev.Source, &target, &status, &detail); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		ev.Target = target.String
		ev.Detail = detail.String
		ev.Status = types.EventStatus(status)
		events = append(events, ev)
	}
	return events, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (types.Run, error) {
	var run types.Run
	var outputDir, finishedAt sql.NullString
	var startedAt string
	err := sc.Scan(&run.ID, &run.Tool, &run.InputDir, &outputDir, &startedAt, &finishedAt,
		&run.Succeeded, &run.Skipped, &run.Failed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return run, err
		}
		return run, fmt.Errorf("scanning run: %w", err)
	}
	run.OutputDir = outputDir.String
	run.StartedAt = parseTime(startedAt)
	if finishedAt.Valid {
		run.FinishedAt = parseTime(finishedAt.String)
	}
	return run, nil
}

// timeLayout is fixed width so stored times sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
