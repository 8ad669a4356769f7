// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists scan and notify runs in a local SQLite database
// so past notifications can be reviewed and exported.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deadliner/pkg/types"
)

const dbFile = "history.db"

// Store manages the run-history SQLite database.
type Store struct {
	db      *sql.DB
	dir     string
	maxRuns int
}

// NewStore opens or creates the history database at dir/history.db,
// creating the schema when absent.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = ".deadliner"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxRuns := cfg.MaxRuns
	if maxRuns <= 0 {
		maxRuns = 20
	}

	s := &Store{db: db, dir: dir, maxRuns: maxRuns}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ran_at TEXT NOT NULL,
			kind TEXT NOT NULL,
			files_scanned INTEGER NOT NULL,
			records INTEGER NOT NULL,
			notified INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			delivered INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_deadlines (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			source_path TEXT NOT NULL,
			line INTEGER NOT NULL,
			element TEXT,
			deadline TEXT NOT NULL,
			author TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_deadlines_run_id ON run_deadlines(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is one recorded scan or notify invocation.
type Run struct {
	ID           int64     `json:"id" yaml:"id"`
	RanAt        time.Time `json:"ran_at" yaml:"ran_at"`
	Kind         string    `json:"kind" yaml:"kind"`
	FilesScanned int       `json:"files_scanned" yaml:"files_scanned"`
	Records      int       `json:"records" yaml:"records"`
	Notified     int       `json:"notified" yaml:"notified"`
	Errors       int       `json:"errors" yaml:"errors"`
	Delivered    bool      `json:"delivered" yaml:"delivered"`
}

// RecordRun stores one run and the deadlines that were notifiable in it.
func (s *Store) RecordRun(ctx context.Context, run Run, notified []types.AnnotationRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (ran_at, kind, files_scanned, records, notified, errors, delivered)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RanAt.UTC().Format(time.RFC3339), run.Kind, run.FilesScanned,
		run.Records, run.Notified, run.Errors, run.Delivered)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, rec := range notified {
		author := ""
		if rec.Attribution != nil {
			author = rec.Attribution.Name
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_deadlines (run_id, source_path, line, element, deadline, author)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, rec.SourcePath, rec.Line, rec.Element, rec.Deadline.String(), author); err != nil {
			return 0, fmt.Errorf("inserting deadline for %s:%d: %w", rec.SourcePath, rec.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first. A zero limit selects
// the configured maximum; a negative limit returns every run.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit == 0 {
		limit = s.maxRuns
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ran_at, kind, files_scanned, records, notified, errors, delivered
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ranAt string
		if err := rows.Scan(&r.ID, &ranAt, &r.Kind, &r.FilesScanned, &r.Records,
			&r.Notified, &r.Errors, &r.Delivered); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ranAt); err == nil {
			r.RanAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Deadline is one notified deadline as recorded with a run.
type Deadline struct {
	SourcePath string `json:"source_path" yaml:"source_path"`
	Line       int    `json:"line" yaml:"line"`
	Element    string `json:"element" yaml:"element"`
	Deadline   string `json:"deadline" yaml:"deadline"`
	Author     string `json:"author,omitempty" yaml:"author,omitempty"`
}

// RunDeadlines returns the deadlines recorded with one run.
func (s *Store) RunDeadlines(ctx context.Context, runID int64) ([]Deadline, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_path, line, element, deadline, author
		 FROM run_deadlines WHERE run_id = ? ORDER BY source_path, line`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run deadlines: %w", err)
	}
	defer rows.Close()

	var deadlines []Deadline
	for rows.Next() {
		var d Deadline
		if err := rows.Scan(&d.SourcePath, &d.Line, &d.Element, &d.Deadline, &d.Author); err != nil {
			return nil, fmt.Errorf("scanning deadline row: %w", err)
		}
		deadlines = append(deadlines, d)
	}
	return deadlines, rows.Err()
}

// Export writes the full run history as YAML to dir/export.yaml and
// returns the path.
func (s *Store) Export(ctx context.Context) (string, error) {
	runs, err := s.Runs(ctx, -1)
	if err != nil {
		return "", err
	}

	type exportRun struct {
		Run       Run        `yaml:",inline"`
		Deadlines []Deadline `yaml:"deadlines,omitempty"`
	}
	export := make([]exportRun, 0, len(runs))
	for _, r := range runs {
		deadlines, err := s.RunDeadlines(ctx, r.ID)
		if err != nil {
			return "", err
		}
		export = append(export, exportRun{Run: r, Deadlines: deadlines})
	}

	data, err := yaml.Marshal(export)
	if err != nil {
		return "", fmt.Errorf("marshaling export: %w", err)
	}

	path := filepath.Join(s.dir, "export.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
