// Package store archives scheduling runs in a local SQLite database so past
// schedules can be listed and inspected without re-running them.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// FileName is the database file created inside the store directory.
const FileName = "runs.db"

// ErrRunNotFound is returned by LoadRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// RunStatus records how a run ended.
type RunStatus string

const (
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Run is the archived header of one scheduling run.
type Run struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Source          string    `json:"source"`
	Status          RunStatus `json:"status"`
	Error           string    `json:"error,omitempty"`
	Selection       string    `json:"selection,omitempty"`
	ProjectDuration int       `json:"project_duration"`
	CriticalPath    []string  `json:"critical_path"`
}

// ActivityRow is one archived activity of a completed run.
type ActivityRow struct {
	Name           string   `json:"name"`
	Duration       int      `json:"duration"`
	Predecessors   []string `json:"predecessors"`
	ES             int      `json:"earliest_start"`
	EF             int      `json:"earliest_finish"`
	LS             int      `json:"latest_start"`
	LF             int      `json:"latest_finish"`
	Slack          int      `json:"slack"`
	Critical       bool     `json:"critical"` // zero slack
	OnCriticalPath bool     `json:"on_critical_path"`
}

// RunDetail is a run together with its activities in id order.
type RunDetail struct {
	Run
	Activities []ActivityRow `json:"activities"`
}

// Store wraps the SQLite connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the archive at dir/runs.db.
// Enables WAL mode, foreign keys, and a 5-second busy timeout.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	dsn := filepath.Join(dir, FileName) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id               TEXT PRIMARY KEY,
			created_at       INTEGER NOT NULL,
			source           TEXT NOT NULL,
			status           TEXT NOT NULL,
			error            TEXT NOT NULL DEFAULT '',
			selection        TEXT NOT NULL DEFAULT '',
			project_duration INTEGER NOT NULL DEFAULT 0,
			critical_path    TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
		`CREATE TABLE IF NOT EXISTS run_activities (
			run_id       TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			activity_id  INTEGER NOT NULL,
			name         TEXT NOT NULL,
			duration     INTEGER NOT NULL,
			predecessors TEXT NOT NULL DEFAULT '[]',
			es           INTEGER NOT NULL,
			ef           INTEGER NOT NULL,
			ls           INTEGER NOT NULL,
			lf           INTEGER NOT NULL,
			slack        INTEGER NOT NULL,
			critical     BOOLEAN NOT NULL DEFAULT 0,
			on_critical_path BOOLEAN NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, activity_id)
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}
