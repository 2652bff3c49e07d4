package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fuzzyreg/internal/inference"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrRunNotFound = errors.New("run not found")

// Run is one saved inference.
type Run struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Result    inference.Result `json:"result"`
}

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at INTEGER,
			input REAL,
			selected_input TEXT,
			selected_output TEXT,
			output REAL,
			details JSON
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun records a single result and returns its run ID.
func (s *SQLiteStore) SaveRun(ctx context.Context, res inference.Result) (string, error) {
	ids, err := s.SaveRuns(ctx, []inference.Result{res})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// SaveRuns records results in one transaction, returning IDs in input order.
func (s *SQLiteStore) SaveRuns(ctx context.Context, results []inference.Result) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO runs (id, created_at, input, selected_input, selected_output, output, details)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]string, 0, len(results))
	for _, res := range results {
		details, err := json.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("failed to encode result: %w", err)
		}
		id := uuid.NewString()
		if _, err := stmt.ExecContext(ctx, id, s.now().UnixNano(), res.Input,
			res.SelectedRule.Input, res.SelectedRule.Output, res.Output, details); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// ListRuns returns the most recent runs first. limit <= 0 means no limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, created_at, details FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, created_at, details FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	return run, err
}

// ClearRuns deletes every saved run and reports how many were removed.
func (s *SQLiteStore) ClearRuns(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var createdAt int64
	var details []byte
	if err := sc.Scan(&run.ID, &createdAt, &details); err != nil {
		return Run{}, err
	}
	run.CreatedAt = time.Unix(0, createdAt)
	if len(details) > 0 {
		if err := json.Unmarshal(details, &run.Result); err != nil {
			return Run{}, fmt.Errorf("run %s: corrupt details: %w", run.ID, err)
		}
	}
	return run, nil
}
