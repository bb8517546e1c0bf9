package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a single-file, pure-Go Store backed by modernc.org/sqlite.
// Designed for local diagnostics: inspecting a solved context's snapshots
// between test runs, or attaching a file to a bug report.
//
// Schema: flow_snapshots(run_id, cell_name, value_json, discovery_time,
// finish_time).
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewSQLiteStore opens (creating if absent) a SQLite database at path and
// ensures its schema exists. path may be ":memory:" for a throwaway store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("snapshot: enable WAL: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.createTable(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createTable(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS flow_snapshots (
			run_id TEXT NOT NULL,
			cell_name TEXT NOT NULL,
			value_json TEXT NOT NULL,
			discovery_time INTEGER NOT NULL,
			finish_time INTEGER NOT NULL,
			recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (run_id, cell_name)
		)
	`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("snapshot: create table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM flow_snapshots WHERE run_id = ?", snap.RunID); err != nil {
		return fmt.Errorf("snapshot: clear previous run: %w", err)
	}

	for _, e := range snap.Entries {
		valueJSON, err := json.Marshal(e.Value)
		if err != nil {
			return fmt.Errorf("snapshot: marshal value for %q: %w", e.CellName, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO flow_snapshots (run_id, cell_name, value_json, discovery_time, finish_time)
			 VALUES (?, ?, ?, ?, ?)`,
			snap.RunID, e.CellName, string(valueJSON), e.DiscoveryTime, e.FinishTime,
		); err != nil {
			return fmt.Errorf("snapshot: insert %q: %w", e.CellName, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Load(ctx context.Context, runID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT cell_name, value_json, discovery_time, finish_time
		 FROM flow_snapshots WHERE run_id = ? ORDER BY cell_name`,
		runID,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: query: %w", err)
	}
	defer rows.Close()

	snap := Snapshot{RunID: runID}
	for rows.Next() {
		var (
			cellName      string
			valueJSON     string
			discoveryTime int
			finishTime    int
		)
		if err := rows.Scan(&cellName, &valueJSON, &discoveryTime, &finishTime); err != nil {
			return Snapshot{}, fmt.Errorf("snapshot: scan: %w", err)
		}
		var value any
		if err := json.Unmarshal([]byte(valueJSON), &value); err != nil {
			return Snapshot{}, fmt.Errorf("snapshot: unmarshal value for %q: %w", cellName, err)
		}
		snap.Entries = append(snap.Entries, Entry{
			CellName:      cellName,
			Value:         value,
			DiscoveryTime: discoveryTime,
			FinishTime:    finishTime,
		})
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: rows: %w", err)
	}
	if len(snap.Entries) == 0 {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
