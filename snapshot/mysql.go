package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a Store backed by a shared MySQL/MariaDB database, for
// deployments that centralize diagnostic snapshots outside of any one
// process's filesystem.
//
// Schema: flow_snapshots(run_id, cell_name, value_json, discovery_time,
// finish_time) — same shape as SQLiteStore.
type MySQLStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewMySQLStore opens a connection pool against dsn and ensures the schema
// exists. dsn follows github.com/go-sql-driver/mysql's format, e.g.
// "user:pass@tcp(localhost:3306)/flow_diagnostics?parseTime=true".
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open mysql: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("snapshot: ping mysql: %w", err)
	}

	s := &MySQLStore{db: db}
	if err := s.createTable(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *MySQLStore) createTable(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS flow_snapshots (
			run_id VARCHAR(255) NOT NULL,
			cell_name VARCHAR(255) NOT NULL,
			value_json JSON NOT NULL,
			discovery_time INT NOT NULL,
			finish_time INT NOT NULL,
			recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (run_id, cell_name)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("snapshot: create table: %w", err)
	}
	return nil
}

func (s *MySQLStore) Save(ctx context.Context, snap Snapshot) error {
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

func (s *MySQLStore) Load(ctx context.Context, runID string) (Snapshot, error) {
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

// Close releases the underlying connection pool.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
