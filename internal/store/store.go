package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps SQLite access for machine snapshots and the alert journal.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS machines (
            machine_id TEXT PRIMARY KEY,
            qty INTEGER,
            updated_at TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS stock_alerts (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            machine_id TEXT,
            state TEXT,
            created_at TIMESTAMP
        );`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_machine ON stock_alerts(machine_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// MachineRow is a persisted machine snapshot.
type MachineRow struct {
	MachineID string    `json:"machine_id"`
	Qty       int       `json:"qty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Alert is one journaled warn/clear transition.
type Alert struct {
	ID        int64     `json:"id"`
	MachineID string    `json:"machine_id"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// Alert states recorded in the journal.
const (
	StateWarned  = "warned"
	StateCleared = "cleared"
)

func (s *Store) UpsertMachine(ctx context.Context, machineID string, qty int, ts time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO machines(machine_id, qty, updated_at)
        VALUES(?, ?, ?)
        ON CONFLICT(machine_id) DO UPDATE SET qty=excluded.qty, updated_at=excluded.updated_at`, machineID, qty, ts)
	return err
}

func (s *Store) ListMachines(ctx context.Context) ([]MachineRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT machine_id, qty, updated_at FROM machines ORDER BY machine_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var machines []MachineRow
	for rows.Next() {
		var m MachineRow
		if err := rows.Scan(&m.MachineID, &m.Qty, &m.UpdatedAt); err != nil {
			return nil, err
		}
		machines = append(machines, m)
	}
	return machines, rows.Err()
}

// RecordAlert appends a transition to the journal.
func (s *Store) RecordAlert(ctx context.Context, machineID, state string, ts time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO stock_alerts(machine_id, state, created_at) VALUES(?,?,?)`, machineID, state, ts)
	return err
}

func (s *Store) ListAlerts(ctx context.Context, limit int) ([]Alert, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, machine_id, state, created_at FROM stock_alerts ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var alerts []Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.MachineID, &a.State, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// AlertCounts returns warned/cleared totals per machine.
func (s *Store) AlertCounts(ctx context.Context) (map[string]map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT machine_id, state, COUNT(*) FROM stock_alerts GROUP BY machine_id, state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]map[string]int)
	for rows.Next() {
		var id, state string
		var n int
		if err := rows.Scan(&id, &state, &n); err != nil {
			return nil, err
		}
		if counts[id] == nil {
			counts[id] = make(map[string]int)
		}
		counts[id][state] = n
	}
	return counts, rows.Err()
}

// Health returns err if DB not reachable.
func (s *Store) Health(ctx context.Context) error {
	row := s.db.QueryRowContext(ctx, `SELECT 1`)
	var v int
	if err := row.Scan(&v); err != nil {
		return fmt.Errorf("db health: %w", err)
	}
	return nil
}
