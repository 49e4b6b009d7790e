/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements les.Store and drill.Store in one place. Rows hold the
  serialized record as a JSON payload next to the few columns needed for
  lookups and ordering, matching the engine's durable key-value contract:
  the store round-trips blobs, the engine owns the semantics.

KEY TABLES:
  les_records:     one row per LES record (payload JSON)
  les_comparisons: persisted statement comparisons, most recent first
  drill_schedules: one row per fiscal-year schedule (payload JSON)

CONCURRENCY:
  sync.RWMutex on top of a WAL-mode SQLite handle. The engine is
  single-user; the mutex only guards against overlapping HTTP requests.

USAGE:
  st, err := sqlite.New("./data/milpay.db")   // ":memory:" for tests
  ledger := les.NewLedger(st)

SEE ALSO:
  - les/store.go, drill/store.go: interface definitions
  - les/store/memory.go: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/scott198989/milpay-engine/drill"
	"github.com/scott198989/milpay-engine/les"
	"github.com/scott198989/milpay-engine/rates"
)

// Store implements les.Store and drill.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (and migrates) a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

var (
	_ les.Store   = (*Store)(nil)
	_ drill.Store = (*Store)(nil)
)

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS les_records (
		id TEXT PRIMARY KEY,
		pay_date TEXT NOT NULL,
		pay_year INTEGER NOT NULL,
		pay_month INTEGER NOT NULL,
		payload TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_les_records_pay_date ON les_records(pay_date);

	CREATE TABLE IF NOT EXISTS les_comparisons (
		id TEXT PRIMARY KEY,
		previous_id TEXT NOT NULL,
		current_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		seq INTEGER,
		payload TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_les_comparisons_refs ON les_comparisons(previous_id, current_id);

	CREATE TABLE IF NOT EXISTS drill_schedules (
		id TEXT PRIMARY KEY,
		fiscal_year INTEGER NOT NULL,
		branch TEXT NOT NULL,
		payload TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_drill_schedules_year_branch ON drill_schedules(fiscal_year, branch);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LES RECORDS
// =============================================================================

func (s *Store) SaveRecord(ctx context.Context, r les.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO les_records (id, pay_date, pay_year, pay_month, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pay_date = excluded.pay_date,
			pay_year = excluded.pay_year,
			pay_month = excluded.pay_month,
			payload = excluded.payload`,
		r.ID, r.PayPeriod.PayDate.UTC().Format("2006-01-02"),
		r.PayPeriod.Year, r.PayPeriod.Month, string(payload))
	return err
}

func (s *Store) Record(ctx context.Context, id string) (les.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM les_records WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return les.Record{}, &les.NotFoundError{Kind: "record", ID: id}
	}
	if err != nil {
		return les.Record{}, err
	}
	var r les.Record
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return les.Record{}, fmt.Errorf("unmarshal record %s: %w", id, err)
	}
	return r, nil
}

func (s *Store) Records(ctx context.Context) ([]les.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM les_records`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []les.Record
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var r les.Record
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM les_records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &les.NotFoundError{Kind: "record", ID: id}
	}
	return nil
}

// =============================================================================
// COMPARISONS
// =============================================================================

func (s *Store) SaveComparison(ctx context.Context, c les.Comparison) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal comparison: %w", err)
	}
	// seq breaks CreatedAt ties so "most recent first" stays stable.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO les_comparisons (id, previous_id, current_id, created_at, seq, payload)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM les_comparisons), ?)`,
		c.ID, c.PreviousID, c.CurrentID, c.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000Z"), string(payload))
	return err
}

func (s *Store) Comparisons(ctx context.Context) ([]les.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM les_comparisons ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comparisons []les.Comparison
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var c les.Comparison
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, fmt.Errorf("unmarshal comparison: %w", err)
		}
		comparisons = append(comparisons, c)
	}
	return comparisons, rows.Err()
}

func (s *Store) DeleteComparison(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM les_comparisons WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &les.NotFoundError{Kind: "comparison", ID: id}
	}
	return nil
}

func (s *Store) DeleteComparisonsFor(ctx context.Context, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM les_comparisons WHERE previous_id = ? OR current_id = ?`, recordID, recordID)
	return err
}

// =============================================================================
// DRILL SCHEDULES
// =============================================================================

func (s *Store) SaveSchedule(ctx context.Context, sched drill.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drill_schedules (id, fiscal_year, branch, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			fiscal_year = excluded.fiscal_year,
			branch = excluded.branch,
			payload = excluded.payload`,
		sched.ID, sched.FiscalYear, string(sched.Branch), string(payload))
	return err
}

func (s *Store) Schedule(ctx context.Context, id string) (drill.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scanSchedule(s.db.QueryRowContext(ctx,
		`SELECT payload FROM drill_schedules WHERE id = ?`, id))
}

func (s *Store) ScheduleForYear(ctx context.Context, fiscalYear int, branch rates.Branch) (drill.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scanSchedule(s.db.QueryRowContext(ctx,
		`SELECT payload FROM drill_schedules WHERE fiscal_year = ? AND branch = ?`, fiscalYear, string(branch)))
}

func scanSchedule(row *sql.Row) (drill.Schedule, error) {
	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return drill.Schedule{}, drill.ErrScheduleNotFound
	}
	if err != nil {
		return drill.Schedule{}, err
	}
	var sched drill.Schedule
	if err := json.Unmarshal([]byte(payload), &sched); err != nil {
		return drill.Schedule{}, fmt.Errorf("unmarshal schedule: %w", err)
	}
	return sched, nil
}

func (s *Store) Schedules(ctx context.Context) ([]drill.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM drill_schedules ORDER BY fiscal_year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []drill.Schedule
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var sched drill.Schedule
		if err := json.Unmarshal([]byte(payload), &sched); err != nil {
			return nil, fmt.Errorf("unmarshal schedule: %w", err)
		}
		schedules = append(schedules, sched)
	}
	return schedules, rows.Err()
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM drill_schedules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return drill.ErrScheduleNotFound
	}
	return nil
}

var (
	_ les.Store   = (*Store)(nil)
	_ drill.Store = (*Store)(nil)
)
