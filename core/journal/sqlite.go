package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists records to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS assignments (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ts INTEGER,
        run_id TEXT,
        dataset TEXT,
        tick INTEGER,
        job INTEGER,
        vehicle INTEGER,
        distance INTEGER,
        relaxation TEXT,
        relax_start INTEGER,
        relax_end INTEGER
    );`
	index := `CREATE INDEX IF NOT EXISTS assignments_run ON assignments (run_id);`
	for _, stmt := range []string{schema, index} {
		if _, err := db.Exec(stmt); err != nil {
			if cerr := db.Close(); cerr != nil {
				return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
			}
			return nil, err
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Append writes the record to the database.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (ts, run_id, dataset, tick, job, vehicle, distance, relaxation, relax_start, relax_end)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.UnixNano(), rec.RunID, rec.Dataset, rec.Tick, rec.Job, rec.Vehicle,
		rec.Distance, rec.Relaxation, rec.RelaxStart, rec.RelaxEnd)
	return err
}

// Query returns records matching q in insertion order.
func (s *SQLiteStore) Query(ctx context.Context, q Query) ([]Record, error) {
	var args []any
	query := `SELECT ts, run_id, dataset, tick, job, vehicle, distance, relaxation, relax_start, relax_end
        FROM assignments WHERE 1=1`
	if q.RunID != "" {
		query += ` AND run_id = ?`
		args = append(args, q.RunID)
	}
	if q.Dataset != "" {
		query += ` AND dataset = ?`
		args = append(args, q.Dataset)
	}
	if q.Vehicle != nil {
		query += ` AND vehicle = ?`
		args = append(args, *q.Vehicle)
	}
	if q.Job != nil {
		query += ` AND job = ?`
		args = append(args, *q.Job)
	}
	query += ` ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []Record
	for rows.Next() {
		var (
			r  Record
			ts int64
		)
		if err := rows.Scan(&ts, &r.RunID, &r.Dataset, &r.Tick, &r.Job, &r.Vehicle,
			&r.Distance, &r.Relaxation, &r.RelaxStart, &r.RelaxEnd); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Timestamp = time.Unix(0, ts)
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
