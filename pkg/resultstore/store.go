/*
tokenflow - A static analysis token-stream and value-flow engine
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package resultstore persists run results to Postgres, for callers that
// want run history queryable beyond the XML/JSON files pkg/results writes
// per invocation.
package resultstore

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"naive.systems/tokenflow/pkg/results"
)

// Store wraps a Postgres connection holding one row per run and one row
// per result.
type Store struct {
	db *sql.DB
}

// Open connects to a Postgres database named by a "postgres://" DSN and
// ensures its schema exists.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %v", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %v", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS results (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	path TEXT NOT NULL,
	line_number INTEGER NOT NULL,
	column_number INTEGER NOT NULL,
	severity TEXT NOT NULL,
	rule_id TEXT NOT NULL,
	error_message TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS results_run_id_idx ON results(run_id);
`)
	if err != nil {
		return fmt.Errorf("migrate schema: %v", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists every result in list under runID, creating the run row
// first.
func (s *Store) SaveRun(runID string, list *results.ResultsList) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO runs (run_id) VALUES ($1) ON CONFLICT DO NOTHING`, runID); err != nil {
		return fmt.Errorf("insert run: %v", err)
	}
	stmt, err := tx.Prepare(`
INSERT INTO results (id, run_id, path, line_number, column_number, severity, rule_id, error_message)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("prepare insert: %v", err)
	}
	defer stmt.Close()

	for _, r := range list.Results {
		if r.ID == "" {
			results.AddID(r)
		}
		if _, err := stmt.Exec(r.ID, runID, r.Path, r.LineNumber, r.Column, r.Severity, r.RuleID, r.ErrorMessage); err != nil {
			return fmt.Errorf("insert result %s: %v", r.ID, err)
		}
	}
	return tx.Commit()
}

// LoadRun returns every result recorded for runID.
func (s *Store) LoadRun(runID string) (*results.ResultsList, error) {
	rows, err := s.db.Query(`
SELECT id, path, line_number, column_number, severity, rule_id, error_message
FROM results WHERE run_id = $1`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %v", err)
	}
	defer rows.Close()

	list := &results.ResultsList{}
	for rows.Next() {
		r := &results.Result{RunID: runID}
		if err := rows.Scan(&r.ID, &r.Path, &r.LineNumber, &r.Column, &r.Severity, &r.RuleID, &r.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan result: %v", err)
		}
		list.Results = append(list.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
