package solver

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const traceSchema = `
CREATE TABLE IF NOT EXISTS decision_trace (
	run_id     TEXT NOT NULL,
	path       TEXT NOT NULL,
	branches   INTEGER NOT NULL,
	move_count INTEGER NOT NULL,
	outcome    INTEGER NOT NULL,
	PRIMARY KEY (run_id, path)
);`

// TraceStore persists decision traces to a local SQLite database for
// offline analysis.
type TraceStore struct {
	db *sql.DB
}

// OpenTraceStore opens (or creates) the trace database at the given
// path.
func OpenTraceStore(path string) (*TraceStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening trace db: %w", err)
	}
	if _, err := db.Exec(traceSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating trace schema: %w", err)
	}
	return &TraceStore{db: db}, nil
}

// Close closes the underlying database.
func (ts *TraceStore) Close() error {
	return ts.db.Close()
}

// Save writes every node of a trace under the given run id, replacing
// any previous rows for that run.
func (ts *TraceStore) Save(ctx context.Context, runID string, t *Trace) error {
	tx, err := ts.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM decision_trace WHERE run_id = ?`, runID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO decision_trace (run_id, path, branches, move_count, outcome)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, key := range t.Keys() {
		n := t.nodes[key]
		if _, err := stmt.ExecContext(ctx,
			runID, key, n.Branches, n.MoveCount, int(n.Outcome)); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug().Str("runID", runID).Int("nodes", t.Len()).Msg("saved decision trace")
	return nil
}

// LoadNode reads a single node record back, or nil if absent.
func (ts *TraceStore) LoadNode(ctx context.Context, runID, pathKey string) (*TraceNode, error) {
	row := ts.db.QueryRowContext(ctx,
		`SELECT branches, move_count, outcome FROM decision_trace
		 WHERE run_id = ? AND path = ?`, runID, pathKey)
	var n TraceNode
	var outcome int
	if err := row.Scan(&n.Branches, &n.MoveCount, &outcome); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	n.Outcome = Outcome(outcome)
	return &n, nil
}
