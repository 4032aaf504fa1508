package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

// Adapter persists the records of one kind in a DB.
type Adapter[R types.Record[R]] struct {
	db   *DB
	kind string
}

// NewAdapter returns an Adapter for kind backed by db.
func NewAdapter[R types.Record[R]](db *DB, kind string) *Adapter[R] {
	return &Adapter[R]{db: db, kind: kind}
}

// Load returns the kind's records in saved order. A kind that was never
// saved yields an empty collection. A row that does not decode yields an
// empty collection and a *types.PersistenceError.
func (a *Adapter[R]) Load() ([]R, error) {
	rows, err := a.db.db.Query(
		"SELECT body FROM records WHERE kind = ? ORDER BY position",
		a.kind,
	)
	if err != nil {
		return []R{}, a.fail("load", fmt.Errorf("querying records: %w", err))
	}
	defer rows.Close()

	records := []R{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return []R{}, a.fail("load", fmt.Errorf("scanning record: %w", err))
		}
		var r R
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			return []R{}, a.fail("load", fmt.Errorf("decoding record: %w", err))
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return []R{}, a.fail("load", fmt.Errorf("iterating records: %w", err))
	}
	return records, nil
}

// Save replaces the kind's rows with records and logs a snapshot, all in
// one transaction. On failure the previous snapshot stays in place.
func (a *Adapter[R]) Save(records []R) error {
	tx, err := a.db.db.Begin()
	if err != nil {
		return a.fail("save", fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records WHERE kind = ?", a.kind); err != nil {
		return a.fail("save", fmt.Errorf("clearing records: %w", err))
	}

	stmt, err := tx.Prepare("INSERT INTO records (kind, position, record_id, body) VALUES (?, ?, ?, ?)")
	if err != nil {
		return a.fail("save", fmt.Errorf("preparing insert: %w", err))
	}
	defer stmt.Close()

	for i, r := range records {
		body, err := json.Marshal(r)
		if err != nil {
			return a.fail("save", fmt.Errorf("encoding record %d: %w", r.RecordID(), err))
		}
		if _, err := stmt.Exec(a.kind, i, r.RecordID(), string(body)); err != nil {
			return a.fail("save", fmt.Errorf("inserting record %d: %w", r.RecordID(), err))
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO snapshots (snapshot_id, kind, record_count, saved_at) VALUES (?, ?, ?, ?)",
		generateUUID(), a.kind, len(records), a.db.now().UTC().Format(savedAtLayout),
	); err != nil {
		return a.fail("save", fmt.Errorf("recording snapshot: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return a.fail("save", fmt.Errorf("committing snapshot: %w", err))
	}
	return nil
}

func (a *Adapter[R]) fail(op string, err error) error {
	return &types.PersistenceError{Op: op, Path: a.db.path, Err: err}
}
