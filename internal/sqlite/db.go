// Package sqlite stores record snapshots in a single SQLite database as an
// alternative to the JSON files. Each kind's collection is kept as ordered
// JSON documents, and every save is logged as a snapshot row keyed by a
// UUID v7.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "keeper.db"

// DB is an open snapshot database shared by the adapters of every kind.
type DB struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Snapshot describes one completed save.
type Snapshot struct {
	ID          string
	Kind        string
	RecordCount int
	SavedAt     time.Time
}

// savedAtLayout is fixed-width so saved_at sorts chronologically as text.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNoSnapshot is returned by LastSnapshot when a kind was never saved.
var ErrNoSnapshot = errors.New("no snapshot")

// Open opens (creating if needed) the database in dir and applies the
// schema.
func Open(dir string) (*DB, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dir, DatabaseFile)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// One connection keeps writes serialized and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}

	return &DB{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file path.
func (d *DB) Path() string { return d.path }

// Close releases the database handle.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// LastSnapshot returns the most recent snapshot for kind, or ErrNoSnapshot.
func (d *DB) LastSnapshot(kind string) (Snapshot, error) {
	row := d.db.QueryRow(
		"SELECT snapshot_id, kind, record_count, saved_at FROM snapshots WHERE kind = ? ORDER BY saved_at DESC, rowid DESC LIMIT 1",
		kind,
	)
	s, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNoSnapshot
		}
		return Snapshot{}, fmt.Errorf("querying last %s snapshot: %w", kind, err)
	}
	return s, nil
}

// SnapshotCount returns how many saves were recorded for kind.
func (d *DB) SnapshotCount(kind string) (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM snapshots WHERE kind = ?", kind).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s snapshots: %w", kind, err)
	}
	return n, nil
}

func scanSnapshot(row *sql.Row) (Snapshot, error) {
	var (
		s       Snapshot
		savedAt string
	)
	if err := row.Scan(&s.ID, &s.Kind, &s.RecordCount, &savedAt); err != nil {
		return Snapshot{}, err
	}
	t, err := time.Parse(savedAtLayout, savedAt)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parsing saved_at %q: %w", savedAt, err)
	}
	s.SavedAt = t
	return s, nil
}

// generateUUID generates a new UUID v7 for snapshot IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
