package sqlite

// Schema DDL, applied on every Open. Records of every kind share one table;
// position keeps insertion order and the unique index on (kind, record_id)
// backs the id-uniqueness invariant at the storage level.
const (
	createRecords = `CREATE TABLE IF NOT EXISTS records (
    kind TEXT NOT NULL,
    position INTEGER NOT NULL,
    record_id INTEGER NOT NULL,
    body TEXT NOT NULL,
    PRIMARY KEY (kind, position)
);`

	createRecordsIDIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_records_kind_id ON records(kind, record_id);`

	createSnapshots = `CREATE TABLE IF NOT EXISTS snapshots (
    snapshot_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    record_count INTEGER NOT NULL,
    saved_at TEXT NOT NULL
);`

	createSnapshotsKindIndex = `CREATE INDEX IF NOT EXISTS idx_snapshots_kind ON snapshots(kind, saved_at);`
)

// schemaStatements lists DDL in execution order.
var schemaStatements = []string{
	createRecords,
	createRecordsIDIndex,
	createSnapshots,
	createSnapshotsKindIndex,
}
