package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenCreatesDatabaseFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	db, err := Open(dir)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), db.Path())
	_, err = os.Stat(db.Path())
	assert.NoError(t, err)
}

func TestLoadNeverSavedKind(t *testing.T) {
	db := openTestDB(t)

	got, err := NewAdapter[types.Task](db, types.KindTask).Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = db.LastSnapshot(types.KindTask)
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSaveLoadRoundTripPreservesOrder(t *testing.T) {
	db := openTestDB(t)
	tasks := []types.Task{
		{ID: 5, Text: "later id first", DateAdded: "2024-05-01 09:30"},
		{ID: 2, Text: "Clean", Completed: true, DateAdded: "2024-05-01 09:31"},
		{ID: 9, Text: "Call mom", DateAdded: "2024-05-02 10:00"},
	}
	contacts := []types.Contact{
		{ID: 1, Name: "Ada", Phone: "1", Email: "ada@example.com", Address: "Somewhere", DateAdded: "2024-01-01 00:00"},
	}

	ta := NewAdapter[types.Task](db, types.KindTask)
	ca := NewAdapter[types.Contact](db, types.KindContact)
	require.NoError(t, ta.Save(tasks))
	require.NoError(t, ca.Save(contacts))

	gotTasks, err := ta.Load()
	require.NoError(t, err)
	assert.Equal(t, tasks, gotTasks)

	gotContacts, err := ca.Load()
	require.NoError(t, err)
	assert.Equal(t, contacts, gotContacts)
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	db := openTestDB(t)
	a := NewAdapter[types.Task](db, types.KindTask)

	require.NoError(t, a.Save([]types.Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}))
	require.NoError(t, a.Save([]types.Task{{ID: 2, Text: "b"}}))

	got, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, []types.Task{{ID: 2, Text: "b"}}, got)

	require.NoError(t, a.Save(nil))
	got, err = a.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveRecordsSnapshot(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	db.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	a := NewAdapter[types.Task](db, types.KindTask)

	require.NoError(t, a.Save([]types.Task{{ID: 1, Text: "a"}}))
	require.NoError(t, a.Save([]types.Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}))

	n, err := db.SnapshotCount(types.KindTask)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	last, err := db.LastSnapshot(types.KindTask)
	require.NoError(t, err)
	assert.Equal(t, types.KindTask, last.Kind)
	assert.Equal(t, 2, last.RecordCount)
	assert.Equal(t, base.Add(2*time.Second), last.SavedAt)

	id, err := uuid.Parse(last.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	n, err = db.SnapshotCount(types.KindContact)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveDuplicateIDsRollsBack(t *testing.T) {
	db := openTestDB(t)
	a := NewAdapter[types.Task](db, types.KindTask)
	require.NoError(t, a.Save([]types.Task{{ID: 1, Text: "kept"}}))

	err := a.Save([]types.Task{{ID: 3, Text: "x"}, {ID: 3, Text: "y"}})
	require.ErrorIs(t, err, types.ErrPersistence)

	got, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, []types.Task{{ID: 1, Text: "kept"}}, got)

	n, err := db.SnapshotCount(types.KindTask)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLoadCorruptRow(t *testing.T) {
	db := openTestDB(t)
	_, err := db.db.Exec("INSERT INTO records (kind, position, record_id, body) VALUES (?, 0, 1, ?)", types.KindTask, "{not json")
	require.NoError(t, err)

	got, err := NewAdapter[types.Task](db, types.KindTask).Load()
	require.ErrorIs(t, err, types.ErrPersistence)
	assert.Empty(t, got)

	var perr *types.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Op)
	assert.Equal(t, db.Path(), perr.Path)
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, NewAdapter[types.Task](db, types.KindTask).Save([]types.Task{{ID: 1, Text: "persist me"}}))
	require.NoError(t, db.Close())
	require.NoError(t, db.Close(), "Close is idempotent")

	db, err = Open(dir)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewAdapter[types.Task](db, types.KindTask).Load()
	require.NoError(t, err)
	assert.Equal(t, []types.Task{{ID: 1, Text: "persist me"}}, got)
}
