// Package jsonfile persists a record collection as a single JSON array file.
// Writes go through a temp file in the target directory followed by fsync
// and rename, so a failed save never leaves a partially written target.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

// Standard file names, one per record kind.
const (
	ContactsFile = "contacts.json"
	TasksFile    = "tasks.json"
)

// fileMode is the permission of written snapshot files. os.CreateTemp
// creates files as 0600.
const fileMode = 0o644

// FileName returns the snapshot file name for kind.
func FileName(kind string) string {
	switch kind {
	case types.KindContact:
		return ContactsFile
	case types.KindTask:
		return TasksFile
	}
	return kind + "s.json"
}

// Adapter reads and writes records of type R at Path.
type Adapter[R any] struct {
	Path string
}

// New returns an Adapter for the kind's standard file inside dir.
func New[R any](dir, kind string) *Adapter[R] {
	return &Adapter[R]{Path: filepath.Join(dir, FileName(kind))}
}

// Load reads the snapshot. A missing file yields an empty collection and no
// error. An unreadable or unparsable file yields an empty collection and a
// *types.PersistenceError.
func (a *Adapter[R]) Load() ([]R, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []R{}, nil
		}
		return []R{}, &types.PersistenceError{Op: "load", Path: a.Path, Err: err}
	}

	var records []R
	if len(bytes.TrimSpace(data)) == 0 {
		return []R{}, &types.PersistenceError{Op: "load", Path: a.Path, Err: errors.New("empty file")}
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return []R{}, &types.PersistenceError{Op: "load", Path: a.Path, Err: fmt.Errorf("decoding: %w", err)}
	}
	if records == nil {
		records = []R{}
	}
	return records, nil
}

// Save overwrites the snapshot with records. A nil slice is written as an
// empty array.
func (a *Adapter[R]) Save(records []R) error {
	if records == nil {
		records = []R{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &types.PersistenceError{Op: "save", Path: a.Path, Err: fmt.Errorf("encoding: %w", err)}
	}
	data = append(data, '\n')

	if err := writeAtomic(a.Path, data); err != nil {
		return &types.PersistenceError{Op: "save", Path: a.Path, Err: err}
	}
	return nil
}

// writeAtomic writes data to path using the temp-file, fsync, rename
// pattern. On any failure the temp file is removed and path is untouched.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting temp file mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
