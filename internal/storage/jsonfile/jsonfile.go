// Package jsonfile stores the patient mapping as a single JSON object in a
// flat file: {"P001": {...}, "P002": {...}}.
//
// Every Load reads and parses the whole file. Every Save writes the whole
// mapping to a temporary file next to the target and renames it into
// place, so readers see either the old file or the new one.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/aanand-mishra/patients-api/internal/storage"
	"github.com/aanand-mishra/patients-api/internal/types"
)

// Compile-time check that *Store satisfies storage.Storage.
var _ storage.Storage = (*Store)(nil)

// Store is the JSON file backend.
type Store struct {
	path string
}

// New returns a Store for path. When createIfMissing is true and no file
// exists yet, it is created holding an empty mapping. A file that goes
// missing after New is reported by Load as storage.ErrUnavailable.
func New(path string, createIfMissing bool) (*Store, error) {
	s := &Store{path: path}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, fs.ErrNotExist) && createIfMissing:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("jsonfile.New: create dir: %w", err)
		}
		if err := s.Save(context.Background(), types.NewRecords()); err != nil {
			return nil, fmt.Errorf("jsonfile.New: seed file: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("jsonfile.New: stat %s: %w", path, err)
	}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Load reads and parses the whole file.
func (s *Store) Load(ctx context.Context) (*types.Records, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, storage.Unavailable("jsonfile.Load", err)
	}

	records := types.NewRecords()
	if err := json.Unmarshal(data, records); err != nil {
		return nil, storage.Unavailable("jsonfile.Load", fmt.Errorf("parse %s: %w", s.path, err))
	}
	return records, nil
}

// Save atomically replaces the file with records.
func (s *Store) Save(ctx context.Context, records *types.Records) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(records)
	if err != nil {
		return storage.Unavailable("jsonfile.Save", fmt.Errorf("encode: %w", err))
	}

	if err := writeAtomic(s.path, data); err != nil {
		return storage.Unavailable("jsonfile.Save", err)
	}
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (s *Store) Close() error { return nil }

// writeAtomic writes data to a temp file in the target's directory, syncs
// it, and renames it over path.
func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
