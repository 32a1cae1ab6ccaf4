// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The mapping lives in one table. Each row is one patient: the id, its
// position in the mapping, and the stored record as a JSON document.
// Save replaces every row inside a single transaction, so a concurrent
// Load sees the mapping either before or after the save.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/aanand-mishra/patients-api/internal/storage"
	"github.com/aanand-mishra/patients-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// Compile-time check that *SQLite satisfies storage.Storage.
var _ storage.Storage = (*SQLite)(nil)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the patients table if it
// does not already exist, and returns a ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Schema:
	//   id      : patient id, the mapping key
	//   position: order of the key within the mapping
	//   data    : the stored record (every field except id) as JSON
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS patients (
			id       TEXT    PRIMARY KEY,
			position INTEGER NOT NULL,
			data     TEXT    NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Load reads every row in position order and rebuilds the mapping.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Load(ctx context.Context) (*types.Records, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, data FROM patients ORDER BY position",
	)
	if err != nil {
		return nil, storage.Unavailable("sqlite.Load", fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	records := types.NewRecords()
	for rows.Next() {
		var (
			id   string
			data string
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, storage.Unavailable("sqlite.Load", fmt.Errorf("scan row: %w", err))
		}

		var record types.Record
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return nil, storage.Unavailable("sqlite.Load", fmt.Errorf("decode %q: %w", id, err))
		}
		records.Set(id, record)
	}

	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("sqlite.Load", fmt.Errorf("rows iteration: %w", err))
	}

	return records, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Save deletes every row and inserts the mapping in order, all in one
// transaction. Any failure rolls the table back to its previous contents.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Save(ctx context.Context, records *types.Records) (err error) {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Unavailable("sqlite.Save", fmt.Errorf("begin: %w", err))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM patients"); err != nil {
		return storage.Unavailable("sqlite.Save", fmt.Errorf("clear: %w", err))
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO patients (id, position, data) VALUES (?, ?, ?)",
	)
	if err != nil {
		return storage.Unavailable("sqlite.Save", fmt.Errorf("prepare: %w", err))
	}
	defer stmt.Close()

	for i, id := range records.IDs() {
		record, _ := records.Get(id)

		data, mErr := json.Marshal(record)
		if mErr != nil {
			err = storage.Unavailable("sqlite.Save", fmt.Errorf("encode %q: %w", id, mErr))
			return err
		}

		if _, err = stmt.ExecContext(ctx, id, i, string(data)); err != nil {
			return storage.Unavailable("sqlite.Save", fmt.Errorf("insert %q: %w", id, err))
		}
	}

	if err = tx.Commit(); err != nil {
		return storage.Unavailable("sqlite.Save", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
