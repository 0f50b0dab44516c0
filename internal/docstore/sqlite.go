package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLite implements Store over a single SQLite file. A file on a shared
// path is the smallest thing that behaves like the remote document service;
// the sync layer never knows the difference.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the document store at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening document store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to document store: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running document store migrations: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			data       TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating documents table: %w", err)
	}
	return nil
}

// Collection returns a handle to the named collection.
func (s *SQLite) Collection(name string) Collection {
	return &sqliteCollection{db: s.db, name: name}
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type sqliteCollection struct {
	db   *sql.DB
	name string
}

func (c *sqliteCollection) Get(ctx context.Context, id string) (Doc, bool, error) {
	var data string
	err := c.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`,
		c.name, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading document %s/%s: %w", c.name, id, err)
	}

	doc, err := decodeDoc(data)
	if err != nil {
		return nil, false, fmt.Errorf("decoding document %s/%s: %w", c.name, id, err)
	}
	return doc, true, nil
}

func (c *sqliteCollection) Set(ctx context.Context, id string, doc Doc) error {
	return c.transact(ctx, func(tx *sql.Tx) error {
		current, _, err := c.getTx(ctx, tx, id)
		if err != nil {
			return err
		}
		return c.writeTx(ctx, tx, id, merged(current, doc))
	})
}

func (c *sqliteCollection) List(ctx context.Context) (map[string]Doc, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE collection = ?`, c.name)
	if err != nil {
		return nil, fmt.Errorf("listing collection %s: %w", c.name, err)
	}
	defer rows.Close()

	out := make(map[string]Doc)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scanning document in %s: %w", c.name, err)
		}
		doc, err := decodeDoc(data)
		if err != nil {
			return nil, fmt.Errorf("decoding document %s/%s: %w", c.name, id, err)
		}
		out[id] = doc
	}
	return out, rows.Err()
}

// Update runs fn inside a transaction so the read-check-write is atomic
// against concurrent claimants.
func (c *sqliteCollection) Update(ctx context.Context, id string, fn UpdateFunc) error {
	return c.transact(ctx, func(tx *sql.Tx) error {
		current, exists, err := c.getTx(ctx, tx, id)
		if err != nil {
			return err
		}
		next, err := fn(current, exists)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		return c.writeTx(ctx, tx, id, next)
	})
}

func (c *sqliteCollection) transact(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction on %s: %w", c.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction on %s: %w", c.name, err)
	}
	return nil
}

func (c *sqliteCollection) getTx(ctx context.Context, tx *sql.Tx, id string) (Doc, bool, error) {
	var data string
	err := tx.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`,
		c.name, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading document %s/%s: %w", c.name, id, err)
	}
	doc, err := decodeDoc(data)
	if err != nil {
		return nil, false, fmt.Errorf("decoding document %s/%s: %w", c.name, id, err)
	}
	return doc, true, nil
}

func (c *sqliteCollection) writeTx(ctx context.Context, tx *sql.Tx, id string, doc Doc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document %s/%s: %w", c.name, id, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET data = excluded.data
	`, c.name, id, string(data))
	if err != nil {
		return fmt.Errorf("writing document %s/%s: %w", c.name, id, err)
	}
	return nil
}

func decodeDoc(data string) (Doc, error) {
	var doc Doc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
