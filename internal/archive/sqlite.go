package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pixil98/go-esge/internal/storage"
)

var ErrNotFound = errors.New("world not archived")

// Entry describes one archived snapshot.
type Entry struct {
	Name    string
	WorldId string
	Records int
	SavedAt time.Time
}

// SQLiteArchive keeps named world snapshots in a SQLite database.
type SQLiteArchive struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteArchive, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteArchive{db: db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS worlds (
			name TEXT PRIMARY KEY,
			world_id TEXT NOT NULL,
			records INTEGER NOT NULL,
			saved_at INTEGER NOT NULL,
			data TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("initializing archive schema: %w", err)
		}
	}
	return nil
}

// Put stores s under name, replacing any earlier snapshot with that name.
func (a *SQLiteArchive) Put(ctx context.Context, name string, s *storage.Store) error {
	if name == "" {
		return fmt.Errorf("archive name must be set")
	}
	data, err := s.Serialize()
	if err != nil {
		return err
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO worlds (name, world_id, records, saved_at, data) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			world_id = excluded.world_id,
			records = excluded.records,
			saved_at = excluded.saved_at,
			data = excluded.data`,
		name, s.Id(), s.Len(), time.Now().UnixMilli(), data)
	if err != nil {
		return fmt.Errorf("archiving %q: %w", name, err)
	}
	return nil
}

// Get returns the snapshot stored under name.
func (a *SQLiteArchive) Get(ctx context.Context, name string) (*storage.Store, error) {
	var data string
	err := a.db.QueryRowContext(ctx, "SELECT data FROM worlds WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}

	s, err := storage.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", name, err)
	}
	return s, nil
}

// List returns the archived names in sorted order.
func (a *SQLiteArchive) List(ctx context.Context) ([]string, error) {
	entries, err := a.Entries(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

// Entries describes every snapshot, sorted by name.
func (a *SQLiteArchive) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := a.db.QueryContext(ctx, "SELECT name, world_id, records, saved_at FROM worlds ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing archive: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var savedAt int64
		if err := rows.Scan(&e.Name, &e.WorldId, &e.Records, &savedAt); err != nil {
			return nil, fmt.Errorf("listing archive: %w", err)
		}
		e.SavedAt = time.UnixMilli(savedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing archive: %w", err)
	}
	return entries, nil
}

// Delete removes the snapshot stored under name.
func (a *SQLiteArchive) Delete(ctx context.Context, name string) error {
	res, err := a.db.ExecContext(ctx, "DELETE FROM worlds WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}
