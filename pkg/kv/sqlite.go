package kv

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite is a Store backed by a single sqlite table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies migrations.
func OpenSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_sync=FULL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("kv: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("kv: migrations source: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("kv: migrations driver: %w", err)
	}
	// The migrate instance is not closed: closing it closes db as well.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("kv: migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("kv: migrate up: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) write(ctx context.Context, key string, kind Kind, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO kv (key, kind, value, updated_at) VALUES (?, ?, ?, datetime('now'))
ON CONFLICT(key) DO UPDATE SET kind = excluded.kind, value = excluded.value, updated_at = excluded.updated_at`,
		key, string(kind), string(raw))
	if err != nil {
		return fmt.Errorf("kv: write %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) read(ctx context.Context, key string, want Kind, dst any) (bool, error) {
	var kind, raw string
	err := s.db.QueryRowContext(ctx, `SELECT kind, value FROM kv WHERE key = ?`, key).Scan(&kind, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("kv: read %q: %w", key, err)
	}
	if Kind(kind) != want {
		return false, fmt.Errorf("kv: %q holds %s: %w", key, kind, ErrTypeMismatch)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("kv: decode %q: %w", key, err)
	}
	return true, nil
}

// Save implements Store.
func (s *SQLite) Save(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return s.write(ctx, key, KindString, value)
}

// Read implements Store.
func (s *SQLite) Read(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	var v string
	ok, err := s.read(ctx, key, KindString, &v)
	if err != nil || !ok {
		return "", false, err
	}
	return v, true, nil
}

// SaveBool implements Store.
func (s *SQLite) SaveBool(ctx context.Context, key string, value bool) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return s.write(ctx, key, KindBool, value)
}

// ReadBool implements Store.
func (s *SQLite) ReadBool(ctx context.Context, key string) (bool, bool, error) {
	if err := checkKey(key); err != nil {
		return false, false, err
	}
	var v bool
	ok, err := s.read(ctx, key, KindBool, &v)
	if err != nil || !ok {
		return false, false, err
	}
	return v, true, nil
}

// List implements Lister.
func (s *SQLite) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, kind, value FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("kv: list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var key, kind, raw string
		if err := rows.Scan(&key, &kind, &raw); err != nil {
			return nil, fmt.Errorf("kv: list: %w", err)
		}
		e := Entry{Key: key, Kind: Kind(kind), Value: raw}
		if e.Kind == KindString {
			var s string
			if err := json.Unmarshal([]byte(raw), &s); err != nil {
				return nil, fmt.Errorf("kv: decode %q: %w", key, err)
			}
			e.Value = s
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
