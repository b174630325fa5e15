package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// inventoryVersion is stored in PRAGMA user_version. Bump it when schema.sql changes.
const inventoryVersion = 1

// inventoryTables are the tables schema.sql creates
var inventoryTables = []string{"modules", "levels", "locations", "items", "item_locations"}

// ErrSchemaMismatch means the file holds an inventory this build cannot read
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store persists the inventory (modules, levels, locations and items) in SQLite
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the inventory database and creates the schema
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// pragmas are per connection
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// migrate creates the inventory tables in a fresh file and refuses files
// written by another schema version
func (s *Store) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version == inventoryVersion {
		return nil
	}
	if version != 0 {
		return fmt.Errorf("%w: %s is at v%d, expected v%d (delete the database and re-import)",
			ErrSchemaMismatch, s.path, version, inventoryVersion)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(inventoryTables)), ",")
	args := make([]any, len(inventoryTables))
	for i, name := range inventoryTables {
		args[i] = name
	}
	var existing int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name IN ("+placeholders+")", args...,
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("look for inventory tables: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("%w: %s has inventory tables but no version", ErrSchemaMismatch, s.path)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create inventory tables: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", inventoryVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}

	log.Printf("[STORE] Created %d inventory tables (v%d) in %s", len(inventoryTables), inventoryVersion, s.path)
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Ping checks that the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func nullableFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v > 0}
}

func nullableString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
