// Package sqlitestore implementa el almacén local sobre SQLite (modernc.org/sqlite, sin CGO).
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/tiendita/internal/domain/repository"
)

var (
	_ repository.KeyValueStore = (*Store)(nil)
	_ repository.BlobStore     = (*Store)(nil)
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`

const upsert = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

// Store tabla clave/valor en un archivo SQLite.
type Store struct {
	db *sqlx.DB
}

// Open abre la base indicada por dsn (ruta de archivo o ":memory:") y crea el esquema.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Una sola conexión: SQLite serializa escrituras y ":memory:" es por conexión.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear esquema: %w", err)
	}
	return &Store{db: db}, nil
}

// Get decodifica en dst el valor JSON guardado en key.
func (s *Store) Get(ctx context.Context, key string, dst any) error {
	raw, err := s.GetBlob(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decodificar %q: %w", key, err)
	}
	return nil
}

// Set guarda value serializado como JSON.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	return s.SetMany(ctx, map[string]any{key: value})
}

// SetMany escribe todas las claves en una transacción.
func (s *Store) SetMany(ctx context.Context, entries map[string]any) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for k, v := range entries {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("codificar %q: %w", k, err)
		}
		if _, err := tx.ExecContext(ctx, upsert, k, raw); err != nil {
			return fmt.Errorf("upsert %q: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// PutBlob guarda bytes crudos.
func (s *Store) PutBlob(ctx context.Context, key string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, upsert, key, data); err != nil {
		return fmt.Errorf("upsert blob %q: %w", key, err)
	}
	return nil
}

// GetBlob devuelve los bytes guardados en key.
func (s *Store) GetBlob(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw, `SELECT value FROM kv WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrKeyNotFound
		}
		return nil, fmt.Errorf("leer %q: %w", key, err)
	}
	return raw, nil
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}
