// Package badgerstore implementa el almacén local del dispositivo sobre Badger.
package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/jhoicas/tiendita/internal/domain/repository"
)

var (
	_ repository.KeyValueStore = (*Store)(nil)
	_ repository.BlobStore     = (*Store)(nil)
)

// Store guarda valores JSON y blobs por clave en una base Badger embebida.
type Store struct {
	db *badger.DB
}

// Open abre (o crea) la base en path. Un path vacío abre una base en memoria.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("abrir badger: %w", err)
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

// SetMany serializa todos los valores y los escribe en una sola transacción.
func (s *Store) SetMany(_ context.Context, entries map[string]any) error {
	encoded := make(map[string][]byte, len(entries))
	for k, v := range entries {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("codificar %q: %w", k, err)
		}
		encoded[k] = raw
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		for k, raw := range encoded {
			if err := txn.Set([]byte(k), raw); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("escribir badger: %w", err)
	}
	return nil
}

// PutBlob guarda bytes crudos.
func (s *Store) PutBlob(_ context.Context, key string, data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("escribir blob: %w", err)
	}
	return nil
}

// GetBlob devuelve una copia de los bytes guardados en key.
func (s *Store) GetBlob(_ context.Context, key string) ([]byte, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, repository.ErrKeyNotFound
		}
		return nil, fmt.Errorf("leer badger: %w", err)
	}
	return raw, nil
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}
