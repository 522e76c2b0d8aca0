package repository

import (
	"context"
	"errors"
)

// Claves de las colecciones persistidas.
const (
	KeyItems = "items"
	KeySales = "sales"
)

// ErrKeyNotFound la clave no existe en el almacén.
var ErrKeyNotFound = errors.New("clave no encontrada")

// KeyValueStore define el puerto del almacenamiento local del dispositivo.
// Los valores se serializan como JSON; Get devuelve ErrKeyNotFound si la clave no existe.
// SetMany escribe todas las claves en una sola transacción.
type KeyValueStore interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any) error
	SetMany(ctx context.Context, entries map[string]any) error
	Close() error
}

// BlobStore guarda contenido binario opaco (fotos) por clave.
type BlobStore interface {
	PutBlob(ctx context.Context, key string, data []byte) error
	GetBlob(ctx context.Context, key string) ([]byte, error)
}

// LocalStore almacén completo del dispositivo: colecciones y fotos.
type LocalStore interface {
	KeyValueStore
	BlobStore
}
