// Package backup codifica y valida el sobre de respaldo {version, exportedAt, items, sales}.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jhoicas/tiendita/internal/domain"
	"github.com/jhoicas/tiendita/internal/domain/entity"
)

// Encode escribe el respaldo como JSON indentado.
func Encode(w io.Writer, b entity.Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("codificar respaldo: %w", err)
	}
	return nil
}

// Decode lee un respaldo. Cualquier defecto (JSON inválido, items o sales ausentes o que
// no sean arreglos, registros ilegibles, ids vacíos o repetidos) devuelve domain.ErrMalformedBackup.
func Decode(r io.Reader) (entity.Backup, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return entity.Backup{}, fmt.Errorf("leer respaldo: %w", err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return entity.Backup{}, malformed("no es un objeto JSON")
	}
	for _, key := range []string{"items", "sales"} {
		if !isArray(envelope[key]) {
			return entity.Backup{}, malformed(fmt.Sprintf("falta el arreglo %q", key))
		}
	}

	var b entity.Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return entity.Backup{}, malformed(err.Error())
	}
	if b.Version > entity.BackupVersion {
		return entity.Backup{}, malformed(fmt.Sprintf("versión %d no soportada", b.Version))
	}
	if err := b.CheckIDs(); err != nil {
		return entity.Backup{}, malformed(err.Error())
	}
	return b, nil
}

func isArray(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && v[0] == '['
}

func malformed(detail string) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedBackup, detail)
}
