package entity

import (
	"fmt"
	"time"
)

// BackupVersion versión actual del sobre de respaldo.
const BackupVersion = 1

// Backup sobre versionado de exportación/importación con ambas colecciones.
type Backup struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Items      []Item    `json:"items"`
	Sales      []Sale    `json:"sales"`
}

// CheckIDs exige id no vacío y único dentro de cada colección.
func (b Backup) CheckIDs() error {
	seen := make(map[string]struct{}, len(b.Items))
	for i := range b.Items {
		if err := checkID(seen, "items", i, b.Items[i].ID); err != nil {
			return err
		}
	}
	seen = make(map[string]struct{}, len(b.Sales))
	for i := range b.Sales {
		if err := checkID(seen, "sales", i, b.Sales[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func checkID(seen map[string]struct{}, collection string, pos int, id string) error {
	if id == "" {
		return fmt.Errorf("%s[%d] sin id", collection, pos)
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("%s[%d] repite el id %q", collection, pos, id)
	}
	seen[id] = struct{}{}
	return nil
}

// Snapshot copia inmutable del estado del ledger tras una mutación.
type Snapshot struct {
	Items []Item
	Sales []Sale
}
