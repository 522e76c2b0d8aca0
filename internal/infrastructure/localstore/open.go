// Package localstore elige el backend de almacenamiento local según la configuración.
package localstore

import (
	"fmt"

	"github.com/jhoicas/tiendita/internal/domain/repository"
	"github.com/jhoicas/tiendita/internal/infrastructure/badgerstore"
	"github.com/jhoicas/tiendita/internal/infrastructure/sqlitestore"
	"github.com/jhoicas/tiendita/pkg/config"
)

// Open abre Badger (por defecto) o SQLite.
func Open(cfg config.StoreConfig) (repository.LocalStore, error) {
	switch cfg.Driver {
	case "", config.StoreBadger:
		s, err := badgerstore.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreSQLite:
		s, err := sqlitestore.Open(cfg.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Driver)
}
