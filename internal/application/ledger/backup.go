package ledger

import (
	"fmt"

	"github.com/jhoicas/tiendita/internal/domain"
	"github.com/jhoicas/tiendita/internal/domain/entity"
)

// Export arma el sobre de respaldo con el estado completo, incluidas las ventas huérfanas.
func (l *Ledger) Export() entity.Backup {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return entity.Backup{
		Version:    entity.BackupVersion,
		ExportedAt: l.now(),
		Items:      copyItems(l.items),
		Sales:      copySales(l.sales),
	}
}

// Import reemplaza ambas colecciones con las del respaldo. Si el respaldo no trae
// alguna de las dos colecciones, o algún registro no tiene id o lo repite, se rechaza
// completo y el estado no cambia.
func (l *Ledger) Import(b entity.Backup) error {
	if b.Items == nil || b.Sales == nil {
		return domain.ErrMalformedBackup
	}
	if err := b.CheckIDs(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedBackup, err)
	}
	items := itemPointers(b.Items)
	sales := salePointers(b.Sales)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = items
	l.sales = sales
	l.commit()

	l.log.Info().Int("items", len(items)).Int("sales", len(sales)).Int("version", b.Version).Msg("respaldo importado")
	return nil
}
