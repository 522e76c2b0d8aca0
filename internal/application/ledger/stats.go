package ledger

import "github.com/jhoicas/tiendita/internal/domain/entity"

// ComputeStats recalcula desde cero las ventas acumuladas por artículo.
// Todo artículo tiene entrada (en cero si no tiene ventas). Las ventas de artículos
// inexistentes se omiten; cantidades e ingresos negativos se llevan a cero antes de sumar.
func ComputeStats(items []entity.Item, sales []entity.Sale) map[string]entity.ItemStats {
	stats := make(map[string]entity.ItemStats, len(items))
	for _, it := range items {
		stats[it.ID] = entity.ItemStats{}
	}
	for i := range sales {
		s := &sales[i]
		st, ok := stats[s.ItemID]
		if !ok {
			continue
		}
		st.SoldUnits = st.SoldUnits.Add(entity.NonNegative(s.QtyUnits()))
		st.SoldWeight = st.SoldWeight.Add(entity.NonNegative(s.QtyWeight()))
		st.Revenue = st.Revenue.Add(entity.NonNegative(s.Total))
		stats[s.ItemID] = st
	}
	return stats
}
