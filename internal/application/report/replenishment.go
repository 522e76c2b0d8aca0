package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tiendita/internal/application/ledger"
	"github.com/jhoicas/tiendita/internal/domain/entity"
)

// DefaultReorderPoint umbral usado cuando no se indica uno.
var DefaultReorderPoint = decimal.NewFromInt(5)

// Suggestion artículo con stock en o bajo el punto de reorden.
type Suggestion struct {
	ItemID        string
	Name          string
	SKU           string
	TrackBy       entity.TrackMode
	UnitLabel     string
	CurrentStock  decimal.Decimal
	ReorderPoint  decimal.Decimal
	IdealStock    decimal.Decimal // 1.5 x punto de reorden
	SuggestedQty  decimal.Decimal
	EstimatedCost decimal.Decimal // a precio de catálogo
	Sold          decimal.Decimal
	Priority      int // 1 = más urgente
}

// Replenishment devuelve los artículos cuyo stock está en o bajo reorderPoint, con la
// cantidad sugerida para volver al stock ideal. Prioriza mayor volumen vendido y después
// mayor déficit. Un reorderPoint negativo o cero usa DefaultReorderPoint.
func (uc *UseCase) Replenishment(reorderPoint decimal.Decimal) []Suggestion {
	if !reorderPoint.IsPositive() {
		reorderPoint = DefaultReorderPoint
	}
	snap := uc.source.Snapshot()
	items := snap.Items
	stats := ledger.ComputeStats(items, snap.Sales)
	ideal := reorderPoint.Mul(decimal.NewFromFloat(1.5))

	out := make([]Suggestion, 0)
	for _, it := range items {
		if it.Stock.GreaterThan(reorderPoint) {
			continue
		}
		st := stats[it.ID]
		sold := st.SoldUnits
		if it.TrackBy == entity.TrackByWeight {
			sold = st.SoldWeight
		}
		qty := entity.NonNegative(ideal.Sub(it.Stock))
		out = append(out, Suggestion{
			ItemID:        it.ID,
			Name:          it.Name,
			SKU:           it.SKU,
			TrackBy:       it.TrackBy,
			UnitLabel:     it.UnitLabel,
			CurrentStock:  it.Stock,
			ReorderPoint:  reorderPoint,
			IdealStock:    ideal,
			SuggestedQty:  qty,
			EstimatedCost: qty.Mul(it.Price),
			Sold:          sold,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Sold.Equal(b.Sold) {
			return a.Sold.GreaterThan(b.Sold)
		}
		// Tiebreak: menor stock primero
		return a.CurrentStock.LessThan(b.CurrentStock)
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out
}
