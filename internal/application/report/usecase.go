// Package report arma el resumen de ventas e inventario por artículo.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tiendita/internal/application/ledger"
	"github.com/jhoicas/tiendita/internal/domain/entity"
)

// Row línea del resumen para un artículo.
type Row struct {
	ItemID    string
	Name      string
	SKU       string
	TrackBy   entity.TrackMode
	UnitLabel string
	Stock     decimal.Decimal
	Price     decimal.Decimal
	Sold      decimal.Decimal // unidades o kg según TrackBy
	Revenue   decimal.Decimal
	SaleCount int
}

// Totals acumulados de todo el catálogo.
type Totals struct {
	Revenue    decimal.Decimal
	SoldUnits  decimal.Decimal
	SoldWeight decimal.Decimal
	SaleCount  int
	StockValue decimal.Decimal // stock actual valorizado a precio de catálogo
}

// Summary resumen completo, filas ordenadas por ingresos descendente.
type Summary struct {
	GeneratedAt time.Time
	Rows        []Row
	Totals      Totals
}

// UseCase genera el resumen y su versión PDF.
type UseCase struct {
	source    Source
	generator SummaryPDFGenerator
	title     string
	now       func() time.Time
}

// NewUseCase construye el caso de uso; generator puede ser nil si no se exporta PDF.
func NewUseCase(source Source, generator SummaryPDFGenerator, title string) *UseCase {
	return &UseCase{
		source:    source,
		generator: generator,
		title:     title,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Summary calcula el resumen con el estado actual. Las ventas huérfanas no cuentan.
func (uc *UseCase) Summary() *Summary {
	snap := uc.source.Snapshot()
	items, sales := snap.Items, snap.Sales
	stats := ledger.ComputeStats(items, sales)

	counts := make(map[string]int, len(items))
	for _, s := range sales {
		counts[s.ItemID]++
	}

	out := &Summary{
		GeneratedAt: uc.now(),
		Rows:        make([]Row, 0, len(items)),
		Totals: Totals{
			Revenue:    decimal.Zero,
			SoldUnits:  decimal.Zero,
			SoldWeight: decimal.Zero,
			StockValue: decimal.Zero,
		},
	}
	for _, it := range items {
		st := stats[it.ID]
		sold := st.SoldUnits
		if it.TrackBy == entity.TrackByWeight {
			sold = st.SoldWeight
		}
		out.Rows = append(out.Rows, Row{
			ItemID:    it.ID,
			Name:      it.Name,
			SKU:       it.SKU,
			TrackBy:   it.TrackBy,
			UnitLabel: it.UnitLabel,
			Stock:     it.Stock,
			Price:     it.Price,
			Sold:      sold,
			Revenue:   st.Revenue,
			SaleCount: counts[it.ID],
		})
		out.Totals.Revenue = out.Totals.Revenue.Add(st.Revenue)
		out.Totals.SoldUnits = out.Totals.SoldUnits.Add(st.SoldUnits)
		out.Totals.SoldWeight = out.Totals.SoldWeight.Add(st.SoldWeight)
		out.Totals.SaleCount += counts[it.ID]
		out.Totals.StockValue = out.Totals.StockValue.Add(it.Stock.Mul(it.Price))
	}

	sort.SliceStable(out.Rows, func(i, j int) bool {
		if c := out.Rows[i].Revenue.Cmp(out.Rows[j].Revenue); c != 0 {
			return c > 0
		}
		return out.Rows[i].Name < out.Rows[j].Name
	})
	return out
}

// PDF genera el resumen en PDF y devuelve sus bytes junto con el nombre de archivo sugerido.
func (uc *UseCase) PDF(ctx context.Context) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("report: generador pdf no configurado")
	}
	s := uc.Summary()
	doc, err := uc.generator.GenerateSummaryPDF(ctx, uc.title, s)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	filename := fmt.Sprintf("resumen-%s.pdf", s.GeneratedAt.Format("2006-01-02"))
	return doc, filename, nil
}
