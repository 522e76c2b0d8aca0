package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiendita/internal/application/ledger"
	"github.com/jhoicas/tiendita/internal/application/report"
	"github.com/jhoicas/tiendita/internal/domain/entity"
)

type fakePDF struct {
	title string
	got   *report.Summary
	err   error
}

func (f *fakePDF) GenerateSummaryPDF(_ context.Context, title string, s *report.Summary) ([]byte, error) {
	f.title, f.got = title, s
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3"), nil
}

func seeded(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New()
	pan := l.CreateItem(ledger.ItemInput{Name: "Pan", Stock: 10, Price: 2})
	queso := l.CreateItem(ledger.ItemInput{Name: "Queso", TrackBy: entity.TrackByWeight, Stock: 5, Price: 20})
	l.CreateItem(ledger.ItemInput{Name: "Arroz", Stock: 3, Price: 4})
	huerfano := l.CreateItem(ledger.ItemInput{Name: "Leche", Stock: 5, Price: 3})

	_, err := l.RecordSale(ledger.SaleInput{ItemID: pan.ID, Qty: 3})
	require.NoError(t, err)
	_, err = l.RecordSale(ledger.SaleInput{ItemID: pan.ID, Qty: 1})
	require.NoError(t, err)
	_, err = l.RecordSale(ledger.SaleInput{ItemID: queso.ID, Qty: 0.5})
	require.NoError(t, err)
	_, err = l.RecordSale(ledger.SaleInput{ItemID: huerfano.ID, Qty: 2})
	require.NoError(t, err)
	require.NoError(t, l.DeleteItem(huerfano.ID, false))
	return l
}

func TestSummary_OrdenaPorIngresosYSumaTotales(t *testing.T) {
	uc := report.NewUseCase(seeded(t), nil, "Tienda")
	s := uc.Summary()

	require.Len(t, s.Rows, 3)
	assert.Equal(t, "Queso", s.Rows[0].Name)
	assert.Equal(t, "Pan", s.Rows[1].Name)
	assert.Equal(t, "Arroz", s.Rows[2].Name)

	assert.Equal(t, "0.5", s.Rows[0].Sold.String())
	assert.Equal(t, "4", s.Rows[1].Sold.String())
	assert.Equal(t, 2, s.Rows[1].SaleCount)
	assert.True(t, s.Rows[2].Revenue.IsZero())

	// La venta huérfana de Leche no suma.
	assert.Equal(t, "18", s.Totals.Revenue.String())
	assert.Equal(t, "4", s.Totals.SoldUnits.String())
	assert.Equal(t, "0.5", s.Totals.SoldWeight.String())
	assert.Equal(t, 3, s.Totals.SaleCount)
	// 6*2 + 4.5*20 + 3*4
	assert.Equal(t, "114", s.Totals.StockValue.String())
}

func TestPDF_UsaElGenerador(t *testing.T) {
	gen := &fakePDF{}
	uc := report.NewUseCase(seeded(t), gen, "Tienda")

	doc, name, err := uc.PDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), doc)
	assert.Regexp(t, `^resumen-\d{4}-\d{2}-\d{2}\.pdf$`, name)
	assert.Equal(t, "Tienda", gen.title)
	require.NotNil(t, gen.got)
	assert.Len(t, gen.got.Rows, 3)
}

func TestPDF_ErrorDelGenerador(t *testing.T) {
	boom := errors.New("boom")
	uc := report.NewUseCase(seeded(t), &fakePDF{err: boom}, "Tienda")
	_, _, err := uc.PDF(context.Background())
	assert.ErrorIs(t, err, boom)

	_, _, err = report.NewUseCase(seeded(t), nil, "Tienda").PDF(context.Background())
	assert.Error(t, err)
}

// countingSource cuenta las lecturas del estado.
type countingSource struct {
	snap  entity.Snapshot
	reads int
}

func (s *countingSource) Snapshot() entity.Snapshot {
	s.reads++
	return s.snap
}

func TestUseCase_LeeElEstadoUnaSolaVez(t *testing.T) {
	src := &countingSource{snap: seeded(t).Snapshot()}
	uc := report.NewUseCase(src, nil, "Tienda")

	s := uc.Summary()
	assert.Equal(t, 1, src.reads)
	assert.Len(t, s.Rows, 3)

	uc.Replenishment(decimal.Zero)
	assert.Equal(t, 2, src.reads)
}
