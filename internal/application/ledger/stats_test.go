package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiendita/internal/application/ledger"
	"github.com/jhoicas/tiendita/internal/domain/entity"
)

func TestComputeStats_SinVentasTodoEnCero(t *testing.T) {
	items := []entity.Item{{ID: "a", TrackBy: entity.TrackByUnit}, {ID: "b", TrackBy: entity.TrackByWeight}}

	stats := ledger.ComputeStats(items, nil)
	require.Len(t, stats, 2)
	for id, st := range stats {
		assert.True(t, st.Revenue.IsZero(), id)
		assert.True(t, st.SoldUnits.IsZero(), id)
		assert.True(t, st.SoldWeight.IsZero(), id)
	}
}

func TestComputeStats_OmiteHuerfanasYRecortaNegativos(t *testing.T) {
	items := []entity.Item{{ID: "a", TrackBy: entity.TrackByUnit}, {ID: "b", TrackBy: entity.TrackByWeight}}
	sales := []entity.Sale{
		{ID: "1", ItemID: "a", TrackBy: entity.TrackByUnit, Qty: decimal.NewFromInt(2), Total: decimal.NewFromInt(20)},
		{ID: "2", ItemID: "a", TrackBy: entity.TrackByUnit, Qty: decimal.NewFromInt(-5), Total: decimal.NewFromInt(-50)},
		{ID: "3", ItemID: "b", TrackBy: entity.TrackByWeight, Qty: decimal.RequireFromString("1.25"), Total: decimal.RequireFromString("12.5")},
		{ID: "4", ItemID: "ghost", TrackBy: entity.TrackByUnit, Qty: decimal.NewFromInt(9), Total: decimal.NewFromInt(90)},
	}

	stats := ledger.ComputeStats(items, sales)
	require.Len(t, stats, 2, "la venta huérfana no crea entrada")
	assertDec(t, "2", stats["a"].SoldUnits)
	assertDec(t, "20", stats["a"].Revenue)
	assertDec(t, "1.25", stats["b"].SoldWeight)
	assertDec(t, "0", stats["b"].SoldUnits)
	assertDec(t, "12.5", stats["b"].Revenue)
}

func TestLedgerStats_ReflejaVentas(t *testing.T) {
	l, _ := newTestLedger(t)
	item := unitItem(l, 10, 2.5)
	_, err := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: 4})
	require.NoError(t, err)

	st := l.Stats()[item.ID]
	assertDec(t, "4", st.SoldUnits)
	assertDec(t, "10", st.Revenue)
}
