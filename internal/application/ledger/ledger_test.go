package ledger_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiendita/internal/application/ledger"
	"github.com/jhoicas/tiendita/internal/domain"
	"github.com/jhoicas/tiendita/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// newTestLedger construye un ledger con reloj fijo, IDs secuenciales y un observador
// que cuenta las notificaciones recibidas.
func newTestLedger(t *testing.T) (*ledger.Ledger, *int) {
	t.Helper()
	seq := 0
	events := 0
	l := ledger.New(
		ledger.WithClock(func() time.Time { return testNow }),
		ledger.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
		ledger.WithObserver(ledger.ObserverFunc(func(entity.Snapshot) { events++ })),
	)
	return l, &events
}

func f(v float64) *float64 { return &v }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...string) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s %v", want, got.String(), msg)
}

func unitItem(l *ledger.Ledger, stock, price float64) *entity.Item {
	return l.CreateItem(ledger.ItemInput{Name: "Gaseosa", TrackBy: entity.TrackByUnit, Stock: stock, Price: price})
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateItem_NormalizaEntrada(t *testing.T) {
	l, events := newTestLedger(t)

	item := l.CreateItem(ledger.ItemInput{
		Name:    "  Arroz  ",
		SKU:     " ARZ-1 ",
		TrackBy: entity.TrackByWeight,
		Price:   4.5,
		Stock:   -3,
	})

	assert.Equal(t, "id-1", item.ID)
	assert.Equal(t, "Arroz", item.Name)
	assert.Equal(t, "ARZ-1", item.SKU)
	assert.Equal(t, "kg", item.UnitLabel, "unitLabel por defecto según trackBy")
	assertDec(t, "0", item.Stock, "stock negativo se lleva a cero")
	assertDec(t, "4.5", item.PricePerWeight())
	assertDec(t, "0", item.PricePerUnit())
	assert.Equal(t, testNow, item.CreatedAt)
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)
	assert.Equal(t, 1, *events)
}

func TestCreateItem_StockNoFinitoEsCero(t *testing.T) {
	l, _ := newTestLedger(t)
	item := l.CreateItem(ledger.ItemInput{Name: "Pan", Stock: math.Inf(1), Price: math.NaN()})
	assertDec(t, "0", item.Stock)
	assertDec(t, "0", item.Price)
	assert.Equal(t, entity.TrackByUnit, item.TrackBy)
	assert.Equal(t, "unit", item.UnitLabel)
}

func TestCreateItem_MasRecientePrimero(t *testing.T) {
	l, _ := newTestLedger(t)
	first := unitItem(l, 1, 1)
	second := unitItem(l, 1, 1)

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestUpdateItem_FusionaCampos(t *testing.T) {
	now := testNow
	l := ledger.New(ledger.WithClock(func() time.Time { return now }))
	item := unitItem(l, 5, 10)

	later := testNow.Add(time.Hour)
	now = later
	out, err := l.UpdateItem(item.ID, ledger.ItemPatch{Name: strPtr(" Cola "), Price: f(12)})
	require.NoError(t, err)
	assert.Equal(t, "Cola", out.Name)
	assertDec(t, "12", out.Price)
	assertDec(t, "5", out.Stock, "stock sin cambios")
	assert.Equal(t, later, out.UpdatedAt)
	assert.Equal(t, testNow, out.CreatedAt)
}

func TestUpdateItem_NoPermiteCambiarTrackBy(t *testing.T) {
	l, events := newTestLedger(t)
	item := unitItem(l, 5, 10)
	before := *events

	weight := entity.TrackByWeight
	_, err := l.UpdateItem(item.ID, ledger.ItemPatch{TrackBy: &weight, Price: f(99)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := l.Item(item.ID)
	require.NoError(t, err)
	assertDec(t, "10", got.Price, "rechazo sin cambios parciales")
	assert.Equal(t, before, *events)
}

func TestUpdateItem_Inexistente(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.UpdateItem("nope", ledger.ItemPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_RecortaEnCero(t *testing.T) {
	l, _ := newTestLedger(t)
	item := unitItem(l, 3, 1)

	out, err := l.AdjustStock(item.ID, -10, 0)
	require.NoError(t, err)
	assertDec(t, "0", out.Stock)

	out, err = l.AdjustStock(item.ID, 4, 100)
	require.NoError(t, err)
	assertDec(t, "4", out.Stock, "solo aplica el delta del modo del artículo")
}

func TestAdjustStock_PorPeso(t *testing.T) {
	l, _ := newTestLedger(t)
	item := l.CreateItem(ledger.ItemInput{Name: "Queso", TrackBy: entity.TrackByWeight, Stock: 1.5})

	out, err := l.AdjustStock(item.ID, 10, 0.25)
	require.NoError(t, err)
	assertDec(t, "1.75", out.StockWeight())
}

func TestDeleteItem_ConYSinCascada(t *testing.T) {
	l, _ := newTestLedger(t)
	a := unitItem(l, 10, 1)
	b := unitItem(l, 10, 1)
	_, err := l.RecordSale(ledger.SaleInput{ItemID: a.ID, Qty: 1})
	require.NoError(t, err)
	_, err = l.RecordSale(ledger.SaleInput{ItemID: b.ID, Qty: 1})
	require.NoError(t, err)

	require.NoError(t, l.DeleteItem(a.ID, true))
	assert.Len(t, l.AllSales(), 1, "cascada elimina las ventas del artículo")

	require.NoError(t, l.DeleteItem(b.ID, false))
	assert.Len(t, l.AllSales(), 1, "sin cascada la venta queda huérfana")
	assert.Empty(t, l.Sales(), "las ventas huérfanas no se muestran")

	assert.ErrorIs(t, l.DeleteItem(b.ID, false), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_StockInsuficienteSeRechaza(t *testing.T) {
	l, events := newTestLedger(t)
	item := unitItem(l, 3, 10)
	before := *events

	_, err := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, _ := l.Item(item.ID)
	assertDec(t, "3", got.Stock)
	assert.Empty(t, l.AllSales())
	assert.Equal(t, before, *events, "un rechazo no notifica al observador")
}

func TestRecordSale_AgotaStockYCalculaTotal(t *testing.T) {
	l, _ := newTestLedger(t)
	item := unitItem(l, 3, 10)

	sale, err := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: 3, Note: " contado "})
	require.NoError(t, err)
	assertDec(t, "30", sale.Total)
	assertDec(t, "10", sale.Price)
	assertDec(t, "3", sale.QtyUnits())
	assert.Equal(t, "contado", sale.Note)
	assert.Equal(t, testNow, sale.Timestamp)

	got, _ := l.Item(item.ID)
	assertDec(t, "0", got.Stock)
}

func TestRecordSale_CantidadCeroSeRechaza(t *testing.T) {
	l, _ := newTestLedger(t)
	item := unitItem(l, 3, 10)

	for _, qty := range []float64{0, -2, math.NaN()} {
		_, err := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: qty})
		assert.ErrorIs(t, err, domain.ErrEmptyQuantity, "qty=%v", qty)
	}
	assert.Empty(t, l.AllSales())
}

func TestRecordSale_ArticuloInexistente(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.RecordSale(ledger.SaleInput{ItemID: "nope", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, l.AllSales())
}

func TestRecordSale_PrecioManualYFotoDePrecio(t *testing.T) {
	l, _ := newTestLedger(t)
	item := l.CreateItem(ledger.ItemInput{Name: "Café", TrackBy: entity.TrackByWeight, Stock: 2, Price: 20})

	sale, err := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: 0.5, OverridePrice: f(18)})
	require.NoError(t, err)
	assertDec(t, "9", sale.Total)
	assertDec(t, "0.5", sale.QtyWeight())

	nan := math.NaN()
	sale2, err := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: 1, OverridePrice: &nan})
	require.NoError(t, err)
	assertDec(t, "20", sale2.Price, "precio no finito usa el de catálogo")

	// Un cambio posterior de precio no altera ventas históricas.
	_, err = l.UpdateItem(item.ID, ledger.ItemPatch{Price: f(30)})
	require.NoError(t, err)
	got, _ := l.Sale(sale.ID)
	assertDec(t, "9", got.Total)
	assertDec(t, "18", got.Price)
}

func TestRecordSaleYDeleteSale_RestauranStock(t *testing.T) {
	l, _ := newTestLedger(t)
	item := l.CreateItem(ledger.ItemInput{Name: "Azúcar", TrackBy: entity.TrackByWeight, Stock: 2.3})

	sale, err := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: 0.7})
	require.NoError(t, err)
	got, _ := l.Item(item.ID)
	assertDec(t, "1.6", got.Stock)

	require.NoError(t, l.DeleteSale(sale.ID))
	got, _ = l.Item(item.ID)
	assertDec(t, "2.3", got.Stock, "ida y vuelta exacta")
	assert.Empty(t, l.AllSales())

	assert.ErrorIs(t, l.DeleteSale(sale.ID), domain.ErrNotFound)
}

func TestUpdateSale_AumentoSinStockSeRechaza(t *testing.T) {
	l, _ := newTestLedger(t)
	item := unitItem(l, 5, 10)
	sale, err := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: 4})
	require.NoError(t, err)

	_, err = l.UpdateSale(sale.ID, ledger.SalePatch{Qty: f(6), Price: f(1)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, _ := l.Sale(sale.ID)
	assertDec(t, "4", got.Qty)
	assertDec(t, "40", got.Total)
	gotItem, _ := l.Item(item.ID)
	assertDec(t, "1", gotItem.Stock)
}

func TestUpdateSale_DisminuirDevuelveStock(t *testing.T) {
	l, _ := newTestLedger(t)
	item := unitItem(l, 5, 10)
	sale, err := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: 4, OverridePrice: f(8)})
	require.NoError(t, err)

	out, err := l.UpdateSale(sale.ID, ledger.SalePatch{Qty: f(3)})
	require.NoError(t, err)
	assertDec(t, "3", out.Qty)
	// Sin precio en el patch se toma el precio actual del catálogo, no la foto original.
	assertDec(t, "10", out.Price)
	assertDec(t, "30", out.Total)

	gotItem, _ := l.Item(item.ID)
	assertDec(t, "2", gotItem.Stock)
}

func TestUpdateSale_AumentoConStockYPrecioExplicito(t *testing.T) {
	l, _ := newTestLedger(t)
	item := unitItem(l, 5, 10)
	sale, err := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: 1})
	require.NoError(t, err)

	out, err := l.UpdateSale(sale.ID, ledger.SalePatch{Qty: f(5), Price: f(7.5), Note: strPtr("fiado")})
	require.NoError(t, err)
	assertDec(t, "37.5", out.Total)
	assert.Equal(t, "fiado", out.Note)

	gotItem, _ := l.Item(item.ID)
	assertDec(t, "0", gotItem.Stock)
}

func TestUpdateSale_ArticuloEliminado(t *testing.T) {
	l, _ := newTestLedger(t)
	item := unitItem(l, 5, 10)
	sale, _ := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: 1})
	require.NoError(t, l.DeleteItem(item.ID, false))

	_, err := l.UpdateSale(sale.ID, ledger.SalePatch{Qty: f(2)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = l.UpdateSale("nope", ledger.SalePatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Eliminar una venta huérfana no falla.
	assert.NoError(t, l.DeleteSale(sale.ID))
}

func TestStockNuncaNegativo(t *testing.T) {
	l, _ := newTestLedger(t)
	item := l.CreateItem(ledger.ItemInput{Name: "Harina", TrackBy: entity.TrackByWeight, Stock: 3})

	var saleIDs []string
	ops := []func(){
		func() {
			if s, err := l.RecordSale(ledger.SaleInput{ItemID: item.ID, Qty: 1.2}); err == nil {
				saleIDs = append(saleIDs, s.ID)
			}
		},
		func() { _, _ = l.AdjustStock(item.ID, 0, -0.9) },
		func() {
			if len(saleIDs) > 0 {
				_, _ = l.UpdateSale(saleIDs[0], ledger.SalePatch{Qty: f(2.5)})
			}
		},
		func() {
			if len(saleIDs) > 1 {
				_ = l.DeleteSale(saleIDs[len(saleIDs)-1])
				saleIDs = saleIDs[:len(saleIDs)-1]
			}
		},
	}
	for i := 0; i < 40; i++ {
		ops[i%len(ops)]()
		got, err := l.Item(item.ID)
		require.NoError(t, err)
		assert.False(t, got.Stock.IsNegative(), "paso %d: stock %s", i, got.Stock)
	}
}

func TestSnapshotNoExponeEstadoInterno(t *testing.T) {
	l, _ := newTestLedger(t)
	item := unitItem(l, 5, 10)

	items := l.Items()
	items[0].Stock = decimal.NewFromInt(-100)

	got, _ := l.Item(item.ID)
	assertDec(t, "5", got.Stock)
}

func strPtr(s string) *string { return &s }
