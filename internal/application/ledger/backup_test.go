package ledger_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiendita/internal/application/ledger"
	"github.com/jhoicas/tiendita/internal/domain"
	"github.com/jhoicas/tiendita/internal/domain/entity"
)

func TestExportImport_IdaYVuelta(t *testing.T) {
	src, _ := newTestLedger(t)
	a := unitItem(src, 10, 1.5)
	b := src.CreateItem(ledger.ItemInput{Name: "Papa", TrackBy: entity.TrackByWeight, Stock: 25, Price: 3.2, SKU: "PP"})
	_, err := src.RecordSale(ledger.SaleInput{ItemID: a.ID, Qty: 3, Note: "mostrador"})
	require.NoError(t, err)
	_, err = src.RecordSale(ledger.SaleInput{ItemID: b.ID, Qty: 1.75})
	require.NoError(t, err)

	exported := src.Export()
	assert.Equal(t, entity.BackupVersion, exported.Version)
	raw, err := json.Marshal(exported)
	require.NoError(t, err)

	var decoded entity.Backup
	require.NoError(t, json.Unmarshal(raw, &decoded))

	dst, events := newTestLedger(t)
	require.NoError(t, dst.Import(decoded))
	assert.Equal(t, 1, *events)

	again, err := json.Marshal(dst.Export())
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(again))
	srcStats, dstStats := src.Stats(), dst.Stats()
	require.Len(t, dstStats, len(srcStats))
	for id, st := range srcStats {
		assertDec(t, st.Revenue.String(), dstStats[id].Revenue, id)
	}
}

func TestImport_SinColeccionSeRechaza(t *testing.T) {
	l, events := newTestLedger(t)
	item := unitItem(l, 1, 1)
	before := *events

	err := l.Import(entity.Backup{Version: 1, Items: []entity.Item{}})
	assert.ErrorIs(t, err, domain.ErrMalformedBackup)
	err = l.Import(entity.Backup{Version: 1, Sales: []entity.Sale{}})
	assert.ErrorIs(t, err, domain.ErrMalformedBackup)

	_, err = l.Item(item.ID)
	assert.NoError(t, err, "el estado previo se conserva")
	assert.Equal(t, before, *events)
}

func TestImport_IdsVaciosORepetidosSeRechazan(t *testing.T) {
	l, events := newTestLedger(t)
	item := unitItem(l, 1, 1)
	before := *events

	dup := []entity.Item{
		{ID: "x", Name: "A", TrackBy: entity.TrackByUnit},
		{ID: "x", Name: "B", TrackBy: entity.TrackByUnit},
	}
	cases := map[string]entity.Backup{
		"item sin id":      {Version: 1, Items: []entity.Item{{Name: "Pan"}}, Sales: []entity.Sale{}},
		"items repetidos":  {Version: 1, Items: dup, Sales: []entity.Sale{}},
		"venta sin id":     {Version: 1, Items: []entity.Item{}, Sales: []entity.Sale{{ItemID: "x"}}},
		"ventas repetidas": {Version: 1, Items: []entity.Item{}, Sales: []entity.Sale{{ID: "v", ItemID: "x"}, {ID: "v", ItemID: "x"}}},
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, l.Import(b), domain.ErrMalformedBackup)
		})
	}

	got := l.Items()
	require.Len(t, got, 1)
	assert.Equal(t, item.ID, got[0].ID)
	assert.Equal(t, before, *events)
}

func TestImport_ArticuloBorradoNoReaparece(t *testing.T) {
	l, _ := newTestLedger(t)
	require.NoError(t, l.Import(entity.Backup{
		Version: 1,
		Items: []entity.Item{
			{ID: "x", Name: "A", TrackBy: entity.TrackByUnit},
			{ID: "y", Name: "B", TrackBy: entity.TrackByUnit},
		},
		Sales: []entity.Sale{},
	}))

	require.NoError(t, l.DeleteItem("x", false))
	_, err := l.Item("x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotContains(t, l.Stats(), "x")
}

func TestSearch_SinTildesNiMayusculas(t *testing.T) {
	l, _ := newTestLedger(t)
	l.CreateItem(ledger.ItemInput{Name: "Café de Huila", SKU: "CAF-01"})
	l.CreateItem(ledger.ItemInput{Name: "Azúcar morena", SKU: "AZ-02"})

	got := l.Search("CAFE")
	require.Len(t, got, 1)
	assert.Equal(t, "Café de Huila", got[0].Name)

	got = l.Search("az-0")
	require.Len(t, got, 1)
	assert.Equal(t, "Azúcar morena", got[0].Name)

	assert.Len(t, l.Search("  "), 2)
	assert.Empty(t, l.Search("leche"))
}
