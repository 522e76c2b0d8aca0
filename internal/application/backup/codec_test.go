package backup_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiendita/internal/application/backup"
	"github.com/jhoicas/tiendita/internal/application/ledger"
	"github.com/jhoicas/tiendita/internal/domain"
	"github.com/jhoicas/tiendita/internal/domain/entity"
)

func TestEncodeDecode_IdaYVuelta(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	l := ledger.New(ledger.WithClock(func() time.Time { return now }))
	queso := l.CreateItem(ledger.ItemInput{Name: "Queso", TrackBy: entity.TrackByWeight, Stock: 4.5, Price: 12.4})
	_, err := l.RecordSale(ledger.SaleInput{ItemID: queso.ID, Qty: 1.25})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, backup.Encode(&buf, l.Export()))
	assert.Contains(t, buf.String(), `"stockWeight": 3.25`)
	assert.Contains(t, buf.String(), `"exportedAt": "2026-03-14T10:00:00Z"`)

	got, err := backup.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, entity.BackupVersion, got.Version)
	require.Len(t, got.Items, 1)
	require.Len(t, got.Sales, 1)
	assert.Equal(t, entity.TrackByWeight, got.Items[0].TrackBy)
	assert.Equal(t, "3.25", got.Items[0].Stock.String())
	assert.Equal(t, "15.5", got.Sales[0].Total.String())
}

func TestDecode_Rechazos(t *testing.T) {
	cases := map[string]string{
		"no json":          `hola`,
		"sin items":        `{"version":1,"sales":[]}`,
		"sin sales":        `{"version":1,"items":[]}`,
		"items objeto":     `{"version":1,"items":{},"sales":[]}`,
		"sales nulo":       `{"version":1,"items":[],"sales":null}`,
		"registro malo":    `{"version":1,"items":[{"id":"a","pricePerUnit":"x"}],"sales":[]}`,
		"version futura":   `{"version":99,"items":[],"sales":[]}`,
		"arreglo raiz":     `[]`,
		"item nulo":        `{"version":1,"items":[null],"sales":[]}`,
		"item sin id":      `{"version":1,"items":[{"name":"Pan","stockUnits":2}],"sales":[]}`,
		"items repetidos":  `{"version":1,"items":[{"id":"x","name":"A","stockUnits":5},{"id":"x","name":"B","stockUnits":7}],"sales":[]}`,
		"venta nula":       `{"version":1,"items":[],"sales":[null]}`,
		"ventas repetidas": `{"version":1,"items":[],"sales":[{"id":"v1","itemId":"x","qtyUnits":1,"total":1},{"id":"v1","itemId":"x","qtyUnits":2,"total":2}]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := backup.Decode(strings.NewReader(payload))
			assert.ErrorIs(t, err, domain.ErrMalformedBackup)
		})
	}
}

func TestDecode_ColeccionesVaciasSonValidas(t *testing.T) {
	b, err := backup.Decode(strings.NewReader(`{"version":1,"exportedAt":"2026-01-01T00:00:00Z","items":[],"sales":[]}`))
	require.NoError(t, err)
	assert.NotNil(t, b.Items)
	assert.NotNil(t, b.Sales)

	l := ledger.New()
	l.CreateItem(ledger.ItemInput{Name: "Pan"})
	require.NoError(t, l.Import(b))
	assert.Empty(t, l.Items())
}
