package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TrackMode modo de seguimiento de un artículo: por unidades o por peso (kg).
type TrackMode string

const (
	TrackByUnit   TrackMode = "unit"
	TrackByWeight TrackMode = "weight"
)

// ParseTrackMode interpreta el modo recibido; vacío equivale a unidades.
func ParseTrackMode(s string) (TrackMode, bool) {
	switch TrackMode(s) {
	case "", TrackByUnit:
		return TrackByUnit, true
	case TrackByWeight:
		return TrackByWeight, true
	}
	return "", false
}

// DefaultUnitLabel etiqueta de cantidad usada cuando el artículo no define una.
func (m TrackMode) DefaultUnitLabel() string {
	if m == TrackByWeight {
		return "kg"
	}
	return "unit"
}

// Item representa un artículo del catálogo de la tienda.
// Price y Stock corresponden siempre al modo TrackBy, que se fija al crear el artículo;
// el campo del otro modo no existe en memoria.
type Item struct {
	ID        string
	Name      string
	SKU       string
	Photo     string
	TrackBy   TrackMode
	Price     decimal.Decimal // precio de catálogo por unidad o por kg
	Stock     decimal.Decimal // unidades o kg disponibles, nunca negativo
	UnitLabel string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PricePerUnit precio por unidad (cero si el artículo se vende por peso).
func (i *Item) PricePerUnit() decimal.Decimal {
	if i.TrackBy == TrackByUnit {
		return i.Price
	}
	return decimal.Zero
}

// PricePerWeight precio por kg (cero si el artículo se vende por unidad).
func (i *Item) PricePerWeight() decimal.Decimal {
	if i.TrackBy == TrackByWeight {
		return i.Price
	}
	return decimal.Zero
}

// StockUnits unidades disponibles (cero si el artículo se vende por peso).
func (i *Item) StockUnits() decimal.Decimal {
	if i.TrackBy == TrackByUnit {
		return i.Stock
	}
	return decimal.Zero
}

// StockWeight kg disponibles (cero si el artículo se vende por unidad).
func (i *Item) StockWeight() decimal.Decimal {
	if i.TrackBy == TrackByWeight {
		return i.Stock
	}
	return decimal.Zero
}

// itemRecord es la forma persistida de Item (clave "items" y respaldos).
type itemRecord struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	SKU            string       `json:"sku,omitempty"`
	Photo          string       `json:"photo,omitempty"`
	TrackBy        TrackMode    `json:"trackBy"`
	PricePerUnit   *json.Number `json:"pricePerUnit,omitempty"`
	StockUnits     *json.Number `json:"stockUnits,omitempty"`
	PricePerWeight *json.Number `json:"pricePerWeight,omitempty"`
	StockWeight    *json.Number `json:"stockWeight,omitempty"`
	UnitLabel      string       `json:"unitLabel"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// MarshalJSON escribe solo los campos de precio y stock del modo activo.
func (i Item) MarshalJSON() ([]byte, error) {
	rec := itemRecord{
		ID:        i.ID,
		Name:      i.Name,
		SKU:       i.SKU,
		Photo:     i.Photo,
		TrackBy:   i.TrackBy,
		UnitLabel: i.UnitLabel,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
	price, stock := numberOf(i.Price), numberOf(i.Stock)
	if i.TrackBy == TrackByWeight {
		rec.PricePerWeight, rec.StockWeight = price, stock
	} else {
		rec.PricePerUnit, rec.StockUnits = price, stock
	}
	return json.Marshal(rec)
}

// UnmarshalJSON lee un registro persistido. Si trae campos de ambos modos solo se
// respetan los de su trackBy; cantidades negativas se llevan a cero.
func (i *Item) UnmarshalJSON(data []byte) error {
	var rec itemRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	mode, ok := ParseTrackMode(string(rec.TrackBy))
	if !ok {
		mode = TrackByUnit
	}
	priceField, stockField := rec.PricePerUnit, rec.StockUnits
	if mode == TrackByWeight {
		priceField, stockField = rec.PricePerWeight, rec.StockWeight
	}
	price, err := decimalOf(priceField)
	if err != nil {
		return err
	}
	stock, err := decimalOf(stockField)
	if err != nil {
		return err
	}
	label := rec.UnitLabel
	if label == "" {
		label = mode.DefaultUnitLabel()
	}
	*i = Item{
		ID:        rec.ID,
		Name:      rec.Name,
		SKU:       rec.SKU,
		Photo:     rec.Photo,
		TrackBy:   mode,
		Price:     NonNegative(price),
		Stock:     NonNegative(stock),
		UnitLabel: label,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	return nil
}

// NonNegative devuelve d o cero si d es negativo.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func numberOf(d decimal.Decimal) *json.Number {
	n := json.Number(d.String())
	return &n
}

func decimalOf(n *json.Number) (decimal.Decimal, error) {
	if n == nil || *n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
