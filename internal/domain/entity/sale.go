package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada contra un artículo.
// Price es la foto del precio al momento de la venta (o de la última edición);
// Total = Qty * Price y solo se recalcula al crear o editar.
type Sale struct {
	ID        string
	ItemID    string
	TrackBy   TrackMode
	Qty       decimal.Decimal // unidades o kg según TrackBy
	Price     decimal.Decimal
	Total     decimal.Decimal
	Note      string
	Photo     string
	Timestamp time.Time
}

// QtyUnits unidades vendidas (cero si la venta fue por peso).
func (s *Sale) QtyUnits() decimal.Decimal {
	if s.TrackBy == TrackByUnit {
		return s.Qty
	}
	return decimal.Zero
}

// QtyWeight kg vendidos (cero si la venta fue por unidad).
func (s *Sale) QtyWeight() decimal.Decimal {
	if s.TrackBy == TrackByWeight {
		return s.Qty
	}
	return decimal.Zero
}

type saleRecord struct {
	ID          string       `json:"id"`
	ItemID      string       `json:"itemId"`
	TrackBy     TrackMode    `json:"trackBy,omitempty"`
	QtyUnits    *json.Number `json:"qtyUnits,omitempty"`
	QtyWeight   *json.Number `json:"qtyWeight,omitempty"`
	UnitPrice   *json.Number `json:"unitPrice,omitempty"`
	WeightPrice *json.Number `json:"weightPrice,omitempty"`
	Total       json.Number  `json:"total"`
	Note        string       `json:"note,omitempty"`
	Photo       string       `json:"photo,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// MarshalJSON escribe exactamente uno de qtyUnits/qtyWeight con su precio.
func (s Sale) MarshalJSON() ([]byte, error) {
	rec := saleRecord{
		ID:        s.ID,
		ItemID:    s.ItemID,
		TrackBy:   s.TrackBy,
		Total:     json.Number(s.Total.String()),
		Note:      s.Note,
		Photo:     s.Photo,
		Timestamp: s.Timestamp,
	}
	if s.TrackBy == TrackByWeight {
		rec.QtyWeight, rec.WeightPrice = numberOf(s.Qty), numberOf(s.Price)
	} else {
		rec.QtyUnits, rec.UnitPrice = numberOf(s.Qty), numberOf(s.Price)
	}
	return json.Marshal(rec)
}

// UnmarshalJSON lee una venta persistida. Los registros sin trackBy se clasifican por
// el campo de cantidad presente. No se corrigen valores negativos: las estadísticas
// los descartan al sumar.
func (s *Sale) UnmarshalJSON(data []byte) error {
	var rec saleRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	mode, ok := ParseTrackMode(string(rec.TrackBy))
	if !ok || rec.TrackBy == "" {
		mode = TrackByUnit
		if rec.QtyWeight != nil && rec.QtyUnits == nil {
			mode = TrackByWeight
		}
	}
	qtyField, priceField := rec.QtyUnits, rec.UnitPrice
	if mode == TrackByWeight {
		qtyField, priceField = rec.QtyWeight, rec.WeightPrice
	}
	qty, err := decimalOf(qtyField)
	if err != nil {
		return err
	}
	price, err := decimalOf(priceField)
	if err != nil {
		return err
	}
	total, err := decimalOf(&rec.Total)
	if err != nil {
		return err
	}
	*s = Sale{
		ID:        rec.ID,
		ItemID:    rec.ItemID,
		TrackBy:   mode,
		Qty:       qty,
		Price:     price,
		Total:     total,
		Note:      rec.Note,
		Photo:     rec.Photo,
		Timestamp: rec.Timestamp,
	}
	return nil
}
