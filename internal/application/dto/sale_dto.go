package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tiendita/internal/domain/entity"
	"github.com/jhoicas/tiendita/pkg/money"
)

// CreateSaleRequest entrada para registrar una venta. Price opcional reemplaza el precio de catálogo.
type CreateSaleRequest struct {
	ItemID string   `json:"itemId" validate:"required"`
	Qty    float64  `json:"qty"`
	Price  *float64 `json:"price"`
	Note   string   `json:"note"`
	Photo  string   `json:"photo"`
}

// UpdateSaleRequest edición de una venta. Sin price se toma el precio de catálogo actual.
type UpdateSaleRequest struct {
	Qty   *float64 `json:"qty"`
	Price *float64 `json:"price"`
	Note  *string  `json:"note"`
	Photo *string  `json:"photo"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"itemId"`
	TrackBy      string          `json:"trackBy"`
	Qty          decimal.Decimal `json:"qty"`
	QtyDisplay   string          `json:"qtyDisplay"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"priceDisplay"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"totalDisplay"`
	Note         string          `json:"note,omitempty"`
	Photo        string          `json:"photo,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// SaleListResponse página de ventas, más recientes primero.
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
	Page  PageResponse   `json:"page"`
}

// NewSaleResponse mapea la entidad a su salida HTTP.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:           s.ID,
		ItemID:       s.ItemID,
		TrackBy:      string(s.TrackBy),
		Qty:          s.Qty,
		QtyDisplay:   money.Format2(s.Qty),
		Price:        s.Price,
		PriceDisplay: money.Format2(s.Price),
		Total:        s.Total,
		TotalDisplay: money.Format2(s.Total),
		Note:         s.Note,
		Photo:        s.Photo,
		Timestamp:    s.Timestamp,
	}
}

// NewSaleListResponse pagina sales según p.
func NewSaleListResponse(sales []entity.Sale, p PageRequest) SaleListResponse {
	p.DefaultPage()
	total := len(sales)
	start := min(p.Offset, total)
	end := min(start+p.Limit, total)

	out := SaleListResponse{
		Sales: make([]SaleResponse, 0, end-start),
		Page:  PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total},
	}
	for i := start; i < end; i++ {
		out.Sales = append(out.Sales, NewSaleResponse(&sales[i]))
	}
	return out
}
