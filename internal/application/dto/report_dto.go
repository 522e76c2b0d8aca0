package dto

import (
	"time"

	"github.com/jhoicas/tiendita/internal/application/report"
	"github.com/jhoicas/tiendita/pkg/money"
)

// SummaryRowResponse línea del resumen (valores ya redondeados a dos decimales).
type SummaryRowResponse struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	SKU       string `json:"sku,omitempty"`
	TrackBy   string `json:"trackBy"`
	UnitLabel string `json:"unitLabel"`
	Stock     string `json:"stock"`
	Price     string `json:"price"`
	Sold      string `json:"sold"`
	Revenue   string `json:"revenue"`
	SaleCount int    `json:"saleCount"`
}

// SummaryTotalsResponse totales del resumen.
type SummaryTotalsResponse struct {
	Revenue    string `json:"revenue"`
	SoldUnits  string `json:"soldUnits"`
	SoldWeight string `json:"soldWeight"`
	SaleCount  int    `json:"saleCount"`
	StockValue string `json:"stockValue"`
}

// SummaryResponse resumen de ventas e inventario.
type SummaryResponse struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	Rows        []SummaryRowResponse  `json:"rows"`
	Totals      SummaryTotalsResponse `json:"totals"`
}

// NewSummaryResponse mapea el resumen para la API.
func NewSummaryResponse(s *report.Summary) SummaryResponse {
	out := SummaryResponse{
		GeneratedAt: s.GeneratedAt,
		Rows:        make([]SummaryRowResponse, 0, len(s.Rows)),
		Totals: SummaryTotalsResponse{
			Revenue:    money.Format2(s.Totals.Revenue),
			SoldUnits:  money.Format2(s.Totals.SoldUnits),
			SoldWeight: money.Format2(s.Totals.SoldWeight),
			SaleCount:  s.Totals.SaleCount,
			StockValue: money.Format2(s.Totals.StockValue),
		},
	}
	for _, r := range s.Rows {
		out.Rows = append(out.Rows, SummaryRowResponse{
			ItemID:    r.ItemID,
			Name:      r.Name,
			SKU:       r.SKU,
			TrackBy:   string(r.TrackBy),
			UnitLabel: r.UnitLabel,
			Stock:     money.Format2(r.Stock),
			Price:     money.Format2(r.Price),
			Sold:      money.Format2(r.Sold),
			Revenue:   money.Format2(r.Revenue),
			SaleCount: r.SaleCount,
		})
	}
	return out
}

// ReplenishmentResponse artículo a reponer (valores redondeados a dos decimales).
type ReplenishmentResponse struct {
	Priority      int    `json:"priority"`
	ItemID        string `json:"itemId"`
	Name          string `json:"name"`
	SKU           string `json:"sku,omitempty"`
	TrackBy       string `json:"trackBy"`
	UnitLabel     string `json:"unitLabel"`
	CurrentStock  string `json:"currentStock"`
	ReorderPoint  string `json:"reorderPoint"`
	IdealStock    string `json:"idealStock"`
	SuggestedQty  string `json:"suggestedQty"`
	EstimatedCost string `json:"estimatedCost"`
	Sold          string `json:"sold"`
}

// NewReplenishmentResponse mapea las sugerencias de reposición.
func NewReplenishmentResponse(list []report.Suggestion) []ReplenishmentResponse {
	out := make([]ReplenishmentResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ReplenishmentResponse{
			Priority:      s.Priority,
			ItemID:        s.ItemID,
			Name:          s.Name,
			SKU:           s.SKU,
			TrackBy:       string(s.TrackBy),
			UnitLabel:     s.UnitLabel,
			CurrentStock:  money.Format2(s.CurrentStock),
			ReorderPoint:  money.Format2(s.ReorderPoint),
			IdealStock:    money.Format2(s.IdealStock),
			SuggestedQty:  money.Format2(s.SuggestedQty),
			EstimatedCost: money.Format2(s.EstimatedCost),
			Sold:          money.Format2(s.Sold),
		})
	}
	return out
}
