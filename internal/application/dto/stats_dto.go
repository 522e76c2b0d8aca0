package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tiendita/internal/domain/entity"
	"github.com/jhoicas/tiendita/pkg/money"
)

// ItemStatsResponse totales vendidos de un artículo.
type ItemStatsResponse struct {
	SoldUnits      decimal.Decimal `json:"soldUnits"`
	SoldWeight     decimal.Decimal `json:"soldWeight"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenueDisplay string          `json:"revenueDisplay"`
}

// NewItemStatsResponse mapea las estadísticas de un artículo.
func NewItemStatsResponse(st entity.ItemStats) ItemStatsResponse {
	return ItemStatsResponse{
		SoldUnits:      st.SoldUnits,
		SoldWeight:     st.SoldWeight,
		Revenue:        st.Revenue,
		RevenueDisplay: money.Format2(st.Revenue),
	}
}

// NewStatsResponse mapea las estadísticas por id de artículo.
func NewStatsResponse(stats map[string]entity.ItemStats) map[string]ItemStatsResponse {
	out := make(map[string]ItemStatsResponse, len(stats))
	for id, st := range stats {
		out[id] = NewItemStatsResponse(st)
	}
	return out
}
