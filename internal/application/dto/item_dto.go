package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tiendita/internal/domain/entity"
	"github.com/jhoicas/tiendita/pkg/money"
)

// CreateItemRequest entrada para crear un artículo.
type CreateItemRequest struct {
	Name      string  `json:"name" validate:"required"`
	SKU       string  `json:"sku"`
	Photo     string  `json:"photo"`
	TrackBy   string  `json:"trackBy" example:"unit" enums:"unit,weight"`
	Price     float64 `json:"price"`
	Stock     float64 `json:"stock"`
	UnitLabel string  `json:"unitLabel"`
}

// UpdateItemRequest entrada para actualizar un artículo; solo se aplican los campos presentes.
type UpdateItemRequest struct {
	Name      *string  `json:"name"`
	SKU       *string  `json:"sku"`
	Photo     *string  `json:"photo"`
	TrackBy   *string  `json:"trackBy"`
	Price     *float64 `json:"price"`
	Stock     *float64 `json:"stock"`
	UnitLabel *string  `json:"unitLabel"`
}

// AdjustStockRequest delta de stock; solo cuenta el campo del modo del artículo.
type AdjustStockRequest struct {
	DeltaUnits  float64 `json:"deltaUnits"`
	DeltaWeight float64 `json:"deltaWeight"`
}

// ItemResponse salida de un artículo. Los campos *Display van redondeados a dos decimales.
type ItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku,omitempty"`
	Photo        string          `json:"photo,omitempty"`
	TrackBy      string          `json:"trackBy"`
	UnitLabel    string          `json:"unitLabel"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"priceDisplay"`
	Stock        decimal.Decimal `json:"stock"`
	StockDisplay string          `json:"stockDisplay"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ItemDetailResponse artículo con sus estadísticas de venta.
type ItemDetailResponse struct {
	ItemResponse
	Stats ItemStatsResponse `json:"stats"`
}

// ItemListResponse lista de artículos, más recientes primero.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// NewItemResponse mapea la entidad a su salida HTTP.
func NewItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		SKU:          it.SKU,
		Photo:        it.Photo,
		TrackBy:      string(it.TrackBy),
		UnitLabel:    it.UnitLabel,
		Price:        it.Price,
		PriceDisplay: money.Format2(it.Price),
		Stock:        it.Stock,
		StockDisplay: money.Format2(it.Stock),
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

// NewItemListResponse mapea una lista de artículos.
func NewItemListResponse(items []entity.Item) ItemListResponse {
	out := ItemListResponse{Items: make([]ItemResponse, 0, len(items)), Total: len(items)}
	for i := range items {
		out.Items = append(out.Items, NewItemResponse(&items[i]))
	}
	return out
}
