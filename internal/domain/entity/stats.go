package entity

import "github.com/shopspring/decimal"

// ItemStats acumulados de ventas de un artículo.
type ItemStats struct {
	SoldUnits  decimal.Decimal
	SoldWeight decimal.Decimal
	Revenue    decimal.Decimal
}
