// Package money agrupa las reglas numéricas de presentación: redondeo a dos
// decimales (mitad hacia arriba sobre el valor escalado) y conversión desde float.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// Round2 redondea a 2 decimales como floor(v*100 + 0.5) / 100.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Mul(hundred).Add(half).Floor().Div(hundred)
}

// Format2 devuelve v redondeado con exactamente dos decimales ("12.50").
func Format2(v decimal.Decimal) string {
	return Round2(v).StringFixed(2)
}

// FromFloat convierte f a decimal. ok es false si f es NaN o infinito.
func FromFloat(f float64) (d decimal.Decimal, ok bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// ClampFloat convierte f a decimal llevando a cero los valores negativos o no finitos.
func ClampFloat(f float64) decimal.Decimal {
	d, ok := FromFloat(f)
	if !ok || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
