package domain

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to 2 decimal places, half away from
// zero (the absolute value rounds half up, the sign is preserved).
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
