package app

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ToDecimal formats number with two decimals, a dot separator and no
// thousands separator, rounding half away from zero: 12 -> "12.00".
func ToDecimal(number float64) string {
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return fmt.Sprintf("%.2f", number)
	}
	return decimal.NewFromFloat(number).StringFixed(2)
}
