package utils

import (
	"fmt"
	"math"
)

// ToCents converts a decimal money amount to integer cents, rounding half away from zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts integer cents back to a decimal amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// SumMoney adds amounts in cents so repeated float addition does not drift.
func SumMoney(amounts []float64) float64 {
	var total int64
	for _, a := range amounts {
		total += ToCents(a)
	}
	return FromCents(total)
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
