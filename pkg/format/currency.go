// Package format renders currency and percentage values the way the
// dashboard displays them (pt-BR separators, "R$" symbol).
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with the real symbol and pt-BR
// separators (e.g., "-R$ 1.234,56").
func Currency(amount float64) string {
	formatted := formatPositive(math.Abs(amount), 2)
	if amount < 0 && formatted != "0,00" {
		return "-R$ " + formatted
	}
	return "R$ " + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1.234,56").
func NumericCurrency(amount float64) string {
	formatted := formatPositive(math.Abs(amount), 2)
	if amount < 0 && formatted != "0,00" {
		return "-" + formatted
	}
	return formatted
}

// Percent returns a percentage with one decimal place (e.g., "53,8%").
func Percent(value float64) string {
	formatted := formatPositive(math.Abs(value), 1)
	if value < 0 && formatted != "0,0" {
		return "-" + formatted + "%"
	}
	return formatted + "%"
}

func formatPositive(value float64, decimals int) string {
	formatted := fmt.Sprintf("%.*f", decimals, value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte('.')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if len(parts) == 2 {
		return intPart + "," + parts[1]
	}
	return intPart
}
