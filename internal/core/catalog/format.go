package catalog

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const pricePrefix = "R$: "

// FormatPrice renders a BRL amount as "R$: 19,90".
//
// Zero renders as an empty string, the same way a product without price is
// shown blank. No thousands separators are applied.
func FormatPrice(amount float64) string {
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}
	return FormatTotal(decimal.NewFromFloat(amount))
}

// FormatTotal renders a computed sum such as a cart or line total. Unlike
// FormatPrice a zero sum is shown, "R$: 0,00".
func FormatTotal(amount decimal.Decimal) string {
	return pricePrefix + commaFixed(amount)
}

// FormatRating renders an average rating with two decimals, "8,50".
func FormatRating(avg float64) string {
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return ""
	}
	return commaFixed(decimal.NewFromFloat(avg))
}

func commaFixed(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
