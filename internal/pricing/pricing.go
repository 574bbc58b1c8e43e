// Package pricing holds the money rules of the shop: gold prices are weight times the
// per-gram rate, rounded to the nearest 10 currency units.
package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is printed on labels and receipts.
const Currency = "AZN"

var (
	ten     = decimal.NewFromInt(10)
	printer = message.NewPrinter(language.English)
)

// ItemPrice returns round(weight*pricePerGram/10)*10.
func ItemPrice(weight, pricePerGram float64) float64 {
	raw := decimal.NewFromFloat(weight).Mul(decimal.NewFromFloat(pricePerGram))
	return raw.Div(ten).Round(0).Mul(ten).InexactFloat64()
}

// ScrapTotal is the buy-back payout for the given weights. It is not rounded.
func ScrapTotal(weights []float64, pricePerGram float64) float64 {
	total := decimal.Zero
	for _, w := range weights {
		total = total.Add(decimal.NewFromFloat(w))
	}
	return total.Mul(decimal.NewFromFloat(pricePerGram)).InexactFloat64()
}

// Sum adds amounts without float drift.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}

// Sub returns a-b.
func Sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}

// FormatAmount renders an amount as a digit-grouped integer, e.g. 5500 -> "5,500".
func FormatAmount(v float64) string {
	return printer.Sprintf("%d", decimal.NewFromFloat(v).Round(0).IntPart())
}
