package domain

import "github.com/shopspring/decimal"

var (
	FreeShippingThreshold = decimal.NewFromInt(100)
	FlatShippingRate      = decimal.NewFromInt(15)
	TaxRate               = decimal.NewFromFloat(0.08)
)

// OrderTotals is derived from the cart on demand and never stored on its own.
type OrderTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals applies free shipping strictly above the threshold and an 8%
// tax rounded to cents.
func ComputeTotals(subtotal decimal.Decimal) OrderTotals {
	shipping := FlatShippingRate
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate).Round(2)

	return OrderTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
