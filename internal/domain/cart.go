package domain

import "github.com/shopspring/decimal"

// LineItem pairs a product with a positive quantity.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price x quantity for the line.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartState holds line items in insertion order plus the cart panel flag.
// At most one line item exists per product id.
type CartState struct {
	Items  []LineItem `json:"items"`
	IsOpen bool       `json:"isOpen"`
}

// Clone returns a copy that shares no slice memory with s.
func (s CartState) Clone() CartState {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	return CartState{Items: items, IsOpen: s.IsOpen}
}

func (s CartState) Empty() bool {
	return len(s.Items) == 0
}

func (s CartState) IndexOf(productID string) int {
	for i, item := range s.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s CartState) TotalItems() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of price x quantity over all lines.
func (s CartState) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
