package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Order is captured when the checkout form is submitted; totals are frozen at
// that moment.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	SessionID     string          `json:"session_id"`
	UserID        string          `json:"user_id,omitempty"`
	Email         string          `json:"email"`
	ShipTo        ShippingAddress `json:"ship_to"`
	Lines         []OrderLine     `json:"lines"`
	Totals        OrderTotals     `json:"totals"`
	Currency      string          `json:"currency"`
	TransactionID string          `json:"transaction_id,omitempty"`
	SubmittedAt   time.Time       `json:"submitted_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

func OrderLinesFrom(items []LineItem) []OrderLine {
	lines := make([]OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, OrderLine{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Product.Price,
			LineTotal:   item.LineTotal(),
		})
	}
	return lines
}
