package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		shipping string
		tax      string
		total    string
	}{
		{"below threshold", "80", "15.00", "6.40", "101.40"},
		{"above threshold", "120", "0.00", "9.60", "129.60"},
		{"fifty", "50", "15.00", "4.00", "69.00"},
		{"single chair", "299", "0.00", "23.92", "322.92"},
		{"exactly one hundred pays shipping", "100", "15.00", "8.00", "123.00"},
		{"rounds tax to cents", "79.99", "15.00", "6.40", "101.39"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(decimal.RequireFromString(tt.subtotal))

			assert.Equal(t, tt.shipping, totals.Shipping.StringFixed(2))
			assert.Equal(t, tt.tax, totals.Tax.StringFixed(2))
			assert.Equal(t, tt.total, totals.Total.StringFixed(2))
			assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Shipping).Add(totals.Tax)))
		})
	}
}

func TestCartState_Subtotal(t *testing.T) {
	state := CartState{Items: []LineItem{
		{Product: Product{ID: "1", Price: decimal.NewFromInt(299)}, Quantity: 2},
		{Product: Product{ID: "4", Price: decimal.NewFromInt(79)}, Quantity: 1},
	}}

	assert.Equal(t, "677", state.Subtotal().String())
	assert.Equal(t, 3, state.TotalItems())
	assert.Equal(t, 1, state.IndexOf("4"))
	assert.Equal(t, -1, state.IndexOf("9"))
}

func TestCheckoutStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, CheckoutStatusIdle.CanTransitionTo(CheckoutStatusSubmitting))
	assert.True(t, CheckoutStatusSubmitting.CanTransitionTo(CheckoutStatusComplete))
	assert.True(t, CheckoutStatusSubmitting.CanTransitionTo(CheckoutStatusIdle))
	assert.False(t, CheckoutStatusBlocked.CanTransitionTo(CheckoutStatusSubmitting))
	assert.False(t, CheckoutStatusComplete.CanTransitionTo(CheckoutStatusIdle))
	assert.True(t, CheckoutStatusComplete.IsTerminal())
}

func TestNewCheckoutForm_PrefillsFromUser(t *testing.T) {
	form := NewCheckoutForm(&User{ID: "1", FirstName: "Ada", LastName: "Byron", Email: "ada@example.com"})

	assert.Equal(t, "ada@example.com", form.Email)
	assert.Equal(t, "Ada", form.FirstName)
	assert.Equal(t, DefaultCountry, form.Country)
	assert.True(t, form.SameAsBilling)
	assert.False(t, form.SaveInfo)

	empty := NewCheckoutForm(nil)
	assert.Empty(t, empty.Email)
}
