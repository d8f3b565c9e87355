package cart

import "github.com/kakairsyad/Interior-market/internal/domain"

// Action is one cart mutation.
type Action interface {
	isAction()
}

type AddItem struct {
	Product  domain.Product
	Quantity int
}

type RemoveItem struct {
	ProductID string
}

type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

type Clear struct{}

type Toggle struct{}

type Open struct{}

type Close struct{}

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (Clear) isAction()          {}
func (Toggle) isAction()         {}
func (Open) isAction()           {}
func (Close) isAction()          {}

// Reduce applies action to a copy of state and returns the copy.
func Reduce(state domain.CartState, action Action) domain.CartState {
	next := state.Clone()

	switch a := action.(type) {
	case AddItem:
		qty := a.Quantity
		if qty < 1 {
			qty = 1
		}
		if i := next.IndexOf(a.Product.ID); i >= 0 {
			next.Items[i].Quantity += qty
		} else {
			next.Items = append(next.Items, domain.LineItem{Product: a.Product, Quantity: qty})
		}
	case RemoveItem:
		next.Items = without(next.Items, a.ProductID)
	case UpdateQuantity:
		i := next.IndexOf(a.ProductID)
		if i < 0 {
			break
		}
		if a.Quantity <= 0 {
			next.Items = without(next.Items, a.ProductID)
		} else {
			next.Items[i].Quantity = a.Quantity
		}
	case Clear:
		next.Items = []domain.LineItem{}
	case Toggle:
		next.IsOpen = !next.IsOpen
	case Open:
		next.IsOpen = true
	case Close:
		next.IsOpen = false
	}

	return next
}

func without(items []domain.LineItem, productID string) []domain.LineItem {
	out := items[:0]
	for _, item := range items {
		if item.Product.ID != productID {
			out = append(out, item)
		}
	}
	return out
}
