package checkout

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrSubmissionInProgress = errors.New("checkout submission already in progress")
	ErrCheckoutComplete     = errors.New("checkout already complete")
	ErrIllegalTransition    = errors.New("illegal transition of checkout status")
)

// ValidationError lists the required form fields that were left blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
