package checkout

import (
	"fmt"

	d "github.com/kakairsyad/Interior-market/internal/domain"
)

// Event drives the checkout state machine.
type Event interface {
	isEvent()
}

// CartChanged reports the cart contents after a mutation.
type CartChanged struct {
	Empty bool
}

type Submitted struct{}

type ProcessingSucceeded struct{}

// ProcessingFailed returns the flow to the form. CartEmpty selects BLOCKED
// over IDLE.
type ProcessingFailed struct {
	Reason    string
	CartEmpty bool
}

func (CartChanged) isEvent()         {}
func (Submitted) isEvent()           {}
func (ProcessingSucceeded) isEvent() {}
func (ProcessingFailed) isEvent()    {}

// Initial is the state a fresh flow starts in.
func Initial(cartEmpty bool) d.CheckoutStatus {
	if cartEmpty {
		return d.CheckoutStatusBlocked
	}
	return d.CheckoutStatusIdle
}

// Transition returns the status reached from status on event.
func Transition(status d.CheckoutStatus, event Event) (d.CheckoutStatus, error) {
	next, err := transition(status, event)
	if err != nil {
		return next, err
	}
	if next != status && !status.CanTransitionTo(next) {
		return status, fmt.Errorf("%w: %s to %s", ErrIllegalTransition, status, next)
	}
	return next, nil
}

func transition(status d.CheckoutStatus, event Event) (d.CheckoutStatus, error) {
	switch status {
	case d.CheckoutStatusIdle, d.CheckoutStatusBlocked:
		switch e := event.(type) {
		case CartChanged:
			return Initial(e.Empty), nil
		case Submitted:
			if status == d.CheckoutStatusBlocked {
				return status, ErrEmptyCart
			}
			return d.CheckoutStatusSubmitting, nil
		}
	case d.CheckoutStatusSubmitting:
		switch e := event.(type) {
		case CartChanged:
			// totals are frozen until processing resolves
			return status, nil
		case Submitted:
			return status, ErrSubmissionInProgress
		case ProcessingSucceeded:
			return d.CheckoutStatusComplete, nil
		case ProcessingFailed:
			return Initial(e.CartEmpty), nil
		}
	case d.CheckoutStatusComplete:
		switch event.(type) {
		case CartChanged:
			return status, nil
		case Submitted:
			return status, ErrCheckoutComplete
		}
	}

	return status, fmt.Errorf("%w: %T in %s", ErrIllegalTransition, event, status)
}
