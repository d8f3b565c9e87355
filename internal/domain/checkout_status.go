package domain

type CheckoutStatus string

const (
	CheckoutStatusIdle       CheckoutStatus = "IDLE"
	CheckoutStatusBlocked    CheckoutStatus = "BLOCKED"
	CheckoutStatusSubmitting CheckoutStatus = "SUBMITTING"
	CheckoutStatusComplete   CheckoutStatus = "COMPLETE"
)

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusComplete
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s CheckoutStatus) CanTransitionTo(next CheckoutStatus) bool {
	switch s {
	case CheckoutStatusIdle:
		return next == CheckoutStatusBlocked || next == CheckoutStatusSubmitting
	case CheckoutStatusBlocked:
		return next == CheckoutStatusIdle
	case CheckoutStatusSubmitting:
		// failure returns to the form
		return next == CheckoutStatusComplete || next == CheckoutStatusIdle || next == CheckoutStatusBlocked
	default:
		return false
	}
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}
