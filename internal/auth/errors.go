package auth

import "errors"

const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgUserExists         = "User with this email already exists"
	MsgMissingFields      = "Please fill in all fields"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user with this email already exists")
)

// ValidationError is a rejected form. Message is shown to the visitor as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, ErrUserExists):
		return MsgUserExists
	case err == nil:
		return ""
	default:
		return "Something went wrong, please try again"
	}
}
