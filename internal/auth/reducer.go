package auth

import d "github.com/kakairsyad/Interior-market/internal/domain"

type State struct {
	User      *d.User `json:"user"`
	IsLoading bool    `json:"isLoading"`
	Error     string  `json:"error,omitempty"`
}

type Action interface {
	isAction()
}

type LoginStart struct{}

type LoginSuccess struct {
	User d.User
}

type LoginFailure struct {
	Error string
}

type RegisterStart struct{}

type RegisterSuccess struct {
	User d.User
}

type RegisterFailure struct {
	Error string
}

type Logout struct{}

type ClearError struct{}

func (LoginStart) isAction()      {}
func (LoginSuccess) isAction()    {}
func (LoginFailure) isAction()    {}
func (RegisterStart) isAction()   {}
func (RegisterSuccess) isAction() {}
func (RegisterFailure) isAction() {}
func (Logout) isAction()          {}
func (ClearError) isAction()      {}

// Reduce returns the state after action. A failed attempt signs the
// current user out.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case LoginStart, RegisterStart:
		state.IsLoading = true
		state.Error = ""
	case LoginSuccess:
		u := a.User
		return State{User: &u}
	case RegisterSuccess:
		u := a.User
		return State{User: &u}
	case LoginFailure:
		return State{Error: a.Error}
	case RegisterFailure:
		return State{Error: a.Error}
	case Logout:
		return State{}
	case ClearError:
		state.Error = ""
	}
	return state
}
