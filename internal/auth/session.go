package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	d "github.com/kakairsyad/Interior-market/internal/domain"
	"github.com/kakairsyad/Interior-market/internal/kv"
)

type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r RegisterRequest) validate() error {
	if r.FirstName == "" || r.LastName == "" || r.Email == "" || r.Password == "" || r.ConfirmPassword == "" {
		return &ValidationError{Message: MsgMissingFields}
	}
	if r.Password != r.ConfirmPassword {
		return &ValidationError{Message: MsgPasswordMismatch}
	}
	if len(r.Password) < MinPasswordLength {
		return &ValidationError{Message: MsgPasswordTooShort}
	}
	return nil
}

// Session is one visitor's sign-in state.
type Session struct {
	service *Service
	store   kv.Store

	mu    sync.Mutex
	state State
}

// Restore signs the persisted user back in. An unreadable entry is removed.
func (s *Session) Restore(ctx context.Context) error {
	var user d.User
	err := kv.GetJSON(ctx, s.store, UserKey, &user)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		s.service.logger.Warn("removing unreadable user entry", zap.Error(err))
		return s.store.Delete(ctx, UserKey)
	}

	s.dispatch(LoginSuccess{User: user})
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return &ValidationError{Message: MsgMissingFields}
	}

	prev := s.dispatch(LoginStart{})
	if err := s.service.wait(ctx); err != nil {
		s.reset(prev)
		return err
	}

	user, err := s.service.authenticate(ctx, email, password)
	if err != nil {
		s.dispatch(LoginFailure{Error: UserMessage(err)})
		return err
	}
	if err := s.signIn(ctx, user); err != nil {
		s.dispatch(LoginFailure{Error: UserMessage(err)})
		return err
	}

	s.dispatch(LoginSuccess{User: user})
	return nil
}

func (s *Session) Register(ctx context.Context, req RegisterRequest) error {
	if err := req.validate(); err != nil {
		return err
	}

	prev := s.dispatch(RegisterStart{})
	if err := s.service.wait(ctx); err != nil {
		s.reset(prev)
		return err
	}

	user, err := s.service.create(ctx, req)
	if err != nil {
		s.dispatch(RegisterFailure{Error: UserMessage(err)})
		return err
	}
	if err := s.signIn(ctx, user); err != nil {
		s.dispatch(RegisterFailure{Error: UserMessage(err)})
		return err
	}

	s.dispatch(RegisterSuccess{User: user})
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.dispatch(Logout{})
	if err := s.store.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	return nil
}

func (s *Session) ClearError() {
	s.dispatch(ClearError{})
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// CurrentUser returns the signed-in user or nil.
func (s *Session) CurrentUser() *d.User {
	return s.State().User
}

func (s *Session) signIn(ctx context.Context, user d.User) error {
	if err := kv.SetJSON(ctx, s.store, UserKey, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// dispatch applies action and returns the state it replaced.
func (s *Session) dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	s.state = Reduce(s.state, action)
	return prev
}

func (s *Session) reset(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}
