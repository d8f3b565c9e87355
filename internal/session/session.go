package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kakairsyad/Interior-market/internal/auth"
	"github.com/kakairsyad/Interior-market/internal/cart"
	"github.com/kakairsyad/Interior-market/internal/checkout"
	d "github.com/kakairsyad/Interior-market/internal/domain"
)

var ErrCartLocked = errors.New("cart is locked while checkout is submitting")

// Session is everything one visitor owns: a cart, a sign-in state and at most
// one active checkout.
type Session struct {
	ID   string
	Cart *cart.Store
	Auth *auth.Session

	manager *Manager
	logger  *zap.Logger

	mu       sync.Mutex
	flow     *checkout.Flow
	lastSeen time.Time
}

// Checkout returns the active checkout. A new one starts when none exists or
// when the last one completed and the cart has items again.
func (s *Session) Checkout() *checkout.Flow {
	user := s.Auth.CurrentUser()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout(user)
}

// Submit starts checkout of the current cart. It shares s.mu with MutateCart,
// so a cart edit never lands between the lock check and the totals freeze.
func (s *Session) Submit(ctx context.Context, form d.CheckoutForm) (*checkout.Flow, error) {
	user := s.Auth.CurrentUser()

	s.mu.Lock()
	defer s.mu.Unlock()

	flow := s.checkout(user)
	return flow, flow.Submit(ctx, form)
}

// MutateCart applies fn to the cart unless a submission is in flight.
func (s *Session) MutateCart(fn func(*cart.Store)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked() {
		return ErrCartLocked
	}
	fn(s.Cart)
	return nil
}

// CartLocked reports whether a submission is in flight. The cart must not be
// edited then.
func (s *Session) CartLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked()
}

// checkout must be called with s.mu held.
func (s *Session) checkout(user *d.User) *checkout.Flow {
	if s.flow != nil {
		restart := s.flow.Status().IsTerminal() && !s.Cart.Snapshot().Empty()
		if !restart {
			s.flow.Prefill(user)
			return s.flow
		}
		s.flow.Close()
	}

	s.flow = checkout.NewFlow(s.Cart, s.manager.processor,
		checkout.WithUser(user),
		checkout.WithSessionID(s.ID),
		checkout.WithPublisher(s.manager.publisher),
		checkout.WithLogger(s.logger),
	)
	return s.flow
}

func (s *Session) locked() bool {
	return s.flow != nil && s.flow.Status() == d.CheckoutStatusSubmitting
}

// Close waits for an in-flight checkout and releases the cart.
func (s *Session) Close() {
	s.mu.Lock()
	flow := s.flow
	s.flow = nil
	s.mu.Unlock()

	if flow != nil {
		flow.Close()
	}
	s.Cart.Close()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}
