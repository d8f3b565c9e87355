package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kakairsyad/Interior-market/internal/domain"
	"github.com/kakairsyad/Interior-market/internal/kv"
)

const persistTimeout = time.Second

// DefaultKey is the storage key of the cart within a session namespace.
const DefaultKey = "cart"

// Observer receives the cart state after every mutation.
type Observer func(domain.CartState)

type Option func(*Store)

// WithPersistence loads the cart from store on Open and writes it back after
// every mutation.
func WithPersistence(store kv.Store, key string) Option {
	return func(s *Store) {
		s.kv = store
		s.key = key
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store owns one visitor's cart. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	state  domain.CartState
	kv     kv.Store
	key    string
	logger *zap.Logger

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObsID int
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		state:     domain.CartState{Items: []domain.LineItem{}},
		key:       DefaultKey,
		logger:    zap.NewNop(),
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open restores the persisted cart. A missing or unreadable entry leaves the
// cart empty.
func (s *Store) Open(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}

	var state domain.CartState
	err := kv.GetJSON(ctx, s.kv, s.key, &state)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case err != nil:
		s.logger.Warn("discarding unreadable cart", zap.String("key", s.key), zap.Error(err))
		return nil
	}

	if state.Items == nil {
		state.Items = []domain.LineItem{}
	}
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// Close drops every observer.
func (s *Store) Close() {
	s.obsMu.Lock()
	s.observers = make(map[int]Observer)
	s.obsMu.Unlock()
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store) Subscribe(fn Observer) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

func (s *Store) AddToCart(product domain.Product, quantity int) {
	s.dispatch(AddItem{Product: product, Quantity: quantity})
}

func (s *Store) RemoveFromCart(productID string) {
	s.dispatch(RemoveItem{ProductID: productID})
}

// UpdateQuantity sets the line quantity; zero or less removes the line.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.dispatch(UpdateQuantity{ProductID: productID, Quantity: quantity})
}

func (s *Store) ClearCart() {
	s.dispatch(Clear{})
}

func (s *Store) ToggleCart() {
	s.dispatch(Toggle{})
}

func (s *Store) OpenCart() {
	s.dispatch(Open{})
}

func (s *Store) CloseCart() {
	s.dispatch(Close{})
}

func (s *Store) TotalItems() int {
	return s.Snapshot().TotalItems()
}

// TotalPrice is the cart subtotal before shipping and tax.
func (s *Store) TotalPrice() decimal.Decimal {
	return s.Snapshot().Subtotal()
}

func (s *Store) Items() []domain.LineItem {
	return s.Snapshot().Items
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsOpen
}

func (s *Store) Snapshot() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) dispatch(action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	next := s.state.Clone()
	s.persist(next)
	s.mu.Unlock()

	s.notify(next)
}

// persist runs under s.mu so writes reach the backend in mutation order.
func (s *Store) persist(state domain.CartState) {
	if s.kv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := kv.SetJSON(ctx, s.kv, s.key, state); err != nil {
		s.logger.Error("cart persist failed", zap.String("key", s.key), zap.Error(err))
	}
}

func (s *Store) notify(state domain.CartState) {
	s.obsMu.Lock()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range observers {
		fn(state.Clone())
	}
}
