package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kakairsyad/Interior-market/internal/auth"
	"github.com/kakairsyad/Interior-market/internal/cart"
	"github.com/kakairsyad/Interior-market/internal/checkout"
	"github.com/kakairsyad/Interior-market/internal/kv"
	"github.com/kakairsyad/Interior-market/internal/publisher"
)

const (
	// DefaultTTL is how long an untouched session stays in memory. Its cart
	// and user stay in the kv store and are reloaded on the next visit.
	DefaultTTL = 30 * time.Minute

	DefaultCleanupInterval = time.Minute
)

var ErrInvalidID = errors.New("invalid session id")

type Option func(*Manager)

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

func WithCleanupInterval(d time.Duration) Option {
	return func(m *Manager) {
		m.cleanupInterval = d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func WithPublisher(p publisher.OrderPublisher) Option {
	return func(m *Manager) {
		m.publisher = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// Manager builds sessions on first use and evicts idle ones.
type Manager struct {
	store     kv.Store
	auth      *auth.Service
	processor checkout.PaymentProcessor
	publisher publisher.OrderPublisher
	logger    *zap.Logger
	now       func() time.Time

	ttl             time.Duration
	cleanupInterval time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
	sfg      singleflight.Group // one build per session id

	stopCleanup chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
}

func NewManager(store kv.Store, authSvc *auth.Service, processor checkout.PaymentProcessor, opts ...Option) *Manager {
	m := &Manager{
		store:           store,
		auth:            authSvc,
		processor:       processor,
		logger:          zap.NewNop(),
		now:             time.Now,
		ttl:             DefaultTTL,
		cleanupInterval: DefaultCleanupInterval,
		sessions:        make(map[string]*Session),
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.publisher == nil {
		m.publisher = publisher.NewLogPublisher(m.logger)
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// Get returns the session for id, loading it from the store when it is not
// in memory.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrInvalidID
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch(m.now())
		return s, nil
	}

	v, err, _ := m.sfg.Do(id, func() (interface{}, error) {
		m.mu.RLock()
		existing, ok := m.sessions[id]
		m.mu.RUnlock()
		if ok {
			return existing, nil
		}

		built, err := m.build(ctx, id)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.sessions[id] = built
		m.mu.Unlock()

		m.logger.Debug("session loaded", zap.String("session_id", id))
		return built, nil
	})
	if err != nil {
		return nil, err
	}

	s = v.(*Session)
	s.touch(m.now())
	return s, nil
}

// Len is the number of sessions in memory.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup loop and closes every session.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		close(m.stopCleanup)
		m.wg.Wait()

		m.mu.Lock()
		sessions := m.sessions
		m.sessions = make(map[string]*Session)
		m.mu.Unlock()

		for _, s := range sessions {
			s.Close()
		}
	})
	return nil
}

func (m *Manager) build(ctx context.Context, id string) (*Session, error) {
	scoped := kv.Namespace(m.store, fmt.Sprintf("session:%s:", id))
	logger := m.logger.With(zap.String("session_id", id))

	store := cart.NewStore(
		cart.WithPersistence(scoped, cart.DefaultKey),
		cart.WithLogger(logger),
	)
	if err := store.Open(ctx); err != nil {
		return nil, fmt.Errorf("failed to open cart: %w", err)
	}

	authSession := m.auth.NewSession(scoped)
	if err := authSession.Restore(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to restore user: %w", err)
	}

	return &Session{
		ID:       id,
		Cart:     store,
		Auth:     authSession,
		manager:  m,
		logger:   logger,
		lastSeen: m.now(),
	}, nil
}

func (m *Manager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-m.stopCleanup:
			return
		}
	}
}

// evictIdle drops sessions untouched for longer than the TTL. Sessions with a
// submission in flight are kept.
func (m *Manager) evictIdle() {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var evicted []*Session
	for id, s := range m.sessions {
		if s.idleSince(cutoff) && !s.CartLocked() {
			evicted = append(evicted, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range evicted {
		s.Close()
	}
	if len(evicted) > 0 {
		m.logger.Debug("evicted idle sessions", zap.Int("count", len(evicted)))
	}
}
