package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	d "github.com/kakairsyad/Interior-market/internal/domain"
	"github.com/kakairsyad/Interior-market/internal/kv"
)

const (
	// UsersKey holds the credential list in the shared store.
	UsersKey = "users"
	// UserKey holds the signed-in user in a session store.
	UserKey = "user"

	DefaultDelay = time.Second
)

type Option func(*Service)

func WithDelay(delay time.Duration) Option {
	return func(s *Service) {
		s.delay = delay
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service is the mock credential store shared by all sessions. Passwords are
// stored in plain text.
type Service struct {
	users  kv.Store
	delay  time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex
}

func NewService(users kv.Store, opts ...Option) *Service {
	s := &Service{
		users:  users,
		delay:  DefaultDelay,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSession binds a visitor's store to the service. Call Restore before use.
func (s *Service) NewSession(store kv.Store) *Session {
	return &Session{service: s, store: store}
}

func (s *Service) authenticate(ctx context.Context, email, password string) (d.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return d.User{}, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			return u.Public(), nil
		}
	}
	return d.User{}, ErrInvalidCredentials
}

func (s *Service) create(ctx context.Context, req RegisterRequest) (d.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return d.User{}, err
	}
	for _, u := range users {
		if u.Email == req.Email {
			return d.User{}, ErrUserExists
		}
	}

	stored := d.StoredUser{
		ID:        strconv.FormatInt(s.now().UnixMilli(), 10),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	users = append(users, stored)
	if err := kv.SetJSON(ctx, s.users, UsersKey, users); err != nil {
		return d.User{}, fmt.Errorf("failed to save users: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", stored.ID))
	return stored.Public(), nil
}

func (s *Service) loadUsers(ctx context.Context) ([]d.StoredUser, error) {
	var users []d.StoredUser
	err := kv.GetJSON(ctx, s.users, UsersKey, &users)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
