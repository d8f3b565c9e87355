package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	d "github.com/kakairsyad/Interior-market/internal/domain"
	"github.com/kakairsyad/Interior-market/internal/kv"
)

func newTestService(t *testing.T) (*Service, *kv.MemoryStore) {
	t.Helper()
	users := kv.NewMemoryStore()
	clock := time.UnixMilli(1700000000000)
	var mu sync.Mutex
	svc := NewService(users, WithDelay(0), WithClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Millisecond)
		return clock
	}))
	return svc, users
}

func janeRequest() RegisterRequest {
	return RegisterRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegister_SignsIn(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()
	store := kv.NewMemoryStore()
	sess := svc.NewSession(store)

	require.NoError(t, sess.Register(ctx, janeRequest()))

	user := sess.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "1700000000001", user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.False(t, sess.State().IsLoading)

	var persisted map[string]any
	require.NoError(t, kv.GetJSON(ctx, store, UserKey, &persisted))
	assert.NotContains(t, persisted, "password")
	assert.Equal(t, "Jane", persisted["firstName"])

	var stored []d.StoredUser
	require.NoError(t, kv.GetJSON(ctx, users, UsersKey, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "secret1", stored[0].Password)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	sess := svc.NewSession(kv.NewMemoryStore())

	tests := []struct {
		name    string
		mutate  func(*RegisterRequest)
		message string
	}{
		{"missing first name", func(r *RegisterRequest) { r.FirstName = "" }, MsgMissingFields},
		{"missing confirm", func(r *RegisterRequest) { r.ConfirmPassword = "" }, MsgMissingFields},
		{"mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "secret2" }, MsgPasswordMismatch},
		{"too short", func(r *RegisterRequest) { r.Password, r.ConfirmPassword = "abc", "abc" }, MsgPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := janeRequest()
			tt.mutate(&req)

			err := sess.Register(context.Background(), req)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.message, verr.Message)
			assert.Nil(t, sess.CurrentUser())
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.NewSession(kv.NewMemoryStore()).Register(ctx, janeRequest()))

	other := svc.NewSession(kv.NewMemoryStore())
	err := other.Register(ctx, janeRequest())
	assert.ErrorIs(t, err, ErrUserExists)
	assert.Equal(t, MsgUserExists, other.State().Error)
	assert.Nil(t, other.CurrentUser())
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.NewSession(kv.NewMemoryStore()).Register(ctx, janeRequest()))

	store := kv.NewMemoryStore()
	sess := svc.NewSession(store)

	err := sess.Login(ctx, "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, MsgInvalidCredentials, sess.State().Error)

	sess.ClearError()
	assert.Empty(t, sess.State().Error)

	require.NoError(t, sess.Login(ctx, "jane@example.com", "secret1"))
	require.NotNil(t, sess.CurrentUser())
	assert.Equal(t, "Jane", sess.CurrentUser().FirstName)

	_, err = store.Get(ctx, UserKey)
	assert.NoError(t, err)
}

func TestLogin_FailureSignsOut(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := svc.NewSession(kv.NewMemoryStore())
	require.NoError(t, sess.Register(ctx, janeRequest()))

	_ = sess.Login(ctx, "jane@example.com", "nope")
	assert.Nil(t, sess.CurrentUser())
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newTestService(t)
	sess := svc.NewSession(kv.NewMemoryStore())

	err := sess.Login(context.Background(), "", "secret1")
	assert.Equal(t, MsgMissingFields, UserMessage(err))
	assert.Equal(t, State{}, sess.State())
}

func TestLogin_CanceledDuringDelay(t *testing.T) {
	svc := NewService(kv.NewMemoryStore(), WithDelay(time.Minute))
	sess := svc.NewSession(kv.NewMemoryStore())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := sess.Login(ctx, "jane@example.com", "secret1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, sess.State().IsLoading)
}

func TestLogout(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	store := kv.NewMemoryStore()
	sess := svc.NewSession(store)
	require.NoError(t, sess.Register(ctx, janeRequest()))

	require.NoError(t, sess.Logout(ctx))
	assert.Nil(t, sess.CurrentUser())
	_, err := store.Get(ctx, UserKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestRestore(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, kv.SetJSON(ctx, store, UserKey, d.User{ID: "7", FirstName: "Sam", Email: "sam@example.com"}))

	sess := svc.NewSession(store)
	require.NoError(t, sess.Restore(ctx))
	require.NotNil(t, sess.CurrentUser())
	assert.Equal(t, "7", sess.CurrentUser().ID)
}

func TestRestore_CorruptEntryIsRemoved(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, UserKey, []byte("{broken")))

	sess := svc.NewSession(store)
	require.NoError(t, sess.Restore(ctx))
	assert.Nil(t, sess.CurrentUser())

	_, err := store.Get(ctx, UserKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.NewSession(kv.NewMemoryStore()).Register(ctx, janeRequest())
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrUserExists)
		}
	}
	assert.Equal(t, 1, ok)

	var stored []d.StoredUser
	require.NoError(t, kv.GetJSON(ctx, users, UsersKey, &stored))
	assert.Len(t, stored, 1)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, MsgInvalidCredentials, UserMessage(ErrInvalidCredentials))
	assert.Equal(t, MsgPasswordMismatch, UserMessage(&ValidationError{Message: MsgPasswordMismatch}))
	assert.NotEmpty(t, UserMessage(errors.New("boom")))
}
