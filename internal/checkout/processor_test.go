package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcStatus(t *testing.T) {
	tests := []struct {
		roll     int
		approved bool
		reason   string
	}{
		{0, true, ""},
		{94, true, ""},
		{95, false, "unknown reason"},
		{96, false, "insufficient funds"},
		{97, false, "card declined"},
		{100, false, "limit exceeded"},
	}
	for _, tt := range tests {
		approved, reason := calcStatus(tt.roll)
		assert.Equal(t, tt.approved, approved, "roll %d", tt.roll)
		assert.Equal(t, tt.reason, reason, "roll %d", tt.roll)
	}
}

func TestRandomProcessor(t *testing.T) {
	p := RandomProcessor{roll: func() int { return 97 }}

	res, err := p.Process(context.Background(), PaymentRequest{OrderID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, res.Approved)
	assert.Equal(t, "Payment failed: card declined", res.Reason)

	p.roll = func() int { return 3 }
	res, err = p.Process(context.Background(), PaymentRequest{OrderID: uuid.New()})
	require.NoError(t, err)
	assert.True(t, res.Approved)
	assert.Contains(t, res.TransactionID, "TXN-")
}

func TestSimulatedProcessor_WaitsForDelay(t *testing.T) {
	p := NewSimulatedProcessor(30 * time.Millisecond)

	start := time.Now()
	res, err := p.Process(context.Background(), PaymentRequest{OrderID: uuid.New()})
	require.NoError(t, err)
	assert.True(t, res.Approved)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestSimulatedProcessor_ContextCanceled(t *testing.T) {
	p := NewSimulatedProcessor(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, PaymentRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

type errProcessor struct {
	err   error
	calls int
}

func (p *errProcessor) Process(context.Context, PaymentRequest) (Result, error) {
	p.calls++
	return Result{}, p.err
}

func TestBreakerProcessor_OpensAfterFailures(t *testing.T) {
	inner := &errProcessor{err: errors.New("gateway unavailable")}
	p := NewBreakerProcessor(inner, BreakerSettings{FailureThreshold: 2, Timeout: time.Minute}, nil)

	for i := 0; i < 2; i++ {
		_, err := p.Process(context.Background(), PaymentRequest{})
		assert.ErrorContains(t, err, "gateway unavailable")
	}
	assert.Equal(t, gobreaker.StateOpen, p.State())

	_, err := p.Process(context.Background(), PaymentRequest{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, inner.calls)
}

func TestBreakerProcessor_DeclinesDoNotTrip(t *testing.T) {
	p := NewBreakerProcessor(RandomProcessor{roll: func() int { return 96 }}, BreakerSettings{FailureThreshold: 1}, nil)

	for i := 0; i < 3; i++ {
		res, err := p.Process(context.Background(), PaymentRequest{})
		require.NoError(t, err)
		assert.False(t, res.Approved)
	}
	assert.Equal(t, gobreaker.StateClosed, p.State())
}
