package checkout

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// BreakerProcessor stops calling a failing processor until Timeout passes.
// Only processor errors count as failures; declines do not.
type BreakerProcessor struct {
	next PaymentProcessor
	cb   *gobreaker.CircuitBreaker[Result]
}

func NewBreakerProcessor(next PaymentProcessor, s BreakerSettings, logger *zap.Logger) *BreakerProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if s.Name == "" {
		s.Name = "payment"
	}
	if s.FailureThreshold == 0 {
		s.FailureThreshold = 5
	}
	threshold := s.FailureThreshold

	cb := gobreaker.NewCircuitBreaker[Result](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("payment circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &BreakerProcessor{next: next, cb: cb}
}

func (p *BreakerProcessor) Process(ctx context.Context, req PaymentRequest) (Result, error) {
	return p.cb.Execute(func() (Result, error) {
		return p.next.Process(ctx, req)
	})
}

func (p *BreakerProcessor) State() gobreaker.State {
	return p.cb.State()
}
