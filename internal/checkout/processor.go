package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultProcessingDelay is how long the simulated gateway takes to answer.
const DefaultProcessingDelay = 2 * time.Second

type PaymentRequest struct {
	OrderID    uuid.UUID
	Amount     decimal.Decimal
	Currency   string
	CardNumber string
	ExpiryDate string
	CVV        string
	NameOnCard string
}

// Result is the gateway answer for one charge.
type Result struct {
	Approved      bool
	TransactionID string
	Reason        string
}

func Success(transactionID string) Result {
	return Result{Approved: true, TransactionID: transactionID}
}

func Failure(reason string) Result {
	return Result{Reason: reason}
}

// PaymentProcessor charges an order. Declines are reported through Result;
// the error is reserved for the processor itself failing.
type PaymentProcessor interface {
	Process(ctx context.Context, req PaymentRequest) (Result, error)
}

// SimulatedProcessor waits Delay and approves every request.
type SimulatedProcessor struct {
	Delay time.Duration
}

func NewSimulatedProcessor(delay time.Duration) SimulatedProcessor {
	return SimulatedProcessor{Delay: delay}
}

func (p SimulatedProcessor) Process(ctx context.Context, req PaymentRequest) (Result, error) {
	if err := sleep(ctx, p.Delay); err != nil {
		return Result{}, err
	}
	return Success(transactionID(req.OrderID)), nil
}

var refusalReasons = []string{
	"insufficient funds",
	"card declined",
	"card expired",
	"suspected fraud",
	"limit exceeded",
}

// RandomProcessor approves roughly 95 out of 101 requests and declines the
// rest with a refusal reason.
type RandomProcessor struct {
	Delay time.Duration
	roll  func() int
}

func NewRandomProcessor(delay time.Duration) RandomProcessor {
	return RandomProcessor{
		Delay: delay,
		roll: func() int {
			return rand.Intn(101) // Intn is exclusive of the upper bound
		},
	}
}

func (p RandomProcessor) Process(ctx context.Context, req PaymentRequest) (Result, error) {
	if err := sleep(ctx, p.Delay); err != nil {
		return Result{}, err
	}
	approved, reason := calcStatus(p.roll())
	if !approved {
		return Failure("Payment failed: " + reason), nil
	}
	return Success(transactionID(req.OrderID)), nil
}

func calcStatus(randomInt int) (bool, string) {
	if randomInt < 95 {
		return true, ""
	}
	otherReason := randomInt - 95
	if otherReason == 0 || otherReason > len(refusalReasons) {
		return false, "unknown reason"
	}
	return false, refusalReasons[otherReason-1]
}

func transactionID(orderID uuid.UUID) string {
	return fmt.Sprintf("TXN-%s", orderID.String()[:8])
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
