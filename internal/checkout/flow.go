package checkout

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/kakairsyad/Interior-market/internal/cart"
	d "github.com/kakairsyad/Interior-market/internal/domain"
	"github.com/kakairsyad/Interior-market/internal/publisher"
)

const (
	Currency       = "USD"
	publishTimeout = 5 * time.Second
)

var tracer = otel.Tracer("github.com/kakairsyad/Interior-market/internal/checkout")

// Cart is what the flow needs from the cart store.
type Cart interface {
	Snapshot() d.CartState
	ClearCart()
	Subscribe(cart.Observer) func()
}

type Option func(*Flow)

func WithLogger(logger *zap.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

func WithPublisher(p publisher.OrderPublisher) Option {
	return func(f *Flow) {
		f.publisher = p
	}
}

// WithUser prefills the contact fields and tags the order with the user id.
func WithUser(user *d.User) Option {
	return func(f *Flow) {
		f.user = user
	}
}

func WithSessionID(id string) Option {
	return func(f *Flow) {
		f.sessionID = id
	}
}

// View is a consistent snapshot of the flow for rendering.
type View struct {
	Status        d.CheckoutStatus `json:"status"`
	Form          *d.CheckoutForm  `json:"form,omitempty"`
	Items         []d.LineItem     `json:"items,omitempty"`
	Totals        *d.OrderTotals   `json:"totals,omitempty"`
	FailureReason string           `json:"failureReason,omitempty"`
	Order         *d.Order         `json:"order,omitempty"`
}

// Flow is one checkout attempt over a cart. It is safe for concurrent use.
type Flow struct {
	cart      Cart
	processor PaymentProcessor
	publisher publisher.OrderPublisher
	logger    *zap.Logger
	validate  *validator.Validate
	user      *d.User
	sessionID string

	mu            sync.Mutex
	status        d.CheckoutStatus
	form          d.CheckoutForm
	frozen        []d.LineItem
	totals        d.OrderTotals
	failureReason string
	order         *d.Order
	done          chan struct{}

	wg          sync.WaitGroup
	unsubscribe func()
}

func NewFlow(c Cart, processor PaymentProcessor, opts ...Option) *Flow {
	f := &Flow{
		cart:      c,
		processor: processor,
		logger:    zap.NewNop(),
		validate:  newValidator(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.publisher == nil {
		f.publisher = publisher.NewLogPublisher(f.logger)
	}

	f.form = d.NewCheckoutForm(f.user)
	f.status = Initial(c.Snapshot().Empty())
	f.done = closedChan()
	f.unsubscribe = c.Subscribe(f.onCartChanged)
	return f
}

func (f *Flow) Status() d.CheckoutStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{Status: f.status, FailureReason: f.failureReason}
	switch f.status {
	case d.CheckoutStatusBlocked:
		// empty-cart notice only
	case d.CheckoutStatusIdle:
		state := f.cart.Snapshot()
		totals := d.ComputeTotals(state.Subtotal())
		form := f.form.Redacted()
		v.Form, v.Items, v.Totals = &form, state.Items, &totals
	case d.CheckoutStatusSubmitting:
		totals := f.totals
		form := f.form.Redacted()
		v.Form, v.Items, v.Totals = &form, cloneItems(f.frozen), &totals
	case d.CheckoutStatusComplete:
		totals := f.totals
		order := *f.order
		v.Items, v.Totals, v.Order = cloneItems(f.frozen), &totals, &order
	}
	return v
}

// Prefill copies the user's contact details into the form while it is
// still editable. It only acts when the signed-in identity changes, so
// repeated calls never overwrite what the visitor typed.
func (f *Flow) Prefill(user *d.User) {
	if user == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != d.CheckoutStatusIdle && f.status != d.CheckoutStatusBlocked {
		return
	}
	if f.user != nil && f.user.ID == user.ID {
		return
	}
	f.user = user
	f.form.Email = user.Email
	f.form.FirstName = user.FirstName
	f.form.LastName = user.LastName
}

// Submit validates form and starts processing the order in the background.
// It returns as soon as the flow is SUBMITTING.
func (f *Flow) Submit(ctx context.Context, form d.CheckoutForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if form.Country == "" {
		form.Country = d.DefaultCountry
	}

	next, err := Transition(f.status, Submitted{})
	if err != nil {
		return err
	}
	// keep what was typed even when validation rejects it; the form of an
	// in-flight or completed submission never changes
	f.form = form
	if err := f.validateForm(form); err != nil {
		return err
	}

	state := f.cart.Snapshot()
	if state.Empty() {
		f.status = d.CheckoutStatusBlocked
		return ErrEmptyCart
	}

	f.status = next
	f.failureReason = ""
	f.frozen = state.Items
	f.totals = d.ComputeTotals(state.Subtotal())

	order := d.Order{
		ID:          uuid.New(),
		SessionID:   f.sessionID,
		Email:       form.Email,
		ShipTo:      form.ShippingAddress(),
		Lines:       d.OrderLinesFrom(state.Items),
		Totals:      f.totals,
		Currency:    Currency,
		SubmittedAt: time.Now().UTC(),
	}
	if f.user != nil {
		order.UserID = f.user.ID
	}
	req := PaymentRequest{
		OrderID:    order.ID,
		Amount:     f.totals.Total,
		Currency:   Currency,
		CardNumber: form.CardNumber,
		ExpiryDate: form.ExpiryDate,
		CVV:        form.CVV,
		NameOnCard: form.NameOnCard,
	}

	done := make(chan struct{})
	f.done = done
	f.wg.Add(1)
	// the caller cannot cancel an in-flight submission
	go f.process(context.WithoutCancel(ctx), order, req, done)

	f.logger.Info("checkout submitted",
		zap.String("session_id", f.sessionID),
		zap.String("order_id", order.ID.String()),
		zap.String("total", f.totals.Total.StringFixed(2)))
	return nil
}

// Done is closed once the latest submission has resolved.
func (f *Flow) Done() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Wait blocks until the latest submission resolves or ctx ends.
func (f *Flow) Wait(ctx context.Context) error {
	select {
	case <-f.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close detaches the flow from the cart and waits for processing to finish.
func (f *Flow) Close() {
	f.unsubscribe()
	f.wg.Wait()
}

func (f *Flow) process(ctx context.Context, order d.Order, req PaymentRequest, done chan struct{}) {
	defer f.wg.Done()
	defer close(done)

	ctx, span := tracer.Start(ctx, "checkout.process")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", order.ID.String()),
		attribute.String("order.total", order.Totals.Total.StringFixed(2)),
		attribute.Int("order.lines", len(order.Lines)),
	)

	result, err := f.processor.Process(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "payment processor failed")
		f.fail(order, "Payment could not be processed, please try again", err)
		return
	}
	if !result.Approved {
		span.SetStatus(codes.Error, result.Reason)
		f.fail(order, result.Reason, nil)
		return
	}

	// the cart observer takes f.mu, so clear before locking
	f.cart.ClearCart()

	f.mu.Lock()
	next, terr := Transition(f.status, ProcessingSucceeded{})
	if terr != nil {
		f.mu.Unlock()
		f.logger.Error("checkout completion rejected", zap.String("order_id", order.ID.String()), zap.Error(terr))
		return
	}
	completedAt := time.Now().UTC()
	order.TransactionID = result.TransactionID
	order.CompletedAt = &completedAt
	f.status = next
	f.order = &order
	f.mu.Unlock()

	span.SetAttributes(attribute.String("payment.transaction_id", result.TransactionID))
	f.logger.Info("checkout complete",
		zap.String("session_id", order.SessionID),
		zap.String("order_id", order.ID.String()),
		zap.String("transaction_id", result.TransactionID))

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := f.publisher.Publish(pubCtx, order); err != nil {
		f.logger.Error("order publish failed", zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}

func (f *Flow) fail(order d.Order, reason string, cause error) {
	empty := f.cart.Snapshot().Empty()

	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := Transition(f.status, ProcessingFailed{Reason: reason, CartEmpty: empty})
	if err != nil {
		f.logger.Error("checkout failure rejected", zap.String("order_id", order.ID.String()), zap.Error(err))
		return
	}
	f.status = next
	f.failureReason = reason
	f.frozen = nil

	fields := []zap.Field{
		zap.String("session_id", order.SessionID),
		zap.String("order_id", order.ID.String()),
		zap.String("reason", reason),
	}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	f.logger.Warn("checkout failed", fields...)
}

func (f *Flow) onCartChanged(d.CartState) {
	// observers may run out of order, read the current cart instead
	empty := f.cart.Snapshot().Empty()

	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := Transition(f.status, CartChanged{Empty: empty})
	if err != nil {
		return
	}
	f.status = next
}

func (f *Flow) validateForm(form d.CheckoutForm) error {
	err := f.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so callers can map errors onto form inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func cloneItems(items []d.LineItem) []d.LineItem {
	out := make([]d.LineItem, len(items))
	copy(out, items)
	return out
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
