package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	cartports "github.com/cabinetworks/storefront/internal/domains/cart/ports"
	"github.com/cabinetworks/storefront/internal/domains/checkout/domain"
	"github.com/cabinetworks/storefront/internal/domains/checkout/ports"
	"github.com/cabinetworks/storefront/internal/domains/checkout/pricing"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

var _ ports.Service = (*Service)(nil)

const currency = "usd"

// Service implements the two-phase checkout. BeginCheckout opens a payment
// intent priced from the live cart; ConfirmPayment verifies the intent with
// the gateway and persists the order atomically with the cart clear.
type Service struct {
	carts    cartports.Service
	gateway  ports.PaymentGateway
	store    ports.CheckoutStore
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithNotifier wires the post-purchase email sender.
func WithNotifier(notifier ports.Notifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the time source used for order numbers.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(carts cartports.Service, gateway ports.PaymentGateway, store ports.CheckoutStore, opts ...Option) *Service {
	s := &Service{
		carts:   carts,
		gateway: gateway,
		store:   store,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BeginCheckout prices the cart, assigns an order number, and opens a
// payment intent for the total. Nothing is persisted on our side yet; an
// abandoned session leaves only an unpaid intent at the gateway.
func (s *Service) BeginCheckout(ctx context.Context, identity cartdomain.Identity, req domain.BeginRequest) (*domain.BeginResult, error) {
	if err := req.Customer.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	view, err := s.carts.GetCart(ctx, identity)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	breakdown := pricing.Totals(view.Subtotal, pricing.ParseMethod(req.ShippingMethod))
	number := domain.NewOrderNumber(s.now())

	intent, err := s.gateway.CreateIntent(ctx,
		domain.AmountCents(breakdown.Total), currency, number,
		map[string]string{
			"order_number":   number,
			"customer_email": req.Customer.Email,
		})
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &domain.BeginResult{
		OrderNumber:  number,
		Breakdown:    breakdown,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ConfirmPayment re-verifies the intent with the gateway, snapshots the cart
// into an order, and persists the order atomically with clearing the cart.
// A declined payment leaves the cart untouched.
func (s *Service) ConfirmPayment(ctx context.Context, identity cartdomain.Identity, req domain.ConfirmRequest) (*ordersdomain.Order, error) {
	if err := req.Customer.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	view, err := s.carts.GetCart(ctx, identity)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Never trust the client's word on payment state.
	intent, err := s.gateway.RetrieveIntent(ctx, req.IntentID)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent: %w", err)
	}
	if intent.Status != ports.IntentStatusSucceeded {
		return nil, &PaymentDeclinedError{Reason: intent.Status}
	}

	breakdown := pricing.Totals(view.Subtotal, pricing.ParseMethod(req.ShippingMethod))
	if intent.AmountCents != domain.AmountCents(breakdown.Total) {
		return nil, &PaymentDeclinedError{Reason: "amount mismatch"}
	}

	number := req.OrderNumber
	if number == "" {
		number = domain.NewOrderNumber(s.now())
	}

	lines := make([]ordersdomain.LineItem, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, ordersdomain.LineItem{
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}

	order, err := ordersdomain.NewOrder(
		number,
		req.Customer.Name, req.Customer.Email, req.Customer.Phone,
		req.Customer.Address,
		string(breakdown.Method), breakdown.ShippingLabel,
		breakdown.Subtotal, breakdown.ShippingCost, breakdown.Tax, breakdown.Total,
		intent.ID,
		lines,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	saved, err := s.store.PersistOrderAndClearCart(ctx, order, identity)
	if err != nil {
		// Payment is captured at this point. Log enough to reconcile by hand.
		s.logger.ErrorContext(ctx, "order persistence failed after captured payment",
			slog.String("payment_ref", intent.ID),
			slog.String("order_number", number),
			slog.String("error", err.Error()))
		return nil, &PersistenceError{PaymentRef: intent.ID, Err: err}
	}

	s.notify(ctx, saved)
	return saved, nil
}

func (s *Service) notify(ctx context.Context, order *ordersdomain.Order) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendOrderConfirmation(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "order confirmation email failed",
			slog.String("order_number", order.Number),
			slog.String("error", err.Error()))
	}
	if err := s.notifier.SendAdminAlert(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "admin order alert failed",
			slog.String("order_number", order.Number),
			slog.String("error", err.Error()))
	}
}
