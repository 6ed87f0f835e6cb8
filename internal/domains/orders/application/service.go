package application

import (
	"context"
	"log/slog"

	"github.com/cabinetworks/storefront/internal/domains/orders/domain"
	"github.com/cabinetworks/storefront/internal/domains/orders/ports"
)

var _ ports.Service = (*Service)(nil)

// Service implements order lookup and admin fulfillment on top of a
// repository. A shipping notifier is optional; when set, marking an order
// shipped triggers the customer shipping confirmation.
type Service struct {
	repo     ports.Repository
	notifier ports.ShippingNotifier
	logger   *slog.Logger
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithShippingNotifier wires the shipping confirmation sender.
func WithShippingNotifier(notifier ports.ShippingNotifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetOrder(ctx context.Context, number string) (*domain.Order, error) {
	return s.repo.GetByNumber(ctx, number)
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// AdvanceFulfillment applies one fulfillment transition. The status update is
// the operation's outcome; the shipping email is best effort and a failure to
// send never rolls the transition back.
func (s *Service) AdvanceFulfillment(ctx context.Context, number string, next domain.FulfillmentStatus, trackingNumber, carrier string) (*domain.Order, error) {
	order, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := order.Advance(next, trackingNumber, carrier); err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.UpdateFulfillment(ctx, order.Number, order.Status, order.TrackingNumber, order.Carrier); err != nil {
		return nil, err
	}
	if order.Status == domain.StatusShipped && s.notifier != nil {
		if err := s.notifier.SendShippingConfirmation(ctx, order); err != nil {
			s.logger.WarnContext(ctx, "shipping confirmation failed",
				slog.String("order_number", order.Number),
				slog.String("error", err.Error()))
		}
	}
	return order, nil
}
