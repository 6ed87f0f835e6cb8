package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	checkoutdomain "github.com/cabinetworks/storefront/internal/domains/checkout/domain"
	checkoutports "github.com/cabinetworks/storefront/internal/domains/checkout/ports"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

const tracerName = "github.com/cabinetworks/storefront/internal/domains/checkout/adapters/observability/service"

// Service decorates the checkout service with tracing, logging, and metrics.
type Service struct {
	inner   checkoutports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core checkout service.
func New(inner checkoutports.Service, opts ...Option) checkoutports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) BeginCheckout(ctx context.Context, identity cartdomain.Identity, req checkoutdomain.BeginRequest) (*checkoutdomain.BeginResult, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.BeginCheckout",
		trace.WithAttributes(attribute.String("checkout.shipping_method", req.ShippingMethod)))
	defer span.End()

	s.logInfo(ctx, "opening checkout session", slog.String("shipping_method", req.ShippingMethod))
	result, err := s.inner.BeginCheckout(ctx, identity, req)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to open checkout session")
	}
	span.SetAttributes(attribute.String("checkout.order_number", result.OrderNumber))
	s.metrics.recordBegun(ctx, string(result.Breakdown.Method))
	s.logInfo(ctx, "checkout session opened",
		slog.String("order_number", result.OrderNumber),
		slog.String("total", result.Breakdown.Total.String()))
	return result, nil
}

func (s *Service) ConfirmPayment(ctx context.Context, identity cartdomain.Identity, req checkoutdomain.ConfirmRequest) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.ConfirmPayment",
		trace.WithAttributes(attribute.String("checkout.order_number", req.OrderNumber)))
	defer span.End()

	s.logInfo(ctx, "confirming payment", slog.String("order_number", req.OrderNumber))
	order, err := s.inner.ConfirmPayment(ctx, identity, req)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm payment", slog.String("order_number", req.OrderNumber))
	}
	s.metrics.recordConfirmed(ctx)
	s.logInfo(ctx, "order placed",
		slog.String("order_number", order.Number),
		slog.String("total", order.Total.String()))
	return order, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	sessionsBegun   metric.Int64Counter
	ordersConfirmed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	sessionsBegun, _ := m.Int64Counter("checkout.service.sessions_begun", metric.WithDescription("Number of checkout sessions opened"))
	ordersConfirmed, _ := m.Int64Counter("checkout.service.orders_confirmed", metric.WithDescription("Number of orders confirmed and persisted"))
	return serviceMetrics{sessionsBegun: sessionsBegun, ordersConfirmed: ordersConfirmed}
}

func (m serviceMetrics) recordBegun(ctx context.Context, method string) {
	if m.sessionsBegun != nil {
		m.sessionsBegun.Add(ctx, 1, metric.WithAttributes(attribute.String("checkout.shipping_method", method)))
	}
}

func (m serviceMetrics) recordConfirmed(ctx context.Context) {
	if m.ordersConfirmed != nil {
		m.ordersConfirmed.Add(ctx, 1)
	}
}

var _ checkoutports.Service = (*Service)(nil)
