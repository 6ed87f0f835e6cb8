package checkout

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	checkoutdomain "github.com/cabinetworks/storefront/internal/domains/checkout/domain"
	checkoutports "github.com/cabinetworks/storefront/internal/domains/checkout/ports"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
	ordersports "github.com/cabinetworks/storefront/internal/domains/orders/ports"
)

const (
	// ConfirmOrderActivityName verifies the payment intent and persists the order.
	ConfirmOrderActivityName = "checkout.activities.ConfirmOrder"
	// NotifyOrderPlacedActivityName sends the post-purchase emails.
	NotifyOrderPlacedActivityName = "checkout.activities.NotifyOrderPlaced"
)

// ConfirmOrderInput carries a confirmation request across the activity
// boundary. Identity travels as a string because it crosses serialization.
type ConfirmOrderInput struct {
	Identity string
	Request  checkoutdomain.ConfirmRequest
}

// OrderIdentifier names a persisted order for follow-up activities.
type OrderIdentifier struct {
	Number string
}

// Activities groups activities that operate on the checkout bounded context.
type Activities struct {
	confirmService checkoutports.Service
	orders         ordersports.Repository
	notifier       checkoutports.Notifier
}

// NewActivities wires the checkout collaborators into the Temporal activities
// bundle. confirmService should be constructed without a notifier so emails
// are only sent by the dedicated notify activity.
func NewActivities(confirmService checkoutports.Service, orders ordersports.Repository, notifier checkoutports.Notifier) *Activities {
	return &Activities{
		confirmService: confirmService,
		orders:         orders,
		notifier:       notifier,
	}
}

// ConfirmOrder verifies the payment with the gateway and persists the order
// atomically with the cart clear.
func (a *Activities) ConfirmOrder(ctx context.Context, input ConfirmOrderInput) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.confirmService == nil {
		logger.Error("order confirm activity not initialized", "orderNumber", input.Request.OrderNumber)
		return nil, errors.New("order confirm activity not initialized")
	}
	logger.Info("ConfirmOrder activity started", "orderNumber", input.Request.OrderNumber)
	order, err := a.confirmService.ConfirmPayment(ctx, cartdomain.Identity(input.Identity), input.Request)
	if err != nil {
		logger.Error("ConfirmOrder activity failed", "orderNumber", input.Request.OrderNumber, "error", err)
		return nil, err
	}
	logger.Info("ConfirmOrder activity completed", "orderNumber", order.Number)
	return order, nil
}

// NotifyOrderPlaced loads the persisted order and sends the customer
// confirmation and the admin alert.
func (a *Activities) NotifyOrderPlaced(ctx context.Context, input OrderIdentifier) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("order notify activity not initialized", "orderNumber", input.Number)
		return errors.New("order notify activity not initialized")
	}
	if a.notifier == nil {
		logger.Info("notifier not configured; skipping", "orderNumber", input.Number)
		return nil
	}
	if a.orders == nil {
		logger.Error("order repository not configured for notifications", "orderNumber", input.Number)
		return errors.New("order repository not configured for notifications")
	}

	var hb notifyHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("NotifyOrderPlaced already completed in prior attempt; skipping", "orderNumber", input.Number)
		return nil
	}

	logger.Info("NotifyOrderPlaced activity started", "orderNumber", input.Number)
	order, err := a.orders.GetByNumber(ctx, input.Number)
	if err != nil {
		logger.Error("NotifyOrderPlaced failed to load order", "orderNumber", input.Number, "error", err)
		return err
	}
	if err := a.notifier.SendOrderConfirmation(ctx, order); err != nil {
		logger.Error("NotifyOrderPlaced confirmation failed", "orderNumber", input.Number, "error", err)
		return err
	}
	if err := a.notifier.SendAdminAlert(ctx, order); err != nil {
		logger.Error("NotifyOrderPlaced admin alert failed", "orderNumber", input.Number, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, notifyHeartbeat{Completed: true})
	logger.Info("NotifyOrderPlaced activity completed", "orderNumber", input.Number)
	return nil
}

type notifyHeartbeat struct {
	Completed bool
}
