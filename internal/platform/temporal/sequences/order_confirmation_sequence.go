package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	checkoutactivities "github.com/cabinetworks/storefront/internal/platform/temporal/activities/checkout"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

// RunOrderConfirmationSequence executes the ordered set of activities needed
// to turn a paid checkout session into a persisted order.
func RunOrderConfirmationSequence(ctx workflow.Context, input checkoutactivities.ConfirmOrderInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order confirmation sequence started", "orderNumber", input.Request.OrderNumber)
	confirmOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	}
	notifyOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var order ordersdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, confirmOptions), checkoutactivities.ConfirmOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order confirmation sequence failed", "orderNumber", input.Request.OrderNumber, "error", err)
		return nil, err
	}
	logger.Info("order confirmation sequence persisted", "orderNumber", order.Number)

	// The order stands even when the emails cannot be sent.
	notifyInput := checkoutactivities.OrderIdentifier{Number: order.Number}
	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, notifyOptions), checkoutactivities.NotifyOrderPlacedActivityName, notifyInput).Get(ctx, nil); err != nil {
		logger.Error("order confirmation sequence notify failed", "orderNumber", order.Number, "error", err)
		return &order, nil
	}
	logger.Info("order confirmation sequence notified", "orderNumber", order.Number)
	return &order, nil
}
