package checkout

import (
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
	checkoutactivities "github.com/cabinetworks/storefront/internal/platform/temporal/activities/checkout"
	"github.com/cabinetworks/storefront/internal/platform/temporal/sequences"
)

const (
	// OrderConfirmationWorkflowName is the public identifier for registering the workflow.
	OrderConfirmationWorkflowName = "checkout.workflows.Confirmation"
	// OrderConfirmationTaskQueue is the queue consumed by the worker processing checkout workflows.
	OrderConfirmationTaskQueue = "ORDER_CONFIRMATION"
)

// OrderConfirmationWorkflowInput captures the payload required to confirm a
// paid checkout session.
type OrderConfirmationWorkflowInput struct {
	Command checkoutactivities.ConfirmOrderInput
	TraceID string
}

// OrderConfirmationWorkflow orchestrates the activities needed to persist a
// paid order and send the post-purchase emails.
func OrderConfirmationWorkflow(ctx workflow.Context, input OrderConfirmationWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	number := input.Command.Request.OrderNumber
	logger.Info("OrderConfirmationWorkflow started", withTraceID(input.TraceID, "orderNumber", number)...)
	order, err := sequences.RunOrderConfirmationSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderConfirmationWorkflow failed", withTraceID(input.TraceID, "orderNumber", number, "error", err)...)
		return nil, err
	}
	logger.Info("OrderConfirmationWorkflow completed", withTraceID(input.TraceID, "orderNumber", order.Number)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
