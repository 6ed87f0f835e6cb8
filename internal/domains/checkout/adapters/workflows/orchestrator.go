package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	checkoutdomain "github.com/cabinetworks/storefront/internal/domains/checkout/domain"
	"github.com/cabinetworks/storefront/internal/domains/checkout/ports"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
	checkoutactivities "github.com/cabinetworks/storefront/internal/platform/temporal/activities/checkout"
	checkoutworkflows "github.com/cabinetworks/storefront/internal/platform/temporal/workflows/checkout"
)

var (
	_ ports.ConfirmationOrchestrator = (*TemporalCheckoutWorkflows)(nil)
	_ ports.ConfirmationOrchestrator = (*InlineCheckoutWorkflows)(nil)
)

// TemporalCheckoutWorkflows starts order confirmation workflows on a
// Temporal cluster.
type TemporalCheckoutWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCheckoutWorkflows wires a Temporal client into the orchestrator.
func NewTemporalCheckoutWorkflows(c client.Client) *TemporalCheckoutWorkflows {
	return &TemporalCheckoutWorkflows{client: c, taskQueue: checkoutworkflows.OrderConfirmationTaskQueue}
}

// ConfirmOrder starts the Temporal workflow that confirms a paid checkout
// session. The workflow ID is derived from the order number, so a double
// submit of the same session joins the in-flight confirmation instead of
// running twice.
func (o *TemporalCheckoutWorkflows) ConfirmOrder(ctx context.Context, identity cartdomain.Identity, req checkoutdomain.ConfirmRequest) (*ordersdomain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildConfirmationWorkflowID(req, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	command := checkoutactivities.ConfirmOrderInput{Identity: string(identity), Request: req}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.OrderConfirmationWorkflow,
		checkoutworkflows.OrderConfirmationWorkflowInput{Command: command, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(req.OrderNumber) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var order ordersdomain.Order
			if err := existingRun.Get(ctx, &order); err != nil {
				return nil, err
			}
			return &order, nil
		}
		return nil, err
	}
	var order ordersdomain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// InlineCheckoutWorkflows executes the service directly without Temporal,
// useful for tests or dev fallbacks.
type InlineCheckoutWorkflows struct {
	service ports.Service
}

// NewInlineCheckoutWorkflows wraps the checkout service for synchronous execution.
func NewInlineCheckoutWorkflows(service ports.Service) *InlineCheckoutWorkflows {
	return &InlineCheckoutWorkflows{service: service}
}

// ConfirmOrder delegates to the application service without durable orchestration.
func (o *InlineCheckoutWorkflows) ConfirmOrder(ctx context.Context, identity cartdomain.Identity, req checkoutdomain.ConfirmRequest) (*ordersdomain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout workflows not configured")
	}
	return o.service.ConfirmPayment(ctx, identity, req)
}

func buildConfirmationWorkflowID(req checkoutdomain.ConfirmRequest, traceComponent string) string {
	if number := strings.TrimSpace(req.OrderNumber); number != "" {
		return fmt.Sprintf("order-confirmation-%s", number)
	}
	return fmt.Sprintf("order-confirmation-%d-%s", time.Now().UnixNano(), traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
