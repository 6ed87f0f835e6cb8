package ports

import (
	"context"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	"github.com/cabinetworks/storefront/internal/domains/checkout/domain"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

// ConfirmationOrchestrator runs the payment confirmation flow, durably when
// a workflow engine is configured and inline otherwise.
type ConfirmationOrchestrator interface {
	ConfirmOrder(ctx context.Context, identity cartdomain.Identity, req domain.ConfirmRequest) (*ordersdomain.Order, error)
}
