package ports

import (
	"context"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

// CheckoutStore persists a confirmed order and empties the cart that
// produced it in a single atomic step. Either both happen or neither does.
type CheckoutStore interface {
	PersistOrderAndClearCart(ctx context.Context, order *ordersdomain.Order, identity cartdomain.Identity) (*ordersdomain.Order, error)
}
