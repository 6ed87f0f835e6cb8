package ports

import (
	"context"

	"github.com/cabinetworks/storefront/internal/domains/cart/domain"
)

// Service exposes cart use cases to adapters.
type Service interface {
	AddItem(ctx context.Context, identity domain.Identity, productID int64, quantity int) (*domain.Line, error)
	SetQuantity(ctx context.Context, lineID int64, quantity int) error
	RemoveLine(ctx context.Context, lineID int64) error
	Clear(ctx context.Context, identity domain.Identity) error
	GetCart(ctx context.Context, identity domain.Identity) (*domain.View, error)
}
