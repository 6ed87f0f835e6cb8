package ports

import (
	"context"
	"errors"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	catalogdomain "github.com/cabinetworks/storefront/internal/domains/catalog/domain"
)

var (
	ErrLineNotFound    = errors.New("cart line not found")
	ErrProductNotFound = errors.New("product not found")
)

// Repository persists cart lines. AddOrIncrement must be atomic at the store
// (single conditional upsert) so concurrent adds for the same identity cannot
// lose updates.
type Repository interface {
	AddOrIncrement(ctx context.Context, identity cartdomain.Identity, productID int64, quantity int) (*cartdomain.Line, error)
	GetLine(ctx context.Context, lineID int64) (*cartdomain.Line, error)
	ListByIdentity(ctx context.Context, identity cartdomain.Identity) ([]*cartdomain.Line, error)
	UpdateQuantity(ctx context.Context, lineID int64, quantity int) error
	DeleteLine(ctx context.Context, lineID int64) error
	Clear(ctx context.Context, identity cartdomain.Identity) error
}

// ProductSource resolves catalog products for cart reads and adds.
type ProductSource interface {
	GetByID(ctx context.Context, id int64) (*catalogdomain.Product, error)
}
