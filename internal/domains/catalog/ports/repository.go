package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/cabinetworks/storefront/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Filter narrows product listings. Zero values mean "no constraint";
// Limit <= 0 falls back to the repository default page size.
type Filter struct {
	Search     string
	Category   string
	Finish     string
	Collection string
	TopSeller  bool
	Limit      int
	Offset     int
}

// Repository persists catalog products.
type Repository interface {
	Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context, filter Filter) ([]*domain.Product, int64, error)
	UpdatePrice(ctx context.Context, sku string, price decimal.Decimal) error
	UpdateImage(ctx context.Context, sku string, imageURL string) error
}
