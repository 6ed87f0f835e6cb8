package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cabinetworks/storefront/internal/domains/catalog/domain"
)

// ImportOutcome summarizes a batch import run.
type ImportOutcome struct {
	Imported int
	Skipped  int
}

// Service exposes catalog use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context, filter Filter) ([]*domain.Product, int64, error)
	GetProduct(ctx context.Context, sku string) (*domain.Product, error)
	TopSellers(ctx context.Context, limit int) ([]*domain.Product, error)
	Import(ctx context.Context, products []*domain.Product) (ImportOutcome, error)
	CorrectPrice(ctx context.Context, sku string, price decimal.Decimal) error
	CorrectImage(ctx context.Context, sku string, imageURL string) error
}
