package application

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cabinetworks/storefront/internal/domains/catalog/domain"
	"github.com/cabinetworks/storefront/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context, filter ports.Filter) ([]*domain.Product, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) GetProduct(ctx context.Context, sku string) (*domain.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, mapError(domain.ErrMissingSKU)
	}
	return s.repo.GetBySKU(ctx, sku)
}

func (s *Service) TopSellers(ctx context.Context, limit int) ([]*domain.Product, error) {
	products, _, err := s.repo.List(ctx, ports.Filter{TopSeller: true, Limit: limit})
	return products, err
}

// Import upserts a batch of products. Rows failing validation are skipped
// rather than aborting the whole run, matching the importer's row-at-a-time
// tolerance for dirty spreadsheet exports.
func (s *Service) Import(ctx context.Context, products []*domain.Product) (ports.ImportOutcome, error) {
	var outcome ports.ImportOutcome
	for _, product := range products {
		if product == nil {
			outcome.Skipped++
			continue
		}
		if err := product.Validate(); err != nil {
			outcome.Skipped++
			continue
		}
		if _, err := s.repo.Upsert(ctx, product); err != nil {
			return outcome, err
		}
		outcome.Imported++
	}
	return outcome, nil
}

func (s *Service) CorrectPrice(ctx context.Context, sku string, price decimal.Decimal) error {
	if price.IsNegative() {
		return mapError(domain.ErrNegativePrice)
	}
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return mapError(domain.ErrMissingSKU)
	}
	return s.repo.UpdatePrice(ctx, sku, price)
}

func (s *Service) CorrectImage(ctx context.Context, sku string, imageURL string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return mapError(domain.ErrMissingSKU)
	}
	if strings.TrimSpace(imageURL) == "" {
		return errors.New("image url is required")
	}
	return s.repo.UpdateImage(ctx, sku, imageURL)
}

var _ ports.Service = (*Service)(nil)
