package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/cabinetworks/storefront/internal/domains/catalog/domain"
	"github.com/cabinetworks/storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

const defaultPageSize = 50

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Upsert(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *product
	if existing, ok := r.products[clone.SKU]; ok {
		clone.ID = existing.ID
	} else {
		r.nextID++
		clone.ID = r.nextID
	}
	r.products[clone.SKU] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		if product.ID == id {
			clone := *product
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) GetBySKU(_ context.Context, sku string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[sku]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) List(_ context.Context, filter ports.Filter) ([]*domain.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if matches(product, filter) {
			clone := *product
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].SKU < matched[j].SKU })

	total := int64(len(matched))
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset := filter.Offset
	if offset >= len(matched) {
		return []*domain.Product{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *Repository) UpdatePrice(_ context.Context, sku string, price decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[sku]
	if !ok {
		return ports.ErrNotFound
	}
	product.Price = price
	return nil
}

func (r *Repository) UpdateImage(_ context.Context, sku string, imageURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[sku]
	if !ok {
		return ports.ErrNotFound
	}
	product.ImageURL = imageURL
	return nil
}

func matches(product *domain.Product, filter ports.Filter) bool {
	if filter.Category != "" && !strings.EqualFold(product.Category, filter.Category) {
		return false
	}
	if filter.Finish != "" && !strings.EqualFold(product.Finish, filter.Finish) {
		return false
	}
	if filter.Collection != "" && !strings.EqualFold(product.Collection, filter.Collection) {
		return false
	}
	if filter.TopSeller && !product.TopSeller {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(product.Name), needle) &&
			!strings.Contains(strings.ToLower(product.SKU), needle) {
			return false
		}
	}
	return true
}
