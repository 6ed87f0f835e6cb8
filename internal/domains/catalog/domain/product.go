package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingSKU    = errors.New("product sku is required")
	ErrMissingName   = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price must not be negative")
)

// Product models a single hardware catalog entry. Records are immutable once
// imported except for price and image corrections.
type Product struct {
	ID         int64
	SKU        string
	Name       string
	Category   string
	Finish     string
	Collection string
	Price      decimal.Decimal
	ImageURL   string
	Images     []string
	InStock    bool
	TopSeller  bool
}

// NewProduct validates and constructs a Product aggregate.
func NewProduct(sku, name, category, finish, collection string, price decimal.Decimal, imageURL string) (*Product, error) {
	product := &Product{
		SKU:        strings.TrimSpace(sku),
		Name:       strings.TrimSpace(name),
		Category:   strings.TrimSpace(category),
		Finish:     strings.TrimSpace(finish),
		Collection: strings.TrimSpace(collection),
		Price:      price,
		ImageURL:   strings.TrimSpace(imageURL),
		InStock:    true,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if p.SKU == "" {
		return ErrMissingSKU
	}
	if p.Name == "" {
		return ErrMissingName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
