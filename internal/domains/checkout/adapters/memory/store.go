// Package memory implements the checkout store over the in-memory cart and
// order repositories, for tests and local development.
package memory

import (
	"context"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	cartports "github.com/cabinetworks/storefront/internal/domains/cart/ports"
	"github.com/cabinetworks/storefront/internal/domains/checkout/ports"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
	ordersports "github.com/cabinetworks/storefront/internal/domains/orders/ports"
)

var _ ports.CheckoutStore = (*Store)(nil)

type Store struct {
	orders ordersports.Repository
	carts  cartports.Repository
}

func NewStore(orders ordersports.Repository, carts cartports.Repository) *Store {
	return &Store{orders: orders, carts: carts}
}

// PersistOrderAndClearCart creates the order, then clears the cart. The
// in-memory cart clear cannot fail, so the pair behaves atomically for the
// scenarios tests exercise.
func (s *Store) PersistOrderAndClearCart(ctx context.Context, order *ordersdomain.Order, identity cartdomain.Identity) (*ordersdomain.Order, error) {
	saved, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx, identity); err != nil {
		return nil, err
	}
	return saved, nil
}
