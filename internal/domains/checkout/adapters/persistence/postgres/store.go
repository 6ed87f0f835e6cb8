// Package postgres implements the checkout store on PostgreSQL. The order
// insert and the cart clear share one transaction.
package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	"github.com/cabinetworks/storefront/internal/domains/checkout/ports"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
	orderspostgres "github.com/cabinetworks/storefront/internal/domains/orders/adapters/persistence/postgres"
)

var _ ports.CheckoutStore = (*Store)(nil)

type Store struct {
	db *gorm.DB
}

// NewStore wires a PostgreSQL-backed checkout store. Caller manages DB
// lifecycle; table migrations belong to the orders and cart repositories.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// PersistOrderAndClearCart commits the order rows and deletes the cart's
// lines in a single transaction. On any failure both roll back, leaving the
// cart intact for retry.
func (s *Store) PersistOrderAndClearCart(ctx context.Context, order *ordersdomain.Order, identity cartdomain.Identity) (*ordersdomain.Order, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("postgres checkout store not configured")
	}
	var saved *ordersdomain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		saved, err = orderspostgres.InsertOrder(ctx, tx, order)
		if err != nil {
			return err
		}
		return tx.Exec("DELETE FROM cart_lines WHERE identity = ?", string(identity)).Error
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
