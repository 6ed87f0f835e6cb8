package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cabinetworks/storefront/internal/domains/cart/domain"
	"github.com/cabinetworks/storefront/internal/domains/cart/ports"
	catalogports "github.com/cabinetworks/storefront/internal/domains/catalog/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid cart input")

// Service orchestrates cart use cases.
type Service struct {
	repo     ports.Repository
	products ports.ProductSource
}

func NewService(repo ports.Repository, products ports.ProductSource) *Service {
	return &Service{repo: repo, products: products}
}

// AddItem increments the existing line for (identity, product) or inserts a
// new one. The increment-or-insert is a single atomic upsert in the store.
func (s *Service) AddItem(ctx context.Context, identity domain.Identity, productID int64, quantity int) (*domain.Line, error) {
	if !identity.Valid() {
		return nil, mapError(domain.ErrInvalidIdentity)
	}
	if quantity < 1 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return s.repo.AddOrIncrement(ctx, identity, productID, quantity)
}

// SetQuantity overwrites a line's quantity; zero deletes the line.
func (s *Service) SetQuantity(ctx context.Context, lineID int64, quantity int) error {
	if quantity < 0 {
		return mapError(domain.ErrInvalidQuantity)
	}
	if _, err := s.repo.GetLine(ctx, lineID); err != nil {
		return err
	}
	if quantity == 0 {
		return s.repo.DeleteLine(ctx, lineID)
	}
	return s.repo.UpdateQuantity(ctx, lineID, quantity)
}

// RemoveLine deletes a line; removing an absent line is not an error.
func (s *Service) RemoveLine(ctx context.Context, lineID int64) error {
	err := s.repo.DeleteLine(ctx, lineID)
	if errors.Is(err, ports.ErrLineNotFound) {
		return nil
	}
	return err
}

// Clear drops every line for the identity; clearing an empty cart is a no-op.
func (s *Service) Clear(ctx context.Context, identity domain.Identity) error {
	if !identity.Valid() {
		return mapError(domain.ErrInvalidIdentity)
	}
	return s.repo.Clear(ctx, identity)
}

// GetCart returns the lines joined with current catalog data. Lines whose
// product no longer resolves are priced at zero rather than failing the read,
// tolerating catalog changes between add and checkout.
func (s *Service) GetCart(ctx context.Context, identity domain.Identity) (*domain.View, error) {
	if !identity.Valid() {
		return nil, mapError(domain.ErrInvalidIdentity)
	}
	lines, err := s.repo.ListByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}
	view := &domain.View{Identity: identity, Subtotal: decimal.Zero}
	for _, line := range lines {
		lineView := domain.LineView{
			LineID:    line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: decimal.Zero,
			LineTotal: decimal.Zero,
		}
		product, err := s.products.GetByID(ctx, line.ProductID)
		switch {
		case err == nil:
			lineView.SKU = product.SKU
			lineView.Name = product.Name
			lineView.ImageURL = product.ImageURL
			lineView.UnitPrice = product.Price
			lineView.LineTotal = product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			lineView.Available = true
		case errors.Is(err, catalogports.ErrNotFound):
			// product removed from the catalog after it was added to the cart
		default:
			return nil, err
		}
		view.Lines = append(view.Lines, lineView)
		view.Count += line.Quantity
		view.Subtotal = view.Subtotal.Add(lineView.LineTotal)
	}
	return view, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidIdentity) || errors.Is(err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
