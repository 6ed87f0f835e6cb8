package ports

import (
	"context"
	"errors"

	"github.com/cabinetworks/storefront/internal/domains/quotes/domain"
	"github.com/cabinetworks/storefront/internal/shared/projection"
)

// ErrNotFound is returned when no quote matches the lookup.
var ErrNotFound = errors.New("quote not found")

// QuoteProjection pairs a quote aggregate with its persistence metadata.
type QuoteProjection = projection.Projection[*domain.Quote]

// Repository persists quote aggregates.
type Repository interface {
	Create(ctx context.Context, quote *domain.Quote) (*QuoteProjection, error)
	GetByID(ctx context.Context, id int64) (*QuoteProjection, error)
	// List returns quotes newest first. userID 0 lists all quotes.
	List(ctx context.Context, userID int64) ([]*QuoteProjection, error)
	Update(ctx context.Context, quote *domain.Quote) (*QuoteProjection, error)
	Delete(ctx context.Context, id int64) error
}
