package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cabinetworks/storefront/internal/domains/quotes/domain"
)

// Assistant produces one consultation reply for a conversation. A single
// stateless call; the full history travels with every request.
type Assistant interface {
	Complete(ctx context.Context, messages []domain.Message) (string, error)
}

// QuoteUpdate patches the mutable fields of a quote. Nil pointers leave the
// field unchanged.
type QuoteUpdate struct {
	Status        *domain.Status
	EstimatedCost *decimal.Decimal
	MaterialsCost *decimal.Decimal
	LaborCost     *decimal.Decimal
	HardwareCost  *decimal.Decimal
	CRMLeadID     *string
	SentToCRM     *bool
	Notes         *string
}

// Service exposes quote management and the design consultation chat.
type Service interface {
	CreateQuote(ctx context.Context, quote *domain.Quote) (*QuoteProjection, error)
	GetQuote(ctx context.Context, id int64) (*QuoteProjection, error)
	ListQuotes(ctx context.Context, userID int64) ([]*QuoteProjection, error)
	UpdateQuote(ctx context.Context, id int64, update QuoteUpdate) (*QuoteProjection, error)
	DeleteQuote(ctx context.Context, id int64) error
	// Chat sends the conversation to the assistant. When quoteID is non-zero
	// the exchange is appended to that quote's stored conversation.
	Chat(ctx context.Context, quoteID int64, messages []domain.Message) (string, error)
}
