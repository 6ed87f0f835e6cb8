package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cabinetworks/storefront/internal/domains/quotes/domain"
	"github.com/cabinetworks/storefront/internal/domains/quotes/ports"
)

var _ ports.Service = (*Service)(nil)

// consultantPrompt frames every chat turn. The assistant gathers project
// details one question at a time and offers a preliminary quote once it has
// enough to work with.
const consultantPrompt = `You are a helpful cabinet consultation assistant for Cabinet Works, a family-owned business with 40 years of experience. Your role is to:

1. Ask friendly, conversational questions to understand the customer's cabinet project
2. Gather key information: room type, dimensions, cabinet style preferences, wood types, finishes, hardware
3. Provide helpful suggestions based on their needs
4. Explain different options (wood types, finishes, cabinet styles) in simple terms
5. Build excitement about their project
6. Capture their contact information naturally in conversation

Be warm, professional, and knowledgeable. Ask one question at a time. Keep responses concise and conversational.

When you have enough information, summarize what you've learned and offer to generate a preliminary quote.`

// Service implements quote management and the consultation chat.
type Service struct {
	repo      ports.Repository
	assistant ports.Assistant
	logger    *slog.Logger
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithAssistant wires the consultation chat backend.
func WithAssistant(assistant ports.Assistant) Option {
	return func(s *Service) { s.assistant = assistant }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateQuote(ctx context.Context, quote *domain.Quote) (*ports.QuoteProjection, error) {
	if err := quote.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, quote)
}

func (s *Service) GetQuote(ctx context.Context, id int64) (*ports.QuoteProjection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListQuotes(ctx context.Context, userID int64) ([]*ports.QuoteProjection, error) {
	return s.repo.List(ctx, userID)
}

// UpdateQuote applies a partial update and revalidates the aggregate.
func (s *Service) UpdateQuote(ctx context.Context, id int64, update ports.QuoteUpdate) (*ports.QuoteProjection, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	quote := current.Entity
	if update.Status != nil {
		quote.Status = *update.Status
	}
	if update.EstimatedCost != nil {
		quote.EstimatedCost = *update.EstimatedCost
	}
	if update.MaterialsCost != nil {
		quote.MaterialsCost = *update.MaterialsCost
	}
	if update.LaborCost != nil {
		quote.LaborCost = *update.LaborCost
	}
	if update.HardwareCost != nil {
		quote.HardwareCost = *update.HardwareCost
	}
	if update.CRMLeadID != nil {
		quote.CRMLeadID = *update.CRMLeadID
	}
	if update.SentToCRM != nil {
		quote.SentToCRM = *update.SentToCRM
	}
	if update.Notes != nil {
		quote.Notes = *update.Notes
	}
	if err := quote.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, quote)
}

func (s *Service) DeleteQuote(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Chat runs one consultation turn. The reply is returned to the caller
// either way; persisting it onto a quote only happens when quoteID is set,
// and a failure there loses history but not the reply.
func (s *Service) Chat(ctx context.Context, quoteID int64, messages []domain.Message) (string, error) {
	if s.assistant == nil {
		return "", fmt.Errorf("consultation assistant not configured")
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("%w: at least one message is required", ErrInvalidInput)
	}

	conversation := make([]domain.Message, 0, len(messages)+1)
	conversation = append(conversation, domain.Message{Role: "system", Content: consultantPrompt})
	conversation = append(conversation, messages...)

	reply, err := s.assistant.Complete(ctx, conversation)
	if err != nil {
		return "", fmt.Errorf("consultation chat: %w", err)
	}

	if quoteID != 0 {
		if err := s.appendToQuote(ctx, quoteID, messages, reply); err != nil {
			s.logger.WarnContext(ctx, "failed to persist chat turn onto quote",
				slog.Int64("quote_id", quoteID),
				slog.String("error", err.Error()))
		}
	}
	return reply, nil
}

func (s *Service) appendToQuote(ctx context.Context, quoteID int64, messages []domain.Message, reply string) error {
	current, err := s.repo.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}
	quote := current.Entity
	quote.Append(messages...)
	quote.Append(domain.Message{Role: "assistant", Content: reply})
	_, err = s.repo.Update(ctx, quote)
	return err
}
