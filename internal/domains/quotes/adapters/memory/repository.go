package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cabinetworks/storefront/internal/domains/quotes/domain"
	"github.com/cabinetworks/storefront/internal/domains/quotes/ports"
	"github.com/cabinetworks/storefront/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type entry struct {
	quote    *domain.Quote
	metadata projection.Metadata
}

type Repository struct {
	mu     sync.Mutex
	byID   map[int64]*entry
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{byID: make(map[int64]*entry), nextID: 1}
}

func (r *Repository) Create(_ context.Context, quote *domain.Quote) (*ports.QuoteProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := clone(quote)
	stored.ID = r.nextID
	r.nextID++
	now := time.Now()
	e := &entry{quote: stored, metadata: projection.Metadata{CreatedAt: now, UpdatedAt: now}}
	r.byID[stored.ID] = e
	return toProjection(e), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*ports.QuoteProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return toProjection(e), nil
}

func (r *Repository) List(_ context.Context, userID int64) ([]*ports.QuoteProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	projections := make([]*ports.QuoteProjection, 0, len(r.byID))
	for _, e := range r.byID {
		if userID != 0 && e.quote.UserID != userID {
			continue
		}
		projections = append(projections, toProjection(e))
	}
	sort.Slice(projections, func(i, j int) bool { return projections[i].Entity.ID > projections[j].Entity.ID })
	return projections, nil
}

func (r *Repository) Update(_ context.Context, quote *domain.Quote) (*ports.QuoteProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[quote.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	e.quote = clone(quote)
	e.metadata.UpdatedAt = time.Now()
	return toProjection(e), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func toProjection(e *entry) *ports.QuoteProjection {
	return &ports.QuoteProjection{Entity: clone(e.quote), Metadata: e.metadata}
}

func clone(quote *domain.Quote) *domain.Quote {
	copied := *quote
	copied.Conversation = make([]domain.Message, len(quote.Conversation))
	copy(copied.Conversation, quote.Conversation)
	return &copied
}
