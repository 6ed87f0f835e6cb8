package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cabinetworks/storefront/internal/domains/cart/domain"
	"github.com/cabinetworks/storefront/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory cart persistence adapter.
type Repository struct {
	mu     sync.Mutex
	lines  map[int64]*domain.Line
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{lines: map[int64]*domain.Line{}}
}

func (r *Repository) AddOrIncrement(_ context.Context, identity domain.Identity, productID int64, quantity int) (*domain.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range r.lines {
		if line.Identity == identity && line.ProductID == productID {
			line.Quantity += quantity
			clone := *line
			return &clone, nil
		}
	}
	r.nextID++
	line := &domain.Line{ID: r.nextID, Identity: identity, ProductID: productID, Quantity: quantity}
	r.lines[line.ID] = line
	clone := *line
	return &clone, nil
}

func (r *Repository) GetLine(_ context.Context, lineID int64) (*domain.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	line, ok := r.lines[lineID]
	if !ok {
		return nil, ports.ErrLineNotFound
	}
	clone := *line
	return &clone, nil
}

func (r *Repository) ListByIdentity(_ context.Context, identity domain.Identity) ([]*domain.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*domain.Line
	for _, line := range r.lines {
		if line.Identity == identity {
			clone := *line
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) UpdateQuantity(_ context.Context, lineID int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	line, ok := r.lines[lineID]
	if !ok {
		return ports.ErrLineNotFound
	}
	line.Quantity = quantity
	return nil
}

func (r *Repository) DeleteLine(_ context.Context, lineID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lines[lineID]; !ok {
		return ports.ErrLineNotFound
	}
	delete(r.lines, lineID)
	return nil
}

func (r *Repository) Clear(_ context.Context, identity domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, line := range r.lines {
		if line.Identity == identity {
			delete(r.lines, id)
		}
	}
	return nil
}
