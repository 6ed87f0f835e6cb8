// Package memory provides an in-memory order repository for tests and local
// development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cabinetworks/storefront/internal/domains/orders/domain"
	"github.com/cabinetworks/storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

type Repository struct {
	mu         sync.Mutex
	byNumber   map[string]*domain.Order
	nextID     int64
	nextLineID int64
}

func NewRepository() *Repository {
	return &Repository{byNumber: make(map[string]*domain.Order), nextID: 1, nextLineID: 1}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byNumber[order.Number]; exists {
		return nil, ports.ErrDuplicateNumber
	}
	stored := clone(order)
	stored.ID = r.nextID
	r.nextID++
	for i := range stored.Lines {
		stored.Lines[i].ID = r.nextLineID
		stored.Lines[i].OrderID = stored.ID
		r.nextLineID++
	}
	r.byNumber[stored.Number] = stored
	return clone(stored), nil
}

func (r *Repository) GetByNumber(_ context.Context, number string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.byNumber[number]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(order), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders := make([]*domain.Order, 0, len(r.byNumber))
	for _, order := range r.byNumber {
		orders = append(orders, clone(order))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

func (r *Repository) UpdateFulfillment(_ context.Context, number string, status domain.FulfillmentStatus, trackingNumber, carrier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.byNumber[number]
	if !ok {
		return ports.ErrNotFound
	}
	order.Status = status
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	if carrier != "" {
		order.Carrier = carrier
	}
	return nil
}

func clone(order *domain.Order) *domain.Order {
	copied := *order
	copied.Lines = make([]domain.LineItem, len(order.Lines))
	copy(copied.Lines, order.Lines)
	return &copied
}
