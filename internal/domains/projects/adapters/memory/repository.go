package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cabinetworks/storefront/internal/domains/projects/domain"
	"github.com/cabinetworks/storefront/internal/domains/projects/ports"
	"github.com/cabinetworks/storefront/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type entry struct {
	project  *domain.Project
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

func (r *Repository) Create(_ context.Context, project *domain.Project) (*ports.ProjectProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := clone(project)
	stored.ID = r.nextID
	r.nextID++
	now := time.Now()
	e := &entry{project: stored, metadata: projection.Metadata{CreatedAt: now, UpdatedAt: now}}
	r.byID[stored.ID] = e
	return toProjection(e), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*ports.ProjectProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return toProjection(e), nil
}

func (r *Repository) List(_ context.Context, userID int64) ([]*ports.ProjectProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	projections := make([]*ports.ProjectProjection, 0, len(r.byID))
	for _, e := range r.byID {
		if userID != 0 && e.project.UserID != userID {
			continue
		}
		projections = append(projections, toProjection(e))
	}
	sort.Slice(projections, func(i, j int) bool { return projections[i].Entity.ID > projections[j].Entity.ID })
	return projections, nil
}

func (r *Repository) Update(_ context.Context, project *domain.Project) (*ports.ProjectProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[project.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	e.project = clone(project)
	e.metadata.UpdatedAt = time.Now()
	return toProjection(e), nil
}

func toProjection(e *entry) *ports.ProjectProjection {
	return &ports.ProjectProjection{Entity: clone(e.project), Metadata: e.metadata}
}

func clone(project *domain.Project) *domain.Project {
	copied := *project
	return &copied
}
