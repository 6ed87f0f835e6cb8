package ports

import (
	"context"
	"errors"

	"github.com/cabinetworks/storefront/internal/domains/projects/domain"
	"github.com/cabinetworks/storefront/internal/shared/projection"
)

// ErrNotFound is returned when no project matches the lookup.
var ErrNotFound = errors.New("project not found")

// ProjectProjection pairs a project aggregate with its persistence metadata.
type ProjectProjection = projection.Projection[*domain.Project]

// Repository persists project aggregates.
type Repository interface {
	Create(ctx context.Context, project *domain.Project) (*ProjectProjection, error)
	GetByID(ctx context.Context, id int64) (*ProjectProjection, error)
	// List returns projects newest first. userID 0 lists all projects.
	List(ctx context.Context, userID int64) ([]*ProjectProjection, error)
	Update(ctx context.Context, project *domain.Project) (*ProjectProjection, error)
}
