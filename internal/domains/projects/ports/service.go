package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cabinetworks/storefront/internal/domains/projects/domain"
)

// ProjectUpdate patches the mutable fields of a project. Nil pointers leave
// the field unchanged.
type ProjectUpdate struct {
	Name              *string
	Status            *domain.Status
	EstimatedDelivery *time.Time
	InstalledAt       *time.Time
	FinalPrice        *decimal.Decimal
	DepositPaid       *decimal.Decimal
	BalanceDue        *decimal.Decimal
	Notes             *string
}

// Service exposes project tracking for sold jobs.
type Service interface {
	CreateProject(ctx context.Context, project *domain.Project) (*ProjectProjection, error)
	GetProject(ctx context.Context, id int64) (*ProjectProjection, error)
	ListProjects(ctx context.Context, userID int64) ([]*ProjectProjection, error)
	UpdateProject(ctx context.Context, id int64, update ProjectUpdate) (*ProjectProjection, error)
}
