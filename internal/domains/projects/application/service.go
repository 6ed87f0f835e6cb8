package application

import (
	"context"

	"github.com/cabinetworks/storefront/internal/domains/projects/domain"
	"github.com/cabinetworks/storefront/internal/domains/projects/ports"
)

var _ ports.Service = (*Service)(nil)

// Service implements project tracking on top of a repository.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProject(ctx context.Context, project *domain.Project) (*ports.ProjectProjection, error) {
	if err := project.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, project)
}

func (s *Service) GetProject(ctx context.Context, id int64) (*ports.ProjectProjection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProjects(ctx context.Context, userID int64) ([]*ports.ProjectProjection, error) {
	return s.repo.List(ctx, userID)
}

// UpdateProject applies a partial update and revalidates the aggregate.
func (s *Service) UpdateProject(ctx context.Context, id int64, update ports.ProjectUpdate) (*ports.ProjectProjection, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project := current.Entity
	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.Status != nil {
		project.Status = *update.Status
	}
	if update.EstimatedDelivery != nil {
		project.EstimatedDelivery = update.EstimatedDelivery
	}
	if update.InstalledAt != nil {
		project.InstalledAt = update.InstalledAt
	}
	if update.FinalPrice != nil {
		project.FinalPrice = *update.FinalPrice
	}
	if update.DepositPaid != nil {
		project.DepositPaid = *update.DepositPaid
	}
	if update.BalanceDue != nil {
		project.BalanceDue = *update.BalanceDue
	}
	if update.Notes != nil {
		project.Notes = *update.Notes
	}
	if err := project.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, project)
}
