package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinetworks/storefront/internal/domains/projects/adapters/memory"
	"github.com/cabinetworks/storefront/internal/domains/projects/domain"
	"github.com/cabinetworks/storefront/internal/domains/projects/ports"
)

func TestCreateProject_StartsInDesign(t *testing.T) {
	svc := NewService(memory.NewRepository())
	project, err := domain.NewProject(7, 3, "Mason kitchen remodel")
	require.NoError(t, err)

	created, err := svc.CreateProject(context.Background(), project)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDesign, created.Entity.Status)
	assert.Equal(t, int64(3), created.Entity.QuoteID)
}

func TestCreateProject_Validation(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := domain.NewProject(7, 0, "   ")
	assert.ErrorIs(t, err, domain.ErrMissingName)

	_, err = domain.NewProject(0, 0, "Mason kitchen remodel")
	assert.ErrorIs(t, err, domain.ErrMissingUser)

	project, err := domain.NewProject(7, 0, "Mason kitchen remodel")
	require.NoError(t, err)
	project.FinalPrice = decimal.RequireFromString("-1")
	_, err = svc.CreateProject(context.Background(), project)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProject_AdvancesStatusAndFinancials(t *testing.T) {
	svc := NewService(memory.NewRepository())
	project, err := domain.NewProject(7, 0, "Mason kitchen remodel")
	require.NoError(t, err)
	created, err := svc.CreateProject(context.Background(), project)
	require.NoError(t, err)

	status := domain.StatusManufacturing
	finalPrice := decimal.RequireFromString("14500.00")
	deposit := decimal.RequireFromString("5000.00")
	balance := decimal.RequireFromString("9500.00")
	delivery := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	updated, err := svc.UpdateProject(context.Background(), created.Entity.ID, ports.ProjectUpdate{
		Status:            &status,
		FinalPrice:        &finalPrice,
		DepositPaid:       &deposit,
		BalanceDue:        &balance,
		EstimatedDelivery: &delivery,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusManufacturing, updated.Entity.Status)
	assert.True(t, updated.Entity.BalanceDue.Equal(balance))
	require.NotNil(t, updated.Entity.EstimatedDelivery)
	assert.Equal(t, delivery, *updated.Entity.EstimatedDelivery)
}

func TestUpdateProject_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(memory.NewRepository())
	project, err := domain.NewProject(7, 0, "Mason kitchen remodel")
	require.NoError(t, err)
	created, err := svc.CreateProject(context.Background(), project)
	require.NoError(t, err)

	bogus := domain.Status("paused")
	_, err = svc.UpdateProject(context.Background(), created.Entity.ID, ports.ProjectUpdate{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListProjects_FiltersByUser(t *testing.T) {
	svc := NewService(memory.NewRepository())
	for _, userID := range []int64{7, 7, 8} {
		project, err := domain.NewProject(userID, 0, "remodel")
		require.NoError(t, err)
		_, err = svc.CreateProject(context.Background(), project)
		require.NoError(t, err)
	}

	all, err := svc.ListProjects(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.ListProjects(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestGetProject_Unknown(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.GetProject(context.Background(), 42)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
