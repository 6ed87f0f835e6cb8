package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/cabinetworks/storefront/internal/domains/cart/adapters/memory"
	"github.com/cabinetworks/storefront/internal/domains/cart/domain"
	"github.com/cabinetworks/storefront/internal/domains/cart/ports"
	catalogmemory "github.com/cabinetworks/storefront/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/cabinetworks/storefront/internal/domains/catalog/domain"
)

func newCartFixture(t *testing.T) (*Service, *catalogmemory.Repository) {
	t.Helper()
	catalog := catalogmemory.NewRepository()
	svc := NewService(cartmemory.NewRepository(), catalog)
	return svc, catalog
}

func seedCatalog(t *testing.T, catalog *catalogmemory.Repository, sku, name, price string) *catalogdomain.Product {
	t.Helper()
	product, err := catalogdomain.NewProduct(sku, name, "Knobs", "Brass", "Somerset", decimal.RequireFromString(price), "")
	require.NoError(t, err)
	saved, err := catalog.Upsert(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func TestAddItem_AccumulatesQuantityOnSameProduct(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedCatalog(t, catalog, "TK100", "Somerset Knob", "40.00")
	identity := domain.UserIdentity(7)

	first, err := svc.AddItem(context.Background(), identity, product.ID, 1)
	require.NoError(t, err)
	second, err := svc.AddItem(context.Background(), identity, product.ID, 1)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 2, second.Quantity)

	view, err := svc.GetCart(context.Background(), identity)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	require.Equal(t, 2, view.Count)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc, _ := newCartFixture(t)
	_, err := svc.AddItem(context.Background(), domain.UserIdentity(7), 999, 1)
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedCatalog(t, catalog, "TK100", "Somerset Knob", "40.00")
	_, err := svc.AddItem(context.Background(), domain.UserIdentity(7), product.ID, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetQuantity_ZeroDeletesLine(t *testing.T) {
	svc, catalog := newCartFixture(t)
	product := seedCatalog(t, catalog, "TK100", "Somerset Knob", "40.00")
	identity := domain.UserIdentity(7)

	line, err := svc.AddItem(context.Background(), identity, product.ID, 3)
	require.NoError(t, err)

	require.NoError(t, svc.SetQuantity(context.Background(), line.ID, 0))

	view, err := svc.GetCart(context.Background(), identity)
	require.NoError(t, err)
	require.Empty(t, view.Lines)
	require.Equal(t, 0, view.Count)
}

func TestSetQuantity_UnknownLine(t *testing.T) {
	svc, _ := newCartFixture(t)
	err := svc.SetQuantity(context.Background(), 42, 1)
	require.ErrorIs(t, err, ports.ErrLineNotFound)
}

func TestRemoveLine_AbsentIsNoop(t *testing.T) {
	svc, _ := newCartFixture(t)
	require.NoError(t, svc.RemoveLine(context.Background(), 42))
}

func TestGetCart_IsIdempotentAndComputesSubtotal(t *testing.T) {
	svc, catalog := newCartFixture(t)
	knob := seedCatalog(t, catalog, "TK100", "Somerset Knob", "40.00")
	pull := seedCatalog(t, catalog, "TK200", "Somerset Pull", "12.50")
	identity, err := domain.AnonymousIdentity("d6f6c0a2")
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), identity, knob.ID, 3)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), identity, pull.ID, 2)
	require.NoError(t, err)

	first, err := svc.GetCart(context.Background(), identity)
	require.NoError(t, err)
	second, err := svc.GetCart(context.Background(), identity)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.Equal(t, 5, first.Count)
	require.True(t, first.Subtotal.Equal(decimal.RequireFromString("145.00")), "subtotal %s", first.Subtotal)
}

func TestGetCart_UnresolvableProductPricedZero(t *testing.T) {
	svc, catalog := newCartFixture(t)
	knob := seedCatalog(t, catalog, "TK100", "Somerset Knob", "40.00")
	identity := domain.UserIdentity(7)

	// a line pointing at a product the catalog no longer resolves
	repo := cartmemory.NewRepository()
	svc = NewService(repo, catalog)
	_, err := repo.AddOrIncrement(context.Background(), identity, knob.ID, 1)
	require.NoError(t, err)
	_, err = repo.AddOrIncrement(context.Background(), identity, 999, 2)
	require.NoError(t, err)

	view, err := svc.GetCart(context.Background(), identity)
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	require.True(t, view.Lines[0].Available)
	require.False(t, view.Lines[1].Available)
	require.True(t, view.Lines[1].UnitPrice.IsZero())
	require.True(t, view.Subtotal.Equal(decimal.RequireFromString("40.00")))
}

func TestIdentityNamespaces(t *testing.T) {
	require.True(t, domain.UserIdentity(1).Valid())
	anon, err := domain.AnonymousIdentity("token-1")
	require.NoError(t, err)
	require.True(t, anon.Valid())
	require.NotEqual(t, domain.UserIdentity(1), anon)

	_, err = domain.AnonymousIdentity("  ")
	require.ErrorIs(t, err, domain.ErrInvalidIdentity)
	require.False(t, domain.Identity("whatever").Valid())
}
