package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinetworks/storefront/internal/domains/orders/adapters/memory"
	"github.com/cabinetworks/storefront/internal/domains/orders/domain"
	"github.com/cabinetworks/storefront/internal/domains/orders/ports"
)

type recordingNotifier struct {
	shipped []string
	err     error
}

func (n *recordingNotifier) SendShippingConfirmation(_ context.Context, order *domain.Order) error {
	n.shipped = append(n.shipped, order.Number)
	return n.err
}

func seedOrder(t *testing.T, repo *memory.Repository, number string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(
		number,
		"Pat Mason", "pat@example.com", "555-0101",
		domain.Address{Line1: "12 Shaker Ln", City: "Richmond", State: "VA", PostalCode: "23220"},
		"standard", "Standard Shipping (5-7 business days)",
		decimal.RequireFromString("120.00"), decimal.Zero,
		decimal.RequireFromString("6.36"), decimal.RequireFromString("126.36"),
		"pi_3NxyzTest",
		[]domain.LineItem{
			{SKU: "TK100", Name: "Somerset Knob", Quantity: 3, UnitPrice: decimal.RequireFromString("40.00"), LineTotal: decimal.RequireFromString("120.00")},
		},
	)
	require.NoError(t, err)
	saved, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	return saved
}

func TestAdvanceFulfillment_ShippedSendsConfirmation(t *testing.T) {
	repo := memory.NewRepository()
	notifier := &recordingNotifier{}
	svc := NewService(repo, WithShippingNotifier(notifier))
	order := seedOrder(t, repo, "CW-20260115-7KQ2MX")

	_, err := svc.AdvanceFulfillment(context.Background(), order.Number, domain.StatusProcessing, "", "")
	require.NoError(t, err)
	assert.Empty(t, notifier.shipped)

	updated, err := svc.AdvanceFulfillment(context.Background(), order.Number, domain.StatusShipped, "9400100000000000000001", "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	assert.Equal(t, []string{order.Number}, notifier.shipped)
}

func TestAdvanceFulfillment_NotifierFailureDoesNotRollBack(t *testing.T) {
	repo := memory.NewRepository()
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewService(repo, WithShippingNotifier(notifier))
	order := seedOrder(t, repo, "CW-20260115-7KQ2MX")

	_, err := svc.AdvanceFulfillment(context.Background(), order.Number, domain.StatusProcessing, "", "")
	require.NoError(t, err)
	updated, err := svc.AdvanceFulfillment(context.Background(), order.Number, domain.StatusShipped, "trk-1", "USPS")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)

	fetched, err := svc.GetOrder(context.Background(), order.Number)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, fetched.Status)
}

func TestAdvanceFulfillment_InvalidTransition(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewService(repo)
	order := seedOrder(t, repo, "CW-20260115-7KQ2MX")

	_, err := svc.AdvanceFulfillment(context.Background(), order.Number, domain.StatusDelivered, "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	fetched, err := svc.GetOrder(context.Background(), order.Number)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, fetched.Status, "rejected transition must not persist")
}

func TestAdvanceFulfillment_UnknownOrder(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.AdvanceFulfillment(context.Background(), "CW-00000000-MISSING", domain.StatusProcessing, "", "")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListOrders_NewestFirst(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewService(repo)
	seedOrder(t, repo, "CW-20260115-AAAAAA")
	seedOrder(t, repo, "CW-20260116-BBBBBB")

	list, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "CW-20260116-BBBBBB", list[0].Number)
}
