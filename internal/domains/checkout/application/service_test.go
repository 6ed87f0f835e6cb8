package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/cabinetworks/storefront/internal/domains/cart/adapters/memory"
	cartapp "github.com/cabinetworks/storefront/internal/domains/cart/application"
	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	checkoutmemory "github.com/cabinetworks/storefront/internal/domains/checkout/adapters/memory"
	"github.com/cabinetworks/storefront/internal/domains/checkout/domain"
	"github.com/cabinetworks/storefront/internal/domains/checkout/ports"
	catalogmemory "github.com/cabinetworks/storefront/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/cabinetworks/storefront/internal/domains/catalog/domain"
	ordersmemory "github.com/cabinetworks/storefront/internal/domains/orders/adapters/memory"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

type fakeGateway struct {
	intents        map[string]*ports.Intent
	retrieveStatus string
	created        int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: make(map[string]*ports.Intent), retrieveStatus: ports.IntentStatusSucceeded}
}

func (g *fakeGateway) CreateIntent(_ context.Context, amountCents int64, currency, _ string, _ map[string]string) (*ports.Intent, error) {
	g.created++
	intent := &ports.Intent{
		ID:           fmt.Sprintf("pi_test_%d", g.created),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", g.created),
		Status:       "requires_payment_method",
		AmountCents:  amountCents,
		Currency:     currency,
	}
	g.intents[intent.ID] = intent
	return intent, nil
}

func (g *fakeGateway) RetrieveIntent(_ context.Context, id string) (*ports.Intent, error) {
	intent, ok := g.intents[id]
	if !ok {
		return nil, errors.New("no such intent")
	}
	copied := *intent
	copied.Status = g.retrieveStatus
	return &copied, nil
}

func (g *fakeGateway) CancelIntent(_ context.Context, id string) (*ports.Intent, error) {
	intent, ok := g.intents[id]
	if !ok {
		return nil, errors.New("no such intent")
	}
	intent.Status = ports.IntentStatusCanceled
	return intent, nil
}

type fakeNotifier struct {
	confirmations []string
	alerts        []string
}

func (n *fakeNotifier) SendOrderConfirmation(_ context.Context, order *ordersdomain.Order) error {
	n.confirmations = append(n.confirmations, order.Number)
	return nil
}

func (n *fakeNotifier) SendAdminAlert(_ context.Context, order *ordersdomain.Order) error {
	n.alerts = append(n.alerts, order.Number)
	return nil
}

type failingStore struct{}

func (failingStore) PersistOrderAndClearCart(context.Context, *ordersdomain.Order, cartdomain.Identity) (*ordersdomain.Order, error) {
	return nil, errors.New("connection reset")
}

type checkoutFixture struct {
	svc      *Service
	carts    *cartapp.Service
	orders   *ordersmemory.Repository
	gateway  *fakeGateway
	notifier *fakeNotifier
	identity cartdomain.Identity
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	catalog := catalogmemory.NewRepository()
	product, err := catalogdomain.NewProduct("TK100", "Somerset Knob", "Knobs", "Brass", "Somerset", decimal.RequireFromString("40.00"), "")
	require.NoError(t, err)
	product, err = catalog.Upsert(context.Background(), product)
	require.NoError(t, err)

	cartRepo := cartmemory.NewRepository()
	carts := cartapp.NewService(cartRepo, catalog)
	orders := ordersmemory.NewRepository()
	gateway := newFakeGateway()
	notifier := &fakeNotifier{}

	identity := cartdomain.UserIdentity(7)
	_, err = carts.AddItem(context.Background(), identity, product.ID, 3)
	require.NoError(t, err)

	svc := NewService(carts, gateway, checkoutmemory.NewStore(orders, cartRepo), WithNotifier(notifier))
	return &checkoutFixture{svc: svc, carts: carts, orders: orders, gateway: gateway, notifier: notifier, identity: identity}
}

func customer() domain.CustomerDetails {
	return domain.CustomerDetails{
		Name:  "Pat Mason",
		Email: "pat@example.com",
		Phone: "555-0101",
		Address: ordersdomain.Address{
			Line1: "12 Shaker Ln", City: "Richmond", State: "VA", PostalCode: "23220",
		},
	}
}

var orderNumberPattern = regexp.MustCompile(`^CW-\d{8}-[A-Z2-9]{6}$`)

func TestBeginCheckout_OpensIntentForCartTotal(t *testing.T) {
	f := newCheckoutFixture(t)

	result, err := f.svc.BeginCheckout(context.Background(), f.identity, domain.BeginRequest{
		Customer: customer(), ShippingMethod: "standard",
	})
	require.NoError(t, err)

	assert.Regexp(t, orderNumberPattern, result.OrderNumber)
	assert.NotEmpty(t, result.ClientSecret)
	// subtotal 120.00, free standard shipping, tax 6.36
	assert.True(t, result.Breakdown.Total.Equal(decimal.RequireFromString("126.36")), "total %s", result.Breakdown.Total)
	assert.Equal(t, int64(12636), f.gateway.intents[result.IntentID].AmountCents)

	// no order exists until payment is confirmed
	list, err := f.orders.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBeginCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	empty := cartdomain.UserIdentity(99)

	_, err := f.svc.BeginCheckout(context.Background(), empty, domain.BeginRequest{Customer: customer()})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, f.gateway.created)
}

func TestBeginCheckout_RequiresContactDetails(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.svc.BeginCheckout(context.Background(), f.identity, domain.BeginRequest{
		Customer: domain.CustomerDetails{Name: "Pat Mason"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConfirmPayment_PersistsOrderAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)

	begin, err := f.svc.BeginCheckout(context.Background(), f.identity, domain.BeginRequest{
		Customer: customer(), ShippingMethod: "standard",
	})
	require.NoError(t, err)

	order, err := f.svc.ConfirmPayment(context.Background(), f.identity, domain.ConfirmRequest{
		OrderNumber: begin.OrderNumber,
		IntentID:    begin.IntentID,
		Customer:    customer(), ShippingMethod: "standard",
	})
	require.NoError(t, err)

	assert.Equal(t, begin.OrderNumber, order.Number)
	assert.Equal(t, ordersdomain.StatusPending, order.Status)
	assert.Equal(t, begin.IntentID, order.PaymentRef)
	require.Len(t, order.Lines, 1)
	assert.True(t, order.Lines[0].LineTotal.Equal(order.Subtotal))

	view, err := f.carts.GetCart(context.Background(), f.identity)
	require.NoError(t, err)
	assert.Empty(t, view.Lines, "confirmed checkout must clear the cart")

	assert.Equal(t, []string{order.Number}, f.notifier.confirmations)
	assert.Equal(t, []string{order.Number}, f.notifier.alerts)
}

func TestConfirmPayment_DeclinedLeavesCartIntact(t *testing.T) {
	f := newCheckoutFixture(t)

	begin, err := f.svc.BeginCheckout(context.Background(), f.identity, domain.BeginRequest{
		Customer: customer(), ShippingMethod: "standard",
	})
	require.NoError(t, err)

	f.gateway.retrieveStatus = "requires_payment_method"
	_, err = f.svc.ConfirmPayment(context.Background(), f.identity, domain.ConfirmRequest{
		OrderNumber: begin.OrderNumber, IntentID: begin.IntentID,
		Customer: customer(), ShippingMethod: "standard",
	})

	var declined *PaymentDeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, "requires_payment_method", declined.Reason)

	view, err := f.carts.GetCart(context.Background(), f.identity)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)

	list, err := f.orders.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.notifier.confirmations)
}

func TestConfirmPayment_AmountMismatchDeclined(t *testing.T) {
	f := newCheckoutFixture(t)

	begin, err := f.svc.BeginCheckout(context.Background(), f.identity, domain.BeginRequest{
		Customer: customer(), ShippingMethod: "standard",
	})
	require.NoError(t, err)

	// intent was priced for standard shipping; confirming with express no
	// longer matches the captured amount
	_, err = f.svc.ConfirmPayment(context.Background(), f.identity, domain.ConfirmRequest{
		OrderNumber: begin.OrderNumber, IntentID: begin.IntentID,
		Customer: customer(), ShippingMethod: "express",
	})

	var declined *PaymentDeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, "amount mismatch", declined.Reason)
}

func TestConfirmPayment_PersistenceFailureCarriesPaymentRef(t *testing.T) {
	f := newCheckoutFixture(t)
	f.svc = NewService(f.carts, f.gateway, failingStore{}, WithNotifier(f.notifier))

	begin, err := f.svc.BeginCheckout(context.Background(), f.identity, domain.BeginRequest{
		Customer: customer(), ShippingMethod: "standard",
	})
	require.NoError(t, err)

	_, err = f.svc.ConfirmPayment(context.Background(), f.identity, domain.ConfirmRequest{
		OrderNumber: begin.OrderNumber, IntentID: begin.IntentID,
		Customer: customer(), ShippingMethod: "standard",
	})

	var persistence *PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.Equal(t, begin.IntentID, persistence.PaymentRef)
	assert.Empty(t, f.notifier.confirmations, "no emails for an order that was not persisted")

	view, err := f.carts.GetCart(context.Background(), f.identity)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1, "cart survives a failed persist")
}

func TestConfirmPayment_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	empty := cartdomain.UserIdentity(99)

	_, err := f.svc.ConfirmPayment(context.Background(), empty, domain.ConfirmRequest{
		IntentID: "pi_test_1", Customer: customer(),
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}
