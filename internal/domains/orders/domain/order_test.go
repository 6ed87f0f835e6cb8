package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(
		"CW-20260115-7KQ2MX",
		"Pat Mason", "pat@example.com", "555-0101",
		Address{Line1: "12 Shaker Ln", City: "Richmond", State: "VA", PostalCode: "23220"},
		"standard", "Standard Shipping (5-7 business days)",
		d("120.00"), d("0"), d("6.36"), d("126.36"),
		"pi_3NxyzTest",
		[]LineItem{
			{SKU: "TK100", Name: "Somerset Knob", Quantity: 2, UnitPrice: d("40.00"), LineTotal: d("80.00")},
			{SKU: "TK200", Name: "Somerset Pull", Quantity: 1, UnitPrice: d("40.00"), LineTotal: d("40.00")},
		},
	)
	require.NoError(t, err)
	return order
}

func TestNewOrder_StartsPending(t *testing.T) {
	order := validOrder(t)
	assert.Equal(t, StatusPending, order.Status)
	assert.Empty(t, order.TrackingNumber)
}

func TestNewOrder_Invariants(t *testing.T) {
	base := validOrder(t)

	t.Run("requires line items", func(t *testing.T) {
		order := *base
		order.Lines = nil
		assert.ErrorIs(t, order.Validate(), ErrNoLineItems)
	})

	t.Run("line subtotals must sum to header subtotal", func(t *testing.T) {
		order := *base
		order.Subtotal = d("120.01")
		assert.ErrorIs(t, order.Validate(), ErrSubtotalMismatch)
	})

	t.Run("rejects zero quantity line", func(t *testing.T) {
		order := *base
		order.Lines = []LineItem{{SKU: "TK100", Name: "Somerset Knob", Quantity: 0, UnitPrice: d("40.00"), LineTotal: d("120.00")}}
		assert.ErrorIs(t, order.Validate(), ErrInvalidLineQuantity)
	})

	t.Run("requires complete shipping address", func(t *testing.T) {
		order := *base
		order.ShippingAddr.PostalCode = ""
		assert.ErrorIs(t, order.Validate(), ErrMissingShippingField)
	})

	t.Run("requires payment reference", func(t *testing.T) {
		order := *base
		order.PaymentRef = ""
		assert.ErrorIs(t, order.Validate(), ErrMissingPaymentRef)
	})
}

func TestAdvance_HappyPath(t *testing.T) {
	order := validOrder(t)

	require.NoError(t, order.Advance(StatusProcessing, "", ""))
	require.NoError(t, order.Advance(StatusShipped, "9400100000000000000001", ""))
	assert.Equal(t, "9400100000000000000001", order.TrackingNumber)
	assert.Equal(t, "USPS", order.Carrier)
	require.NoError(t, order.Advance(StatusDelivered, "", ""))
	assert.Equal(t, StatusDelivered, order.Status)
}

func TestAdvance_ShippedRequiresTracking(t *testing.T) {
	order := validOrder(t)
	require.NoError(t, order.Advance(StatusProcessing, "", ""))

	err := order.Advance(StatusShipped, "   ", "USPS")
	assert.ErrorIs(t, err, ErrMissingTrackingNumber)
	assert.Equal(t, StatusProcessing, order.Status, "status must not change on a rejected transition")
}

func TestAdvance_CancelOnlyBeforeShipping(t *testing.T) {
	order := validOrder(t)
	require.NoError(t, order.Advance(StatusCancelled, "", ""))
	assert.Equal(t, StatusCancelled, order.Status)

	order = validOrder(t)
	require.NoError(t, order.Advance(StatusProcessing, "", ""))
	require.NoError(t, order.Advance(StatusShipped, "trk-1", "FedEx"))
	assert.ErrorIs(t, order.Advance(StatusCancelled, "", ""), ErrInvalidTransition)
	assert.Equal(t, "FedEx", order.Carrier)
}

func TestAdvance_RejectsSkipsAndUnknownStatus(t *testing.T) {
	order := validOrder(t)
	assert.ErrorIs(t, order.Advance(StatusDelivered, "", ""), ErrInvalidTransition)
	assert.ErrorIs(t, order.Advance(FulfillmentStatus("lost"), "", ""), ErrInvalidStatus)

	require.NoError(t, order.Advance(StatusProcessing, "", ""))
	require.NoError(t, order.Advance(StatusShipped, "trk-1", ""))
	assert.ErrorIs(t, order.Advance(StatusProcessing, "", ""), ErrInvalidTransition)
}
