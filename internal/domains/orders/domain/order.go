package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// FulfillmentStatus tracks post-purchase logistics, independent of payment.
type FulfillmentStatus string

const (
	StatusPending    FulfillmentStatus = "pending"
	StatusProcessing FulfillmentStatus = "processing"
	StatusShipped    FulfillmentStatus = "shipped"
	StatusDelivered  FulfillmentStatus = "delivered"
	StatusCancelled  FulfillmentStatus = "cancelled"
)

var (
	ErrMissingOrderNumber    = errors.New("order number is required")
	ErrMissingCustomerName   = errors.New("customer name is required")
	ErrMissingCustomerEmail  = errors.New("customer email is required")
	ErrMissingShippingField  = errors.New("shipping address is incomplete")
	ErrMissingPaymentRef     = errors.New("payment reference is required")
	ErrNoLineItems           = errors.New("order must contain at least one line item")
	ErrInvalidLineQuantity   = errors.New("line item quantity must be greater than zero")
	ErrSubtotalMismatch      = errors.New("line item subtotals do not sum to the order subtotal")
	ErrInvalidStatus         = errors.New("fulfillment status is invalid")
	ErrInvalidTransition     = errors.New("fulfillment transition is not allowed")
	ErrMissingTrackingNumber = errors.New("tracking number is required to mark an order shipped")
)

// Address is the shipping destination captured at checkout.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
}

func (a Address) complete() bool {
	return strings.TrimSpace(a.Line1) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.State) != "" &&
		strings.TrimSpace(a.PostalCode) != ""
}

// String renders the address as shown in confirmation emails.
func (a Address) String() string {
	parts := []string{a.Line1}
	if strings.TrimSpace(a.Line2) != "" {
		parts = append(parts, a.Line2)
	}
	parts = append(parts, a.City+", "+a.State+" "+a.PostalCode)
	return strings.Join(parts, "\n")
}

// LineItem snapshots the product at time of purchase. Later catalog or price
// changes never touch a persisted order.
type LineItem struct {
	ID        int64
	OrderID   int64
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Order is the durable record of a completed purchase. Financial fields are
// frozen at creation; only fulfillment fields are mutated afterwards.
type Order struct {
	ID             int64
	Number         string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	ShippingAddr   Address
	ShippingMethod string
	ShippingLabel  string
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	PaymentRef     string
	Status         FulfillmentStatus
	TrackingNumber string
	Carrier        string
	Lines          []LineItem
}

// NewOrder validates and constructs an Order aggregate in the pending state.
func NewOrder(number, customerName, customerEmail, customerPhone string, addr Address, shippingMethod, shippingLabel string, subtotal, shippingCost, tax, total decimal.Decimal, paymentRef string, lines []LineItem) (*Order, error) {
	order := &Order{
		Number:         strings.TrimSpace(number),
		CustomerName:   strings.TrimSpace(customerName),
		CustomerEmail:  strings.TrimSpace(customerEmail),
		CustomerPhone:  strings.TrimSpace(customerPhone),
		ShippingAddr:   addr,
		ShippingMethod: shippingMethod,
		ShippingLabel:  shippingLabel,
		Subtotal:       subtotal,
		ShippingCost:   shippingCost,
		Tax:            tax,
		Total:          total,
		PaymentRef:     strings.TrimSpace(paymentRef),
		Status:         StatusPending,
		Lines:          lines,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate, including the exact match
// between the header subtotal and the sum of line subtotals.
func (o *Order) Validate() error {
	if o.Number == "" {
		return ErrMissingOrderNumber
	}
	if o.CustomerName == "" {
		return ErrMissingCustomerName
	}
	if o.CustomerEmail == "" {
		return ErrMissingCustomerEmail
	}
	if !o.ShippingAddr.complete() {
		return ErrMissingShippingField
	}
	if o.PaymentRef == "" {
		return ErrMissingPaymentRef
	}
	if len(o.Lines) == 0 {
		return ErrNoLineItems
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	sum := decimal.Zero
	for _, line := range o.Lines {
		if line.Quantity <= 0 {
			return ErrInvalidLineQuantity
		}
		sum = sum.Add(line.LineTotal)
	}
	if !sum.Equal(o.Subtotal) {
		return ErrSubtotalMismatch
	}
	return nil
}

// transitions is the admin fulfillment machine. Cancellation is only
// reachable before the order ships.
var transitions = map[FulfillmentStatus][]FulfillmentStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// Advance moves the order to the next fulfillment status. Marking an order
// shipped requires a tracking number and records the carrier.
func (o *Order) Advance(next FulfillmentStatus, trackingNumber, carrier string) error {
	if !isValidStatus(next) {
		return ErrInvalidStatus
	}
	if !transitionAllowed(o.Status, next) {
		return ErrInvalidTransition
	}
	if next == StatusShipped {
		trackingNumber = strings.TrimSpace(trackingNumber)
		if trackingNumber == "" {
			return ErrMissingTrackingNumber
		}
		o.TrackingNumber = trackingNumber
		o.Carrier = strings.TrimSpace(carrier)
		if o.Carrier == "" {
			o.Carrier = "USPS"
		}
	}
	o.Status = next
	return nil
}

func transitionAllowed(from, to FulfillmentStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func isValidStatus(status FulfillmentStatus) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
