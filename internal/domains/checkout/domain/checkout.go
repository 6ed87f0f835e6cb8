// Package domain holds the checkout request and result types shared by the
// orchestrator and its transports.
package domain

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cabinetworks/storefront/internal/domains/checkout/pricing"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

var (
	ErrMissingCustomerName  = errors.New("customer name is required")
	ErrMissingCustomerEmail = errors.New("customer email is required")
)

// CustomerDetails is the contact and shipping information collected on the
// checkout form.
type CustomerDetails struct {
	Name    string
	Email   string
	Phone   string
	Address ordersdomain.Address
}

// Validate checks the fields needed before a payment intent may be opened.
func (c CustomerDetails) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingCustomerName
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrMissingCustomerEmail
	}
	return nil
}

// BeginRequest opens a checkout session for the current cart.
type BeginRequest struct {
	Customer       CustomerDetails
	ShippingMethod string
}

// BeginResult carries everything the storefront needs to collect payment.
// No order exists yet at this point.
type BeginResult struct {
	OrderNumber  string
	Breakdown    pricing.Breakdown
	IntentID     string
	ClientSecret string
}

// ConfirmRequest finalizes a checkout session after the customer has
// completed payment on the client.
type ConfirmRequest struct {
	OrderNumber    string
	IntentID       string
	Customer       CustomerDetails
	ShippingMethod string
}

const numberAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NewOrderNumber produces a customer-facing order number such as
// CW-20260115-7KQ2MX. The suffix alphabet omits easily confused characters.
func NewOrderNumber(now time.Time) string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = numberAlphabet[int(buf[i])%len(numberAlphabet)]
	}
	return "CW-" + now.Format("20060102") + "-" + string(buf)
}

// AmountCents converts a two-decimal dollar amount to the gateway's minor
// units.
func AmountCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
