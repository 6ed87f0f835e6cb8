package email

import (
	"context"
	"net/smtp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestMailer(cfg Config) (*Mailer, *[]sentMail) {
	var sent []sentMail
	m := NewMailer(cfg, WithSendFunc(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}))
	return m, &sent
}

func testOrder(t *testing.T) *ordersdomain.Order {
	t.Helper()
	order, err := ordersdomain.NewOrder(
		"CW-20260115-7KQ2MX",
		"Pat Mason", "pat@example.com", "555-0101",
		ordersdomain.Address{Line1: "12 Shaker Ln", City: "Richmond", State: "VA", PostalCode: "23220"},
		"standard", "Standard Shipping (5-7 business days)",
		decimal.RequireFromString("120.00"), decimal.Zero,
		decimal.RequireFromString("6.36"), decimal.RequireFromString("126.36"),
		"pi_3NxyzTest",
		[]ordersdomain.LineItem{
			{SKU: "TK100", Name: "Somerset Knob", Quantity: 3, UnitPrice: decimal.RequireFromString("40.00"), LineTotal: decimal.RequireFromString("120.00")},
		},
	)
	require.NoError(t, err)
	return order
}

func TestSendOrderConfirmation(t *testing.T) {
	mailer, sent := newTestMailer(Config{Host: "smtp.example.com", Port: "587", From: "orders@example.com"})

	require.NoError(t, mailer.SendOrderConfirmation(context.Background(), testOrder(t)))

	require.Len(t, *sent, 1)
	mail := (*sent)[0]
	assert.Equal(t, "smtp.example.com:587", mail.addr)
	assert.Equal(t, []string{"pat@example.com"}, mail.to)
	assert.Contains(t, mail.msg, "Subject: Order Confirmation - CW-20260115-7KQ2MX")
	assert.Contains(t, mail.msg, "3x Somerset Knob (TK100) - $120.00")
	assert.Contains(t, mail.msg, "Standard Shipping (5-7 business days): $0.00")
	assert.Contains(t, mail.msg, "Total: $126.36")
	assert.Contains(t, mail.msg, "12 Shaker Ln")
}

func TestSendAdminAlert(t *testing.T) {
	mailer, sent := newTestMailer(Config{Host: "smtp.example.com", Port: "587", From: "orders@example.com", AdminEmail: "sales@example.com"})

	require.NoError(t, mailer.SendAdminAlert(context.Background(), testOrder(t)))

	require.Len(t, *sent, 1)
	mail := (*sent)[0]
	assert.Equal(t, []string{"sales@example.com"}, mail.to)
	assert.Contains(t, mail.msg, "Payment reference: pi_3NxyzTest")
}

func TestSendAdminAlert_SkipsWhenUnconfigured(t *testing.T) {
	mailer, sent := newTestMailer(Config{Host: "smtp.example.com", Port: "587", From: "orders@example.com"})
	require.NoError(t, mailer.SendAdminAlert(context.Background(), testOrder(t)))
	assert.Empty(t, *sent)
}

func TestSendShippingConfirmation_IncludesUSPSTrackingLink(t *testing.T) {
	mailer, sent := newTestMailer(Config{Host: "smtp.example.com", Port: "587", From: "orders@example.com"})

	order := testOrder(t)
	require.NoError(t, order.Advance(ordersdomain.StatusProcessing, "", ""))
	require.NoError(t, order.Advance(ordersdomain.StatusShipped, "9400100000000000000001", ""))

	require.NoError(t, mailer.SendShippingConfirmation(context.Background(), order))

	require.Len(t, *sent, 1)
	mail := (*sent)[0]
	assert.Contains(t, mail.msg, "Subject: Your Order Has Shipped - CW-20260115-7KQ2MX")
	assert.Contains(t, mail.msg, "Tracking number: 9400100000000000000001")
	assert.Contains(t, mail.msg, uspsTrackingURL+"9400100000000000000001")
}

func TestDeliver_LogOnlyModeWithoutHost(t *testing.T) {
	mailer, sent := newTestMailer(Config{})
	require.NoError(t, mailer.SendOrderConfirmation(context.Background(), testOrder(t)))
	assert.Empty(t, *sent, "unconfigured SMTP must log, not send")
}
