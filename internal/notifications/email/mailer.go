// Package email sends the storefront's transactional mail over SMTP. When no
// SMTP host is configured the mailer logs each message instead of sending,
// which keeps local development working without a relay.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	checkoutports "github.com/cabinetworks/storefront/internal/domains/checkout/ports"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
	ordersports "github.com/cabinetworks/storefront/internal/domains/orders/ports"
)

var (
	_ checkoutports.Notifier      = (*Mailer)(nil)
	_ ordersports.ShippingNotifier = (*Mailer)(nil)
)

const uspsTrackingURL = "https://tools.usps.com/go/TrackConfirmAction?tLabels="

// Config holds the SMTP relay settings. An empty Host switches the mailer to
// log-only mode.
type Config struct {
	Host       string
	Port       string
	Username   string
	Password   string
	From       string
	AdminEmail string
}

// Mailer renders and sends the storefront's transactional emails.
type Mailer struct {
	cfg    Config
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
	logger *slog.Logger
}

// Option configures optional mailer dependencies.
type Option func(*Mailer)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mailer) { m.logger = logger }
}

// WithSendFunc overrides the SMTP send function, for tests.
func WithSendFunc(send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error) Option {
	return func(m *Mailer) { m.send = send }
}

func NewMailer(cfg Config, opts ...Option) *Mailer {
	m := &Mailer{cfg: cfg, send: smtp.SendMail, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendOrderConfirmation emails the customer their receipt.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, order *ordersdomain.Order) error {
	subject := fmt.Sprintf("Order Confirmation - %s", order.Number)
	return m.deliver(ctx, order.CustomerEmail, subject, renderOrderConfirmation(order))
}

// SendAdminAlert notifies the fulfillment inbox that a new order landed.
func (m *Mailer) SendAdminAlert(ctx context.Context, order *ordersdomain.Order) error {
	if strings.TrimSpace(m.cfg.AdminEmail) == "" {
		m.logger.DebugContext(ctx, "admin email not configured; skipping alert",
			slog.String("order_number", order.Number))
		return nil
	}
	subject := fmt.Sprintf("New Order Received - %s", order.Number)
	return m.deliver(ctx, m.cfg.AdminEmail, subject, renderAdminAlert(order))
}

// SendShippingConfirmation emails the customer their tracking details.
func (m *Mailer) SendShippingConfirmation(ctx context.Context, order *ordersdomain.Order) error {
	subject := fmt.Sprintf("Your Order Has Shipped - %s", order.Number)
	return m.deliver(ctx, order.CustomerEmail, subject, renderShippingConfirmation(order))
}

func (m *Mailer) deliver(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient address is required for %q", subject)
	}
	if strings.TrimSpace(m.cfg.Host) == "" {
		m.logger.InfoContext(ctx, "smtp not configured; logging email instead",
			slog.String("to", to),
			slog.String("subject", subject))
		return nil
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := "From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email %q to %s: %w", subject, to, err)
	}
	m.logger.InfoContext(ctx, "email sent",
		slog.String("to", to),
		slog.String("subject", subject))
	return nil
}

func renderOrderConfirmation(order *ordersdomain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", order.CustomerName)
	fmt.Fprintf(&b, "Thank you for your order! Here is your confirmation for order %s.\n\n", order.Number)
	b.WriteString("Items:\n")
	for _, line := range order.Lines {
		fmt.Fprintf(&b, "  %dx %s (%s) - $%s\n", line.Quantity, line.Name, line.SKU, line.LineTotal.StringFixed(2))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: $%s\n", order.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "%s: $%s\n", order.ShippingLabel, order.ShippingCost.StringFixed(2))
	fmt.Fprintf(&b, "Tax: $%s\n", order.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Total: $%s\n\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "Shipping to:\n%s\n\n", order.ShippingAddr.String())
	b.WriteString("We will email you again when your order ships.\n")
	return b.String()
}

func renderAdminAlert(order *ordersdomain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s from %s <%s>.\n\n", order.Number, order.CustomerName, order.CustomerEmail)
	b.WriteString("Items:\n")
	for _, line := range order.Lines {
		fmt.Fprintf(&b, "  %dx %s (%s)\n", line.Quantity, line.Name, line.SKU)
	}
	fmt.Fprintf(&b, "\nTotal: $%s\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "Payment reference: %s\n", order.PaymentRef)
	fmt.Fprintf(&b, "Ship to:\n%s\n", order.ShippingAddr.String())
	return b.String()
}

func renderShippingConfirmation(order *ordersdomain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", order.CustomerName)
	fmt.Fprintf(&b, "Great news! Your order %s has shipped via %s.\n\n", order.Number, order.Carrier)
	fmt.Fprintf(&b, "Tracking number: %s\n", order.TrackingNumber)
	if order.Carrier == "USPS" {
		fmt.Fprintf(&b, "Track your package: %s%s\n", uspsTrackingURL, order.TrackingNumber)
	}
	b.WriteString("\nThank you for shopping with us!\n")
	return b.String()
}
