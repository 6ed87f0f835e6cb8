package ports

import "context"

// Intent statuses reported by the payment gateway.
const (
	IntentStatusSucceeded = "succeeded"
	IntentStatusCanceled  = "canceled"
)

// Intent is the gateway-side payment record. Amounts are in minor units
// (cents) because that is what the gateway speaks.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
	Currency     string
}

// PaymentGateway abstracts the hosted payment provider.
type PaymentGateway interface {
	// CreateIntent opens a payment intent. The idempotency key makes retries
	// of the same checkout session safe.
	CreateIntent(ctx context.Context, amountCents int64, currency, idempotencyKey string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
	CancelIntent(ctx context.Context, id string) (*Intent, error)
}
