// Package payment is a thin client for the hosted payment provider's
// payment-intent API. Amounts are always in minor units.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cabinetworks/storefront/internal/domains/checkout/ports"
)

var _ ports.PaymentGateway = (*Client)(nil)

// Client talks to the payment provider's REST API.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient instantiates the payment client with sane defaults.
func NewClient(baseURL, secretKey string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("payment base URL is required")
	}
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("payment secret key is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, secretKey: secretKey, httpClient: httpClient}, nil
}

type intentPayload struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type errorPayload struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent opens a payment intent for the amount. The idempotency key is
// forwarded so a retried call returns the original intent.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency, idempotencyKey string, metadata map[string]string) (*ports.Intent, error) {
	if amountCents <= 0 {
		return nil, errors.New("payment amount must be positive")
	}
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for key, value := range metadata {
		form.Set("metadata["+key+"]", value)
	}
	return c.do(ctx, http.MethodPost, "/v1/payment_intents", form, idempotencyKey)
}

// RetrieveIntent fetches the current state of an intent.
func (c *Client) RetrieveIntent(ctx context.Context, id string) (*ports.Intent, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("payment intent id is required")
	}
	return c.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(id), nil, "")
}

// CancelIntent cancels an intent that has not been captured.
func (c *Client) CancelIntent(ctx context.Context, id string) (*ports.Intent, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("payment intent id is required")
	}
	return c.do(ctx, http.MethodPost, "/v1/payment_intents/"+url.PathEscape(id)+"/cancel", nil, "")
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, idempotencyKey string) (*ports.Intent, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("payment client not configured")
	}
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call payment API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read payment response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("payment API error: %s", apiErrorMessage(raw, resp.Status))
	}

	var payload intentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}
	if payload.ID == "" {
		return nil, errors.New("payment API returned an empty intent")
	}
	return &ports.Intent{
		ID:           payload.ID,
		ClientSecret: payload.ClientSecret,
		Status:       payload.Status,
		AmountCents:  payload.Amount,
		Currency:     payload.Currency,
	}, nil
}

func apiErrorMessage(raw []byte, fallback string) string {
	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error.Message); msg != "" {
			return msg
		}
	}
	return fallback
}
