package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIntent(t *testing.T) {
	var gotPath, gotAuth, gotIdempotency string
	var gotForm map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotIdempotency = r.Header.Get("Idempotency-Key")
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret","status":"requires_payment_method","amount":12636,"currency":"usd"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "sk_test_abc", server.Client())
	require.NoError(t, err)

	intent, err := client.CreateIntent(context.Background(), 12636, "usd", "CW-20260115-7KQ2MX", map[string]string{"order_number": "CW-20260115-7KQ2MX"})
	require.NoError(t, err)

	assert.Equal(t, "/v1/payment_intents", gotPath)
	assert.Equal(t, "Bearer sk_test_abc", gotAuth)
	assert.Equal(t, "CW-20260115-7KQ2MX", gotIdempotency)
	assert.Equal(t, []string{"12636"}, gotForm["amount"])
	assert.Equal(t, []string{"CW-20260115-7KQ2MX"}, gotForm["metadata[order_number]"])

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
	assert.Equal(t, int64(12636), intent.AmountCents)
}

func TestCreateIntent_RejectsNonPositiveAmount(t *testing.T) {
	client, err := NewClient("https://payments.example.com", "sk_test_abc", nil)
	require.NoError(t, err)
	_, err = client.CreateIntent(context.Background(), 0, "usd", "", nil)
	assert.Error(t, err)
}

func TestRetrieveIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)
		w.Write([]byte(`{"id":"pi_123","status":"succeeded","amount":12636,"currency":"usd"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "sk_test_abc", server.Client())
	require.NoError(t, err)

	intent, err := client.RetrieveIntent(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", intent.Status)
}

func TestCancelIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents/pi_123/cancel", r.URL.Path)
		w.Write([]byte(`{"id":"pi_123","status":"canceled","amount":12636,"currency":"usd"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "sk_test_abc", server.Client())
	require.NoError(t, err)

	intent, err := client.CancelIntent(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, "canceled", intent.Status)
}

func TestAPIErrorSurfacesProviderMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "sk_test_abc", server.Client())
	require.NoError(t, err)

	_, err = client.RetrieveIntent(context.Background(), "pi_123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("", "sk_test_abc", nil)
	assert.Error(t, err)
	_, err = NewClient("https://payments.example.com", "  ", nil)
	assert.Error(t, err)
}
