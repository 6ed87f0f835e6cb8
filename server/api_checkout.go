package storefrontserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	checkoutapp "github.com/cabinetworks/storefront/internal/domains/checkout/application"
	checkoutdomain "github.com/cabinetworks/storefront/internal/domains/checkout/domain"
	checkoutports "github.com/cabinetworks/storefront/internal/domains/checkout/ports"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
	apierrors "github.com/cabinetworks/storefront/internal/shared/errors"
)

// CheckoutAPI wires HTTP transport with the checkout orchestrator and its
// confirmation workflows.
type CheckoutAPI struct {
	service   checkoutports.Service
	workflows checkoutports.ConfirmationOrchestrator
}

// NewCheckoutAPI creates a CheckoutAPI backed by the provided service.
func NewCheckoutAPI(service checkoutports.Service, workflows checkoutports.ConfirmationOrchestrator) CheckoutAPI {
	return CheckoutAPI{service: service, workflows: workflows}
}

// CheckoutAddress is the shipping destination on the checkout form.
type CheckoutAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// CheckoutCustomer is the contact block on the checkout form.
type CheckoutCustomer struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone,omitempty"`
	Address CheckoutAddress `json:"address"`
}

// BeginCheckoutRequest opens a checkout session for the current cart.
type BeginCheckoutRequest struct {
	Customer       CheckoutCustomer `json:"customer"`
	ShippingMethod string           `json:"shippingMethod"`
}

// BeginCheckoutResponse carries what the client needs to collect payment.
type BeginCheckoutResponse struct {
	OrderNumber   string          `json:"orderNumber"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingCost  decimal.Decimal `json:"shippingCost"`
	ShippingLabel string          `json:"shippingLabel"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	IntentID      string          `json:"intentId"`
	ClientSecret  string          `json:"clientSecret"`
}

// ConfirmPaymentRequest finalizes a checkout session after client-side
// payment completion.
type ConfirmPaymentRequest struct {
	OrderNumber    string           `json:"orderNumber"`
	IntentID       string           `json:"intentId"`
	Customer       CheckoutCustomer `json:"customer"`
	ShippingMethod string           `json:"shippingMethod"`
}

func toCustomerDetails(payload CheckoutCustomer) checkoutdomain.CustomerDetails {
	return checkoutdomain.CustomerDetails{
		Name:  payload.Name,
		Email: payload.Email,
		Phone: payload.Phone,
		Address: ordersdomain.Address{
			Line1:      payload.Address.Line1,
			Line2:      payload.Address.Line2,
			City:       payload.Address.City,
			State:      payload.Address.State,
			PostalCode: payload.Address.PostalCode,
		},
	}
}

// Post /api/checkout/begin
// Prices the cart and opens a payment intent; no order exists yet
func (api *CheckoutAPI) BeginCheckout(c *gin.Context) {
	identity, ok := resolveCartIdentity(c)
	if !ok {
		return
	}
	var payload BeginCheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	result, err := api.service.BeginCheckout(c.Request.Context(), identity, checkoutdomain.BeginRequest{
		Customer:       toCustomerDetails(payload.Customer),
		ShippingMethod: payload.ShippingMethod,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, BeginCheckoutResponse{
		OrderNumber:   result.OrderNumber,
		Subtotal:      result.Breakdown.Subtotal,
		ShippingCost:  result.Breakdown.ShippingCost,
		ShippingLabel: result.Breakdown.ShippingLabel,
		Tax:           result.Breakdown.Tax,
		Total:         result.Breakdown.Total,
		IntentID:      result.IntentID,
		ClientSecret:  result.ClientSecret,
	})
}

// Post /api/checkout/confirm
// Verifies the payment intent and persists the order atomically
func (api *CheckoutAPI) ConfirmPayment(c *gin.Context) {
	identity, ok := resolveCartIdentity(c)
	if !ok {
		return
	}
	var payload ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	req := checkoutdomain.ConfirmRequest{
		OrderNumber:    payload.OrderNumber,
		IntentID:       payload.IntentID,
		Customer:       toCustomerDetails(payload.Customer),
		ShippingMethod: payload.ShippingMethod,
	}
	order, err := api.confirmOrder(c.Request.Context(), identity, req)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

func (api *CheckoutAPI) confirmOrder(ctx context.Context, identity cartdomain.Identity, req checkoutdomain.ConfirmRequest) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.ConfirmOrder(ctx, identity, req)
	}
	return api.service.ConfirmPayment(ctx, identity, req)
}

func respondCheckoutError(c *gin.Context, err error) {
	var declined *checkoutapp.PaymentDeclinedError
	var persistence *checkoutapp.PersistenceError
	switch {
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		respondProblem(c, apierrors.ErrEmptyCart.WithDetail(err.Error()))
	case errors.As(err, &declined):
		respondProblem(c, apierrors.ErrPaymentDeclined.WithDetail(declined.Reason))
	case errors.As(err, &persistence):
		respondProblem(c, apierrors.ErrPersistence.
			WithDetail(err.Error()).
			WithExtension("paymentRef", persistence.PaymentRef))
	case errors.Is(err, checkoutapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
