package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	ordersapp "github.com/cabinetworks/storefront/internal/domains/orders/application"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
	ordersports "github.com/cabinetworks/storefront/internal/domains/orders/ports"
	apierrors "github.com/cabinetworks/storefront/internal/shared/errors"
)

// OrdersAPI wires HTTP transport with the orders bounded context service.
type OrdersAPI struct {
	service ordersports.Service
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

// OrderLine snapshots a purchased product.
type OrderLine struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Order is the durable purchase record as rendered to clients.
type Order struct {
	Number         string          `json:"number"`
	CustomerName   string          `json:"customerName"`
	CustomerEmail  string          `json:"customerEmail"`
	CustomerPhone  string          `json:"customerPhone,omitempty"`
	Address        CheckoutAddress `json:"address"`
	ShippingMethod string          `json:"shippingMethod"`
	ShippingLabel  string          `json:"shippingLabel"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	Status         string          `json:"status"`
	TrackingNumber string          `json:"trackingNumber,omitempty"`
	Carrier        string          `json:"carrier,omitempty"`
	Lines          []OrderLine     `json:"lines"`
}

// AdvanceFulfillmentRequest moves an order along the fulfillment machine.
// TrackingNumber is required when the target status is shipped.
type AdvanceFulfillmentRequest struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"trackingNumber"`
	Carrier        string `json:"carrier"`
}

func fromOrder(order *ordersdomain.Order) Order {
	view := Order{
		Number:        order.Number,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Address: CheckoutAddress{
			Line1:      order.ShippingAddr.Line1,
			Line2:      order.ShippingAddr.Line2,
			City:       order.ShippingAddr.City,
			State:      order.ShippingAddr.State,
			PostalCode: order.ShippingAddr.PostalCode,
		},
		ShippingMethod: order.ShippingMethod,
		ShippingLabel:  order.ShippingLabel,
		Subtotal:       order.Subtotal,
		ShippingCost:   order.ShippingCost,
		Tax:            order.Tax,
		Total:          order.Total,
		Status:         string(order.Status),
		TrackingNumber: order.TrackingNumber,
		Carrier:        order.Carrier,
		Lines:          make([]OrderLine, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		view.Lines = append(view.Lines, OrderLine{
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}
	return view
}

// Get /api/orders/:number
// Find order by customer-facing order number
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	number := c.Param("number")
	order, err := api.service.GetOrder(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, ordersports.ErrNotFound) {
			respondProblem(c, apierrors.NewNotFoundProblem("order", number))
			return
		}
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

// Get /api/orders
// Lists all orders newest first
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	views := make([]Order, 0, len(orders))
	for _, order := range orders {
		views = append(views, fromOrder(order))
	}
	c.JSON(http.StatusOK, views)
}

// Post /api/orders/:number/fulfillment
// Advances an order through the fulfillment state machine
func (api *OrdersAPI) AdvanceFulfillment(c *gin.Context) {
	number := c.Param("number")
	var payload AdvanceFulfillmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.AdvanceFulfillment(
		c.Request.Context(),
		number,
		ordersdomain.FulfillmentStatus(payload.Status),
		payload.TrackingNumber,
		payload.Carrier,
	)
	if err != nil {
		respondOrdersError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

func respondOrdersError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, ordersapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
