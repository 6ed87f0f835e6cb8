package storefrontserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cartapp "github.com/cabinetworks/storefront/internal/domains/cart/application"
	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	cartports "github.com/cabinetworks/storefront/internal/domains/cart/ports"
)

// CartAPI wires HTTP transport with the cart bounded context service.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// CartLine is a cart line joined with current catalog data.
type CartLine struct {
	LineID    int64           `json:"lineId"`
	ProductID int64           `json:"productId"`
	SKU       string          `json:"sku,omitempty"`
	Name      string          `json:"name,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Available bool            `json:"available"`
}

// Cart is the denormalized cart returned to clients.
type Cart struct {
	Lines    []CartLine      `json:"lines"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// AddItemRequest adds a product to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// SetQuantityRequest overwrites a line's quantity. Zero removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func fromCartView(view *cartdomain.View) Cart {
	cart := Cart{Lines: make([]CartLine, 0, len(view.Lines)), Count: view.Count, Subtotal: view.Subtotal}
	for _, line := range view.Lines {
		cart.Lines = append(cart.Lines, CartLine{
			LineID:    line.LineID,
			ProductID: line.ProductID,
			SKU:       line.SKU,
			Name:      line.Name,
			ImageURL:  line.ImageURL,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
			Available: line.Available,
		})
	}
	return cart
}

// Get /api/cart
// Returns the current cart joined with catalog data
func (api *CartAPI) GetCart(c *gin.Context) {
	identity, ok := resolveCartIdentity(c)
	if !ok {
		return
	}
	view, err := api.service.GetCart(c.Request.Context(), identity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCartView(view))
}

// Post /api/cart/items
// Adds a product to the cart, incrementing an existing line
func (api *CartAPI) AddItem(c *gin.Context) {
	identity, ok := resolveCartIdentity(c)
	if !ok {
		return
	}
	var payload AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	if _, err := api.service.AddItem(c.Request.Context(), identity, payload.ProductID, payload.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	view, err := api.service.GetCart(c.Request.Context(), identity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCartView(view))
}

// Put /api/cart/items/:lineId
// Overwrites a line's quantity; zero removes the line
func (api *CartAPI) SetQuantity(c *gin.Context) {
	identity, ok := resolveCartIdentity(c)
	if !ok {
		return
	}
	lineID, ok := parseLineID(c)
	if !ok {
		return
	}
	var payload SetQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.SetQuantity(c.Request.Context(), lineID, payload.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	view, err := api.service.GetCart(c.Request.Context(), identity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCartView(view))
}

// Delete /api/cart/items/:lineId
// Removes a line; removing an absent line succeeds
func (api *CartAPI) RemoveLine(c *gin.Context) {
	identity, ok := resolveCartIdentity(c)
	if !ok {
		return
	}
	lineID, ok := parseLineID(c)
	if !ok {
		return
	}
	if err := api.service.RemoveLine(c.Request.Context(), lineID); err != nil {
		respondCartError(c, err)
		return
	}
	view, err := api.service.GetCart(c.Request.Context(), identity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCartView(view))
}

// Delete /api/cart
// Drops every line for the current identity
func (api *CartAPI) Clear(c *gin.Context) {
	identity, ok := resolveCartIdentity(c)
	if !ok {
		return
	}
	if err := api.service.Clear(c.Request.Context(), identity); err != nil {
		respondCartError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseLineID(c *gin.Context) (int64, bool) {
	value := c.Param("lineId")
	lineID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return lineID, true
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cartports.ErrLineNotFound),
		errors.Is(err, cartports.ErrProductNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, cartapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
