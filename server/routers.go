package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route defines the parameters for a single API endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is a collection of routes.
type Routes []Route

// ApiHandleFunctions bundles the per-context handler structs the router
// dispatches to.
type ApiHandleFunctions struct {
	ShopAPI     ShopAPI
	CartAPI     CartAPI
	CheckoutAPI CheckoutAPI
	OrdersAPI   OrdersAPI
	QuotesAPI   QuotesAPI
	ProjectsAPI ProjectsAPI
}

// NewRouter returns a new gin engine with all API routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers all API routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc responds for routes without a registered handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListProducts", http.MethodGet, "/api/shop/products", handleFunctions.ShopAPI.ListProducts},
		{"GetProduct", http.MethodGet, "/api/shop/products/:sku", handleFunctions.ShopAPI.GetProduct},
		{"TopSellers", http.MethodGet, "/api/shop/top-sellers", handleFunctions.ShopAPI.TopSellers},

		{"GetCart", http.MethodGet, "/api/cart", handleFunctions.CartAPI.GetCart},
		{"AddCartItem", http.MethodPost, "/api/cart/items", handleFunctions.CartAPI.AddItem},
		{"SetCartItemQuantity", http.MethodPut, "/api/cart/items/:lineId", handleFunctions.CartAPI.SetQuantity},
		{"RemoveCartItem", http.MethodDelete, "/api/cart/items/:lineId", handleFunctions.CartAPI.RemoveLine},
		{"ClearCart", http.MethodDelete, "/api/cart", handleFunctions.CartAPI.Clear},

		{"BeginCheckout", http.MethodPost, "/api/checkout/begin", handleFunctions.CheckoutAPI.BeginCheckout},
		{"ConfirmPayment", http.MethodPost, "/api/checkout/confirm", handleFunctions.CheckoutAPI.ConfirmPayment},

		{"ListOrders", http.MethodGet, "/api/orders", handleFunctions.OrdersAPI.ListOrders},
		{"GetOrder", http.MethodGet, "/api/orders/:number", handleFunctions.OrdersAPI.GetOrder},
		{"AdvanceFulfillment", http.MethodPost, "/api/orders/:number/fulfillment", handleFunctions.OrdersAPI.AdvanceFulfillment},

		{"CreateQuote", http.MethodPost, "/api/quotes", handleFunctions.QuotesAPI.CreateQuote},
		{"ListQuotes", http.MethodGet, "/api/quotes", handleFunctions.QuotesAPI.ListQuotes},
		{"GetQuote", http.MethodGet, "/api/quotes/:quoteId", handleFunctions.QuotesAPI.GetQuote},
		{"UpdateQuote", http.MethodPatch, "/api/quotes/:quoteId", handleFunctions.QuotesAPI.UpdateQuote},
		{"DeleteQuote", http.MethodDelete, "/api/quotes/:quoteId", handleFunctions.QuotesAPI.DeleteQuote},
		{"QuoteChat", http.MethodPost, "/api/quotes/chat", handleFunctions.QuotesAPI.Chat},

		{"CreateProject", http.MethodPost, "/api/projects", handleFunctions.ProjectsAPI.CreateProject},
		{"ListProjects", http.MethodGet, "/api/projects", handleFunctions.ProjectsAPI.ListProjects},
		{"GetProject", http.MethodGet, "/api/projects/:projectId", handleFunctions.ProjectsAPI.GetProject},
		{"UpdateProject", http.MethodPatch, "/api/projects/:projectId", handleFunctions.ProjectsAPI.UpdateProject},
	}
}
