package storefrontserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogapp "github.com/cabinetworks/storefront/internal/domains/catalog/application"
	catalogdomain "github.com/cabinetworks/storefront/internal/domains/catalog/domain"
	catalogports "github.com/cabinetworks/storefront/internal/domains/catalog/ports"
	apierrors "github.com/cabinetworks/storefront/internal/shared/errors"
)

// ShopAPI wires HTTP transport with the catalog bounded context service.
type ShopAPI struct {
	service catalogports.Service
}

// NewShopAPI creates a ShopAPI backed by the provided service.
func NewShopAPI(service catalogports.Service) ShopAPI {
	return ShopAPI{service: service}
}

// Product is the catalog entry as rendered to storefront clients.
type Product struct {
	ID         int64           `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Category   string          `json:"category,omitempty"`
	Finish     string          `json:"finish,omitempty"`
	Collection string          `json:"collection,omitempty"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"imageUrl,omitempty"`
	Images     []string        `json:"images,omitempty"`
	InStock    bool            `json:"inStock"`
	TopSeller  bool            `json:"topSeller"`
}

// ProductList pages a product listing.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
}

func fromProduct(product *catalogdomain.Product) Product {
	return Product{
		ID:         product.ID,
		SKU:        product.SKU,
		Name:       product.Name,
		Category:   product.Category,
		Finish:     product.Finish,
		Collection: product.Collection,
		Price:      product.Price,
		ImageURL:   product.ImageURL,
		Images:     product.Images,
		InStock:    product.InStock,
		TopSeller:  product.TopSeller,
	}
}

func fromProducts(products []*catalogdomain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, product := range products {
		out = append(out, fromProduct(product))
	}
	return out
}

// Get /api/shop/products
// Lists catalog products with optional filters and paging
func (api *ShopAPI) ListProducts(c *gin.Context) {
	filter := catalogports.Filter{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		Finish:     c.Query("finish"),
		Collection: c.Query("collection"),
		TopSeller:  isTrue(c.Query("topSeller")),
		Limit:      queryInt(c, "limit"),
		Offset:     queryInt(c, "offset"),
	}
	products, total, err := api.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProductList{Products: fromProducts(products), Total: total})
}

// Get /api/shop/products/:sku
// Find product by SKU
func (api *ShopAPI) GetProduct(c *gin.Context) {
	sku := c.Param("sku")
	product, err := api.service.GetProduct(c.Request.Context(), sku)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			respondProblem(c, apierrors.NewNotFoundProblem("product", sku))
			return
		}
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProduct(product))
}

// Get /api/shop/top-sellers
// Lists the featured best-selling products
func (api *ShopAPI) TopSellers(c *gin.Context) {
	limit := queryInt(c, "limit")
	if limit <= 0 {
		limit = 4
	}
	products, err := api.service.TopSellers(c.Request.Context(), limit)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromProducts(products))
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func queryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}

func isTrue(value string) bool {
	return value == "true" || value == "1"
}
