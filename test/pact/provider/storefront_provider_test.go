//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/cabinetworks/storefront/test/pact"

	cartmemory "github.com/cabinetworks/storefront/internal/domains/cart/adapters/memory"
	cartapp "github.com/cabinetworks/storefront/internal/domains/cart/application"
	catalogmemory "github.com/cabinetworks/storefront/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/cabinetworks/storefront/internal/domains/catalog/application"
	catalogdomain "github.com/cabinetworks/storefront/internal/domains/catalog/domain"
	checkoutmemory "github.com/cabinetworks/storefront/internal/domains/checkout/adapters/memory"
	checkoutworkflows "github.com/cabinetworks/storefront/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/cabinetworks/storefront/internal/domains/checkout/application"
	checkoutports "github.com/cabinetworks/storefront/internal/domains/checkout/ports"
	ordersmemory "github.com/cabinetworks/storefront/internal/domains/orders/adapters/memory"
	ordersapp "github.com/cabinetworks/storefront/internal/domains/orders/application"
	projectsmemory "github.com/cabinetworks/storefront/internal/domains/projects/adapters/memory"
	projectsapp "github.com/cabinetworks/storefront/internal/domains/projects/application"
	quotesmemory "github.com/cabinetworks/storefront/internal/domains/quotes/adapters/memory"
	quotesapp "github.com/cabinetworks/storefront/internal/domains/quotes/application"
	storefrontserver "github.com/cabinetworks/storefront/server"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedProduct(t)
			}
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedProduct(t)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	catalog *catalogmemory.Repository
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	catalogRepo := catalogmemory.NewRepository()
	cartRepo := cartmemory.NewRepository()
	ordersRepo := ordersmemory.NewRepository()

	catalogService := catalogapp.NewService(catalogRepo)
	cartService := cartapp.NewService(cartRepo, catalogRepo)
	ordersService := ordersapp.NewService(ordersRepo)
	checkoutService := checkoutapp.NewService(cartService, rejectingGateway{}, checkoutmemory.NewStore(ordersRepo, cartRepo))
	workflows := checkoutworkflows.NewInlineCheckoutWorkflows(checkoutService)
	quotesService := quotesapp.NewService(quotesmemory.NewRepository())
	projectsService := projectsapp.NewService(projectsmemory.NewRepository())

	handlers := storefrontserver.ApiHandleFunctions{
		ShopAPI:     storefrontserver.NewShopAPI(catalogService),
		CartAPI:     storefrontserver.NewCartAPI(cartService),
		CheckoutAPI: storefrontserver.NewCheckoutAPI(checkoutService, workflows),
		OrdersAPI:   storefrontserver.NewOrdersAPI(ordersService),
		QuotesAPI:   storefrontserver.NewQuotesAPI(quotesService),
		ProjectsAPI: storefrontserver.NewProjectsAPI(projectsService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = storefrontserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		catalog: catalogRepo,
		server:  server,
	}
}

// seedProduct upserts the contract product; upserting twice is harmless.
func (a *contractProviderApp) seedProduct(t testing.TB) {
	t.Helper()
	product, err := catalogdomain.NewProduct(
		pacttest.ExistingProductSKU,
		"Shaker Wall Cabinet 30in",
		"wall",
		"white",
		"shaker",
		decimal.RequireFromString("249.00"),
		"https://example.pact/products/cab-201.png",
	)
	require.NoError(t, err)
	product.TopSeller = true
	_, err = a.catalog.Upsert(context.Background(), product)
	require.NoError(t, err)
}

type rejectingGateway struct{}

func (rejectingGateway) CreateIntent(context.Context, int64, string, string, map[string]string) (*checkoutports.Intent, error) {
	return nil, errors.New("payments are not exercised by this contract")
}

func (rejectingGateway) RetrieveIntent(context.Context, string) (*checkoutports.Intent, error) {
	return nil, errors.New("payments are not exercised by this contract")
}

func (rejectingGateway) CancelIntent(context.Context, string) (*checkoutports.Intent, error) {
	return nil, errors.New("payments are not exercised by this contract")
}
