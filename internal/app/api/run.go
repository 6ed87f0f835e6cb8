package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	storefrontserver "github.com/cabinetworks/storefront/server"

	cartmemory "github.com/cabinetworks/storefront/internal/domains/cart/adapters/memory"
	cartpostgres "github.com/cabinetworks/storefront/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/cabinetworks/storefront/internal/domains/cart/application"
	cartports "github.com/cabinetworks/storefront/internal/domains/cart/ports"

	catalogmemory "github.com/cabinetworks/storefront/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/cabinetworks/storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/cabinetworks/storefront/internal/domains/catalog/application"
	catalogports "github.com/cabinetworks/storefront/internal/domains/catalog/ports"

	checkoutmemory "github.com/cabinetworks/storefront/internal/domains/checkout/adapters/memory"
	checkoutobs "github.com/cabinetworks/storefront/internal/domains/checkout/adapters/observability"
	checkoutpostgres "github.com/cabinetworks/storefront/internal/domains/checkout/adapters/persistence/postgres"
	checkoutworkflows "github.com/cabinetworks/storefront/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/cabinetworks/storefront/internal/domains/checkout/application"
	checkoutports "github.com/cabinetworks/storefront/internal/domains/checkout/ports"

	ordersmemory "github.com/cabinetworks/storefront/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/cabinetworks/storefront/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/cabinetworks/storefront/internal/domains/orders/application"
	ordersports "github.com/cabinetworks/storefront/internal/domains/orders/ports"

	quotesassistant "github.com/cabinetworks/storefront/internal/domains/quotes/adapters/assistant"
	quotesmemory "github.com/cabinetworks/storefront/internal/domains/quotes/adapters/memory"
	quotespostgres "github.com/cabinetworks/storefront/internal/domains/quotes/adapters/persistence/postgres"
	quotesapp "github.com/cabinetworks/storefront/internal/domains/quotes/application"
	quotesports "github.com/cabinetworks/storefront/internal/domains/quotes/ports"

	projectsmemory "github.com/cabinetworks/storefront/internal/domains/projects/adapters/memory"
	projectspostgres "github.com/cabinetworks/storefront/internal/domains/projects/adapters/persistence/postgres"
	projectsapp "github.com/cabinetworks/storefront/internal/domains/projects/application"
	projectsports "github.com/cabinetworks/storefront/internal/domains/projects/ports"

	"github.com/cabinetworks/storefront/internal/clients/http/llm"
	"github.com/cabinetworks/storefront/internal/clients/http/payment"
	"github.com/cabinetworks/storefront/internal/notifications/email"
	"github.com/cabinetworks/storefront/internal/platform/migrations"
	platformobservability "github.com/cabinetworks/storefront/internal/platform/observability"
	platformpostgres "github.com/cabinetworks/storefront/internal/platform/postgres"
)

// Run boots the storefront HTTP API with observability, repositories, and
// workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanupDB := buildDatabase(ctx, cfg, logger)
	defer cleanupDB()

	catalogRepo := buildCatalogRepository(db)
	cartRepo := buildCartRepository(db)
	ordersRepo := buildOrdersRepository(db)
	checkoutStore := buildCheckoutStore(db, ordersRepo, cartRepo)

	mailer := email.NewMailer(email.Config{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.EmailFrom,
		AdminEmail: cfg.AdminEmail,
	}, email.WithLogger(logger))

	catalogService := catalogapp.NewService(catalogRepo)
	cartService := cartapp.NewService(cartRepo, catalogRepo)
	ordersService := ordersapp.NewService(ordersRepo,
		ordersapp.WithShippingNotifier(mailer),
		ordersapp.WithLogger(logger),
	)

	gateway := buildPaymentGateway(cfg, logger)
	coreCheckoutService := checkoutapp.NewService(cartService, gateway, checkoutStore,
		checkoutapp.WithNotifier(mailer),
		checkoutapp.WithLogger(logger),
	)
	checkoutService := checkoutobs.New(coreCheckoutService,
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)
	var confirmations checkoutports.ConfirmationOrchestrator = checkoutworkflows.NewInlineCheckoutWorkflows(checkoutService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, confirming orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		confirmations = checkoutworkflows.NewTemporalCheckoutWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	quotesOpts := []quotesapp.Option{quotesapp.WithLogger(logger)}
	if assistant := buildAssistant(cfg, logger); assistant != nil {
		quotesOpts = append(quotesOpts, quotesapp.WithAssistant(assistant))
	}
	quotesService := quotesapp.NewService(buildQuotesRepository(db), quotesOpts...)
	projectsService := projectsapp.NewService(buildProjectsRepository(db))

	handlers := storefrontserver.ApiHandleFunctions{
		ShopAPI:     storefrontserver.NewShopAPI(catalogService),
		CartAPI:     storefrontserver.NewCartAPI(cartService),
		CheckoutAPI: storefrontserver.NewCheckoutAPI(checkoutService, confirmations),
		OrdersAPI:   storefrontserver.NewOrdersAPI(ordersService),
		QuotesAPI:   storefrontserver.NewQuotesAPI(quotesService),
		ProjectsAPI: storefrontserver.NewProjectsAPI(projectsService),
	}

	router := storefrontserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("storefront API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("repositories configured with postgres")
	return db, func() { _ = sqlDB.Close() }
}

func buildCatalogRepository(db *gorm.DB) catalogports.Repository {
	if db != nil {
		return catalogpostgres.NewRepository(db)
	}
	return catalogmemory.NewRepository()
}

func buildCartRepository(db *gorm.DB) cartports.Repository {
	if db != nil {
		return cartpostgres.NewRepository(db)
	}
	return cartmemory.NewRepository()
}

func buildOrdersRepository(db *gorm.DB) ordersports.Repository {
	if db != nil {
		return orderspostgres.NewRepository(db)
	}
	return ordersmemory.NewRepository()
}

func buildCheckoutStore(db *gorm.DB, orders ordersports.Repository, carts cartports.Repository) checkoutports.CheckoutStore {
	if db != nil {
		return checkoutpostgres.NewStore(db)
	}
	return checkoutmemory.NewStore(orders, carts)
}

func buildQuotesRepository(db *gorm.DB) quotesports.Repository {
	if db != nil {
		return quotespostgres.NewRepository(db)
	}
	return quotesmemory.NewRepository()
}

func buildProjectsRepository(db *gorm.DB) projectsports.Repository {
	if db != nil {
		return projectspostgres.NewRepository(db)
	}
	return projectsmemory.NewRepository()
}

// buildPaymentGateway returns the live client when a secret key is present
// and a rejecting stand-in otherwise, so the rest of the storefront keeps
// working without payment credentials.
func buildPaymentGateway(cfg Config, logger *slog.Logger) checkoutports.PaymentGateway {
	if cfg.PaymentSecretKey == "" {
		logger.Warn("PAYMENT_SECRET_KEY not set, checkout will reject payment attempts")
		return disabledGateway{}
	}
	client, err := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentSecretKey, nil)
	if err != nil {
		logger.Warn("payment client misconfigured, checkout will reject payment attempts", slog.String("error", err.Error()))
		return disabledGateway{}
	}
	return client
}

func buildAssistant(cfg Config, logger *slog.Logger) quotesports.Assistant {
	if cfg.LLMAPIKey == "" {
		logger.Warn("LLM_API_KEY not set, design consultation chat disabled")
		return nil
	}
	client, err := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, nil)
	if err != nil {
		logger.Warn("llm client misconfigured, design consultation chat disabled", slog.String("error", err.Error()))
		return nil
	}
	return quotesassistant.NewLLM(client)
}

var errPaymentsDisabled = errors.New("payment gateway is not configured")

type disabledGateway struct{}

func (disabledGateway) CreateIntent(context.Context, int64, string, string, map[string]string) (*checkoutports.Intent, error) {
	return nil, errPaymentsDisabled
}

func (disabledGateway) RetrieveIntent(context.Context, string) (*checkoutports.Intent, error) {
	return nil, errPaymentsDisabled
}

func (disabledGateway) CancelIntent(context.Context, string) (*checkoutports.Intent, error) {
	return nil, errPaymentsDisabled
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
