package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	cartmemory "github.com/cabinetworks/storefront/internal/domains/cart/adapters/memory"
	cartpostgres "github.com/cabinetworks/storefront/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/cabinetworks/storefront/internal/domains/cart/application"
	cartports "github.com/cabinetworks/storefront/internal/domains/cart/ports"
	catalogmemory "github.com/cabinetworks/storefront/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/cabinetworks/storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/cabinetworks/storefront/internal/domains/catalog/ports"
	checkoutmemory "github.com/cabinetworks/storefront/internal/domains/checkout/adapters/memory"
	checkoutpostgres "github.com/cabinetworks/storefront/internal/domains/checkout/adapters/persistence/postgres"
	checkoutapp "github.com/cabinetworks/storefront/internal/domains/checkout/application"
	checkoutports "github.com/cabinetworks/storefront/internal/domains/checkout/ports"
	ordersmemory "github.com/cabinetworks/storefront/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/cabinetworks/storefront/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/cabinetworks/storefront/internal/domains/orders/ports"

	"github.com/cabinetworks/storefront/internal/clients/http/payment"
	"github.com/cabinetworks/storefront/internal/notifications/email"
	"github.com/cabinetworks/storefront/internal/platform/migrations"
	platformobservability "github.com/cabinetworks/storefront/internal/platform/observability"
	platformpostgres "github.com/cabinetworks/storefront/internal/platform/postgres"
	checkoutactivities "github.com/cabinetworks/storefront/internal/platform/temporal/activities/checkout"
	checkoutworkflows "github.com/cabinetworks/storefront/internal/platform/temporal/workflows/checkout"
)

func main() {
	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var catalogRepo catalogports.Repository
	var cartRepo cartports.Repository
	var ordersRepo ordersports.Repository
	var checkoutStore checkoutports.CheckoutStore
	if db != nil {
		catalogRepo = catalogpostgres.NewRepository(db)
		cartRepo = cartpostgres.NewRepository(db)
		ordersRepo = orderspostgres.NewRepository(db)
		checkoutStore = checkoutpostgres.NewStore(db)
	} else {
		catalogRepo = catalogmemory.NewRepository()
		cartRepo = cartmemory.NewRepository()
		ordersRepo = ordersmemory.NewRepository()
		checkoutStore = checkoutmemory.NewStore(ordersRepo, cartRepo)
	}
	cartService := cartapp.NewService(cartRepo, catalogRepo)

	gateway, err := payment.NewClient(
		envOrDefault("PAYMENT_BASE_URL", "https://api.stripe.com"),
		strings.TrimSpace(os.Getenv("PAYMENT_SECRET_KEY")),
		nil,
	)
	if err != nil {
		logger.Error("failed to configure payment client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	mailer := email.NewMailer(email.Config{
		Host:       strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port:       envOrDefault("SMTP_PORT", "587"),
		Username:   strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
		Password:   strings.TrimSpace(os.Getenv("SMTP_PASSWORD")),
		From:       envOrDefault("EMAIL_FROM", "orders@cabinetworks.example"),
		AdminEmail: strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
	}, email.WithLogger(logger))

	// The confirm service carries no notifier; emails are only sent by the
	// dedicated notify activity so retries cannot double-send.
	confirmService := checkoutapp.NewService(cartService, gateway, checkoutStore,
		checkoutapp.WithLogger(logger),
	)
	activities := checkoutactivities.NewActivities(confirmService, ordersRepo, mailer)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, checkoutworkflows.OrderConfirmationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflows.OrderConfirmationWorkflow, workflow.RegisterOptions{Name: checkoutworkflows.OrderConfirmationWorkflowName})
	w.RegisterActivityWithOptions(activities.ConfirmOrder, activity.RegisterOptions{Name: checkoutactivities.ConfirmOrderActivityName})
	w.RegisterActivityWithOptions(activities.NotifyOrderPlaced, activity.RegisterOptions{Name: checkoutactivities.NotifyOrderPlacedActivityName})

	logger.Info("worker listening", slog.String("taskQueue", checkoutworkflows.OrderConfirmationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
