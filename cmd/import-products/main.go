package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	catalogmemory "github.com/cabinetworks/storefront/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/cabinetworks/storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/cabinetworks/storefront/internal/domains/catalog/application"
	catalogdomain "github.com/cabinetworks/storefront/internal/domains/catalog/domain"
	catalogports "github.com/cabinetworks/storefront/internal/domains/catalog/ports"
	"github.com/cabinetworks/storefront/internal/platform/migrations"
	platformobservability "github.com/cabinetworks/storefront/internal/platform/observability"
	platformpostgres "github.com/cabinetworks/storefront/internal/platform/postgres"
)

// Expected columns, in order:
// sku,name,category,finish,collection,price,image_url,in_stock,top_seller
func main() {
	path := flag.String("file", "", "path to the product CSV export")
	flag.Parse()
	if *path == "" {
		log.Fatal("usage: import-products -file products.csv")
	}

	ctx := context.Background()
	instruments, shutdown, err := platformobservability.Init(ctx, "storefront-import")
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	var repo catalogports.Repository
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repo = catalogpostgres.NewRepository(db)
	} else {
		repo = catalogmemory.NewRepository()
	}
	service := catalogapp.NewService(repo)

	file, err := os.Open(*path)
	if err != nil {
		logger.Error("failed to open export", slog.String("file", *path), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer file.Close()

	products, skipped := readProducts(csv.NewReader(file), logger)
	outcome, err := service.Import(ctx, products)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("import completed",
		slog.Int("imported", outcome.Imported),
		slog.Int("skipped", outcome.Skipped+skipped),
	)
}

// readProducts parses rows into products. Malformed rows are skipped with a
// warning so one dirty line cannot abort the run.
func readProducts(reader *csv.Reader, logger *slog.Logger) ([]*catalogdomain.Product, int) {
	reader.FieldsPerRecord = 9
	var products []*catalogdomain.Product
	skipped := 0
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping malformed row", slog.Int("line", line), slog.String("error", err.Error()))
			skipped++
			continue
		}
		if line == 1 && strings.EqualFold(record[0], "sku") {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(record[5]))
		if err != nil {
			logger.Warn("skipping row with unparseable price",
				slog.Int("line", line),
				slog.String("sku", record[0]),
				slog.String("price", record[5]),
			)
			skipped++
			continue
		}
		product, err := catalogdomain.NewProduct(record[0], record[1], record[2], record[3], record[4], price, record[6])
		if err != nil {
			logger.Warn("skipping invalid row", slog.Int("line", line), slog.String("sku", record[0]), slog.String("error", err.Error()))
			skipped++
			continue
		}
		product.InStock = parseBool(record[7], true)
		product.TopSeller = parseBool(record[8], false)
		products = append(products, product)
	}
	return products, skipped
}

func parseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return fallback
	}
}
