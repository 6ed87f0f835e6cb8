package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cabinetworks/storefront/internal/domains/catalog/domain"
	"github.com/cabinetworks/storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

const defaultPageSize = 50

// Repository persists catalog products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

// productRecord maps the product aggregate to a relational table.
type productRecord struct {
	ID         int64           `gorm:"primaryKey;column:id"`
	SKU        string          `gorm:"column:sku;uniqueIndex"`
	Name       string          `gorm:"column:name;index"`
	Category   string          `gorm:"column:category;type:varchar(100);index"`
	Finish     string          `gorm:"column:finish;type:varchar(100);index"`
	Collection string          `gorm:"column:collection;type:varchar(100);index"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	ImageURL   string          `gorm:"column:image_url"`
	Images     pq.StringArray  `gorm:"column:images;type:text[]"`
	InStock    bool            `gorm:"column:in_stock"`
	TopSeller  bool            `gorm:"column:top_seller;index"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Upsert inserts or updates a product keyed by SKU.
func (r *Repository) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sku"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       record.Name,
				"category":   record.Category,
				"finish":     record.Finish,
				"collection": record.Collection,
				"price":      record.Price,
				"image_url":  record.ImageURL,
				"images":     record.Images,
				"in_stock":   record.InStock,
				"top_seller": record.TopSeller,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetBySKU(ctx, product.SKU)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns a filtered page of products plus the unpaged match count.
func (r *Repository) List(ctx context.Context, filter ports.Filter) ([]*domain.Product, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Finish != "" {
		query = query.Where("finish = ?", filter.Finish)
	}
	if filter.Collection != "" {
		query = query.Where("collection = ?", filter.Collection)
	}
	if filter.TopSeller {
		query = query.Where("top_seller = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	var records []productRecord
	if err := query.Order("sku asc").Limit(limit).Offset(filter.Offset).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, total, nil
}

func (r *Repository) UpdatePrice(ctx context.Context, sku string, price decimal.Decimal) error {
	return r.updateColumn(ctx, sku, "price", price)
}

func (r *Repository) UpdateImage(ctx context.Context, sku string, imageURL string) error {
	return r.updateColumn(ctx, sku, "image_url", imageURL)
}

func (r *Repository) updateColumn(ctx context.Context, sku, column string, value any) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).Where("sku = ?", sku).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:         product.ID,
		SKU:        product.SKU,
		Name:       product.Name,
		Category:   product.Category,
		Finish:     product.Finish,
		Collection: product.Collection,
		Price:      product.Price,
		ImageURL:   product.ImageURL,
		Images:     pq.StringArray(product.Images),
		InStock:    product.InStock,
		TopSeller:  product.TopSeller,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:         r.ID,
		SKU:        r.SKU,
		Name:       r.Name,
		Category:   r.Category,
		Finish:     r.Finish,
		Collection: r.Collection,
		Price:      r.Price,
		ImageURL:   r.ImageURL,
		Images:     []string(r.Images),
		InStock:    r.InStock,
		TopSeller:  r.TopSeller,
	}
}
