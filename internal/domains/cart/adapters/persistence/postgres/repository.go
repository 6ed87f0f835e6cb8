package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cabinetworks/storefront/internal/domains/cart/domain"
	"github.com/cabinetworks/storefront/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists cart lines in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&cartLineRecord{})
	}
	return repo
}

// cartLineRecord maps a cart line to a relational table. The unique index on
// (identity, product_id) backs the atomic increment-or-insert upsert.
type cartLineRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Identity  string    `gorm:"column:identity;type:varchar(128);uniqueIndex:idx_cart_identity_product;index"`
	ProductID int64     `gorm:"column:product_id;uniqueIndex:idx_cart_identity_product"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartLineRecord) TableName() string { return "cart_lines" }

// AddOrIncrement performs a single conditional upsert so two concurrent adds
// for the same (identity, product) cannot lose an update.
func (r *Repository) AddOrIncrement(ctx context.Context, identity domain.Identity, productID int64, quantity int) (*domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := cartLineRecord{Identity: string(identity), ProductID: productID, Quantity: quantity}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "identity"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_lines.quantity + EXCLUDED.quantity"),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	var saved cartLineRecord
	if err := r.db.WithContext(ctx).
		First(&saved, "identity = ? AND product_id = ?", string(identity), productID).Error; err != nil {
		return nil, err
	}
	return saved.toDomain(), nil
}

func (r *Repository) GetLine(ctx context.Context, lineID int64) (*domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartLineRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrLineNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByIdentity(ctx context.Context, identity domain.Identity) ([]*domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []cartLineRecord
	if err := r.db.WithContext(ctx).
		Where("identity = ?", string(identity)).
		Order("id asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	lines := make([]*domain.Line, 0, len(records))
	for i := range records {
		lines = append(lines, records[i].toDomain())
	}
	return lines, nil
}

func (r *Repository) UpdateQuantity(ctx context.Context, lineID int64, quantity int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&cartLineRecord{}).Where("id = ?", lineID).Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrLineNotFound
	}
	return nil
}

func (r *Repository) DeleteLine(ctx context.Context, lineID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&cartLineRecord{}, lineID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrLineNotFound
	}
	return nil
}

func (r *Repository) Clear(ctx context.Context, identity domain.Identity) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("identity = ?", string(identity)).Delete(&cartLineRecord{}).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}

func (r cartLineRecord) toDomain() *domain.Line {
	return &domain.Line{
		ID:        r.ID,
		Identity:  domain.Identity(r.Identity),
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
	}
}
