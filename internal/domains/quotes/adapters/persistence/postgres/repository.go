package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cabinetworks/storefront/internal/domains/quotes/domain"
	"github.com/cabinetworks/storefront/internal/domains/quotes/ports"
	"github.com/cabinetworks/storefront/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists quotes in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&quoteRecord{})
	}
	return repo
}

// quoteRecord maps a quote to a relational table. The conversation is a
// typed JSON column rather than an opaque text blob.
type quoteRecord struct {
	ID            int64            `gorm:"primaryKey;column:id"`
	UserID        int64            `gorm:"column:user_id;index"`
	CustomerName  string           `gorm:"column:customer_name;type:varchar(255)"`
	CustomerEmail string           `gorm:"column:customer_email;type:varchar(255)"`
	CustomerPhone string           `gorm:"column:customer_phone;type:varchar(64)"`
	RoomType      string           `gorm:"column:room_type;type:varchar(64)"`
	Dimensions    string           `gorm:"column:dimensions;type:varchar(128)"`
	CabinetType   string           `gorm:"column:cabinet_type;type:varchar(64)"`
	DoorStyle     string           `gorm:"column:door_style;type:varchar(64)"`
	WoodSpecies   string           `gorm:"column:wood_species;type:varchar(64)"`
	Finish        string           `gorm:"column:finish;type:varchar(64)"`
	Hardware      string           `gorm:"column:hardware;type:varchar(64)"`
	EstimatedCost decimal.Decimal  `gorm:"column:estimated_cost;type:numeric(10,2)"`
	MaterialsCost decimal.Decimal  `gorm:"column:materials_cost;type:numeric(10,2)"`
	LaborCost     decimal.Decimal  `gorm:"column:labor_cost;type:numeric(10,2)"`
	HardwareCost  decimal.Decimal  `gorm:"column:hardware_cost;type:numeric(10,2)"`
	Status        string           `gorm:"column:status;type:varchar(16);index"`
	CRMLeadID     string           `gorm:"column:crm_lead_id;type:varchar(64)"`
	SentToCRM     bool             `gorm:"column:sent_to_crm"`
	Conversation  []domain.Message `gorm:"column:conversation;type:jsonb;serializer:json"`
	Notes         string           `gorm:"column:notes;type:text"`
	CreatedAt     time.Time        `gorm:"column:created_at"`
	UpdatedAt     time.Time        `gorm:"column:updated_at"`
}

func (quoteRecord) TableName() string { return "quotes" }

func (r *Repository) Create(ctx context.Context, quote *domain.Quote) (*ports.QuoteProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(quote)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return toProjection(record), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*ports.QuoteProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record quoteRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(record), nil
}

func (r *Repository) List(ctx context.Context, userID int64) ([]*ports.QuoteProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("created_at desc, id desc")
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	var records []quoteRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	projections := make([]*ports.QuoteProjection, 0, len(records))
	for _, record := range records {
		projections = append(projections, toProjection(record))
	}
	return projections, nil
}

func (r *Repository) Update(ctx context.Context, quote *domain.Quote) (*ports.QuoteProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(quote)
	result := r.db.WithContext(ctx).Model(&quoteRecord{}).Where("id = ?", quote.ID).Select("*").
		Omit("id", "created_at").Updates(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, quote.ID)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&quoteRecord{}, id)
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
		return errors.New("postgres quote repository not configured")
	}
	return nil
}

func toRecord(quote *domain.Quote) quoteRecord {
	return quoteRecord{
		ID:            quote.ID,
		UserID:        quote.UserID,
		CustomerName:  quote.CustomerName,
		CustomerEmail: quote.CustomerEmail,
		CustomerPhone: quote.CustomerPhone,
		RoomType:      quote.RoomType,
		Dimensions:    quote.Dimensions,
		CabinetType:   quote.Cabinet.CabinetType,
		DoorStyle:     quote.Cabinet.DoorStyle,
		WoodSpecies:   quote.Cabinet.WoodSpecies,
		Finish:        quote.Cabinet.Finish,
		Hardware:      quote.Cabinet.Hardware,
		EstimatedCost: quote.EstimatedCost,
		MaterialsCost: quote.MaterialsCost,
		LaborCost:     quote.LaborCost,
		HardwareCost:  quote.HardwareCost,
		Status:        string(quote.Status),
		CRMLeadID:     quote.CRMLeadID,
		SentToCRM:     quote.SentToCRM,
		Conversation:  quote.Conversation,
		Notes:         quote.Notes,
	}
}

func toProjection(record quoteRecord) *ports.QuoteProjection {
	return &ports.QuoteProjection{
		Entity: &domain.Quote{
			ID:            record.ID,
			UserID:        record.UserID,
			CustomerName:  record.CustomerName,
			CustomerEmail: record.CustomerEmail,
			CustomerPhone: record.CustomerPhone,
			RoomType:      record.RoomType,
			Dimensions:    record.Dimensions,
			Cabinet: domain.CabinetSpec{
				CabinetType: record.CabinetType,
				DoorStyle:   record.DoorStyle,
				WoodSpecies: record.WoodSpecies,
				Finish:      record.Finish,
				Hardware:    record.Hardware,
			},
			EstimatedCost: record.EstimatedCost,
			MaterialsCost: record.MaterialsCost,
			LaborCost:     record.LaborCost,
			HardwareCost:  record.HardwareCost,
			Status:        domain.Status(record.Status),
			CRMLeadID:     record.CRMLeadID,
			SentToCRM:     record.SentToCRM,
			Conversation:  record.Conversation,
			Notes:         record.Notes,
		},
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}
