package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cabinetworks/storefront/internal/domains/projects/domain"
	"github.com/cabinetworks/storefront/internal/domains/projects/ports"
	"github.com/cabinetworks/storefront/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists projects in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&projectRecord{})
	}
	return repo
}

type projectRecord struct {
	ID                int64           `gorm:"primaryKey;column:id"`
	QuoteID           int64           `gorm:"column:quote_id;index"`
	UserID            int64           `gorm:"column:user_id;index"`
	Name              string          `gorm:"column:name;type:varchar(255)"`
	Status            string          `gorm:"column:status;type:varchar(16);index"`
	EstimatedDelivery *time.Time      `gorm:"column:estimated_delivery"`
	InstalledAt       *time.Time      `gorm:"column:installed_at"`
	FinalPrice        decimal.Decimal `gorm:"column:final_price;type:numeric(10,2)"`
	DepositPaid       decimal.Decimal `gorm:"column:deposit_paid;type:numeric(10,2)"`
	BalanceDue        decimal.Decimal `gorm:"column:balance_due;type:numeric(10,2)"`
	Notes             string          `gorm:"column:notes;type:text"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (projectRecord) TableName() string { return "projects" }

func (r *Repository) Create(ctx context.Context, project *domain.Project) (*ports.ProjectProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(project)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return toProjection(record), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*ports.ProjectProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record projectRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(record), nil
}

func (r *Repository) List(ctx context.Context, userID int64) ([]*ports.ProjectProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("created_at desc, id desc")
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	var records []projectRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	projections := make([]*ports.ProjectProjection, 0, len(records))
	for _, record := range records {
		projections = append(projections, toProjection(record))
	}
	return projections, nil
}

func (r *Repository) Update(ctx context.Context, project *domain.Project) (*ports.ProjectProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(project)
	result := r.db.WithContext(ctx).Model(&projectRecord{}).Where("id = ?", project.ID).Select("*").
		Omit("id", "created_at").Updates(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, project.ID)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres project repository not configured")
	}
	return nil
}

func toRecord(project *domain.Project) projectRecord {
	return projectRecord{
		ID:                project.ID,
		QuoteID:           project.QuoteID,
		UserID:            project.UserID,
		Name:              project.Name,
		Status:            string(project.Status),
		EstimatedDelivery: project.EstimatedDelivery,
		InstalledAt:       project.InstalledAt,
		FinalPrice:        project.FinalPrice,
		DepositPaid:       project.DepositPaid,
		BalanceDue:        project.BalanceDue,
		Notes:             project.Notes,
	}
}

func toProjection(record projectRecord) *ports.ProjectProjection {
	return &ports.ProjectProjection{
		Entity: &domain.Project{
			ID:                record.ID,
			QuoteID:           record.QuoteID,
			UserID:            record.UserID,
			Name:              record.Name,
			Status:            domain.Status(record.Status),
			EstimatedDelivery: record.EstimatedDelivery,
			InstalledAt:       record.InstalledAt,
			FinalPrice:        record.FinalPrice,
			DepositPaid:       record.DepositPaid,
			BalanceDue:        record.BalanceDue,
			Notes:             record.Notes,
		},
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}
