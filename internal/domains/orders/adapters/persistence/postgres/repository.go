package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cabinetworks/storefront/internal/domains/orders/domain"
	"github.com/cabinetworks/storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

type orderRecord struct {
	ID             int64           `gorm:"primaryKey;column:id"`
	Number         string          `gorm:"column:number;type:varchar(32);uniqueIndex"`
	CustomerName   string          `gorm:"column:customer_name;type:varchar(255)"`
	CustomerEmail  string          `gorm:"column:customer_email;type:varchar(255)"`
	CustomerPhone  string          `gorm:"column:customer_phone;type:varchar(64)"`
	AddressLine1   string          `gorm:"column:address_line1;type:varchar(255)"`
	AddressLine2   string          `gorm:"column:address_line2;type:varchar(255)"`
	City           string          `gorm:"column:city;type:varchar(128)"`
	State          string          `gorm:"column:state;type:varchar(64)"`
	PostalCode     string          `gorm:"column:postal_code;type:varchar(32)"`
	ShippingMethod string          `gorm:"column:shipping_method;type:varchar(32)"`
	ShippingLabel  string          `gorm:"column:shipping_label;type:varchar(128)"`
	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2)"`
	ShippingCost   decimal.Decimal `gorm:"column:shipping_cost;type:numeric(10,2)"`
	Tax            decimal.Decimal `gorm:"column:tax;type:numeric(10,2)"`
	Total          decimal.Decimal `gorm:"column:total;type:numeric(10,2)"`
	PaymentRef     string          `gorm:"column:payment_ref;type:varchar(128)"`
	Status         string          `gorm:"column:status;type:varchar(16);index"`
	TrackingNumber string          `gorm:"column:tracking_number;type:varchar(64)"`
	Carrier        string          `gorm:"column:carrier;type:varchar(32)"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;index"`
	SKU       string          `gorm:"column:sku;type:varchar(64)"`
	Name      string          `gorm:"column:name;type:varchar(255)"`
	Quantity  int             `gorm:"column:quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2)"`
	LineTotal decimal.Decimal `gorm:"column:line_total;type:numeric(10,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Create writes the header and line items in one transaction so a partial
// order can never be observed.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var saved *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		saved, err = InsertOrder(ctx, tx, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// InsertOrder writes the header and line items using the caller's
// transaction. The checkout store uses this to pair the order insert with
// clearing the cart atomically.
func InsertOrder(ctx context.Context, tx *gorm.DB, order *domain.Order) (*domain.Order, error) {
	record := toRecord(order)
	if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateNumber
		}
		return nil, err
	}
	items := toItemRecords(order.Lines)
	for i := range items {
		items[i].OrderID = record.ID
	}
	if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return toDomain(record, items), nil
}

func (r *Repository) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	items, err := r.itemsFor(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	return toDomain(record, items), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("created_at desc, id desc").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for _, record := range records {
		items, err := r.itemsFor(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, toDomain(record, items))
	}
	return orders, nil
}

func (r *Repository) UpdateFulfillment(ctx context.Context, number string, status domain.FulfillmentStatus, trackingNumber, carrier string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	updates := map[string]any{"status": string(status)}
	if trackingNumber != "" {
		updates["tracking_number"] = trackingNumber
	}
	if carrier != "" {
		updates["carrier"] = carrier
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).Where("number = ?", number).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) itemsFor(ctx context.Context, orderID int64) ([]orderItemRecord, error) {
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:             order.ID,
		Number:         order.Number,
		CustomerName:   order.CustomerName,
		CustomerEmail:  order.CustomerEmail,
		CustomerPhone:  order.CustomerPhone,
		AddressLine1:   order.ShippingAddr.Line1,
		AddressLine2:   order.ShippingAddr.Line2,
		City:           order.ShippingAddr.City,
		State:          order.ShippingAddr.State,
		PostalCode:     order.ShippingAddr.PostalCode,
		ShippingMethod: order.ShippingMethod,
		ShippingLabel:  order.ShippingLabel,
		Subtotal:       order.Subtotal,
		ShippingCost:   order.ShippingCost,
		Tax:            order.Tax,
		Total:          order.Total,
		PaymentRef:     order.PaymentRef,
		Status:         string(order.Status),
		TrackingNumber: order.TrackingNumber,
		Carrier:        order.Carrier,
	}
}

func toItemRecords(lines []domain.LineItem) []orderItemRecord {
	items := make([]orderItemRecord, 0, len(lines))
	for _, line := range lines {
		items = append(items, orderItemRecord{
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}
	return items
}

func toDomain(record orderRecord, items []orderItemRecord) *domain.Order {
	lines := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.LineItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return &domain.Order{
		ID:            record.ID,
		Number:        record.Number,
		CustomerName:  record.CustomerName,
		CustomerEmail: record.CustomerEmail,
		CustomerPhone: record.CustomerPhone,
		ShippingAddr: domain.Address{
			Line1:      record.AddressLine1,
			Line2:      record.AddressLine2,
			City:       record.City,
			State:      record.State,
			PostalCode: record.PostalCode,
		},
		ShippingMethod: record.ShippingMethod,
		ShippingLabel:  record.ShippingLabel,
		Subtotal:       record.Subtotal,
		ShippingCost:   record.ShippingCost,
		Tax:            record.Tax,
		Total:          record.Total,
		PaymentRef:     record.PaymentRef,
		Status:         domain.FulfillmentStatus(record.Status),
		TrackingNumber: record.TrackingNumber,
		Carrier:        record.Carrier,
		Lines:          lines,
	}
}
