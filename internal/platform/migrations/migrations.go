package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&cartLineRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&quoteRecord{},
		&projectRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID         int64           `gorm:"primaryKey;column:id"`
	SKU        string          `gorm:"column:sku;type:varchar(64);uniqueIndex"`
	Name       string          `gorm:"column:name;type:varchar(255)"`
	Category   string          `gorm:"column:category;type:varchar(64);index"`
	Finish     string          `gorm:"column:finish;type:varchar(64);index"`
	Collection string          `gorm:"column:collection;type:varchar(64);index"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	ImageURL   string          `gorm:"column:image_url;type:varchar(512)"`
	Images     pq.StringArray  `gorm:"column:images;type:text[]"`
	InStock    bool            `gorm:"column:in_stock"`
	TopSeller  bool            `gorm:"column:top_seller;index"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Cart schema mirrors the cart Postgres adapter. The unique index backs the
// atomic increment-or-insert upsert.
type cartLineRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Identity  string    `gorm:"column:identity;type:varchar(128);uniqueIndex:idx_cart_identity_product;index"`
	ProductID int64     `gorm:"column:product_id;uniqueIndex:idx_cart_identity_product"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartLineRecord) TableName() string { return "cart_lines" }

// Order schema mirrors the orders Postgres adapter.
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

type conversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Quote schema mirrors the quotes Postgres adapter.
type quoteRecord struct {
	ID            int64                 `gorm:"primaryKey;column:id"`
	UserID        int64                 `gorm:"column:user_id;index"`
	CustomerName  string                `gorm:"column:customer_name;type:varchar(255)"`
	CustomerEmail string                `gorm:"column:customer_email;type:varchar(255)"`
	CustomerPhone string                `gorm:"column:customer_phone;type:varchar(64)"`
	RoomType      string                `gorm:"column:room_type;type:varchar(64)"`
	Dimensions    string                `gorm:"column:dimensions;type:varchar(128)"`
	CabinetType   string                `gorm:"column:cabinet_type;type:varchar(64)"`
	DoorStyle     string                `gorm:"column:door_style;type:varchar(64)"`
	WoodSpecies   string                `gorm:"column:wood_species;type:varchar(64)"`
	Finish        string                `gorm:"column:finish;type:varchar(64)"`
	Hardware      string                `gorm:"column:hardware;type:varchar(64)"`
	EstimatedCost decimal.Decimal       `gorm:"column:estimated_cost;type:numeric(10,2)"`
	MaterialsCost decimal.Decimal       `gorm:"column:materials_cost;type:numeric(10,2)"`
	LaborCost     decimal.Decimal       `gorm:"column:labor_cost;type:numeric(10,2)"`
	HardwareCost  decimal.Decimal       `gorm:"column:hardware_cost;type:numeric(10,2)"`
	Status        string                `gorm:"column:status;type:varchar(16);index"`
	CRMLeadID     string                `gorm:"column:crm_lead_id;type:varchar(64)"`
	SentToCRM     bool                  `gorm:"column:sent_to_crm"`
	Conversation  []conversationMessage `gorm:"column:conversation;type:jsonb;serializer:json"`
	Notes         string                `gorm:"column:notes;type:text"`
	CreatedAt     time.Time             `gorm:"column:created_at"`
	UpdatedAt     time.Time             `gorm:"column:updated_at"`
}

func (quoteRecord) TableName() string { return "quotes" }

// Project schema mirrors the projects Postgres adapter.
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
