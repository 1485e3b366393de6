package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order lifecycle. Transitions are driven from the admin surface; the
// placement transaction only ever writes OrderStatusPending.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing_supplier"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusExpired   = "expired"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPaid,
		OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	}
	return false
}

type Supplier struct {
	ID              uint      `gorm:"primaryKey;autoIncrement;column:id_supplier" json:"id"`
	Name            string    `gorm:"not null"                                    json:"name"`
	Platform        string    `gorm:"not null"                                    json:"platform"`
	ContactInfo     string    `json:"contact_info"`
	MinOrderValue   float64   `json:"min_order_value"`
	ShippingMethod  string    `json:"shipping_method"`
	AvgDeliveryDays int       `json:"avg_delivery_days"`
	Active          bool      `gorm:"not null;default:true"                       json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

type Product struct {
	ID                uint      `gorm:"primaryKey;autoIncrement;column:id_product" json:"id"`
	Name              string    `gorm:"not null;index"                             json:"name"`
	Description       string    `json:"description"`
	PriceRUB          float64   `gorm:"not null;check:price_rub > 0"               json:"price"`
	OriginalPriceYuan float64   `gorm:"not null"                                   json:"original_price_yuan"`
	Category          string    `gorm:"default:shoes;index"                        json:"category"`
	TaobaoURL         string    `gorm:"not null"                                   json:"taobao_url"`
	TaobaoItemID      string    `gorm:"not null;uniqueIndex"                       json:"taobao_item_id"`
	ImageURL          string    `json:"image"`
	Attributes        string    `json:"attributes"`
	Rating            float64   `json:"rating"`
	Sales             int       `json:"sales"`
	Store             string    `json:"store"`
	LastUpdated       time.Time `gorm:"autoUpdateTime"                             json:"last_updated"`
	CreatedAt         time.Time `json:"created_at"`
}

type Customer struct {
	ID              uint      `gorm:"primaryKey;autoIncrement;column:id_customer" json:"id"`
	TelegramID      int64     `gorm:"not null;uniqueIndex"                        json:"telegram_id"`
	FullName        string    `json:"full_name"`
	Username        string    `json:"username"`
	Phone           string    `json:"phone"`
	DeliveryAddress string    `json:"delivery_address"`
	City            string    `json:"city"`
	Email           string    `json:"email"`
	Country         string    `gorm:"not null;default:Russia"                     json:"country"`
	Language        string    `gorm:"not null;default:ru"                         json:"language"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type UserSession struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id_session" json:"id"`
	TelegramID  int64     `gorm:"not null;index"               json:"telegram_id"`
	Query       string    `gorm:"not null"                     json:"query"`
	ResultsJSON string    `json:"results_json"`
	Status      string    `gorm:"not null;default:active;check:status IN ('active','completed','expired')" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `gorm:"not null;index"               json:"expires_at"`
}

func (s *UserSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (UserSession) TableName() string {
	return "user_sessions"
}

// CartItem rows are unique per (customer, product, size, color); re-adding
// the same variant merges quantities instead of inserting a second row.
type CartItem struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id_cart"                   json:"id"`
	CustomerID uint      `gorm:"column:id_customer;uniqueIndex:idx_cart_variant;not null"  json:"customer_id"`
	ProductID  uint      `gorm:"column:id_product;uniqueIndex:idx_cart_variant;not null"   json:"product_id"`
	Size       string    `gorm:"uniqueIndex:idx_cart_variant"                              json:"size"`
	Color      string    `gorm:"uniqueIndex:idx_cart_variant"                              json:"color"`
	Quantity   int       `gorm:"not null;default:1;check:quantity >= 1 AND quantity <= 10" json:"quantity"`
	AddedAt    time.Time `gorm:"autoCreateTime"                                            json:"added_at"`
}

func (CartItem) TableName() string {
	return "cart"
}

type Order struct {
	ID               uint        `gorm:"primaryKey;autoIncrement;column:id_order" json:"id"`
	CustomerID       uint        `gorm:"column:id_customer;index;not null"        json:"customer_id"`
	TotalAmountRUB   float64     `gorm:"not null"                                 json:"total_amount_rub"`
	Currency         string      `gorm:"not null;default:RUB"                     json:"currency"`
	OrderDate        time.Time   `gorm:"not null;index"                           json:"order_date"`
	Status           string      `gorm:"not null;default:pending;index;check:status IN ('pending','confirmed','paid','processing_supplier','shipped','delivered','cancelled')" json:"status"`
	PaymentStatus    string      `gorm:"not null;default:unpaid;index;check:payment_status IN ('unpaid','paid','refunded')" json:"payment_status"`
	PaymentMethod    string      `json:"payment_method"`
	DeliveryAddress  string      `gorm:"not null"                                 json:"delivery_address"`
	TrackingNumber   string      `json:"tracking_number"`
	AdminNote        string      `json:"admin_note"`
	ExchangeRateUsed float64     `json:"exchange_rate_used"`
	Items            []OrderItem `gorm:"foreignKey:OrderID"                       json:"items"`
}

// OrderItem snapshots name and price at order time. ProductID may become
// nil if the catalog entry is later removed; the snapshot stays authoritative.
type OrderItem struct {
	ID              uint    `gorm:"primaryKey;autoIncrement;column:id_item" json:"id"`
	OrderID         uint    `gorm:"column:id_order;index;not null"          json:"order_id"`
	ProductID       *uint   `gorm:"column:id_product"                       json:"product_id"`
	ProductName     string  `gorm:"not null"                                json:"product_name"`
	ProductPriceRUB float64 `gorm:"not null"                                json:"product_price_rub"`
	Size            string  `json:"size"`
	Color           string  `json:"color"`
	Quantity        int     `gorm:"not null"                                json:"quantity"`
	Subtotal        float64 `gorm:"not null"                                json:"subtotal"`
}

type ExchangeRate struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id_rate" json:"id"`
	RateRUB    float64   `gorm:"not null"                                json:"rate_rub"`
	Source     string    `gorm:"default:manual"                          json:"source"`
	RecordedAt time.Time `gorm:"not null;index;autoCreateTime"           json:"recorded_at"`
}

// AnalyticsEntry rows are append-only samples; the same key may repeat
// within a single timestamp tick, so the row id is a surrogate.
type AnalyticsEntry struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id_entry" json:"id"`
	Key        string    `gorm:"not null;index"                           json:"key"`
	Value      string    `gorm:"not null"                                 json:"value"`
	RecordedAt time.Time `gorm:"not null;index;autoCreateTime"            json:"recorded_at"`
}

func (AnalyticsEntry) TableName() string {
	return "analytics"
}

// All lists every model for AutoMigrate, dependencies first.
func All() []any {
	return []any{
		&Supplier{},
		&Product{},
		&Customer{},
		&UserSession{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&ExchangeRate{},
		&AnalyticsEntry{},
	}
}
