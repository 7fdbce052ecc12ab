package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusShipped        OrderStatus = "Shipped"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// FarmerStatusChoices are the statuses a farmer may set by hand on their
// own FarmerOrder. "Out for Delivery" is reached only by the auto-advance
// sweep on the parent order.
var FarmerStatusChoices = map[OrderStatus]bool{
	StatusPending:   true,
	StatusShipped:   true,
	StatusDelivered: true,
	StatusCancelled: true,
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
)

// Order is one customer checkout. The shipping address is a denormalized
// snapshot taken at creation, not a live reference.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"` // customer
	Address       string          `gorm:"type:varchar(255);not null" json:"address"`
	PaymentMethod string          `gorm:"type:varchar(50);default:'cod'" json:"payment_method"`
	Status        OrderStatus     `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	OrderItems    []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"order_items"`
}

// OrderItem freezes the product's unit price at purchase time; later
// Product.Price changes never touch it.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// FarmerOrder is one farmer's fulfillment responsibility for one line
// item. All FarmerOrders of an order together drive the parent status.
type FarmerOrder struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	FarmerID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"farmer_id"`
	OrderItemID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"order_item_id"`
	OrderItem   OrderItem   `gorm:"foreignKey:OrderItemID" json:"order_item"`
	Status      OrderStatus `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// FarmerPayment tracks the farmer's earning for one line item. Settlement
// happens out of band; only the status ever changes here.
type FarmerPayment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	FarmerID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"farmer_id"`
	OrderItemID uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_item_id"`
	OrderItem   OrderItem       `gorm:"foreignKey:OrderItemID" json:"order_item"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status      PaymentStatus   `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type PlaceOrderInput struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cod upi card netbanking"`
	AddressID     string `json:"address_id" validate:"required"`
	BuyNow        bool   `json:"buy_now"`
}

type UpdateFarmerOrderInput struct {
	Status string `json:"status" validate:"required"`
}
