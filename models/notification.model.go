package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// NotificationEvent is the structured dedup key component. Suppressing a
// duplicate by (user, event, order) beats matching on message text, which
// breaks the moment the wording changes.
type NotificationEvent string

const (
	EventOrderPlaced          NotificationEvent = "order_placed"
	EventNewOrder             NotificationEvent = "new_order"
	EventStatusChange         NotificationEvent = "status_change"
	EventOrderDelivered       NotificationEvent = "order_delivered"
	EventFarmerOrderDelivered NotificationEvent = "farmer_order_delivered"
	EventLowStock             NotificationEvent = "low_stock"
)

// Notification rows are append-only; only IsRead flips afterwards.
type Notification struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Event     NotificationEvent `gorm:"type:varchar(50);not null;index" json:"event"`
	OrderID   uuid.UUID         `gorm:"type:uuid;index" json:"order_id"`
	Message   string            `gorm:"type:text;not null" json:"message"`
	IsRead    bool              `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
}
