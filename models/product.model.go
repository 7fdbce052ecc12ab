package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level at or below which a StockAlert is
// raised for the owning farmer.
const LowStockThreshold = 5

type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Details   string          `gorm:"type:text" json:"details"`
	Category  string          `gorm:"type:varchar(100);index" json:"category"`
	Unit      string          `gorm:"type:varchar(10);default:'kg'" json:"unit"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"` // owning farmer
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type StockAlert struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"` // farmer
	Threshold int       `gorm:"not null;default:5" json:"threshold"`
	IsAlerted bool      `gorm:"not null;default:false" json:"is_alerted"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type ProductInput struct {
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"required"`
	Details  string          `json:"details"`
	Category string          `json:"category"`
	Unit     string          `json:"unit" validate:"omitempty,oneof=kg g l ml pcs bottle packet"`
	Stock    int             `json:"stock" validate:"gte=0"`
}
