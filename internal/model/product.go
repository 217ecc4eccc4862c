package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents the product master data. Stock is only mutated by the
// invoice ledger; the product endpoints never touch it after creation.
type Product struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	TenantID  uint            `json:"tenant_id" gorm:"not null;uniqueIndex:idx_products_tenant_sku"`
	Name      string          `json:"name" gorm:"type:varchar(256);not null"`
	SKU       string          `json:"sku" gorm:"type:varchar(100);not null;uniqueIndex:idx_products_tenant_sku"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock     int             `json:"stock" gorm:"not null;default:0"`
	Images    pq.StringArray  `json:"images" gorm:"type:text[]"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}
