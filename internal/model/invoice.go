package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is the header row of a sale. Number is the human-readable,
// tenant-scoped sequential identifier (INV-000001, INV-000002, ...); the
// unique index on (tenant_id, number) is what serializes concurrent number
// generation (the ledger retries on conflict). Total is always recomputed
// from the item snapshots, never edited independently.
type Invoice struct {
	ID         uint            `json:"id" gorm:"primarykey"`
	TenantID   uint            `json:"tenant_id" gorm:"not null;uniqueIndex:idx_invoices_tenant_number"`
	Number     string          `json:"number" gorm:"type:varchar(20);not null;uniqueIndex:idx_invoices_tenant_number"`
	CustomerID uint            `json:"customer_id" gorm:"index;not null"`
	Total      decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	AmountPaid decimal.Decimal `json:"amount_paid" gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// InvoiceItem is a line of an invoice. Price is a snapshot of the product
// price at the time the invoice was written, so historical invoices render
// correctly after product price changes or soft deletes.
type InvoiceItem struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	TenantID  uint            `json:"tenant_id" gorm:"index;not null"`
	InvoiceID uint            `json:"invoice_id" gorm:"index;not null"`
	ProductID uint            `json:"product_id" gorm:"index;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}
