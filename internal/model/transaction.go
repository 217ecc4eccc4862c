package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction type values
const (
	TransactionCashIn  = "cash_in"
	TransactionCashOut = "cash_out"
)

// Transaction is a standalone cash movement, independent of invoices.
// It only feeds the cash-flow analytics.
type Transaction struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	TenantID    uint            `json:"tenant_id" gorm:"index;not null"`
	Type        string          `json:"type" gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Date        time.Time       `json:"date" gorm:"not null;index"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}
