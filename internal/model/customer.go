package model

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a tenant's customer record. Invoices reference
// customers by ID and never cascade on delete (soft delete only).
type Customer struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	TenantID  uint           `json:"tenant_id" gorm:"index;not null"`
	Name      string         `json:"name" gorm:"type:varchar(256);not null"`
	Email     string         `json:"email,omitempty" gorm:"type:varchar(320)"`
	Phone     string         `json:"phone,omitempty" gorm:"type:varchar(15)"`
	Address   string         `json:"address,omitempty" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
