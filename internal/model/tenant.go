package model

import (
	"time"

	"gorm.io/gorm"
)

// Tenant is an isolated customer organization. Every domain row carries a
// TenantID and every read and write is filtered by it.
type Tenant struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	OwnerID   uint           `json:"owner_id" gorm:"index"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
