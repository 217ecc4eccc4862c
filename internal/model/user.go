package model

import (
	"time"

	"gorm.io/gorm"
)

// User role values
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a dashboard user. Every user belongs to exactly one
// tenant; admins manage the other users of their tenant.
type User struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	TenantID  uint           `json:"tenant_id" gorm:"index;not null"`
	Email     string         `json:"email" gorm:"type:varchar(100);not null;uniqueIndex"`
	Password  string         `json:"-" gorm:"type:varchar(255);not null"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	Role      string         `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	Banned    bool           `json:"banned" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
