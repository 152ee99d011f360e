package models

import (
	"time"

	"gorm.io/gorm"
)

// User cuenta de cliente o de personal del negocio
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // hash bcrypt, nunca se expone
	Name         string         `gorm:"type:varchar(150);default:''" json:"name"`
	Phone        string         `gorm:"type:varchar(30);default:''" json:"phone"`
	IsStaff      bool           `gorm:"default:false;index" json:"is_staff"`
	IsSuperadmin bool           `gorm:"default:false" json:"is_superadmin"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName nombre de la tabla
func (User) TableName() string {
	return "users"
}
