package models

import (
	"time"

	"gorm.io/gorm"
)

// Product producto del catálogo
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	Name        string         `gorm:"type:varchar(150);not null" json:"name"`
	Description string         `gorm:"type:varchar(500)" json:"description,omitempty"`
	Price       Money          `gorm:"type:decimal(12,0);not null;default:0" json:"price"`
	Images      StringArray    `gorm:"type:json" json:"images,omitempty"`
	// Sin default en la columna: GORM omite los valores false al insertar
	// cuando la etiqueta default está presente
	IsAvailable bool           `gorm:"index" json:"is_available"`
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName nombre de la tabla
func (Product) TableName() string {
	return "products"
}
