package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem línea de producto dentro de un pedido
type OrderItem struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	OrderID     uint   `gorm:"index;not null" json:"order_id"`
	ProductID   uint   `gorm:"index;not null" json:"product_id"`
	ProductName string `gorm:"type:varchar(150);not null" json:"product_name"` // instantánea del nombre
	Quantity    int    `gorm:"not null" json:"quantity"`
	// UnitPrice se captura al crear la línea y nunca se recalcula desde el producto
	UnitPrice  Money          `gorm:"type:decimal(12,0);not null;default:0" json:"unit_price"`
	TotalPrice Money          `gorm:"type:decimal(12,0);not null;default:0" json:"total_price"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName nombre de la tabla
func (OrderItem) TableName() string {
	return "order_items"
}
