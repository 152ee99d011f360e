package models

import (
	"time"
)

// OrderModificationRequest solicitud de cambio sobre un pedido confirmado.
// El estado de la solicitud se lee a través del estado del pedido; la
// solicitud más reciente por pedido es la activa.
type OrderModificationRequest struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	OrderID          uint       `gorm:"index;not null" json:"order_id"`
	RequestedBy      uint       `gorm:"index;not null" json:"requested_by"`
	ModificationType string     `gorm:"type:varchar(50);not null" json:"modification_type"`
	CurrentData      JSON       `gorm:"type:json" json:"current_data"`   // instantánea al momento de la solicitud
	RequestedData    JSON       `gorm:"type:json" json:"requested_data"` // descripción del cambio deseado
	Reason           string     `gorm:"type:varchar(500)" json:"reason,omitempty"`
	AdminResponse    string     `gorm:"type:varchar(500)" json:"admin_response,omitempty"`
	ReviewedBy       *uint      `gorm:"index" json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName nombre de la tabla
func (OrderModificationRequest) TableName() string {
	return "order_modification_requests"
}
