package models

import (
	"time"

	"gorm.io/gorm"
)

// Order pedido de un cliente
type Order struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	OrderNo string `gorm:"uniqueIndex;not null" json:"order_no"` // JY + aammdd + secuencia diaria
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	Status  string `gorm:"index;not null" json:"status"`

	// Datos de contacto del cliente
	CustomerName  string `gorm:"type:varchar(150);not null" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(30);not null" json:"customer_phone"`
	CustomerEmail string `gorm:"type:varchar(150)" json:"customer_email,omitempty"`

	// Entrega
	DeliveryType         string `gorm:"type:varchar(20);not null" json:"delivery_type"` // pickup / delivery
	DeliveryAddress      string `gorm:"type:varchar(300)" json:"delivery_address,omitempty"`
	DeliveryNeighborhood string `gorm:"type:varchar(120)" json:"delivery_neighborhood,omitempty"`
	DeliveryCity         string `gorm:"type:varchar(120);default:Villanueva" json:"delivery_city,omitempty"`
	DeliveryDepartment   string `gorm:"type:varchar(120);default:Casanare" json:"delivery_department,omitempty"`
	DeliveryReferences   string `gorm:"type:varchar(300)" json:"delivery_references,omitempty"`

	// Fecha y hora deseadas de entrega/recogida
	DesiredDate string `gorm:"type:varchar(10);not null" json:"desired_date"` // YYYY-MM-DD
	DesiredTime string `gorm:"type:varchar(5);not null" json:"desired_time"`  // HH:MM

	// Montos (total = subtotal + delivery_fee, siempre)
	Subtotal    Money `gorm:"type:decimal(12,0);not null;default:0" json:"subtotal"`
	DeliveryFee Money `gorm:"type:decimal(12,0);not null;default:0" json:"delivery_fee"`
	Total       Money `gorm:"type:decimal(12,0);not null;default:0" json:"total"`

	// Pago
	PaymentMethod    string `gorm:"type:varchar(20);not null" json:"payment_method"` // cash / wompi
	PaymentStatus    string `gorm:"type:varchar(20);index;not null;default:pending" json:"payment_status"`
	PaymentReference string `gorm:"type:varchar(120);index" json:"payment_reference,omitempty"` // id de transacción en la pasarela

	Notes      string `gorm:"type:varchar(500)" json:"notes,omitempty"`
	AdminNotes string `gorm:"type:varchar(500)" json:"admin_notes,omitempty"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items                []OrderItem                `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	ModificationRequests []OrderModificationRequest `gorm:"foreignKey:OrderID" json:"modification_requests,omitempty"`
}

// TableName nombre de la tabla
func (Order) TableName() string {
	return "orders"
}
