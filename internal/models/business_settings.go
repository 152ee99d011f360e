package models

import (
	"time"
)

// BusinessSettings configuración del negocio. Existe exactamente una fila;
// se crea con valores por defecto en el primer acceso.
type BusinessSettings struct {
	ID uint `gorm:"primarykey" json:"id"`

	BusinessName string `gorm:"type:varchar(150);default:Janay" json:"business_name"`
	ContactPhone string `gorm:"type:varchar(30)" json:"contact_phone,omitempty"`
	ContactEmail string `gorm:"type:varchar(150)" json:"contact_email,omitempty"`
	Address      string `gorm:"type:varchar(300)" json:"address,omitempty"`
	City         string `gorm:"type:varchar(120);default:Villanueva" json:"city"`
	Department   string `gorm:"type:varchar(120);default:Casanare" json:"department"`

	// Umbrales de pedido
	MinimumOrderAmount    Money `gorm:"type:decimal(12,0);not null;default:50000" json:"minimum_order_amount"`
	FreeDeliveryThreshold Money `gorm:"type:decimal(12,0);not null;default:500000" json:"free_delivery_threshold"`
	DeliveryCost          Money `gorm:"type:decimal(12,0);not null;default:5000" json:"delivery_cost"`

	// Ventanas de tiempo
	MinAdvanceDays             int    `gorm:"not null;default:2" json:"min_advance_days"`
	MaxAdvanceDays             int    `gorm:"not null;default:90" json:"max_advance_days"`
	ModificationTimeLimitHours int    `gorm:"not null;default:4" json:"modification_time_limit_hours"`
	CancellationTimeLimitDays  int    `gorm:"not null;default:1" json:"cancellation_time_limit_days"`
	DeliveryStartTime          string `gorm:"type:varchar(5);default:05:00" json:"delivery_start_time"` // HH:MM
	DeliveryEndTime            string `gorm:"type:varchar(5);default:21:00" json:"delivery_end_time"`   // HH:MM

	// Métodos de pago
	AcceptCash  bool `gorm:"default:true" json:"accept_cash"`
	AcceptWompi bool `gorm:"default:false" json:"accept_wompi"`

	// Credenciales Wompi. El ambiente se decide solo por esta bandera,
	// nunca por el prefijo de las llaves.
	WompiEnvironment  string `gorm:"type:varchar(20);default:test" json:"wompi_environment"` // test / production
	WompiPublicKey    string `gorm:"type:varchar(200)" json:"wompi_public_key,omitempty"`
	WompiPrivateKey   string `gorm:"type:varchar(200)" json:"-"`
	WompiIntegrityKey string `gorm:"type:varchar(200)" json:"-"`
	WompiEventKey     string `gorm:"type:varchar(200)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName nombre de la tabla
func (BusinessSettings) TableName() string {
	return "business_settings"
}
