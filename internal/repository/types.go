package repository

import "time"

// OrderListFilter filtros para listados de pedidos
type OrderListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	Status        string
	DeliveryType  string
	PaymentMethod string
	OrderNo       string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	IncludeDrafts bool
}

// ModificationListFilter filtros para listados de solicitudes de modificación
type ModificationListFilter struct {
	Page        int
	PageSize    int
	OrderID     uint
	RequestedBy uint
	PendingOnly bool
}

// ProductListFilter filtros para listados de productos
type ProductListFilter struct {
	Page          int
	PageSize      int
	CategoryID    uint
	Search        string
	OnlyAvailable bool
	WithCategory  bool
}
