package repository

import (
	"errors"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"

	"gorm.io/gorm"
)

// OrderRepository acceso a datos de pedidos
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id uint, userID uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	GetPendingWompiByUser(userID uint) (*models.Order, error)
	LastOrderNoWithPrefix(prefix string) (string, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	ReplaceItems(orderID uint, items []models.OrderItem) error
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	Updates(id uint, updates map[string]interface{}) error
	CountByStatus() (map[string]int64, error)
	RevenueTotal() (models.Money, error)
	DeleteDraftsBefore(cutoff time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository implementación GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository crea el repositorio de pedidos
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx vincula una transacción
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create crea el pedido con sus líneas
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene un pedido por ID
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser obtiene un pedido del cliente dueño
func (r *GormOrderRepository) GetByIDAndUser(id uint, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo obtiene un pedido por número
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").
		Where("order_no = ?", orderNo).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetPendingWompiByUser busca un pedido wompi pendiente reutilizable del cliente
func (r *GormOrderRepository) GetPendingWompiByUser(userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").
		Where("user_id = ? AND status = ? AND payment_method = ? AND payment_status = ?",
			userID, constants.OrderStatusPending, constants.PaymentMethodWompi, constants.PaymentStatusPending).
		Order("id desc").
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// LastOrderNoWithPrefix devuelve el último número de pedido con el prefijo dado
func (r *GormOrderRepository) LastOrderNoWithPrefix(prefix string) (string, error) {
	var row struct {
		OrderNo string
	}
	if err := r.db.Model(&models.Order{}).
		Select("order_no").
		Where("order_no LIKE ?", prefix+"%").
		Order("order_no desc").
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.OrderNo, nil
}

// ListByUser lista los pedidos del cliente (los borradores quedan fuera)
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{}).
		Where("user_id = ?", filter.UserID).
		Where("status <> ?", constants.OrderStatusDraft)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no LIKE ?", "%"+filter.OrderNo+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Items").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAdmin lista pedidos para el panel administrativo
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if !filter.IncludeDrafts {
		query = query.Where("status <> ?", constants.OrderStatusDraft)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DeliveryType != "" {
		query = query.Where("delivery_type = ?", filter.DeliveryType)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Items").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ReplaceItems reemplaza todas las líneas del pedido
func (r *GormOrderRepository) ReplaceItems(orderID uint, items []models.OrderItem) error {
	if err := r.db.Unscoped().
		Where("order_id = ?", orderID).
		Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].OrderID = orderID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus actualiza el estado del pedido junto con otros campos
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// Updates actualiza campos del pedido sin tocar el estado
func (r *GormOrderRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// CountByStatus conteo de pedidos por estado, sin borradores
func (r *GormOrderRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.Model(&models.Order{}).
		Select("status, count(*) as total").
		Where("status <> ?", constants.OrderStatusDraft).
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// RevenueTotal suma el total de los pedidos entregados
func (r *GormOrderRepository) RevenueTotal() (models.Money, error) {
	var row struct {
		Revenue models.Money
	}
	if err := r.db.Model(&models.Order{}).
		Select("coalesce(sum(total), 0) as revenue").
		Where("status = ?", constants.OrderStatusDelivered).
		Take(&row).Error; err != nil {
		return models.Money{}, err
	}
	return row.Revenue, nil
}

// DeleteDraftsBefore elimina borradores anteriores al corte dado
func (r *GormOrderRepository) DeleteDraftsBefore(cutoff time.Time) (int64, error) {
	result := r.db.
		Where("status = ? AND updated_at < ?", constants.OrderStatusDraft, cutoff).
		Delete(&models.Order{})
	return result.RowsAffected, result.Error
}
