package repository

import (
	"errors"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"

	"gorm.io/gorm"
)

// ModificationRequestRepository acceso a solicitudes de modificación
type ModificationRequestRepository interface {
	Create(request *models.OrderModificationRequest) error
	GetByID(id uint) (*models.OrderModificationRequest, error)
	LatestByOrder(orderID uint) (*models.OrderModificationRequest, error)
	ListByOrder(orderID uint) ([]models.OrderModificationRequest, error)
	ListAdmin(filter ModificationListFilter) ([]models.OrderModificationRequest, int64, error)
	Update(request *models.OrderModificationRequest) error
	WithTx(tx *gorm.DB) *GormModificationRequestRepository
}

// GormModificationRequestRepository implementación GORM
type GormModificationRequestRepository struct {
	db *gorm.DB
}

// NewModificationRequestRepository crea el repositorio de solicitudes
func NewModificationRequestRepository(db *gorm.DB) *GormModificationRequestRepository {
	return &GormModificationRequestRepository{db: db}
}

// WithTx vincula una transacción
func (r *GormModificationRequestRepository) WithTx(tx *gorm.DB) *GormModificationRequestRepository {
	if tx == nil {
		return r
	}
	return &GormModificationRequestRepository{db: tx}
}

// Create crea una solicitud
func (r *GormModificationRequestRepository) Create(request *models.OrderModificationRequest) error {
	return r.db.Create(request).Error
}

// GetByID obtiene una solicitud por ID
func (r *GormModificationRequestRepository) GetByID(id uint) (*models.OrderModificationRequest, error) {
	var request models.OrderModificationRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// LatestByOrder devuelve la solicitud más reciente del pedido (la activa)
func (r *GormModificationRequestRepository) LatestByOrder(orderID uint) (*models.OrderModificationRequest, error) {
	var request models.OrderModificationRequest
	if err := r.db.Where("order_id = ?", orderID).
		Order("id desc").
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// ListByOrder lista el historial de solicitudes del pedido
func (r *GormModificationRequestRepository) ListByOrder(orderID uint) ([]models.OrderModificationRequest, error) {
	var requests []models.OrderModificationRequest
	if err := r.db.Where("order_id = ?", orderID).
		Order("id desc").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListAdmin lista solicitudes para el panel administrativo
func (r *GormModificationRequestRepository) ListAdmin(filter ModificationListFilter) ([]models.OrderModificationRequest, int64, error) {
	var requests []models.OrderModificationRequest
	query := r.db.Model(&models.OrderModificationRequest{})

	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.RequestedBy != 0 {
		query = query.Where("requested_by = ?", filter.RequestedBy)
	}
	if filter.PendingOnly {
		// Una solicitud está pendiente mientras su pedido siga en modification_requested
		query = query.Where("reviewed_at IS NULL").
			Where("order_id IN (?)", r.db.Model(&models.Order{}).
				Select("id").
				Where("status = ?", constants.OrderStatusModificationRequested))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// Update actualiza una solicitud
func (r *GormModificationRequestRepository) Update(request *models.OrderModificationRequest) error {
	return r.db.Save(request).Error
}
