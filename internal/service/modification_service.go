package service

import (
	"strings"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"

	"gorm.io/gorm"
)

// ModificationService solicitudes de modificación sobre pedidos confirmados
type ModificationService struct {
	orderRepo       repository.OrderRepository
	requestRepo     repository.ModificationRequestRepository
	settingsService *SettingsService
}

// NewModificationService crea el servicio de solicitudes de modificación
func NewModificationService(orderRepo repository.OrderRepository, requestRepo repository.ModificationRequestRepository, settingsService *SettingsService) *ModificationService {
	return &ModificationService{
		orderRepo:       orderRepo,
		requestRepo:     requestRepo,
		settingsService: settingsService,
	}
}

// FileRequestInput solicitud de cambio presentada por el cliente
type FileRequestInput struct {
	OrderID          uint
	UserID           uint
	ModificationType string
	RequestedData    models.JSON
	Reason           string
}

// FileRequest registra la solicitud con una instantánea de los datos
// actuales del pedido y lo pasa a modification_requested. La preparación
// queda detenida hasta que el personal resuelva.
func (s *ModificationService) FileRequest(input FileRequestInput) (*models.OrderModificationRequest, error) {
	if input.OrderID == 0 || input.UserID == 0 {
		return nil, ErrOrderNotFound
	}
	if strings.TrimSpace(input.ModificationType) == "" || len(input.RequestedData) == 0 {
		return nil, ErrModificationDataRequired
	}

	settings, err := s.settingsService.Get()
	if err != nil {
		return nil, err
	}
	loc := s.settingsService.Location()
	now := time.Now().In(loc)

	var request *models.OrderModificationRequest
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		requestRepo := s.requestRepo.WithTx(tx)

		order, err := orderRepo.GetByIDAndUser(input.OrderID, input.UserID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if err := checkCanModify(order, settings, now, loc); err != nil {
			return err
		}

		request = &models.OrderModificationRequest{
			OrderID:          order.ID,
			RequestedBy:      input.UserID,
			ModificationType: strings.TrimSpace(input.ModificationType),
			CurrentData:      snapshotOrderData(order),
			RequestedData:    input.RequestedData,
			Reason:           strings.TrimSpace(input.Reason),
		}
		if err := requestRepo.Create(request); err != nil {
			return err
		}
		return orderRepo.UpdateStatus(order.ID, constants.OrderStatusModificationRequested, nil)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("solicitud de modificación registrada",
		"order_id", request.OrderID,
		"request_id", request.ID,
		"modification_type", request.ModificationType,
	)
	return request, nil
}

// ResolveInput decisión del personal sobre una solicitud
type ResolveInput struct {
	RequestID     uint
	ReviewerID    uint
	Approve       bool
	AdminResponse string
}

// Resolve cierra la solicitud y devuelve el pedido a confirmed. Tanto la
// aprobación como el rechazo reanudan el flujo normal; los cambios
// aprobados los aplica el personal sobre el pedido.
func (s *ModificationService) Resolve(input ResolveInput) (*models.OrderModificationRequest, error) {
	var request *models.OrderModificationRequest
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		requestRepo := s.requestRepo.WithTx(tx)

		found, err := requestRepo.GetByID(input.RequestID)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrModificationNotFound
		}
		if found.ReviewedAt != nil {
			return ErrModificationAlreadyClosed
		}

		order, err := orderRepo.GetByID(found.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status != constants.OrderStatusModificationRequested {
			return ErrModificationAlreadyClosed
		}

		now := time.Now()
		found.ReviewedBy = &input.ReviewerID
		found.ReviewedAt = &now
		found.AdminResponse = strings.TrimSpace(input.AdminResponse)
		if err := requestRepo.Update(found); err != nil {
			return err
		}
		if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusConfirmed, nil); err != nil {
			return err
		}
		request = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("solicitud de modificación resuelta",
		"request_id", request.ID,
		"order_id", request.OrderID,
		"approved", input.Approve,
	)
	return request, nil
}

// ListByOrderForUser historial de solicitudes de un pedido del cliente
func (s *ModificationService) ListByOrderForUser(orderID uint, userID uint) ([]models.OrderModificationRequest, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.requestRepo.ListByOrder(orderID)
}

// ListAdmin lista solicitudes para el panel administrativo
func (s *ModificationService) ListAdmin(filter repository.ModificationListFilter) ([]models.OrderModificationRequest, int64, error) {
	return s.requestRepo.ListAdmin(filter)
}

// snapshotOrderData captura los campos modificables del pedido
func snapshotOrderData(order *models.Order) models.JSON {
	return models.JSON{
		"customer_name":         order.CustomerName,
		"customer_phone":        order.CustomerPhone,
		"customer_email":        order.CustomerEmail,
		"delivery_type":         order.DeliveryType,
		"delivery_address":      order.DeliveryAddress,
		"delivery_neighborhood": order.DeliveryNeighborhood,
		"delivery_city":         order.DeliveryCity,
		"delivery_department":   order.DeliveryDepartment,
		"delivery_references":   order.DeliveryReferences,
		"desired_date":          order.DesiredDate,
		"desired_time":          order.DesiredTime,
		"notes":                 order.Notes,
	}
}
