package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService pedidos: creación, consulta y ciclo de vida
type OrderService struct {
	orderRepo       repository.OrderRepository
	productRepo     repository.ProductRepository
	settingsService *SettingsService
}

// NewOrderService crea el servicio de pedidos
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, settingsService *SettingsService) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		settingsService: settingsService,
	}
}

// CreateOrderItem línea de pedido solicitada por el cliente
type CreateOrderItem struct {
	ProductID uint
	Quantity  int
}

// CreateOrderInput datos del asistente de pedido
type CreateOrderInput struct {
	UserID uint
	Items  []CreateOrderItem

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	DeliveryType         string
	DeliveryAddress      string
	DeliveryNeighborhood string
	DeliveryCity         string
	DeliveryDepartment   string
	DeliveryReferences   string

	DesiredDate string
	DesiredTime string

	PaymentMethod string
	Notes         string
}

// CreateOrder valida el pedido completo y lo persiste en estado pending.
// Para pagos wompi reutiliza un pedido pendiente de pago del mismo cliente
// en lugar de acumular pedidos abandonados.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 || len(input.Items) == 0 {
		return nil, ErrInvalidOrderItem
	}
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
	}

	settings, err := s.settingsService.Get()
	if err != nil {
		return nil, err
	}
	loc := s.settingsService.Location()
	now := time.Now().In(loc)

	if err := validateCustomerData(&input); err != nil {
		return nil, err
	}
	if err := validateDeliveryData(&input); err != nil {
		return nil, err
	}
	if err := validateSchedule(input.DesiredDate, input.DesiredTime, settings, now, loc); err != nil {
		return nil, err
	}
	if err := validatePaymentMethod(input.PaymentMethod, settings); err != nil {
		return nil, err
	}

	items, err := s.buildOrderItems(input.Items)
	if err != nil {
		return nil, err
	}

	totals := ComputeTotals(input.DeliveryType, items, settings)
	if totals.Subtotal.LessThan(settings.MinimumOrderAmount.Decimal) {
		return nil, ErrOrderBelowMinimum
	}

	order := &models.Order{
		UserID:               input.UserID,
		Status:               constants.OrderStatusPending,
		CustomerName:         strings.TrimSpace(input.CustomerName),
		CustomerPhone:        strings.TrimSpace(input.CustomerPhone),
		CustomerEmail:        strings.TrimSpace(input.CustomerEmail),
		DeliveryType:         input.DeliveryType,
		DeliveryAddress:      strings.TrimSpace(input.DeliveryAddress),
		DeliveryNeighborhood: strings.TrimSpace(input.DeliveryNeighborhood),
		DeliveryCity:         strings.TrimSpace(input.DeliveryCity),
		DeliveryDepartment:   strings.TrimSpace(input.DeliveryDepartment),
		DeliveryReferences:   strings.TrimSpace(input.DeliveryReferences),
		DesiredDate:          input.DesiredDate,
		DesiredTime:          input.DesiredTime,
		Subtotal:             totals.Subtotal,
		DeliveryFee:          totals.DeliveryFee,
		Total:                totals.Total,
		PaymentMethod:        input.PaymentMethod,
		PaymentStatus:        constants.PaymentStatusPending,
		Notes:                strings.TrimSpace(input.Notes),
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)

		if input.PaymentMethod == constants.PaymentMethodWompi {
			existing, err := orderRepo.GetPendingWompiByUser(input.UserID)
			if err != nil {
				return err
			}
			if existing != nil {
				return s.reusePendingOrder(tx, existing, order, items, settings)
			}
		}

		orderNo, err := generateOrderNo(orderRepo, now)
		if err != nil {
			return err
		}
		order.OrderNo = orderNo
		return orderRepo.Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	order.Items = items
	logger.Infow("pedido creado",
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"delivery_type", order.DeliveryType,
		"payment_method", order.PaymentMethod,
		"total", order.Total.String(),
	)
	return order, nil
}

// reusePendingOrder vuelca los datos del nuevo intento sobre el pedido
// wompi pendiente y reemplaza sus líneas. Conserva el número de pedido.
func (s *OrderService) reusePendingOrder(tx *gorm.DB, existing *models.Order, fresh *models.Order, items []models.OrderItem, settings *models.BusinessSettings) error {
	orderRepo := s.orderRepo.WithTx(tx)
	updates := map[string]interface{}{
		"customer_name":         fresh.CustomerName,
		"customer_phone":        fresh.CustomerPhone,
		"customer_email":        fresh.CustomerEmail,
		"delivery_type":         fresh.DeliveryType,
		"delivery_address":      fresh.DeliveryAddress,
		"delivery_neighborhood": fresh.DeliveryNeighborhood,
		"delivery_city":         fresh.DeliveryCity,
		"delivery_department":   fresh.DeliveryDepartment,
		"delivery_references":   fresh.DeliveryReferences,
		"desired_date":          fresh.DesiredDate,
		"desired_time":          fresh.DesiredTime,
		"notes":                 fresh.Notes,
	}
	if err := orderRepo.Updates(existing.ID, updates); err != nil {
		return err
	}
	if err := orderRepo.ReplaceItems(existing.ID, items); err != nil {
		return err
	}

	existing.CustomerName = fresh.CustomerName
	existing.CustomerPhone = fresh.CustomerPhone
	existing.CustomerEmail = fresh.CustomerEmail
	existing.DeliveryType = fresh.DeliveryType
	existing.DeliveryAddress = fresh.DeliveryAddress
	existing.DeliveryNeighborhood = fresh.DeliveryNeighborhood
	existing.DeliveryCity = fresh.DeliveryCity
	existing.DeliveryDepartment = fresh.DeliveryDepartment
	existing.DeliveryReferences = fresh.DeliveryReferences
	existing.DesiredDate = fresh.DesiredDate
	existing.DesiredTime = fresh.DesiredTime
	existing.Notes = fresh.Notes

	if err := recalculateOrderTx(tx, existing, settings); err != nil {
		return err
	}

	*fresh = *existing
	logger.Infow("pedido wompi pendiente reutilizado", "order_no", existing.OrderNo, "user_id", existing.UserID)
	return nil
}

// buildOrderItems toma una instantánea de nombre y precio de cada producto
func (s *OrderService) buildOrderItems(requested []CreateOrderItem) ([]models.OrderItem, error) {
	ids := make([]uint, 0, len(requested))
	for _, item := range requested {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	items := make([]models.OrderItem, 0, len(requested))
	for _, item := range requested {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		if !product.IsAvailable {
			return nil, ErrProductNotAvailable
		}
		unit := product.Price
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   unit,
			TotalPrice:  models.NewMoneyFromDecimal(unit.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		})
	}
	return items, nil
}

// CancelOrder cancela un pedido del cliente si el ciclo de vida lo permite
func (s *OrderService) CancelOrder(orderID uint, userID uint) (*models.Order, error) {
	settings, err := s.settingsService.Get()
	if err != nil {
		return nil, err
	}
	loc := s.settingsService.Location()
	now := time.Now().In(loc)

	var order *models.Order
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		found, err := orderRepo.GetByIDAndUser(orderID, userID)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrOrderNotFound
		}
		if err := checkCanCancel(found, settings, now, loc); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if found.PaymentStatus == constants.PaymentStatusPending {
			updates["payment_status"] = constants.PaymentStatusCancelled
			found.PaymentStatus = constants.PaymentStatusCancelled
		}
		if err := orderRepo.UpdateStatus(found.ID, constants.OrderStatusCancelled, updates); err != nil {
			return err
		}
		found.Status = constants.OrderStatusCancelled
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("pedido cancelado por el cliente", "order_no", order.OrderNo, "user_id", userID)
	return order, nil
}

// UpdateOrderStatusAdmin aplica una transición de estado desde el panel.
// Las transiciones fuera de la tabla se rechazan; repetir el estado actual
// es inofensivo y no toca la base.
func (s *OrderService) UpdateOrderStatusAdmin(orderID uint, targetStatus string) (*models.Order, error) {
	if !knownOrderStatuses[targetStatus] {
		return nil, ErrOrderStatusInvalid
	}

	var order *models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		found, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrOrderNotFound
		}
		if !isTransitionAllowed(found.Status, targetStatus) {
			return ErrOrderStatusInvalid
		}
		if found.Status == targetStatus {
			order = found
			return nil
		}

		updates := map[string]interface{}{}
		if targetStatus == constants.OrderStatusCancelled && found.PaymentStatus == constants.PaymentStatusPending {
			updates["payment_status"] = constants.PaymentStatusCancelled
			found.PaymentStatus = constants.PaymentStatusCancelled
		}
		if err := orderRepo.UpdateStatus(found.ID, targetStatus, updates); err != nil {
			return err
		}
		found.Status = targetStatus
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("estado de pedido actualizado", "order_no", order.OrderNo, "status", order.Status)
	return order, nil
}

// UpdateAdminNotes guarda notas internas del pedido
func (s *OrderService) UpdateAdminNotes(orderID uint, notes string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.Updates(orderID, map[string]interface{}{
		"admin_notes": strings.TrimSpace(notes),
	})
}

// GetOrderForUser obtiene un pedido del cliente dueño
func (s *OrderService) GetOrderForUser(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser lista los pedidos del cliente
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// GetOrderAdmin obtiene un pedido para el panel administrativo
func (s *OrderService) GetOrderAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersAdmin lista pedidos para el panel administrativo
func (s *OrderService) ListOrdersAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// OrderStatsResult resumen de pedidos para el panel administrativo
type OrderStatsResult struct {
	StatusCounts map[string]int64 `json:"status_counts"`
	Revenue      models.Money     `json:"revenue"`
}

// OrderStats conteo de pedidos por estado y recaudo de pedidos entregados
func (s *OrderService) OrderStats() (*OrderStatsResult, error) {
	counts, err := s.orderRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.RevenueTotal()
	if err != nil {
		return nil, err
	}
	return &OrderStatsResult{StatusCounts: counts, Revenue: revenue}, nil
}

// CleanupDrafts elimina borradores sin actividad más antiguos que maxAge
func (s *OrderService) CleanupDrafts(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	removed, err := s.orderRepo.DeleteDraftsBefore(cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logger.Infow("borradores de pedido eliminados", "count", removed)
	}
	return removed, nil
}

// knownOrderStatuses estados válidos como destino de transición
var knownOrderStatuses = map[string]bool{
	constants.OrderStatusDraft:                 true,
	constants.OrderStatusPending:               true,
	constants.OrderStatusConfirmed:             true,
	constants.OrderStatusPreparing:             true,
	constants.OrderStatusReady:                 true,
	constants.OrderStatusInDelivery:            true,
	constants.OrderStatusDelivered:             true,
	constants.OrderStatusCancelled:             true,
	constants.OrderStatusModificationRequested: true,
}

// generateOrderNo genera el siguiente número JY + aammdd + secuencia de
// tres dígitos. Debe llamarse dentro de la transacción de creación para
// que la secuencia diaria no se repita bajo concurrencia.
func generateOrderNo(orderRepo *repository.GormOrderRepository, now time.Time) (string, error) {
	prefix := constants.OrderNoPrefix + now.Format(constants.OrderNoDateLayout)
	last, err := orderRepo.LastOrderNoWithPrefix(prefix)
	if err != nil {
		return "", err
	}
	sequence := 1
	if last != "" && len(last) > len(prefix) {
		if parsed, err := strconv.Atoi(last[len(prefix):]); err == nil {
			sequence = parsed + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, sequence), nil
}

func validateCustomerData(input *CreateOrderInput) error {
	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.CustomerPhone) == "" {
		return ErrCustomerDataRequired
	}
	return nil
}

func validateDeliveryData(input *CreateOrderInput) error {
	switch input.DeliveryType {
	case constants.DeliveryTypePickup:
		return nil
	case constants.DeliveryTypeDelivery:
		if strings.TrimSpace(input.DeliveryAddress) == "" {
			return ErrDeliveryAddressRequired
		}
		return nil
	default:
		return ErrDeliveryTypeInvalid
	}
}

// validateSchedule valida fecha y hora deseadas contra las ventanas del
// negocio. La fecha se compara por días calendario en la zona del negocio.
func validateSchedule(desiredDate, desiredTime string, settings *models.BusinessSettings, now time.Time, loc *time.Location) error {
	date, err := time.ParseInLocation("2006-01-02", desiredDate, loc)
	if err != nil {
		return ErrDesiredDateInvalid
	}
	minutes, err := parseClock(desiredTime)
	if err != nil {
		return ErrDesiredTimeInvalid
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	earliest := today.AddDate(0, 0, settings.MinAdvanceDays)
	latest := today.AddDate(0, 0, settings.MaxAdvanceDays)
	if date.Before(earliest) {
		return ErrDesiredDateTooSoon
	}
	if date.After(latest) {
		return ErrDesiredDateTooFar
	}

	start, err := parseClock(settings.DeliveryStartTime)
	if err != nil {
		start = 0
	}
	end, err := parseClock(settings.DeliveryEndTime)
	if err != nil {
		end = 24*60 - 1
	}
	if minutes < start || minutes > end {
		return ErrDesiredTimeOutOfWindow
	}
	return nil
}

func validatePaymentMethod(method string, settings *models.BusinessSettings) error {
	switch method {
	case constants.PaymentMethodCash:
		if !settings.AcceptCash {
			return ErrPaymentMethodDisabled
		}
		return nil
	case constants.PaymentMethodWompi:
		if !settings.AcceptWompi {
			return ErrPaymentMethodDisabled
		}
		return nil
	default:
		return ErrPaymentMethodInvalid
	}
}
