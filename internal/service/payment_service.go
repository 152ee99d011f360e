package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/cache"
	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/payment/wompi"
	"github.com/juan2005elpapu/webjanaypedidos/internal/queue"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"

	"gorm.io/gorm"
)

// PaymentService integración con la pasarela Wompi
type PaymentService struct {
	orderRepo       repository.OrderRepository
	settingsService *SettingsService
	queueClient     *queue.Client
	reconcileDelay  time.Duration
}

// NewPaymentService crea el servicio de pagos
func NewPaymentService(orderRepo repository.OrderRepository, settingsService *SettingsService, queueClient *queue.Client, reconcileDelay time.Duration) *PaymentService {
	if reconcileDelay <= 0 {
		reconcileDelay = 10 * time.Minute
	}
	return &PaymentService{
		orderRepo:       orderRepo,
		settingsService: settingsService,
		queueClient:     queueClient,
		reconcileDelay:  reconcileDelay,
	}
}

// gatewayConfig arma la configuración de Wompi desde BusinessSettings
func (s *PaymentService) gatewayConfig(settings *models.BusinessSettings) (*wompi.Config, error) {
	if !settings.AcceptWompi {
		return nil, ErrPaymentMethodDisabled
	}
	cfg := &wompi.Config{
		Environment:  settings.WompiEnvironment,
		PublicKey:    settings.WompiPublicKey,
		PrivateKey:   settings.WompiPrivateKey,
		IntegrityKey: settings.WompiIntegrityKey,
		EventKey:     settings.WompiEventKey,
	}
	if err := wompi.ValidateConfig(cfg); err != nil {
		return nil, ErrPaymentConfigInvalid
	}
	return cfg, nil
}

// CheckoutInfo datos para abrir el widget de pago en el cliente
type CheckoutInfo struct {
	OrderNo             string `json:"order_no"`
	AmountInCents       int64  `json:"amount_in_cents"`
	Currency            string `json:"currency"`
	PublicKey           string `json:"public_key"`
	IntegritySignature  string `json:"integrity_signature"`
	AcceptanceToken     string `json:"acceptance_token"`
	AcceptancePermalink string `json:"acceptance_permalink"`
	CheckoutBaseURL     string `json:"checkout_base_url"`

	// Prellenado de datos del cliente en el widget
	CustomerEmail       string `json:"customer_email,omitempty"`
	CustomerPhonePrefix string `json:"customer_phone_prefix,omitempty"`
	CustomerPhoneLocal  string `json:"customer_phone_number,omitempty"`
}

// InitCheckout prepara el pago wompi de un pedido pendiente del cliente.
// Programa además una verificación diferida por si el webhook se pierde.
func (s *PaymentService) InitCheckout(ctx context.Context, orderID uint, userID uint) (*CheckoutInfo, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentMethod != constants.PaymentMethodWompi {
		return nil, ErrPaymentMethodInvalid
	}
	if order.PaymentStatus != constants.PaymentStatusPending {
		return nil, ErrPaymentMethodInvalid
	}

	settings, err := s.settingsService.Get()
	if err != nil {
		return nil, err
	}
	cfg, err := s.gatewayConfig(settings)
	if err != nil {
		return nil, err
	}

	merchant, err := wompi.GetMerchantAcceptance(ctx, cfg)
	if err != nil {
		logger.Errorw("consulta de comercio wompi falló", "order_no", order.OrderNo, "error", err)
		return nil, ErrPaymentGatewayFailed
	}

	amountInCents := order.Total.CentsInt64()
	phonePrefix, phoneLocal := wompi.SplitPhoneNumber(order.CustomerPhone)
	info := &CheckoutInfo{
		OrderNo:             order.OrderNo,
		AmountInCents:       amountInCents,
		Currency:            constants.CurrencyCOP,
		PublicKey:           cfg.PublicKey,
		IntegritySignature:  wompi.ComputeIntegritySignature(order.OrderNo, amountInCents, constants.CurrencyCOP, cfg.IntegrityKey),
		AcceptanceToken:     merchant.AcceptanceToken,
		AcceptancePermalink: merchant.AcceptancePermalink,
		CheckoutBaseURL:     wompi.CheckoutURL(),
		CustomerEmail:       order.CustomerEmail,
		CustomerPhonePrefix: phonePrefix,
		CustomerPhoneLocal:  phoneLocal,
	}

	if err := s.queueClient.EnqueuePaymentReconcile(queue.PaymentReconcilePayload{OrderID: order.ID}, s.reconcileDelay); err != nil {
		logger.Warnw("no se pudo programar la verificación de pago", "order_no", order.OrderNo, "error", err)
	}

	logger.Infow("checkout wompi iniciado", "order_no", order.OrderNo, "amount_in_cents", amountInCents)
	return info, nil
}

// ReconcileTransaction consulta la transacción en Wompi y aplica su estado
// al pedido referenciado. La consulta va fuera de la transacción de base;
// la aplicación del estado es idempotente.
func (s *PaymentService) ReconcileTransaction(ctx context.Context, transactionID string) (*models.Order, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, ErrTransactionIDRequired
	}

	settings, err := s.settingsService.Get()
	if err != nil {
		return nil, err
	}
	cfg, err := s.gatewayConfig(settings)
	if err != nil {
		return nil, err
	}

	info, err := wompi.GetTransactionInformation(ctx, cfg, transactionID)
	if err != nil {
		logger.Errorw("consulta de transacción wompi falló", "transaction_id", transactionID, "error", err)
		return nil, ErrPaymentGatewayFailed
	}

	return s.applyTransactionStatus(info)
}

// ReconcilePendingOrder reverifica un pedido con pago pendiente usando la
// referencia de transacción ya conocida. Es la red de seguridad que corre
// el worker; sin referencia no hay nada que consultar.
func (s *PaymentService) ReconcilePendingOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentStatus != constants.PaymentStatusPending || order.PaymentReference == "" {
		return order, nil
	}
	return s.ReconcileTransaction(ctx, order.PaymentReference)
}

// applyTransactionStatus vuelca el estado de la transacción sobre el pedido.
// Reaplicar la misma transacción no cambia nada: el pago confirmado es final.
func (s *PaymentService) applyTransactionStatus(info *wompi.TransactionInfo) (*models.Order, error) {
	var order *models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		found, err := orderRepo.GetByOrderNo(info.Reference)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrOrderNotFound
		}
		order = found

		if found.PaymentStatus == constants.PaymentStatusConfirmed {
			return nil
		}

		updates := map[string]interface{}{
			"payment_reference": info.ID,
		}
		found.PaymentReference = info.ID

		switch {
		case wompi.IsApproved(info.Status):
			if info.AmountInCents != found.Total.CentsInt64() || !strings.EqualFold(info.Currency, constants.CurrencyCOP) {
				logger.Warnw("monto de transacción wompi no coincide",
					"order_no", found.OrderNo,
					"transaction_id", info.ID,
					"expected_cents", found.Total.CentsInt64(),
					"received_cents", info.AmountInCents,
					"currency", info.Currency,
				)
				return orderRepo.Updates(found.ID, updates)
			}
			updates["payment_status"] = constants.PaymentStatusConfirmed
			found.PaymentStatus = constants.PaymentStatusConfirmed
			if found.Status == constants.OrderStatusPending {
				found.Status = constants.OrderStatusConfirmed
				return orderRepo.UpdateStatus(found.ID, constants.OrderStatusConfirmed, updates)
			}
			return orderRepo.Updates(found.ID, updates)

		case wompi.IsFinalFailure(info.Status):
			updates["payment_status"] = constants.PaymentStatusCancelled
			found.PaymentStatus = constants.PaymentStatusCancelled
			if found.Status == constants.OrderStatusPending {
				found.Status = constants.OrderStatusCancelled
				return orderRepo.UpdateStatus(found.ID, constants.OrderStatusCancelled, updates)
			}
			return orderRepo.Updates(found.ID, updates)

		default:
			// PENDING u otros estados intermedios: solo se guarda la referencia
			return orderRepo.Updates(found.ID, updates)
		}
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("transacción wompi aplicada",
		"order_no", order.OrderNo,
		"transaction_id", info.ID,
		"tx_status", info.Status,
		"payment_status", order.PaymentStatus,
		"order_status", order.Status,
	)
	return order, nil
}

// webhookEvent estructura mínima de un evento de Wompi
type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Transaction struct {
			ID string `json:"id"`
		} `json:"transaction"`
	} `json:"data"`
}

// HandleWebhookEvent procesa un evento firmado de Wompi. El estado se
// confirma siempre contra el API y no contra el cuerpo del evento; los
// eventos repetidos se descartan por id de transacción.
func (s *PaymentService) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) (*models.Order, error) {
	settings, err := s.settingsService.Get()
	if err != nil {
		return nil, err
	}
	cfg, err := s.gatewayConfig(settings)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.EventKey) == "" {
		return nil, ErrPaymentConfigInvalid
	}
	if !wompi.VerifyEventSignature(payload, signature, cfg.EventKey) {
		logger.Warnw("firma de webhook wompi inválida")
		return nil, ErrWebhookSignature
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, ErrTransactionIDRequired
	}
	transactionID := strings.TrimSpace(event.Data.Transaction.ID)
	if transactionID == "" {
		return nil, ErrTransactionIDRequired
	}

	first, err := cache.MarkWebhookEvent(ctx, transactionID)
	if err != nil {
		logger.Warnw("deduplicación de webhook falló", "transaction_id", transactionID, "error", err)
		first = true
	}
	if !first {
		logger.Debugw("evento de webhook repetido descartado", "transaction_id", transactionID)
		return nil, nil
	}

	return s.ReconcileTransaction(ctx, transactionID)
}
