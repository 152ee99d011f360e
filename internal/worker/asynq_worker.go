package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"
	"github.com/juan2005elpapu/webjanaypedidos/internal/provider"
	"github.com/juan2005elpapu/webjanaypedidos/internal/queue"
	"github.com/juan2005elpapu/webjanaypedidos/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer consumidor de tareas asíncronas
type Consumer struct {
	*provider.Container
}

// NewConsumer crea el consumidor
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register registra los manejadores de tareas
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPaymentReconcile, c.handlePaymentReconcile)
	mux.HandleFunc(queue.TaskOrderDraftCleanup, c.handleOrderDraftCleanup)
}

// handlePaymentReconcile reverifica un pago wompi que sigue pendiente.
// Si el webhook ya llegó el pedido estará confirmado y no hay nada que hacer.
func (c *Consumer) handlePaymentReconcile(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_payment_reconcile_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PaymentReconcilePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_payment_reconcile_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 && payload.TransactionID == "" {
		logger.Debugw("worker_payment_reconcile_skip_invalid_payload")
		return nil
	}
	if c.PaymentService == nil {
		logger.Warnw("worker_payment_reconcile_skip_payment_service_nil", "order_id", payload.OrderID)
		return nil
	}

	var err error
	if payload.TransactionID != "" {
		_, err = c.PaymentService.ReconcileTransaction(ctx, payload.TransactionID)
	} else {
		_, err = c.PaymentService.ReconcilePendingOrder(ctx, payload.OrderID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Debugw("worker_payment_reconcile_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		case errors.Is(err, service.ErrPaymentMethodDisabled), errors.Is(err, service.ErrPaymentConfigInvalid):
			logger.Debugw("worker_payment_reconcile_skip_gateway_disabled", "order_id", payload.OrderID)
			return nil
		default:
			logger.Warnw("worker_payment_reconcile_failed",
				"order_id", payload.OrderID,
				"transaction_id", payload.TransactionID,
				"error", err,
			)
			return err
		}
	}
	return nil
}

// handleOrderDraftCleanup elimina borradores abandonados
func (c *Consumer) handleOrderDraftCleanup(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_draft_cleanup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderDraftCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_draft_cleanup_unmarshal_failed", "error", err)
		return err
	}
	if c.OrderService == nil {
		logger.Warnw("worker_draft_cleanup_skip_order_service_nil")
		return nil
	}

	maxAgeHours := payload.MaxAgeHours
	if maxAgeHours <= 0 {
		maxAgeHours = 24
	}
	removed, err := c.OrderService.CleanupDrafts(time.Duration(maxAgeHours) * time.Hour)
	if err != nil {
		logger.Warnw("worker_draft_cleanup_failed", "error", err)
		return err
	}
	logger.Debugw("worker_draft_cleanup_done", "removed", removed)
	return nil
}
