package queue

import (
	"encoding/json"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPaymentReconcile verificación diferida de una transacción wompi
	TaskPaymentReconcile = constants.TaskPaymentReconcile
	// TaskOrderDraftCleanup limpieza de borradores abandonados
	TaskOrderDraftCleanup = constants.TaskOrderDraftCleanup
)

// PaymentReconcilePayload carga del reintento de verificación de pago
type PaymentReconcilePayload struct {
	OrderID       uint   `json:"order_id"`
	TransactionID string `json:"transaction_id"`
}

// OrderDraftCleanupPayload carga de la limpieza de borradores
type OrderDraftCleanupPayload struct {
	MaxAgeHours int `json:"max_age_hours"`
}

// NewPaymentReconcileTask crea la tarea de verificación de pago
func NewPaymentReconcileTask(payload PaymentReconcilePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentReconcile, body), nil
}

// NewOrderDraftCleanupTask crea la tarea de limpieza de borradores
func NewOrderDraftCleanupTask(payload OrderDraftCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderDraftCleanup, body), nil
}
