package service

import (
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
)

// desiredDateTime compone fecha y hora deseadas en la zona del negocio.
// Las comparaciones de ventanas siempre usan tiempos con zona; mezclar
// tiempos ingenuos con tiempos con zona produce errores de un día entero
// alrededor de los cambios de offset.
func desiredDateTime(order *models.Order, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", order.DesiredDate+" "+order.DesiredTime, loc)
}

// cancelBlockedStatuses estados en los que la cancelación nunca procede
var cancelBlockedStatuses = map[string]bool{
	constants.OrderStatusCancelled:             true,
	constants.OrderStatusDelivered:             true,
	constants.OrderStatusPreparing:             true,
	constants.OrderStatusReady:                 true,
	constants.OrderStatusInDelivery:            true,
	constants.OrderStatusModificationRequested: true,
}

// checkCanCancel evalúa si el pedido puede cancelarse en este instante.
// Devuelve nil cuando procede; en caso contrario un error que distingue
// estado equivocado de cercanía a la hora de entrega.
func checkCanCancel(order *models.Order, settings *models.BusinessSettings, now time.Time, loc *time.Location) error {
	if cancelBlockedStatuses[order.Status] {
		return ErrOrderCancelWrongStatus
	}
	desired, err := desiredDateTime(order, loc)
	if err != nil {
		return ErrDesiredDateInvalid
	}
	limit := time.Duration(settings.CancellationTimeLimitDays) * 24 * time.Hour
	if !now.Before(desired.Add(-limit)) {
		return ErrOrderCancelTooLate
	}
	return nil
}

// checkCanModify evalúa si el pedido admite una solicitud de modificación.
// Solo los pedidos confirmados son modificables.
func checkCanModify(order *models.Order, settings *models.BusinessSettings, now time.Time, loc *time.Location) error {
	if order.Status != constants.OrderStatusConfirmed {
		return ErrOrderModifyWrongStatus
	}
	desired, err := desiredDateTime(order, loc)
	if err != nil {
		return ErrDesiredDateInvalid
	}
	limit := time.Duration(settings.ModificationTimeLimitHours) * time.Hour
	if !now.Before(desired.Add(-limit)) {
		return ErrOrderModifyTooLate
	}
	return nil
}

// allowedTransitions tabla de transiciones del ciclo de vida del pedido
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusDraft: {
		constants.OrderStatusPending:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusPreparing:             true,
		constants.OrderStatusCancelled:             true,
		constants.OrderStatusModificationRequested: true,
	},
	constants.OrderStatusModificationRequested: {
		constants.OrderStatusConfirmed: true,
	},
	constants.OrderStatusPreparing: {
		constants.OrderStatusReady:     true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusReady: {
		constants.OrderStatusInDelivery: true,
		constants.OrderStatusDelivered:  true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusInDelivery: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
}

func isTransitionAllowed(current, target string) bool {
	if current == target {
		return true
	}
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}
