package service

import (
	"errors"
	"testing"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
)

func guardSettings() *models.BusinessSettings {
	return &models.BusinessSettings{
		ModificationTimeLimitHours: 4,
		CancellationTimeLimitDays:  1,
	}
}

func guardOrder(status string, desired time.Time) *models.Order {
	return &models.Order{
		Status:      status,
		DesiredDate: desired.Format("2006-01-02"),
		DesiredTime: desired.Format("15:04"),
	}
}

func TestCheckCanCancelBlockedStatuses(t *testing.T) {
	loc := time.UTC
	settings := guardSettings()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, loc)
	desired := now.AddDate(0, 0, 10)

	blocked := []string{
		constants.OrderStatusCancelled,
		constants.OrderStatusDelivered,
		constants.OrderStatusPreparing,
		constants.OrderStatusReady,
		constants.OrderStatusInDelivery,
		constants.OrderStatusModificationRequested,
	}
	for _, status := range blocked {
		err := checkCanCancel(guardOrder(status, desired), settings, now, loc)
		if !errors.Is(err, ErrOrderCancelWrongStatus) {
			t.Fatalf("status %s: got %v, want ErrOrderCancelWrongStatus", status, err)
		}
	}

	allowed := []string{
		constants.OrderStatusDraft,
		constants.OrderStatusPending,
		constants.OrderStatusConfirmed,
	}
	for _, status := range allowed {
		if err := checkCanCancel(guardOrder(status, desired), settings, now, loc); err != nil {
			t.Fatalf("status %s: got %v, want nil", status, err)
		}
	}
}

func TestCheckCanCancelTimeBoundary(t *testing.T) {
	loc := time.UTC
	settings := guardSettings() // límite de 1 día
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, loc)

	// Entrega en 25 horas: todavía cabe la cancelación
	err := checkCanCancel(guardOrder(constants.OrderStatusConfirmed, now.Add(25*time.Hour)), settings, now, loc)
	if err != nil {
		t.Fatalf("25h before: got %v, want nil", err)
	}

	// Entrega en 23 horas: ya es tarde
	err = checkCanCancel(guardOrder(constants.OrderStatusConfirmed, now.Add(23*time.Hour)), settings, now, loc)
	if !errors.Is(err, ErrOrderCancelTooLate) {
		t.Fatalf("23h before: got %v, want ErrOrderCancelTooLate", err)
	}

	// Exactamente en el límite cuenta como tarde
	err = checkCanCancel(guardOrder(constants.OrderStatusConfirmed, now.Add(24*time.Hour)), settings, now, loc)
	if !errors.Is(err, ErrOrderCancelTooLate) {
		t.Fatalf("exact boundary: got %v, want ErrOrderCancelTooLate", err)
	}
}

func TestCheckCanCancelBadDesiredDate(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, loc)
	order := &models.Order{
		Status:      constants.OrderStatusConfirmed,
		DesiredDate: "no-es-fecha",
		DesiredTime: "12:00",
	}
	err := checkCanCancel(order, guardSettings(), now, loc)
	if !errors.Is(err, ErrDesiredDateInvalid) {
		t.Fatalf("got %v, want ErrDesiredDateInvalid", err)
	}
}

func TestCheckCanModify(t *testing.T) {
	loc := time.UTC
	settings := guardSettings() // límite de 4 horas
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, loc)

	// Solo los pedidos confirmados admiten modificación
	err := checkCanModify(guardOrder(constants.OrderStatusPending, now.Add(10*time.Hour)), settings, now, loc)
	if !errors.Is(err, ErrOrderModifyWrongStatus) {
		t.Fatalf("pending: got %v, want ErrOrderModifyWrongStatus", err)
	}

	err = checkCanModify(guardOrder(constants.OrderStatusConfirmed, now.Add(5*time.Hour)), settings, now, loc)
	if err != nil {
		t.Fatalf("5h before: got %v, want nil", err)
	}

	err = checkCanModify(guardOrder(constants.OrderStatusConfirmed, now.Add(3*time.Hour)), settings, now, loc)
	if !errors.Is(err, ErrOrderModifyTooLate) {
		t.Fatalf("3h before: got %v, want ErrOrderModifyTooLate", err)
	}

	err = checkCanModify(guardOrder(constants.OrderStatusConfirmed, now.Add(4*time.Hour)), settings, now, loc)
	if !errors.Is(err, ErrOrderModifyTooLate) {
		t.Fatalf("exact boundary: got %v, want ErrOrderModifyTooLate", err)
	}
}

func TestIsTransitionAllowed(t *testing.T) {
	cases := []struct {
		current string
		target  string
		want    bool
	}{
		{constants.OrderStatusDraft, constants.OrderStatusPending, true},
		{constants.OrderStatusPending, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusPreparing, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusModificationRequested, true},
		{constants.OrderStatusPreparing, constants.OrderStatusReady, true},
		{constants.OrderStatusReady, constants.OrderStatusInDelivery, true},
		{constants.OrderStatusReady, constants.OrderStatusDelivered, true},
		{constants.OrderStatusInDelivery, constants.OrderStatusDelivered, true},

		// Repetir el estado actual siempre es válido
		{constants.OrderStatusPreparing, constants.OrderStatusPreparing, true},
		{constants.OrderStatusDelivered, constants.OrderStatusDelivered, true},

		// Mientras hay una solicitud de modificación abierta el pedido no
		// se cancela ni avanza: primero se resuelve la solicitud
		{constants.OrderStatusModificationRequested, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusModificationRequested, constants.OrderStatusCancelled, false},
		{constants.OrderStatusModificationRequested, constants.OrderStatusPreparing, false},

		// Los estados terminales no tienen salida
		{constants.OrderStatusDelivered, constants.OrderStatusConfirmed, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPending, false},

		// Sin saltos hacia atrás ni por encima del flujo
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusPending, false},
		{constants.OrderStatusPreparing, constants.OrderStatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(tc.current, tc.target); got != tc.want {
			t.Fatalf("%s -> %s = %v, want %v", tc.current, tc.target, got, tc.want)
		}
	}
}
