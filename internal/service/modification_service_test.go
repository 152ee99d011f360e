package service

import (
	"errors"
	"testing"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"
)

type modificationHarness struct {
	*orderServiceHarness
	modService *ModificationService
}

func setupModificationService(t *testing.T) *modificationHarness {
	t.Helper()
	base := setupOrderService(t)

	orderRepo := repository.NewOrderRepository(base.db)
	requestRepo := repository.NewModificationRequestRepository(base.db)
	return &modificationHarness{
		orderServiceHarness: base,
		modService:          NewModificationService(orderRepo, requestRepo, base.settingsService),
	}
}

// confirmedOrder crea un pedido y lo deja en confirmed, listo para
// solicitudes de modificación.
func (h *modificationHarness) confirmedOrder(t *testing.T, userID uint) *models.Order {
	t.Helper()
	order, err := h.orderService.CreateOrder(h.validOrderInput(userID))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	order, err = h.orderService.UpdateOrderStatusAdmin(order.ID, constants.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("confirm order failed: %v", err)
	}
	return order
}

func fileInput(orderID, userID uint) FileRequestInput {
	return FileRequestInput{
		OrderID:          orderID,
		UserID:           userID,
		ModificationType: "delivery_address",
		RequestedData:    models.JSON{"delivery_address": "Carrera 8 # 12-40"},
		Reason:           "Cambio de dirección de entrega",
	}
}

func TestFileRequestValidation(t *testing.T) {
	h := setupModificationService(t)
	order := h.confirmedOrder(t, 1)

	input := fileInput(order.ID, 1)
	input.ModificationType = "  "
	if _, err := h.modService.FileRequest(input); !errors.Is(err, ErrModificationDataRequired) {
		t.Fatalf("empty type: got %v, want ErrModificationDataRequired", err)
	}

	input = fileInput(order.ID, 1)
	input.RequestedData = nil
	if _, err := h.modService.FileRequest(input); !errors.Is(err, ErrModificationDataRequired) {
		t.Fatalf("empty data: got %v, want ErrModificationDataRequired", err)
	}

	if _, err := h.modService.FileRequest(fileInput(order.ID, 99)); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign user: got %v, want ErrOrderNotFound", err)
	}
}

func TestFileRequestRequiresConfirmedOrder(t *testing.T) {
	h := setupModificationService(t)

	order, err := h.orderService.CreateOrder(h.validOrderInput(1))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// El pedido sigue en pending: todavía no hay nada que modificar
	if _, err := h.modService.FileRequest(fileInput(order.ID, 1)); !errors.Is(err, ErrOrderModifyWrongStatus) {
		t.Fatalf("pending order: got %v, want ErrOrderModifyWrongStatus", err)
	}
}

func TestFileRequestSnapshotsAndHoldsOrder(t *testing.T) {
	h := setupModificationService(t)
	order := h.confirmedOrder(t, 1)

	request, err := h.modService.FileRequest(fileInput(order.ID, 1))
	if err != nil {
		t.Fatalf("file request failed: %v", err)
	}
	if request.CurrentData["delivery_address"] != order.DeliveryAddress {
		t.Fatalf("snapshot address = %v, want %s", request.CurrentData["delivery_address"], order.DeliveryAddress)
	}
	if request.ReviewedAt != nil {
		t.Fatal("fresh request should not be reviewed")
	}

	held, err := h.orderService.GetOrderAdmin(order.ID)
	if err != nil {
		t.Fatalf("fetch order failed: %v", err)
	}
	if held.Status != constants.OrderStatusModificationRequested {
		t.Fatalf("order status = %s, want modification_requested", held.Status)
	}

	// Con la solicitud abierta no entra una segunda
	if _, err := h.modService.FileRequest(fileInput(order.ID, 1)); !errors.Is(err, ErrOrderModifyWrongStatus) {
		t.Fatalf("second request: got %v, want ErrOrderModifyWrongStatus", err)
	}
}

func TestResolveApproveAndReject(t *testing.T) {
	h := setupModificationService(t)

	for _, approve := range []bool{true, false} {
		order := h.confirmedOrder(t, 1)
		request, err := h.modService.FileRequest(fileInput(order.ID, 1))
		if err != nil {
			t.Fatalf("file request failed: %v", err)
		}

		resolved, err := h.modService.Resolve(ResolveInput{
			RequestID:     request.ID,
			ReviewerID:    7,
			Approve:       approve,
			AdminResponse: "Revisado por el personal",
		})
		if err != nil {
			t.Fatalf("resolve (approve=%v) failed: %v", approve, err)
		}
		if resolved.ReviewedAt == nil || resolved.ReviewedBy == nil || *resolved.ReviewedBy != 7 {
			t.Fatalf("resolve (approve=%v) did not record the reviewer", approve)
		}
		if resolved.AdminResponse != "Revisado por el personal" {
			t.Fatalf("admin response = %q", resolved.AdminResponse)
		}

		// Aprobada o rechazada, la solicitud devuelve el pedido a confirmed
		after, err := h.orderService.GetOrderAdmin(order.ID)
		if err != nil {
			t.Fatalf("fetch order failed: %v", err)
		}
		if after.Status != constants.OrderStatusConfirmed {
			t.Fatalf("order status after resolve (approve=%v) = %s, want confirmed", approve, after.Status)
		}
	}
}

func TestResolveAlreadyClosed(t *testing.T) {
	h := setupModificationService(t)
	order := h.confirmedOrder(t, 1)

	request, err := h.modService.FileRequest(fileInput(order.ID, 1))
	if err != nil {
		t.Fatalf("file request failed: %v", err)
	}
	if _, err := h.modService.Resolve(ResolveInput{RequestID: request.ID, ReviewerID: 7, Approve: true}); err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}

	if _, err := h.modService.Resolve(ResolveInput{RequestID: request.ID, ReviewerID: 7, Approve: true}); !errors.Is(err, ErrModificationAlreadyClosed) {
		t.Fatalf("second resolve: got %v, want ErrModificationAlreadyClosed", err)
	}
	if _, err := h.modService.Resolve(ResolveInput{RequestID: 9999, ReviewerID: 7, Approve: true}); !errors.Is(err, ErrModificationNotFound) {
		t.Fatalf("missing request: got %v, want ErrModificationNotFound", err)
	}
}

func TestListByOrderForUser(t *testing.T) {
	h := setupModificationService(t)
	order := h.confirmedOrder(t, 1)

	if _, err := h.modService.FileRequest(fileInput(order.ID, 1)); err != nil {
		t.Fatalf("file request failed: %v", err)
	}

	requests, err := h.modService.ListByOrderForUser(order.ID, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(requests))
	}

	if _, err := h.modService.ListByOrderForUser(order.ID, 99); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign user list: got %v, want ErrOrderNotFound", err)
	}
}
