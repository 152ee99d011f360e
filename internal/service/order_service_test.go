package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newTestDB abre una base en memoria y la deja como conexión global para
// las transacciones de los servicios.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.OrderModificationRequest{},
		&models.Product{},
		&models.Category{},
		&models.BusinessSettings{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db
	return db
}

type orderServiceHarness struct {
	db              *gorm.DB
	orderService    *OrderService
	settingsService *SettingsService
	products        map[string]models.Product
}

func setupOrderService(t *testing.T) *orderServiceHarness {
	t.Helper()
	db := newTestDB(t)

	settings := DefaultBusinessSettings()
	settings.AcceptWompi = true
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("seed settings failed: %v", err)
	}

	category := models.Category{Slug: "tortas", Name: "Tortas"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	seed := []models.Product{
		{CategoryID: category.ID, Name: "Torta de chocolate", Price: models.NewMoneyFromInt(55000), IsAvailable: true},
		{CategoryID: category.ID, Name: "Ancheta de dulces", Price: models.NewMoneyFromInt(70000), IsAvailable: true},
		{CategoryID: category.ID, Name: "Galleta suelta", Price: models.NewMoneyFromInt(10000), IsAvailable: true},
		{CategoryID: category.ID, Name: "Torta agotada", Price: models.NewMoneyFromInt(60000), IsAvailable: false},
	}
	products := map[string]models.Product{}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed product failed: %v", err)
		}
		products[seed[i].Name] = seed[i]
	}

	settingsRepo := repository.NewBusinessSettingsRepository(db)
	settingsService := NewSettingsService(settingsRepo, constants.BusinessTimezone)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)

	return &orderServiceHarness{
		db:              db,
		orderService:    NewOrderService(orderRepo, productRepo, settingsService),
		settingsService: settingsService,
		products:        products,
	}
}

// validOrderInput arma un pedido de domicilio que supera el monto mínimo y
// cae dentro de las ventanas de agenda del negocio.
func (h *orderServiceHarness) validOrderInput(userID uint) CreateOrderInput {
	desired := time.Now().In(h.settingsService.Location()).AddDate(0, 0, 3)
	return CreateOrderInput{
		UserID: userID,
		Items: []CreateOrderItem{
			{ProductID: h.products["Torta de chocolate"].ID, Quantity: 1},
			{ProductID: h.products["Ancheta de dulces"].ID, Quantity: 1},
		},
		CustomerName:    "Laura Pérez",
		CustomerPhone:   "3001234567",
		DeliveryType:    constants.DeliveryTypeDelivery,
		DeliveryAddress: "Calle 10 # 5-23",
		DesiredDate:     desired.Format("2006-01-02"),
		DesiredTime:     "12:00",
		PaymentMethod:   constants.PaymentMethodCash,
	}
}

func TestCreateOrderValidation(t *testing.T) {
	h := setupOrderService(t)

	cases := []struct {
		name    string
		mutate  func(*CreateOrderInput)
		wantErr error
	}{
		{"sin líneas", func(in *CreateOrderInput) { in.Items = nil }, ErrInvalidOrderItem},
		{"cantidad cero", func(in *CreateOrderInput) { in.Items[0].Quantity = 0 }, ErrInvalidOrderItem},
		{"sin nombre", func(in *CreateOrderInput) { in.CustomerName = "  " }, ErrCustomerDataRequired},
		{"sin teléfono", func(in *CreateOrderInput) { in.CustomerPhone = "" }, ErrCustomerDataRequired},
		{"tipo de entrega desconocido", func(in *CreateOrderInput) { in.DeliveryType = "dron" }, ErrDeliveryTypeInvalid},
		{"domicilio sin dirección", func(in *CreateOrderInput) { in.DeliveryAddress = " " }, ErrDeliveryAddressRequired},
		{"fecha malformada", func(in *CreateOrderInput) { in.DesiredDate = "01-09-2026" }, ErrDesiredDateInvalid},
		{"fecha muy pronta", func(in *CreateOrderInput) {
			in.DesiredDate = time.Now().In(h.settingsService.Location()).AddDate(0, 0, 1).Format("2006-01-02")
		}, ErrDesiredDateTooSoon},
		{"fecha muy lejana", func(in *CreateOrderInput) {
			in.DesiredDate = time.Now().In(h.settingsService.Location()).AddDate(0, 0, 200).Format("2006-01-02")
		}, ErrDesiredDateTooFar},
		{"hora malformada", func(in *CreateOrderInput) { in.DesiredTime = "mediodía" }, ErrDesiredTimeInvalid},
		{"hora fuera de ventana", func(in *CreateOrderInput) { in.DesiredTime = "23:00" }, ErrDesiredTimeOutOfWindow},
		{"método de pago desconocido", func(in *CreateOrderInput) { in.PaymentMethod = "tarjeta" }, ErrPaymentMethodInvalid},
		{"producto inexistente", func(in *CreateOrderInput) {
			in.Items = []CreateOrderItem{{ProductID: 9999, Quantity: 1}}
		}, ErrProductNotFound},
		{"producto no disponible", func(in *CreateOrderInput) {
			in.Items = []CreateOrderItem{{ProductID: h.products["Torta agotada"].ID, Quantity: 1}}
		}, ErrProductNotAvailable},
		{"bajo el monto mínimo", func(in *CreateOrderInput) {
			in.Items = []CreateOrderItem{{ProductID: h.products["Galleta suelta"].ID, Quantity: 1}}
		}, ErrOrderBelowMinimum},
	}
	for _, tc := range cases {
		input := h.validOrderInput(1)
		tc.mutate(&input)
		if _, err := h.orderService.CreateOrder(input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}

	var count int64
	if err := h.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected inputs persisted %d orders", count)
	}
}

func TestCreateOrderPaymentMethodDisabled(t *testing.T) {
	h := setupOrderService(t)

	if err := h.db.Model(&models.BusinessSettings{}).
		Where("1 = 1").
		Update("accept_wompi", false).Error; err != nil {
		t.Fatalf("disable wompi failed: %v", err)
	}

	input := h.validOrderInput(1)
	input.PaymentMethod = constants.PaymentMethodWompi
	if _, err := h.orderService.CreateOrder(input); !errors.Is(err, ErrPaymentMethodDisabled) {
		t.Fatalf("got %v, want ErrPaymentMethodDisabled", err)
	}
}

func TestCreateOrderTotalsAndSequence(t *testing.T) {
	h := setupOrderService(t)

	order, err := h.orderService.CreateOrder(h.validOrderInput(1))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status = %s, want pending", order.Status)
	}
	if order.Subtotal.String() != "125000" || order.DeliveryFee.String() != "5000" || order.Total.String() != "130000" {
		t.Fatalf("totals = %s/%s/%s, want 125000/5000/130000",
			order.Subtotal, order.DeliveryFee, order.Total)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}

	prefix := constants.OrderNoPrefix + time.Now().In(h.settingsService.Location()).Format(constants.OrderNoDateLayout)
	if order.OrderNo != prefix+"001" {
		t.Fatalf("order_no = %s, want %s001", order.OrderNo, prefix)
	}

	second, err := h.orderService.CreateOrder(h.validOrderInput(2))
	if err != nil {
		t.Fatalf("create second order failed: %v", err)
	}
	if second.OrderNo != prefix+"002" {
		t.Fatalf("second order_no = %s, want %s002", second.OrderNo, prefix)
	}
}

func TestCreateOrderReusesPendingWompiOrder(t *testing.T) {
	h := setupOrderService(t)

	input := h.validOrderInput(1)
	input.PaymentMethod = constants.PaymentMethodWompi
	first, err := h.orderService.CreateOrder(input)
	if err != nil {
		t.Fatalf("create wompi order failed: %v", err)
	}

	retry := h.validOrderInput(1)
	retry.PaymentMethod = constants.PaymentMethodWompi
	retry.DeliveryType = constants.DeliveryTypePickup
	retry.DeliveryAddress = ""
	retry.Items = []CreateOrderItem{{ProductID: h.products["Torta de chocolate"].ID, Quantity: 2}}
	second, err := h.orderService.CreateOrder(retry)
	if err != nil {
		t.Fatalf("retry wompi order failed: %v", err)
	}

	if second.ID != first.ID || second.OrderNo != first.OrderNo {
		t.Fatalf("retry created a new order: %s vs %s", second.OrderNo, first.OrderNo)
	}
	if second.DeliveryType != constants.DeliveryTypePickup {
		t.Fatalf("delivery type not updated: %s", second.DeliveryType)
	}
	// Recogida en local y líneas nuevas: 2 x 55000 sin tarifa
	if second.Subtotal.String() != "110000" || second.DeliveryFee.String() != "0" || second.Total.String() != "110000" {
		t.Fatalf("retry totals = %s/%s/%s, want 110000/0/110000",
			second.Subtotal, second.DeliveryFee, second.Total)
	}

	var count int64
	if err := h.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 order after reuse, got %d", count)
	}
	var items int64
	if err := h.db.Model(&models.OrderItem{}).Where("order_id = ?", first.ID).Count(&items).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if items != 1 {
		t.Fatalf("expected 1 item after replace, got %d", items)
	}

	// Un pedido en efectivo del mismo cliente nunca se reutiliza
	cash, err := h.orderService.CreateOrder(h.validOrderInput(1))
	if err != nil {
		t.Fatalf("create cash order failed: %v", err)
	}
	if cash.ID == first.ID {
		t.Fatal("cash order reused the wompi order")
	}
}

func TestCancelOrder(t *testing.T) {
	h := setupOrderService(t)

	order, err := h.orderService.CreateOrder(h.validOrderInput(1))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// Otro cliente no puede cancelarlo
	if _, err := h.orderService.CancelOrder(order.ID, 99); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign user: got %v, want ErrOrderNotFound", err)
	}

	cancelled, err := h.orderService.CancelOrder(order.ID, 1)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status = %s, want cancelled", cancelled.Status)
	}
	if cancelled.PaymentStatus != constants.PaymentStatusCancelled {
		t.Fatalf("payment status = %s, want cancelled", cancelled.PaymentStatus)
	}

	// Cancelar dos veces choca con el estado
	if _, err := h.orderService.CancelOrder(order.ID, 1); !errors.Is(err, ErrOrderCancelWrongStatus) {
		t.Fatalf("double cancel: got %v, want ErrOrderCancelWrongStatus", err)
	}
}

func TestCancelOrderTooLate(t *testing.T) {
	h := setupOrderService(t)

	order, err := h.orderService.CreateOrder(h.validOrderInput(1))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// Se adelanta la entrega a hoy: el límite de un día ya pasó
	today := time.Now().In(h.settingsService.Location()).Format("2006-01-02")
	if err := h.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("desired_date", today).Error; err != nil {
		t.Fatalf("move desired date failed: %v", err)
	}

	if _, err := h.orderService.CancelOrder(order.ID, 1); !errors.Is(err, ErrOrderCancelTooLate) {
		t.Fatalf("got %v, want ErrOrderCancelTooLate", err)
	}
}

func TestUpdateOrderStatusAdmin(t *testing.T) {
	h := setupOrderService(t)

	order, err := h.orderService.CreateOrder(h.validOrderInput(1))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := h.orderService.UpdateOrderStatusAdmin(order.ID, "empacado"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("unknown status: got %v, want ErrOrderStatusInvalid", err)
	}
	if _, err := h.orderService.UpdateOrderStatusAdmin(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("pending->delivered: got %v, want ErrOrderStatusInvalid", err)
	}
	if _, err := h.orderService.UpdateOrderStatusAdmin(9999, constants.OrderStatusConfirmed); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("missing order: got %v, want ErrOrderNotFound", err)
	}

	confirmed, err := h.orderService.UpdateOrderStatusAdmin(order.ID, constants.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("pending->confirmed failed: %v", err)
	}
	if confirmed.Status != constants.OrderStatusConfirmed {
		t.Fatalf("status = %s, want confirmed", confirmed.Status)
	}

	// Repetir el estado actual no es error
	again, err := h.orderService.UpdateOrderStatusAdmin(order.ID, constants.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("repeat status failed: %v", err)
	}
	if again.Status != constants.OrderStatusConfirmed {
		t.Fatalf("repeat status = %s, want confirmed", again.Status)
	}

	// Cancelar desde el panel también cancela el pago pendiente
	cancelled, err := h.orderService.UpdateOrderStatusAdmin(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("confirmed->cancelled failed: %v", err)
	}
	if cancelled.PaymentStatus != constants.PaymentStatusCancelled {
		t.Fatalf("payment status = %s, want cancelled", cancelled.PaymentStatus)
	}
}

func TestOrderStats(t *testing.T) {
	h := setupOrderService(t)

	first, err := h.orderService.CreateOrder(h.validOrderInput(1))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := h.orderService.CreateOrder(h.validOrderInput(2)); err != nil {
		t.Fatalf("create second order failed: %v", err)
	}

	// El recaudo solo cuenta pedidos entregados
	for _, status := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusPreparing,
		constants.OrderStatusReady,
		constants.OrderStatusDelivered,
	} {
		if _, err := h.orderService.UpdateOrderStatusAdmin(first.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	stats, err := h.orderService.OrderStats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.StatusCounts[constants.OrderStatusDelivered] != 1 {
		t.Fatalf("delivered count = %d, want 1", stats.StatusCounts[constants.OrderStatusDelivered])
	}
	if stats.StatusCounts[constants.OrderStatusPending] != 1 {
		t.Fatalf("pending count = %d, want 1", stats.StatusCounts[constants.OrderStatusPending])
	}
	if stats.Revenue.String() != first.Total.String() {
		t.Fatalf("revenue = %s, want %s", stats.Revenue.String(), first.Total.String())
	}
}

func TestGenerateOrderNoFormat(t *testing.T) {
	h := setupOrderService(t)

	order, err := h.orderService.CreateOrder(h.validOrderInput(1))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if !strings.HasPrefix(order.OrderNo, constants.OrderNoPrefix) {
		t.Fatalf("order_no %s missing prefix %s", order.OrderNo, constants.OrderNoPrefix)
	}
	if len(order.OrderNo) != len(constants.OrderNoPrefix)+6+3 {
		t.Fatalf("order_no %s has unexpected length %d", order.OrderNo, len(order.OrderNo))
	}
}
