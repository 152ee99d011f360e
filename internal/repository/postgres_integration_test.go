//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB inicializa la base de integración en PostgreSQL.
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.OrderModificationRequest{},
		&models.Order{},
		&models.Product{},
		&models.Category{},
		&models.BusinessSettings{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderModificationRequest{},
		&models.BusinessSettings{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresOrderRepositoryRoundTrip(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	repo := NewOrderRepository(db)
	order := &models.Order{
		OrderNo:       "JY260830001",
		UserID:        7,
		Status:        constants.OrderStatusPending,
		CustomerName:  "Cliente PG",
		CustomerPhone: "3000000000",
		DeliveryType:  constants.DeliveryTypeDelivery,
		DesiredDate:   "2026-09-10",
		DesiredTime:   "12:00",
		Subtotal:      models.NewMoneyFromDecimal(decimal.NewFromInt(60000)),
		DeliveryFee:   models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
		Total:         models.NewMoneyFromDecimal(decimal.NewFromInt(65000)),
		PaymentMethod: constants.PaymentMethodCash,
		PaymentStatus: constants.PaymentStatusPending,
	}
	items := []models.OrderItem{
		{ProductID: 1, ProductName: "Bandeja", Quantity: 2,
			UnitPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(30000)),
			TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(60000))},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	got, err := repo.GetByOrderNo("JY260830001")
	if err != nil {
		t.Fatalf("get by order no failed: %v", err)
	}
	if got == nil || len(got.Items) != 1 {
		t.Fatalf("unexpected order fetch result: %+v", got)
	}
	if !got.Total.Equal(decimal.NewFromInt(65000)) {
		t.Fatalf("unexpected total: %s", got.Total)
	}

	last, err := repo.LastOrderNoWithPrefix("JY260830")
	if err != nil {
		t.Fatalf("last order no failed: %v", err)
	}
	if last != "JY260830001" {
		t.Fatalf("unexpected last order no: %s", last)
	}
}
