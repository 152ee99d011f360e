package service

import (
	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderTotals resultado del cálculo de montos de un pedido
type OrderTotals struct {
	Subtotal    models.Money
	DeliveryFee models.Money
	Total       models.Money
}

// ComputeTotals calcula subtotal, costo de domicilio y total.
// El domicilio es gratis para recogida en local y para pedidos que
// alcanzan el umbral configurado; de lo contrario aplica la tarifa plana.
// El cálculo es idempotente: con las mismas entradas produce los mismos montos.
func ComputeTotals(deliveryType string, items []models.OrderItem, settings *models.BusinessSettings) OrderTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice.Decimal)
	}
	subtotal = normalizeOrderAmount(subtotal)

	deliveryFee := decimal.Zero
	if deliveryType == constants.DeliveryTypeDelivery && subtotal.LessThan(settings.FreeDeliveryThreshold.Decimal) {
		deliveryFee = normalizeOrderAmount(settings.DeliveryCost.Decimal)
	}

	return OrderTotals{
		Subtotal:    models.NewMoneyFromDecimal(subtotal),
		DeliveryFee: models.NewMoneyFromDecimal(deliveryFee),
		Total:       models.NewMoneyFromDecimal(subtotal.Add(deliveryFee)),
	}
}

// recalculateOrderTx relee las líneas del pedido y reafirma los montos
// almacenados. Debe invocarse dentro de la misma transacción que mutó las
// líneas o el tipo de entrega.
func recalculateOrderTx(tx *gorm.DB, order *models.Order, settings *models.BusinessSettings) error {
	var items []models.OrderItem
	if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return err
	}
	totals := ComputeTotals(order.DeliveryType, items, settings)

	order.Subtotal = totals.Subtotal
	order.DeliveryFee = totals.DeliveryFee
	order.Total = totals.Total
	order.Items = items

	return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
		"subtotal":     totals.Subtotal,
		"delivery_fee": totals.DeliveryFee,
		"total":        totals.Total,
	}).Error
}

// normalizeOrderAmount redondea a pesos enteros y nunca baja de cero
func normalizeOrderAmount(amount decimal.Decimal) decimal.Decimal {
	normalized := amount.Round(0)
	if normalized.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return normalized
}
