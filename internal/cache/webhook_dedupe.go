package cache

import (
	"context"
	"fmt"
	"time"
)

// webhookDedupeTTL ventana dentro de la cual un evento repetido se ignora.
// Wompi reintenta la entrega de eventos durante horas.
const webhookDedupeTTL = 24 * time.Hour

func webhookEventKey(transactionID string) string {
	return fmt.Sprintf("webhook:wompi:%s", transactionID)
}

// MarkWebhookEvent registra la transacción del evento recibido. Devuelve
// true si es la primera vez que se ve dentro de la ventana; con la caché
// deshabilitada siempre devuelve true y la idempotencia queda a cargo del
// procesamiento del pedido.
func MarkWebhookEvent(ctx context.Context, transactionID string) (bool, error) {
	if transactionID == "" {
		return true, nil
	}
	return SetNX(ctx, webhookEventKey(transactionID), "1", webhookDedupeTTL)
}
