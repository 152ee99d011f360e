package public

import (
	"errors"
	"io"

	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/service"

	"github.com/gin-gonic/gin"
)

const webhookBodyLimit = 1 << 20

// WompiWebhook recibe los eventos de la pasarela. La firma llega en el
// encabezado X-Event-Checksum; los eventos repetidos se confirman sin
// reprocesar para que la pasarela deje de reintentarlos.
func (h *Handler) WompiWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookBodyLimit))
	if err != nil {
		respondError(c, response.CodeBadRequest, "cuerpo del evento ilegible", err)
		return
	}

	signature := c.GetHeader("X-Event-Checksum")
	if signature == "" {
		signature = c.GetHeader("X-Signature")
	}

	order, err := h.PaymentService.HandleWebhookEvent(c.Request.Context(), payload, signature)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWebhookSignature):
			respondError(c, response.CodeUnauthorized, "firma del evento inválida", nil)
		case errors.Is(err, service.ErrTransactionIDRequired):
			respondError(c, response.CodeBadRequest, "evento sin transacción", nil)
		case errors.Is(err, service.ErrOrderNotFound):
			// El evento no corresponde a ningún pedido nuestro; se confirma
			// para que la pasarela no lo reintente.
			response.Success(c, nil)
		case errors.Is(err, service.ErrPaymentConfigInvalid):
			respondError(c, response.CodeInternal, "la pasarela de pagos no está configurada", nil)
		default:
			respondError(c, response.CodeInternal, "no fue posible procesar el evento", err)
		}
		return
	}

	response.Success(c, order)
}
