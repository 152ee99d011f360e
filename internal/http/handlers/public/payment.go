package public

import (
	"strconv"
	"strings"

	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"

	"github.com/gin-gonic/gin"
)

// InitCheckout prepara los datos del widget de pago para un pedido pendiente
func (h *Handler) InitCheckout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de pedido inválido", nil)
		return
	}

	info, err := h.PaymentService.InitCheckout(c.Request.Context(), uint(orderID), uid)
	if err != nil {
		respondPaymentCheckoutError(c, err)
		return
	}

	response.Success(c, info)
}

// PaymentResult verifica el resultado del pago al volver del checkout.
// Wompi añade el id de transacción a la URL de retorno; si no llega se
// reutiliza la referencia ya almacenada en el pedido.
func (h *Handler) PaymentResult(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de pedido inválido", nil)
		return
	}
	if _, err := h.OrderService.GetOrderForUser(uint(orderID), uid); err != nil {
		respondPaymentReconcileError(c, err)
		return
	}

	var order *models.Order
	if transactionID := strings.TrimSpace(c.Query("id")); transactionID != "" {
		order, err = h.PaymentService.ReconcileTransaction(c.Request.Context(), transactionID)
	} else {
		order, err = h.PaymentService.ReconcilePendingOrder(c.Request.Context(), uint(orderID))
	}
	if err != nil {
		respondPaymentReconcileError(c, err)
		return
	}
	if order.ID != uint(orderID) {
		respondError(c, response.CodeNotFound, "la transacción no corresponde al pedido", nil)
		return
	}

	response.Success(c, order)
}
