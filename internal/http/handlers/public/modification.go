package public

import (
	"strconv"

	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/service"

	"github.com/gin-gonic/gin"
)

// FileModificationRequest solicitud de cambio sobre un pedido confirmado
type FileModificationRequest struct {
	ModificationType string      `json:"modification_type" binding:"required"`
	RequestedData    models.JSON `json:"requested_data" binding:"required"`
	Reason           string      `json:"reason"`
}

// FileModification registra una solicitud de modificación del cliente
func (h *Handler) FileModification(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de pedido inválido", nil)
		return
	}

	var req FileModificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	request, err := h.ModificationService.FileRequest(service.FileRequestInput{
		OrderID:          uint(orderID),
		UserID:           uid,
		ModificationType: req.ModificationType,
		RequestedData:    req.RequestedData,
		Reason:           req.Reason,
	})
	if err != nil {
		respondModificationCreateError(c, err)
		return
	}

	response.Success(c, request)
}

// ListModifications lista las solicitudes de modificación de un pedido del cliente
func (h *Handler) ListModifications(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de pedido inválido", nil)
		return
	}

	requests, err := h.ModificationService.ListByOrderForUser(uint(orderID), uid)
	if err != nil {
		if err == service.ErrOrderNotFound {
			respondError(c, response.CodeNotFound, "pedido no encontrado", nil)
			return
		}
		respondError(c, response.CodeInternal, "no fue posible consultar las solicitudes", err)
		return
	}

	response.Success(c, requests)
}
