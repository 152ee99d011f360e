package admin

import (
	"errors"
	"strconv"

	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"
	"github.com/juan2005elpapu/webjanaypedidos/internal/service"

	"github.com/gin-gonic/gin"
)

// ResolveModificationRequest decisión del personal sobre una solicitud
type ResolveModificationRequest struct {
	Approve       *bool  `json:"approve" binding:"required"`
	AdminResponse string `json:"admin_response"`
}

// ListModifications lista las solicitudes de modificación
func (h *Handler) ListModifications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 32)

	requests, total, err := h.ModificationService.ListAdmin(repository.ModificationListFilter{
		Page:        page,
		PageSize:    pageSize,
		OrderID:     uint(orderID),
		PendingOnly: c.Query("pending_only") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar las solicitudes", err)
		return
	}

	response.SuccessWithPage(c, requests, response.BuildPagination(page, pageSize, total))
}

// ResolveModification aprueba o rechaza una solicitud y reanuda el pedido
func (h *Handler) ResolveModification(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de solicitud inválido", nil)
		return
	}

	var req ResolveModificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	request, err := h.ModificationService.Resolve(service.ResolveInput{
		RequestID:     uint(id),
		ReviewerID:    staffID,
		Approve:       *req.Approve,
		AdminResponse: req.AdminResponse,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrModificationNotFound):
			respondError(c, response.CodeNotFound, "solicitud no encontrada", nil)
		case errors.Is(err, service.ErrModificationAlreadyClosed):
			respondError(c, response.CodeBadRequest, "la solicitud ya fue resuelta", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "el pedido no está esperando resolución", nil)
		default:
			respondError(c, response.CodeInternal, "no fue posible resolver la solicitud", err)
		}
		return
	}

	requestLog(c).Infow("modification_resolved_by_staff",
		"request_id", request.ID,
		"order_id", request.OrderID,
		"approved", *req.Approve,
	)
	response.Success(c, request)
}
