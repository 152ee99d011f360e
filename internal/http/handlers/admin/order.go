package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"
	"github.com/juan2005elpapu/webjanaypedidos/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest cambio de estado de un pedido
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAdminNotesRequest notas internas del personal sobre un pedido
type UpdateAdminNotesRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// ListOrders lista los pedidos para el panel de administración
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        c.Query("status"),
		DeliveryType:  c.Query("delivery_type"),
		PaymentMethod: c.Query("payment_method"),
		OrderNo:       c.Query("order_no"),
		IncludeDrafts: c.Query("include_drafts") == "true",
	}
	if from := c.Query("created_from"); from != "" {
		if t, err := time.ParseInLocation("2006-01-02", from, h.SettingsService.Location()); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := c.Query("created_to"); to != "" {
		if t, err := time.ParseInLocation("2006-01-02", to, h.SettingsService.Location()); err == nil {
			end := t.AddDate(0, 0, 1)
			filter.CreatedTo = &end
		}
	}

	orders, total, err := h.OrderService.ListOrdersAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar los pedidos", err)
		return
	}

	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder devuelve el detalle completo de un pedido
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de pedido inválido", nil)
		return
	}

	order, err := h.OrderService.GetOrderAdmin(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "pedido no encontrado", nil)
			return
		}
		respondError(c, response.CodeInternal, "no fue posible consultar el pedido", err)
		return
	}

	response.Success(c, order)
}

// UpdateOrderStatus avanza o cancela un pedido según la tabla de transiciones
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de pedido inválido", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	order, err := h.OrderService.UpdateOrderStatusAdmin(uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "pedido no encontrado", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "la transición de estado no está permitida", nil)
		default:
			respondError(c, response.CodeInternal, "no fue posible actualizar el pedido", err)
		}
		return
	}

	requestLog(c).Infow("order_status_updated_by_staff",
		"order_no", order.OrderNo,
		"status", order.Status,
	)
	response.Success(c, order)
}

// UpdateAdminNotes guarda las notas internas de un pedido
func (h *Handler) UpdateAdminNotes(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de pedido inválido", nil)
		return
	}

	var req UpdateAdminNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	if err := h.OrderService.UpdateAdminNotes(uint(id), req.AdminNotes); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "pedido no encontrado", nil)
			return
		}
		respondError(c, response.CodeInternal, "no fue posible guardar las notas", err)
		return
	}

	response.Success(c, nil)
}

// GetStats devuelve el conteo de pedidos por estado y el recaudo
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.OrderService.OrderStats()
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar las estadísticas", err)
		return
	}
	response.Success(c, stats)
}
