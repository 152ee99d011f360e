package public

import (
	"strconv"

	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"
	"github.com/juan2005elpapu/webjanaypedidos/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest línea de pedido del cliente
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateOrderRequest solicitud del asistente de pedido
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`

	DeliveryType         string `json:"delivery_type" binding:"required"`
	DeliveryAddress      string `json:"delivery_address"`
	DeliveryNeighborhood string `json:"delivery_neighborhood"`
	DeliveryCity         string `json:"delivery_city"`
	DeliveryDepartment   string `json:"delivery_department"`
	DeliveryReferences   string `json:"delivery_references"`

	DesiredDate string `json:"desired_date" binding:"required"`
	DesiredTime string `json:"desired_time" binding:"required"`

	PaymentMethod string `json:"payment_method" binding:"required"`
	Notes         string `json:"notes"`
}

// CreateOrder crea un pedido del cliente autenticado
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	items := make([]service.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		UserID: uid,
		Items:  items,

		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,

		DeliveryType:         req.DeliveryType,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryNeighborhood: req.DeliveryNeighborhood,
		DeliveryCity:         req.DeliveryCity,
		DeliveryDepartment:   req.DeliveryDepartment,
		DeliveryReferences:   req.DeliveryReferences,

		DesiredDate: req.DesiredDate,
		DesiredTime: req.DesiredTime,

		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}

	response.Success(c, order)
}

// ListOrders lista los pedidos del cliente autenticado
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar los pedidos", err)
		return
	}

	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder devuelve el detalle de un pedido del cliente
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de pedido inválido", nil)
		return
	}

	order, err := h.OrderService.GetOrderForUser(uint(id), uid)
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar el pedido", err)
		return
	}
	if order == nil {
		respondError(c, response.CodeNotFound, "pedido no encontrado", nil)
		return
	}

	response.Success(c, order)
}

// CancelOrder cancela un pedido del cliente si el plazo lo permite
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de pedido inválido", nil)
		return
	}

	order, err := h.OrderService.CancelOrder(uint(id), uid)
	if err != nil {
		respondOrderCancelError(c, err)
		return
	}

	response.SuccessWithMsg(c, "pedido cancelado", order)
}
