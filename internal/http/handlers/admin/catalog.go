package admin

import (
	"errors"
	"strconv"

	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"
	"github.com/juan2005elpapu/webjanaypedidos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest datos de un producto del menú
type ProductRequest struct {
	CategoryID  uint            `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	IsAvailable *bool           `json:"is_available"`
	SortOrder   int             `json:"sort_order"`
}

// ProductAvailabilityRequest cambio de disponibilidad
type ProductAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// CategoryRequest datos de una categoría del menú
type CategoryRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

func respondCatalogError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "producto no encontrado", nil)
	case errors.Is(err, service.ErrProductDataInvalid):
		respondError(c, response.CodeBadRequest, "los datos del producto son inválidos", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "categoría no encontrada", nil)
	case errors.Is(err, service.ErrCategoryDataInvalid):
		respondError(c, response.CodeBadRequest, "los datos de la categoría son inválidos", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Images:      r.Images,
		IsAvailable: r.IsAvailable,
		SortOrder:   r.SortOrder,
	}
}

// ListProducts lista todos los productos, disponibles o no
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)

	products, total, err := h.CatalogService.ListProducts(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       c.Query("search"),
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar los productos", err)
		return
	}

	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// CreateProduct crea un producto
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	product, err := h.CatalogService.CreateProduct(req.toInput())
	if err != nil {
		respondCatalogError(c, err, "no fue posible crear el producto")
		return
	}

	response.Success(c, product)
}

// UpdateProduct actualiza un producto
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de producto inválido", nil)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	product, err := h.CatalogService.UpdateProduct(uint(id), req.toInput())
	if err != nil {
		respondCatalogError(c, err, "no fue posible actualizar el producto")
		return
	}

	response.Success(c, product)
}

// SetProductAvailability activa o desactiva un producto del menú
func (h *Handler) SetProductAvailability(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de producto inválido", nil)
		return
	}

	var req ProductAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	product, err := h.CatalogService.SetProductAvailability(uint(id), *req.IsAvailable)
	if err != nil {
		respondCatalogError(c, err, "no fue posible actualizar el producto")
		return
	}

	response.Success(c, product)
}

// DeleteProduct elimina un producto
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de producto inválido", nil)
		return
	}

	if err := h.CatalogService.DeleteProduct(uint(id)); err != nil {
		respondCatalogError(c, err, "no fue posible eliminar el producto")
		return
	}

	response.Success(c, nil)
}

// ListCategories lista todas las categorías
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar las categorías", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory crea una categoría
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	category, err := h.CatalogService.CreateCategory(service.CategoryInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondCatalogError(c, err, "no fue posible crear la categoría")
		return
	}

	response.Success(c, category)
}

// UpdateCategory actualiza una categoría
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de categoría inválido", nil)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	category, err := h.CatalogService.UpdateCategory(uint(id), service.CategoryInput{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondCatalogError(c, err, "no fue posible actualizar la categoría")
		return
	}

	response.Success(c, category)
}

// DeleteCategory elimina una categoría
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de categoría inválido", nil)
		return
	}

	if err := h.CatalogService.DeleteCategory(uint(id)); err != nil {
		respondCatalogError(c, err, "no fue posible eliminar la categoría")
		return
	}

	response.Success(c, nil)
}
