package public

import (
	"strconv"

	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListCategories lista las categorías del menú
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar las categorías", err)
		return
	}
	response.Success(c, categories)
}

// ListProducts lista los productos disponibles del menú
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)

	products, total, err := h.CatalogService.ListProducts(repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		CategoryID:    uint(categoryID),
		Search:        c.Query("search"),
		OnlyAvailable: true,
		WithCategory:  true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar los productos", err)
		return
	}

	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct devuelve el detalle de un producto
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, response.CodeBadRequest, "identificador de producto inválido", nil)
		return
	}

	product, err := h.CatalogService.GetProduct(uint(id))
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar el producto", err)
		return
	}
	if product == nil || !product.IsAvailable {
		respondError(c, response.CodeNotFound, "producto no encontrado", nil)
		return
	}

	response.Success(c, product)
}
