package service

import (
	"strings"

	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"

	"github.com/shopspring/decimal"
)

// CatalogService menú del negocio: categorías y productos
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService crea el servicio de catálogo
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListCategories lista las categorías del menú
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// ListProducts lista productos según el filtro
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProduct obtiene un producto por ID
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ProductInput datos de un producto del panel administrativo
type ProductInput struct {
	CategoryID  uint
	Name        string
	Description string
	Price       decimal.Decimal
	Images      []string
	IsAvailable *bool
	SortOrder   int
}

// CreateProduct crea un producto
func (s *CatalogService) CreateProduct(input ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(&input); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       models.NewMoneyFromDecimal(input.Price),
		Images:      models.StringArray(input.Images),
		IsAvailable: true,
		SortOrder:   input.SortOrder,
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct actualiza un producto
func (s *CatalogService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateProductInput(&input); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Name = strings.TrimSpace(input.Name)
	product.Description = strings.TrimSpace(input.Description)
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.Images = models.StringArray(input.Images)
	product.SortOrder = input.SortOrder
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// SetProductAvailability cambia la disponibilidad sin tocar el resto
func (s *CatalogService) SetProductAvailability(id uint, available bool) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	product.IsAvailable = available
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct elimina un producto del catálogo
func (s *CatalogService) DeleteProduct(id uint) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *CatalogService) validateProductInput(input *ProductInput) error {
	if strings.TrimSpace(input.Name) == "" || input.CategoryID == 0 {
		return ErrProductDataInvalid
	}
	if input.Price.IsNegative() {
		return ErrProductDataInvalid
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

// CategoryInput datos de una categoría del panel administrativo
type CategoryInput struct {
	Slug        string
	Name        string
	Description string
	SortOrder   int
}

// CreateCategory crea una categoría
func (s *CatalogService) CreateCategory(input CategoryInput) (*models.Category, error) {
	slug := normalizeSlug(input.Slug)
	if slug == "" || strings.TrimSpace(input.Name) == "" {
		return nil, ErrCategoryDataInvalid
	}
	existing, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryDataInvalid
	}

	category := &models.Category{
		Slug:        slug,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		SortOrder:   input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory actualiza una categoría
func (s *CatalogService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if slug := normalizeSlug(input.Slug); slug != "" && slug != category.Slug {
		existing, err := s.categoryRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCategoryDataInvalid
		}
		category.Slug = slug
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	category.Description = strings.TrimSpace(input.Description)
	category.SortOrder = input.SortOrder

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory elimina una categoría
func (s *CatalogService) DeleteCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(id)
}

func normalizeSlug(raw string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
