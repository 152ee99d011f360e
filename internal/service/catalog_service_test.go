package service

import (
	"errors"
	"testing"

	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"

	"github.com/shopspring/decimal"
)

func setupCatalogService(t *testing.T) (*CatalogService, *models.Category) {
	t.Helper()
	db := newTestDB(t)

	category := &models.Category{Slug: "tortas", Name: "Tortas"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}

	svc := NewCatalogService(repository.NewProductRepository(db), repository.NewCategoryRepository(db))
	return svc, category
}

func TestCreateProductValidation(t *testing.T) {
	svc, category := setupCatalogService(t)

	cases := []struct {
		name    string
		input   ProductInput
		wantErr error
	}{
		{"sin nombre", ProductInput{CategoryID: category.ID, Name: "  ", Price: decimal.NewFromInt(55000)}, ErrProductDataInvalid},
		{"sin categoría", ProductInput{Name: "Torta", Price: decimal.NewFromInt(55000)}, ErrProductDataInvalid},
		{"precio negativo", ProductInput{CategoryID: category.ID, Name: "Torta", Price: decimal.NewFromInt(-1)}, ErrProductDataInvalid},
		{"categoría inexistente", ProductInput{CategoryID: 9999, Name: "Torta", Price: decimal.NewFromInt(55000)}, ErrCategoryNotFound},
	}
	for _, tc := range cases {
		if _, err := svc.CreateProduct(tc.input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestProductLifecycle(t *testing.T) {
	svc, category := setupCatalogService(t)

	product, err := svc.CreateProduct(ProductInput{
		CategoryID:  category.ID,
		Name:        " Torta de chocolate ",
		Description: "Bizcocho húmedo",
		Price:       decimal.NewFromInt(55000),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.Name != "Torta de chocolate" {
		t.Fatalf("name not trimmed: %q", product.Name)
	}
	if !product.IsAvailable {
		t.Fatal("new product should default to available")
	}

	hidden, err := svc.SetProductAvailability(product.ID, false)
	if err != nil {
		t.Fatalf("set availability failed: %v", err)
	}
	if hidden.IsAvailable {
		t.Fatal("product should be unavailable")
	}

	updated, err := svc.UpdateProduct(product.ID, ProductInput{
		CategoryID: category.ID,
		Name:       "Torta de chocolate grande",
		Price:      decimal.NewFromInt(75000),
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.Price.String() != "75000" {
		t.Fatalf("price = %s, want 75000", updated.Price.String())
	}
	// Una actualización sin el campo de disponibilidad no lo toca
	if updated.IsAvailable {
		t.Fatal("availability should stay off after update")
	}

	if err := svc.DeleteProduct(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if _, err := svc.GetProduct(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("deleted product: got %v, want ErrProductNotFound", err)
	}
}

func TestCategorySlugRules(t *testing.T) {
	svc, category := setupCatalogService(t)

	created, err := svc.CreateCategory(CategoryInput{Slug: " Desayunos Sorpresa ", Name: "Desayunos"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if created.Slug != "desayunos-sorpresa" {
		t.Fatalf("slug = %s, want desayunos-sorpresa", created.Slug)
	}

	// El slug ya usado por otra categoría se rechaza
	if _, err := svc.CreateCategory(CategoryInput{Slug: "tortas", Name: "Otra"}); !errors.Is(err, ErrCategoryDataInvalid) {
		t.Fatalf("duplicate slug: got %v, want ErrCategoryDataInvalid", err)
	}
	if _, err := svc.UpdateCategory(created.ID, CategoryInput{Slug: category.Slug, Name: "Desayunos"}); !errors.Is(err, ErrCategoryDataInvalid) {
		t.Fatalf("update to taken slug: got %v, want ErrCategoryDataInvalid", err)
	}

	if err := svc.DeleteCategory(created.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	if err := svc.DeleteCategory(9999); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("missing category: got %v, want ErrCategoryNotFound", err)
	}
}
