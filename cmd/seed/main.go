package main

import (
	"github.com/juan2005elpapu/webjanaypedidos/internal/config"
	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
)

// Siembra el catálogo inicial del negocio: categorías y productos de muestra.
// Es idempotente; los registros existentes no se duplican.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("fallo al conectar la base de datos: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("fallo al migrar la base de datos: %v", err)
	}

	categories := []models.Category{
		{Slug: "desayunos", Name: "Desayunos", Description: "Desayunos sorpresa y tradicionales", SortOrder: 1},
		{Slug: "tortas", Name: "Tortas", Description: "Tortas por encargo para toda ocasión", SortOrder: 2},
		{Slug: "detalles", Name: "Detalles", Description: "Anchetas y detalles personalizados", SortOrder: 3},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("fallo al crear la categoría %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("categoría creada: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("la categoría ya existe: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"desayunos", "tortas", "detalles"}).Find(&categoryList).Error; err != nil {
		stdLog.Fatalf("fallo al cargar las categorías: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	products := []models.Product{
		{
			CategoryID:  categoryIDs["desayunos"],
			Name:        "Desayuno sorpresa clásico",
			Description: "Bandeja con frutas, sandwich, jugo natural y globo de celebración",
			Price:       models.NewMoneyFromInt(65000),
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["desayunos"],
			Name:        "Desayuno sorpresa premium",
			Description: "Incluye caja decorada, postre, flores y tarjeta personalizada",
			Price:       models.NewMoneyFromInt(95000),
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["tortas"],
			Name:        "Torta de chocolate media libra",
			Description: "Bizcocho húmedo de chocolate con cobertura de ganache",
			Price:       models.NewMoneyFromInt(55000),
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["tortas"],
			Name:        "Torta personalizada una libra",
			Description: "Decoración temática según la ocasión, sabor a elección",
			Price:       models.NewMoneyFromInt(110000),
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["detalles"],
			Name:        "Ancheta de dulces",
			Description: "Canasta con dulces surtidos, chocolates y peluche pequeño",
			Price:       models.NewMoneyFromInt(70000),
			SortOrder:   1,
		},
	}

	for _, product := range products {
		if product.CategoryID == 0 {
			stdLog.Printf("se omite el producto %s: categoría no encontrada", product.Name)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("fallo al crear el producto %s: %v", product.Name, err)
			} else {
				stdLog.Printf("producto creado: %s", product.Name)
			}
		} else {
			stdLog.Printf("el producto ya existe: %s", product.Name)
		}
	}

	stdLog.Println("siembra del catálogo completada")
}
