package repository

import (
	"errors"

	"github.com/juan2005elpapu/webjanaypedidos/internal/models"

	"gorm.io/gorm"
)

// BusinessSettingsRepository acceso a la configuración del negocio
type BusinessSettingsRepository interface {
	Get() (*models.BusinessSettings, error)
	Create(settings *models.BusinessSettings) error
	Save(settings *models.BusinessSettings) error
	WithTx(tx *gorm.DB) *GormBusinessSettingsRepository
}

// GormBusinessSettingsRepository implementación GORM
type GormBusinessSettingsRepository struct {
	db *gorm.DB
}

// NewBusinessSettingsRepository crea el repositorio de configuración
func NewBusinessSettingsRepository(db *gorm.DB) *GormBusinessSettingsRepository {
	return &GormBusinessSettingsRepository{db: db}
}

// WithTx vincula una transacción
func (r *GormBusinessSettingsRepository) WithTx(tx *gorm.DB) *GormBusinessSettingsRepository {
	if tx == nil {
		return r
	}
	return &GormBusinessSettingsRepository{db: tx}
}

// Get devuelve la fila única de configuración, o nil si aún no existe
func (r *GormBusinessSettingsRepository) Get() (*models.BusinessSettings, error) {
	var settings models.BusinessSettings
	if err := r.db.Order("id asc").First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// Create crea la fila de configuración
func (r *GormBusinessSettingsRepository) Create(settings *models.BusinessSettings) error {
	return r.db.Create(settings).Error
}

// Save guarda la configuración completa
func (r *GormBusinessSettingsRepository) Save(settings *models.BusinessSettings) error {
	return r.db.Save(settings).Error
}
