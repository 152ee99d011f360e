package service

import (
	"strings"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/payment/wompi"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"

	"github.com/shopspring/decimal"
)

// SettingsService configuración del negocio (fila única con creación perezosa)
type SettingsService struct {
	repo repository.BusinessSettingsRepository
	loc  *time.Location
}

// NewSettingsService crea el servicio de configuración
func NewSettingsService(repo repository.BusinessSettingsRepository, timezone string) *SettingsService {
	loc, err := time.LoadLocation(strings.TrimSpace(timezone))
	if err != nil || timezone == "" {
		loc, _ = time.LoadLocation(constants.BusinessTimezone)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SettingsService{repo: repo, loc: loc}
}

// Location zona horaria del negocio para comparaciones de fecha y hora
func (s *SettingsService) Location() *time.Location {
	return s.loc
}

// Get devuelve la configuración, creándola con valores por defecto si no existe
func (s *SettingsService) Get() (*models.BusinessSettings, error) {
	settings, err := s.repo.Get()
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = DefaultBusinessSettings()
	if err := s.repo.Create(settings); err != nil {
		// Otra petición pudo haberla creado primero
		if existing, getErr := s.repo.Get(); getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return settings, nil
}

// DefaultBusinessSettings valores por defecto del negocio
func DefaultBusinessSettings() *models.BusinessSettings {
	return &models.BusinessSettings{
		BusinessName:               "Janay",
		City:                       "Villanueva",
		Department:                 "Casanare",
		MinimumOrderAmount:         models.NewMoneyFromInt(50000),
		FreeDeliveryThreshold:      models.NewMoneyFromInt(500000),
		DeliveryCost:               models.NewMoneyFromInt(5000),
		MinAdvanceDays:             2,
		MaxAdvanceDays:             90,
		ModificationTimeLimitHours: 4,
		CancellationTimeLimitDays:  1,
		DeliveryStartTime:          "05:00",
		DeliveryEndTime:            "21:00",
		AcceptCash:                 true,
		AcceptWompi:                false,
		WompiEnvironment:           constants.WompiEnvironmentTest,
	}
}

// UpdateSettingsInput cambios de configuración desde el panel administrativo
type UpdateSettingsInput struct {
	BusinessName string
	ContactPhone string
	ContactEmail string
	Address      string
	City         string
	Department   string

	MinimumOrderAmount    *decimal.Decimal
	FreeDeliveryThreshold *decimal.Decimal
	DeliveryCost          *decimal.Decimal

	MinAdvanceDays             *int
	MaxAdvanceDays             *int
	ModificationTimeLimitHours *int
	CancellationTimeLimitDays  *int
	DeliveryStartTime          string
	DeliveryEndTime            string

	AcceptCash  *bool
	AcceptWompi *bool

	WompiEnvironment  string
	WompiPublicKey    *string
	WompiPrivateKey   *string
	WompiIntegrityKey *string
	WompiEventKey     *string
}

// Update aplica cambios validados sobre la fila única
func (s *SettingsService) Update(input UpdateSettingsInput) (*models.BusinessSettings, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(input.BusinessName); v != "" {
		settings.BusinessName = v
	}
	if input.ContactPhone != "" {
		settings.ContactPhone = strings.TrimSpace(input.ContactPhone)
	}
	if input.ContactEmail != "" {
		settings.ContactEmail = strings.TrimSpace(input.ContactEmail)
	}
	if input.Address != "" {
		settings.Address = strings.TrimSpace(input.Address)
	}
	if input.City != "" {
		settings.City = strings.TrimSpace(input.City)
	}
	if input.Department != "" {
		settings.Department = strings.TrimSpace(input.Department)
	}

	if input.MinimumOrderAmount != nil {
		if input.MinimumOrderAmount.IsNegative() {
			return nil, ErrSettingsInvalid
		}
		settings.MinimumOrderAmount = models.NewMoneyFromDecimal(*input.MinimumOrderAmount)
	}
	if input.FreeDeliveryThreshold != nil {
		if input.FreeDeliveryThreshold.IsNegative() {
			return nil, ErrSettingsInvalid
		}
		settings.FreeDeliveryThreshold = models.NewMoneyFromDecimal(*input.FreeDeliveryThreshold)
	}
	if input.DeliveryCost != nil {
		if input.DeliveryCost.IsNegative() {
			return nil, ErrSettingsInvalid
		}
		settings.DeliveryCost = models.NewMoneyFromDecimal(*input.DeliveryCost)
	}

	if input.MinAdvanceDays != nil {
		if *input.MinAdvanceDays < 0 {
			return nil, ErrSettingsInvalid
		}
		settings.MinAdvanceDays = *input.MinAdvanceDays
	}
	if input.MaxAdvanceDays != nil {
		if *input.MaxAdvanceDays < 1 {
			return nil, ErrSettingsInvalid
		}
		settings.MaxAdvanceDays = *input.MaxAdvanceDays
	}
	if settings.MinAdvanceDays > settings.MaxAdvanceDays {
		return nil, ErrSettingsInvalid
	}
	if input.ModificationTimeLimitHours != nil {
		if *input.ModificationTimeLimitHours < 0 {
			return nil, ErrSettingsInvalid
		}
		settings.ModificationTimeLimitHours = *input.ModificationTimeLimitHours
	}
	if input.CancellationTimeLimitDays != nil {
		if *input.CancellationTimeLimitDays < 0 {
			return nil, ErrSettingsInvalid
		}
		settings.CancellationTimeLimitDays = *input.CancellationTimeLimitDays
	}
	if input.DeliveryStartTime != "" {
		if _, err := parseClock(input.DeliveryStartTime); err != nil {
			return nil, ErrSettingsInvalid
		}
		settings.DeliveryStartTime = strings.TrimSpace(input.DeliveryStartTime)
	}
	if input.DeliveryEndTime != "" {
		if _, err := parseClock(input.DeliveryEndTime); err != nil {
			return nil, ErrSettingsInvalid
		}
		settings.DeliveryEndTime = strings.TrimSpace(input.DeliveryEndTime)
	}

	if input.AcceptCash != nil {
		settings.AcceptCash = *input.AcceptCash
	}
	if input.AcceptWompi != nil {
		settings.AcceptWompi = *input.AcceptWompi
	}

	if env := strings.TrimSpace(input.WompiEnvironment); env != "" {
		if env != constants.WompiEnvironmentTest && env != constants.WompiEnvironmentProduction {
			return nil, ErrSettingsInvalid
		}
		settings.WompiEnvironment = env
	}
	if input.WompiPublicKey != nil {
		settings.WompiPublicKey = strings.TrimSpace(*input.WompiPublicKey)
	}
	if input.WompiPrivateKey != nil {
		settings.WompiPrivateKey = strings.TrimSpace(*input.WompiPrivateKey)
	}
	if input.WompiIntegrityKey != nil {
		settings.WompiIntegrityKey = strings.TrimSpace(*input.WompiIntegrityKey)
	}
	if input.WompiEventKey != nil {
		settings.WompiEventKey = strings.TrimSpace(*input.WompiEventKey)
	}

	// El prefijo de la llave delata el ambiente; la discrepancia no bloquea
	// pero casi siempre es un error de configuración
	if env := wompi.DetectKeyEnvironment(settings.WompiPublicKey); env != "" && env != settings.WompiEnvironment {
		logger.Warnw("la llave pública wompi no corresponde al ambiente configurado",
			"environment", settings.WompiEnvironment,
			"key_environment", env,
		)
	}

	if err := s.repo.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// parseClock interpreta una hora HH:MM como minutos desde medianoche
func parseClock(raw string) (int, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
