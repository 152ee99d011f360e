package admin

import (
	"errors"

	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest cambios sobre la configuración del negocio.
// Los punteros distinguen "no enviado" de "poner en cero".
type UpdateSettingsRequest struct {
	BusinessName string `json:"business_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Department   string `json:"department"`

	MinimumOrderAmount    *decimal.Decimal `json:"minimum_order_amount"`
	FreeDeliveryThreshold *decimal.Decimal `json:"free_delivery_threshold"`
	DeliveryCost          *decimal.Decimal `json:"delivery_cost"`

	MinAdvanceDays             *int   `json:"min_advance_days"`
	MaxAdvanceDays             *int   `json:"max_advance_days"`
	ModificationTimeLimitHours *int   `json:"modification_time_limit_hours"`
	CancellationTimeLimitDays  *int   `json:"cancellation_time_limit_days"`
	DeliveryStartTime          string `json:"delivery_start_time"`
	DeliveryEndTime            string `json:"delivery_end_time"`

	AcceptCash  *bool `json:"accept_cash"`
	AcceptWompi *bool `json:"accept_wompi"`

	WompiEnvironment  string  `json:"wompi_environment"`
	WompiPublicKey    *string `json:"wompi_public_key"`
	WompiPrivateKey   *string `json:"wompi_private_key"`
	WompiIntegrityKey *string `json:"wompi_integrity_key"`
	WompiEventKey     *string `json:"wompi_event_key"`
}

// GetSettings devuelve la configuración del negocio
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.SettingsService.Get()
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar la configuración", err)
		return
	}
	response.Success(c, settings)
}

// UpdateSettings aplica cambios sobre la configuración del negocio
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	settings, err := h.SettingsService.Update(service.UpdateSettingsInput{
		BusinessName: req.BusinessName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Address:      req.Address,
		City:         req.City,
		Department:   req.Department,

		MinimumOrderAmount:    req.MinimumOrderAmount,
		FreeDeliveryThreshold: req.FreeDeliveryThreshold,
		DeliveryCost:          req.DeliveryCost,

		MinAdvanceDays:             req.MinAdvanceDays,
		MaxAdvanceDays:             req.MaxAdvanceDays,
		ModificationTimeLimitHours: req.ModificationTimeLimitHours,
		CancellationTimeLimitDays:  req.CancellationTimeLimitDays,
		DeliveryStartTime:          req.DeliveryStartTime,
		DeliveryEndTime:            req.DeliveryEndTime,

		AcceptCash:  req.AcceptCash,
		AcceptWompi: req.AcceptWompi,

		WompiEnvironment:  req.WompiEnvironment,
		WompiPublicKey:    req.WompiPublicKey,
		WompiPrivateKey:   req.WompiPrivateKey,
		WompiIntegrityKey: req.WompiIntegrityKey,
		WompiEventKey:     req.WompiEventKey,
	})
	if err != nil {
		if errors.Is(err, service.ErrSettingsInvalid) {
			respondError(c, response.CodeBadRequest, "la configuración enviada es inválida", nil)
			return
		}
		respondError(c, response.CodeInternal, "no fue posible guardar la configuración", err)
		return
	}

	requestLog(c).Infow("business_settings_updated")
	response.Success(c, settings)
}
