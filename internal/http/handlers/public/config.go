package public

import (
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/cache"
	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig expone la configuración pública del negocio: datos de contacto,
// umbrales de pedido y métodos de pago. Las credenciales nunca salen por aquí.
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	settings, err := h.SettingsService.Get()
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar la configuración", err)
		return
	}

	data := map[string]interface{}{
		"business_name": settings.BusinessName,
		"contact_phone": settings.ContactPhone,
		"contact_email": settings.ContactEmail,
		"address":       settings.Address,
		"city":          settings.City,
		"department":    settings.Department,

		"minimum_order_amount":    settings.MinimumOrderAmount,
		"free_delivery_threshold": settings.FreeDeliveryThreshold,
		"delivery_cost":           settings.DeliveryCost,

		"min_advance_days":              settings.MinAdvanceDays,
		"max_advance_days":              settings.MaxAdvanceDays,
		"modification_time_limit_hours": settings.ModificationTimeLimitHours,
		"cancellation_time_limit_days":  settings.CancellationTimeLimitDays,
		"delivery_start_time":           settings.DeliveryStartTime,
		"delivery_end_time":             settings.DeliveryEndTime,

		"accept_cash":  settings.AcceptCash,
		"accept_wompi": settings.AcceptWompi,
	}
	if settings.AcceptWompi {
		data["wompi_public_key"] = settings.WompiPublicKey
	}

	if err := cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL); err != nil {
		logger.Debugw("public_config_cache_set_failed", "error", err)
	}

	response.Success(c, data)
}
