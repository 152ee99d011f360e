package shared

import (
	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUint lee un valor uint del contexto y unifica las respuestas de error.
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "no autorizado", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "identificador inválido", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "identificador inválido", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "identificador con tipo inesperado", nil)
		return 0, false
	}
}
