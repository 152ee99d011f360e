package admin

import (
	handlershared "github.com/juan2005elpapu/webjanaypedidos/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getStaffID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "staff_id")
}
