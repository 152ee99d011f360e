package public

import (
	"errors"

	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError asocia un error de negocio con la respuesta del API.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var scheduleErrorRules = []mappedHandlerError{
	{target: service.ErrDesiredDateInvalid, code: response.CodeBadRequest, msg: "la fecha deseada es inválida"},
	{target: service.ErrDesiredDateTooSoon, code: response.CodeBadRequest, msg: "la fecha deseada no cumple los días mínimos de anticipación"},
	{target: service.ErrDesiredDateTooFar, code: response.CodeBadRequest, msg: "la fecha deseada supera los días máximos de anticipación"},
	{target: service.ErrDesiredTimeInvalid, code: response.CodeBadRequest, msg: "la hora deseada es inválida"},
	{target: service.ErrDesiredTimeOutOfWindow, code: response.CodeBadRequest, msg: "la hora deseada está fuera del horario de atención"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, msg: "los productos del pedido son inválidos"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, msg: "uno de los productos no existe"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "uno de los productos no está disponible"},
	{target: service.ErrCustomerDataRequired, code: response.CodeBadRequest, msg: "faltan los datos de contacto del cliente"},
	{target: service.ErrDeliveryTypeInvalid, code: response.CodeBadRequest, msg: "el tipo de entrega es inválido"},
	{target: service.ErrDeliveryAddressRequired, code: response.CodeBadRequest, msg: "la dirección de entrega es obligatoria"},
	{target: service.ErrOrderBelowMinimum, code: response.CodeBadRequest, msg: "el pedido no alcanza el monto mínimo"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "el método de pago es inválido"},
	{target: service.ErrPaymentMethodDisabled, code: response.CodeBadRequest, msg: "el método de pago no está habilitado"},
}

var orderCancelErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "pedido no encontrado"},
	{target: service.ErrOrderCancelWrongStatus, code: response.CodeBadRequest, msg: "el pedido no se puede cancelar en su estado actual"},
	{target: service.ErrOrderCancelTooLate, code: response.CodeBadRequest, msg: "ya no es posible cancelar el pedido"},
	{target: service.ErrDesiredDateInvalid, code: response.CodeBadRequest, msg: "la fecha del pedido es inválida"},
}

var modificationCreateErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "pedido no encontrado"},
	{target: service.ErrOrderModifyWrongStatus, code: response.CodeBadRequest, msg: "el pedido no admite cambios en su estado actual"},
	{target: service.ErrOrderModifyTooLate, code: response.CodeBadRequest, msg: "ya no es posible solicitar cambios para el pedido"},
	{target: service.ErrModificationDataRequired, code: response.CodeBadRequest, msg: "faltan los datos de la modificación solicitada"},
	{target: service.ErrDesiredDateInvalid, code: response.CodeBadRequest, msg: "la fecha del pedido es inválida"},
}

var paymentCheckoutErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "pedido no encontrado"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "el pedido no tiene un pago en línea pendiente"},
	{target: service.ErrPaymentMethodDisabled, code: response.CodeBadRequest, msg: "los pagos en línea no están habilitados"},
	{target: service.ErrPaymentConfigInvalid, code: response.CodeInternal, msg: "la pasarela de pagos no está configurada"},
	{target: service.ErrPaymentGatewayFailed, code: response.CodeInternal, msg: "no fue posible comunicarse con la pasarela de pagos"},
}

var paymentReconcileErrorRules = []mappedHandlerError{
	{target: service.ErrTransactionIDRequired, code: response.CodeBadRequest, msg: "falta el identificador de la transacción"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "pedido no encontrado"},
	{target: service.ErrPaymentMethodDisabled, code: response.CodeBadRequest, msg: "los pagos en línea no están habilitados"},
	{target: service.ErrPaymentConfigInvalid, code: response.CodeInternal, msg: "la pasarela de pagos no está configurada"},
	{target: service.ErrPaymentGatewayFailed, code: response.CodeInternal, msg: "no fue posible comunicarse con la pasarela de pagos"},
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(orderCreateErrorRules, scheduleErrorRules), response.CodeInternal, "no fue posible crear el pedido")
}

func respondOrderCancelError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderCancelErrorRules, response.CodeInternal, "no fue posible cancelar el pedido")
}

func respondModificationCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, modificationCreateErrorRules, response.CodeInternal, "no fue posible registrar la solicitud")
}

func respondPaymentCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentCheckoutErrorRules, response.CodeInternal, "no fue posible iniciar el pago")
}

func respondPaymentReconcileError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentReconcileErrorRules, response.CodeInternal, "no fue posible verificar el pago")
}
