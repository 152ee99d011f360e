package service

import "errors"

// Errores de validación de entrada
var (
	ErrInvalidOrderItem        = errors.New("order item invalid")
	ErrProductNotAvailable     = errors.New("product not available")
	ErrProductNotFound         = errors.New("product not found")
	ErrDeliveryTypeInvalid     = errors.New("delivery type invalid")
	ErrDeliveryAddressRequired = errors.New("delivery address required")
	ErrDesiredDateInvalid      = errors.New("desired date invalid")
	ErrDesiredDateTooSoon      = errors.New("desired date too soon")
	ErrDesiredDateTooFar       = errors.New("desired date too far")
	ErrDesiredTimeInvalid      = errors.New("desired time invalid")
	ErrDesiredTimeOutOfWindow  = errors.New("desired time out of delivery window")
	ErrOrderBelowMinimum       = errors.New("order below minimum amount")
	ErrPaymentMethodInvalid    = errors.New("payment method invalid")
	ErrCustomerDataRequired    = errors.New("customer data required")
	ErrProductDataInvalid      = errors.New("product data invalid")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrCategoryDataInvalid     = errors.New("category data invalid")
)

// Errores de transición del ciclo de vida. El motivo distingue
// "estado equivocado" de "muy cerca de la hora de entrega".
var (
	ErrOrderStatusInvalid        = errors.New("order status invalid for transition")
	ErrOrderCancelWrongStatus    = errors.New("order cannot be cancelled in its current status")
	ErrOrderCancelTooLate        = errors.New("order too close to delivery time to cancel")
	ErrOrderModifyWrongStatus    = errors.New("order cannot be modified in its current status")
	ErrOrderModifyTooLate        = errors.New("order too close to delivery time to modify")
	ErrModificationNotFound      = errors.New("modification request not found")
	ErrModificationAlreadyClosed = errors.New("modification request already resolved")
	ErrModificationDataRequired  = errors.New("modification request data required")
)

// Errores de acceso a datos
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderFetchFailed  = errors.New("order fetch failed")
	ErrOrderCreateFailed = errors.New("order create failed")
	ErrOrderUpdateFailed = errors.New("order update failed")
	ErrSettingsInvalid   = errors.New("business settings invalid")
)

// Errores de pago y pasarela
var (
	ErrPaymentMethodDisabled = errors.New("payment method disabled")
	ErrPaymentConfigInvalid  = errors.New("payment gateway config invalid")
	ErrPaymentGatewayFailed  = errors.New("payment gateway request failed")
	ErrTransactionIDRequired = errors.New("transaction id required")
	ErrWebhookSignature      = errors.New("webhook signature invalid")
)

// Errores de autenticación
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStaffOnly          = errors.New("staff account required")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
)
