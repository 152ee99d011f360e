package constants

// Estados de pedido
const (
	OrderStatusDraft                 = "draft"
	OrderStatusPending               = "pending"
	OrderStatusConfirmed             = "confirmed"
	OrderStatusPreparing             = "preparing"
	OrderStatusReady                 = "ready"
	OrderStatusInDelivery            = "in_delivery"
	OrderStatusDelivered             = "delivered"
	OrderStatusCancelled             = "cancelled"
	OrderStatusModificationRequested = "modification_requested"
)

// Tipos de entrega
const (
	DeliveryTypePickup   = "pickup"
	DeliveryTypeDelivery = "delivery"
)

// Estados de pago
const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusCancelled = "cancelled"
)

// Métodos de pago
const (
	PaymentMethodCash  = "cash"
	PaymentMethodWompi = "wompi"
)

// Estados de transacción Wompi
const (
	WompiTxStatusApproved = "APPROVED"
	WompiTxStatusDeclined = "DECLINED"
	WompiTxStatusError    = "ERROR"
	WompiTxStatusVoided   = "VOIDED"
	WompiTxStatusPending  = "PENDING"
)

// Ambientes Wompi
const (
	WompiEnvironmentTest       = "test"
	WompiEnvironmentProduction = "production"
)

// Moneda del negocio
const (
	CurrencyCOP = "COP"
)

// Prefijo y formato del número de pedido: JY + aammdd + secuencia de 3 dígitos
const (
	OrderNoPrefix     = "JY"
	OrderNoDateLayout = "060102"
)

// Zona horaria del negocio
const (
	BusinessTimezone = "America/Bogota"
)

// Cola de tareas
const (
	QueueDefault          = "default"
	TaskPaymentReconcile  = "payment:reconcile"
	TaskOrderDraftCleanup = "order:draft_cleanup"
)

// Prefijo por defecto de claves en Redis
const (
	RedisPrefixDefault = "jy"
)

// Roles del panel administrativo
const (
	AdminRoleSuperadmin = "superadmin"
	AdminRoleStaff      = "staff"
)
