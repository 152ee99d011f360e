package provider

import (
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/authz"
	"github.com/juan2005elpapu/webjanaypedidos/internal/cache"
	"github.com/juan2005elpapu/webjanaypedidos/internal/config"
	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/queue"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"
	"github.com/juan2005elpapu/webjanaypedidos/internal/service"
)

// Container contenedor de dependencias
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositorios
	UserRepo             repository.UserRepository
	OrderRepo            repository.OrderRepository
	ProductRepo          repository.ProductRepository
	CategoryRepo         repository.CategoryRepository
	ModificationRepo     repository.ModificationRequestRepository
	BusinessSettingsRepo repository.BusinessSettingsRepository

	// Servicios
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	CaptchaService      *service.CaptchaService
	SettingsService     *service.SettingsService
	CatalogService      *service.CatalogService
	OrderService        *service.OrderService
	ModificationService *service.ModificationService
	PaymentService      *service.PaymentService
}

// NewContainer inicializa el contenedor
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ModificationRepo = repository.NewModificationRequestRepository(db)
	c.BusinessSettingsRepo = repository.NewBusinessSettingsRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingsService = service.NewSettingsService(c.BusinessSettingsRepo, c.Config.Business.Timezone)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.CaptchaService)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.CategoryRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.SettingsService)
	c.ModificationService = service.NewModificationService(c.OrderRepo, c.ModificationRepo, c.SettingsService)

	reconcileDelay := time.Duration(c.Config.Business.PaymentReconcileDelayMS) * time.Millisecond
	c.PaymentService = service.NewPaymentService(c.OrderRepo, c.SettingsService, c.QueueClient, reconcileDelay)
}
