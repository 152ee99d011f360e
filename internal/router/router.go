package router

import (
	"fmt"
	"strings"

	"github.com/juan2005elpapu/webjanaypedidos/internal/cache"
	"github.com/juan2005elpapu/webjanaypedidos/internal/config"
	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
	adminhandlers "github.com/juan2005elpapu/webjanaypedidos/internal/http/handlers/admin"
	publichandlers "github.com/juan2005elpapu/webjanaypedidos/internal/http/handlers/public"
	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"
	"github.com/juan2005elpapu/webjanaypedidos/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter arma las rutas del API
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxRequests,
		Message:       "demasiados intentos de inicio de sesión, espera un momento",
	}
	staffLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:staff_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxRequests,
		Message:       "demasiados intentos de inicio de sesión, espera un momento",
	}
	webhookRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:webhook", redisPrefix),
		WindowSeconds: cfg.Security.WebhookRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.WebhookRateLimit.MaxRequests,
		Message:       "demasiadas solicitudes",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Imágenes del menú subidas por el personal
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		// Vitrina pública: menú y datos del negocio
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
		}

		// Autenticación de clientes
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}
		apiV1.GET("/captcha", publicHandler.GetCaptcha)

		// Webhook de la pasarela de pagos (sin autenticación, con firma propia)
		apiV1.POST("/payments/wompi/events", RateLimitMiddleware(redisClient, webhookRule, KeyByIP), publicHandler.WompiWebhook)

		// Portal del cliente (requiere sesión)
		customer := apiV1.Group("")
		customer.Use(CustomerAuthMiddleware(c.AuthService))
		{
			customer.GET("/me", publicHandler.Me)

			customer.POST("/orders", publicHandler.CreateOrder)
			customer.GET("/orders", publicHandler.ListOrders)
			customer.GET("/orders/:id", publicHandler.GetOrder)
			customer.POST("/orders/:id/cancel", publicHandler.CancelOrder)

			customer.POST("/orders/:id/modifications", publicHandler.FileModification)
			customer.GET("/orders/:id/modifications", publicHandler.ListModifications)

			customer.GET("/orders/:id/payment/checkout", publicHandler.InitCheckout)
			customer.GET("/orders/:id/payment/result", publicHandler.PaymentResult)
		}

		// Panel de administración
		admin := apiV1.Group("/admin")
		{
			admin.GET("/auth/captcha", adminHandler.GetCaptcha)
			admin.POST("/login", RateLimitMiddleware(redisClient, staffLoginRule, KeyByIP), adminHandler.StaffLogin)

			authorized := admin.Group("")
			authorized.Use(StaffAuthMiddleware(c.AuthService), StaffRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.Me)

				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
				authorized.PUT("/orders/:id/notes", adminHandler.UpdateAdminNotes)
				authorized.GET("/stats", adminHandler.GetStats)

				authorized.GET("/modifications", adminHandler.ListModifications)
				authorized.PUT("/modifications/:id/resolve", adminHandler.ResolveModification)

				authorized.GET("/settings", adminHandler.GetSettings)
				authorized.PUT("/settings", adminHandler.UpdateSettings)

				authorized.GET("/products", adminHandler.ListProducts)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.PUT("/products/:id/availability", adminHandler.SetProductAvailability)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				authorized.GET("/categories", adminHandler.ListCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
			}
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "ruta no encontrada")
	})

	return r
}
