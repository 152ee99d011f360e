package main

import (
	"flag"
	"os"
	"strings"
	"syscall"

	"github.com/juan2005elpapu/webjanaypedidos/internal/app"
	"github.com/juan2005elpapu/webjanaypedidos/internal/config"
	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) || isWeakSecret(cfg.StaffJWT.SecretKey) {
			stdLog.Fatalf("el secreto JWT es débil o sigue en su valor por defecto; configura una clave aleatoria fuerte en producción")
		}
	} else if isWeakSecret(cfg.JWT.SecretKey) || isWeakSecret(cfg.StaffJWT.SecretKey) {
		stdLog.Printf("advertencia: el secreto JWT es débil o sigue en su valor por defecto")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("fallo al inicializar la base de datos: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("fallo al migrar la base de datos: %v", err)
	}

	// Cuenta inicial del personal
	defaultStaffEmail := os.Getenv("JY_DEFAULT_STAFF_EMAIL")
	defaultStaffPass := os.Getenv("JY_DEFAULT_STAFF_PASSWORD")
	if cfg.Server.Mode == "release" && defaultStaffPass == "" {
		stdLog.Printf("advertencia: JY_DEFAULT_STAFF_PASSWORD no está definida, se omite la cuenta inicial del personal")
	} else if err := models.InitDefaultStaff(defaultStaffEmail, defaultStaffPass); err != nil {
		stdLog.Printf("advertencia: fallo al crear la cuenta inicial del personal: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "modo de arranque: all (por defecto), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("fallo al ejecutar el servicio: %v", err)
	}
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
