package service

import (
	"errors"
	"testing"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/config"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "clave-de-prueba-para-clientes-0123456789"
	cfg.JWT.ExpireHours = 24
	cfg.JWT.RememberMeExpireHours = 168
	cfg.StaffJWT.SecretKey = "clave-de-prueba-para-personal-0123456789"
	cfg.StaffJWT.ExpireHours = 8

	userRepo := repository.NewUserRepository(db)
	captchaService := NewCaptchaService(config.CaptchaConfig{Enabled: false})
	return NewAuthService(cfg, userRepo, captchaService)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupAuthService(t)

	user, err := svc.Register(RegisterInput{
		Email:    " Laura@Janay.co ",
		Password: "contraseña-segura",
		Name:     "Laura Pérez",
		Phone:    "3001234567",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "laura@janay.co" {
		t.Fatalf("email = %s, want normalized lowercase", user.Email)
	}
	if user.PasswordHash == "contraseña-segura" {
		t.Fatal("password stored in plain text")
	}

	logged, token, expiresAt, err := svc.Login("laura@janay.co", "contraseña-segura", false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatal("login returned wrong user or empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token already expired: %v", expiresAt)
	}

	claims, err := svc.ParseCustomerToken(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims = %d/%s, want %d/%s", claims.UserID, claims.Email, user.ID, user.Email)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := setupAuthService(t)

	if _, err := svc.Register(RegisterInput{Email: "no-es-correo", Password: "contraseña-segura"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad email: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Register(RegisterInput{Email: "laura@janay.co", Password: "corta"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("short password: got %v, want ErrInvalidCredentials", err)
	}

	if _, err := svc.Register(RegisterInput{Email: "laura@janay.co", Password: "contraseña-segura"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(RegisterInput{Email: "LAURA@janay.co", Password: "otra-contraseña"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: got %v, want ErrEmailTaken", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := setupAuthService(t)

	if _, _, _, err := svc.Login("nadie@janay.co", "lo-que-sea", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v, want ErrInvalidCredentials", err)
	}

	if _, err := svc.Register(RegisterInput{Email: "laura@janay.co", Password: "contraseña-segura"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Login("laura@janay.co", "contraseña-mala", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestStaffLoginRequiresStaffAccount(t *testing.T) {
	svc := setupAuthService(t)

	if _, err := svc.Register(RegisterInput{Email: "cliente@janay.co", Password: "contraseña-segura"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.StaffLogin("cliente@janay.co", "contraseña-segura", "", ""); !errors.Is(err, ErrStaffOnly) {
		t.Fatalf("customer account: got %v, want ErrStaffOnly", err)
	}

	if err := models.DB.Model(&models.User{}).
		Where("email = ?", "cliente@janay.co").
		Update("is_staff", true).Error; err != nil {
		t.Fatalf("promote to staff failed: %v", err)
	}

	user, token, _, err := svc.StaffLogin("cliente@janay.co", "contraseña-segura", "", "")
	if err != nil {
		t.Fatalf("staff login failed: %v", err)
	}
	if token == "" {
		t.Fatal("empty staff token")
	}

	claims, err := svc.ParseStaffToken(token)
	if err != nil {
		t.Fatalf("parse staff token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.IsSuperadmin {
		t.Fatalf("unexpected staff claims: %+v", claims)
	}
}

func TestTokenSecretsAreIsolated(t *testing.T) {
	svc := setupAuthService(t)

	user := &models.User{Email: "laura@janay.co"}
	user.ID = 1

	customerToken, _, err := svc.GenerateCustomerToken(user, false)
	if err != nil {
		t.Fatalf("generate customer token failed: %v", err)
	}

	// Un token de cliente nunca pasa como token de personal
	if _, err := svc.ParseStaffToken(customerToken); err == nil {
		t.Fatal("customer token accepted as staff token")
	}
}

func TestRememberMeExtendsExpiry(t *testing.T) {
	svc := setupAuthService(t)

	user := &models.User{Email: "laura@janay.co"}
	user.ID = 1

	_, short, err := svc.GenerateCustomerToken(user, false)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	_, long, err := svc.GenerateCustomerToken(user, true)
	if err != nil {
		t.Fatalf("generate remembered token failed: %v", err)
	}
	if !long.After(short) {
		t.Fatalf("remember me expiry %v not after %v", long, short)
	}
}
