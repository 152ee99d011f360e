package service

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/config"
	"github.com/juan2005elpapu/webjanaypedidos/internal/logger"
	"github.com/juan2005elpapu/webjanaypedidos/internal/models"
	"github.com/juan2005elpapu/webjanaypedidos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AuthService registro y autenticación de clientes y personal
type AuthService struct {
	cfg            *config.Config
	userRepo       repository.UserRepository
	captchaService *CaptchaService
}

// NewAuthService crea el servicio de autenticación
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, captchaService *CaptchaService) *AuthService {
	return &AuthService{
		cfg:            cfg,
		userRepo:       userRepo,
		captchaService: captchaService,
	}
}

// HashPassword cifra la contraseña con bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compara la contraseña contra el hash almacenado
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// CustomerClaims declaraciones del token de cliente
type CustomerClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// StaffClaims declaraciones del token de personal
type StaffClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	IsSuperadmin bool   `json:"is_superadmin"`
	jwt.RegisteredClaims
}

// GenerateCustomerToken genera el JWT de cliente
func (s *AuthService) GenerateCustomerToken(user *models.User, rememberMe bool) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if rememberMe && s.cfg.JWT.RememberMeExpireHours > expireHours {
		expireHours = s.cfg.JWT.RememberMeExpireHours
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)

	claims := CustomerClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseCustomerToken valida y decodifica el JWT de cliente
func (s *AuthService) ParseCustomerToken(tokenString string) (*CustomerClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &CustomerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomerClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("token inválido")
}

// GenerateStaffToken genera el JWT de personal con su propio secreto
func (s *AuthService) GenerateStaffToken(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.StaffJWT.ExpireHours) * time.Hour)

	claims := StaffClaims{
		UserID:       user.ID,
		Email:        user.Email,
		IsSuperadmin: user.IsSuperadmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.StaffJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseStaffToken valida y decodifica el JWT de personal
func (s *AuthService) ParseStaffToken(tokenString string) (*StaffClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.StaffJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*StaffClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("token inválido")
}

// RegisterInput datos de registro de cliente
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// Register crea una cuenta de cliente
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidCredentials
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Phone:        strings.TrimSpace(input.Phone),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Infow("cliente registrado", "user_id", user.ID)
	return user, nil
}

// Login autentica a un cliente y emite su token
func (s *AuthService) Login(email, password string, rememberMe bool) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateCustomerToken(user, rememberMe)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := s.userRepo.TouchLastLogin(user.ID, time.Now()); err != nil {
		logger.Warnw("no se pudo registrar el último acceso", "user_id", user.ID, "error", err)
	}
	return user, token, expiresAt, nil
}

// StaffLogin autentica al personal. Con captcha habilitado la respuesta
// del desafío es obligatoria.
func (s *AuthService) StaffLogin(email, password, captchaID, captchaCode string) (*models.User, string, time.Time, error) {
	if err := s.captchaService.Verify(captchaID, captchaCode); err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.IsStaff {
		return nil, "", time.Time{}, ErrStaffOnly
	}

	token, expiresAt, err := s.GenerateStaffToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := s.userRepo.TouchLastLogin(user.ID, time.Now()); err != nil {
		logger.Warnw("no se pudo registrar el último acceso", "user_id", user.ID, "error", err)
	}

	logger.Infow("acceso de personal", "user_id", user.ID, "is_superadmin", user.IsSuperadmin)
	return user, token, expiresAt, nil
}
