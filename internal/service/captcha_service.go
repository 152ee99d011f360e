package service

import (
	"strings"
	"sync"
	"time"

	"github.com/juan2005elpapu/webjanaypedidos/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaChallenge desafío de imagen para el login del personal
type CaptchaChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService captcha de imagen controlado por configuración.
// Deshabilitado es un no-op: Verify acepta cualquier entrada.
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService crea el servicio de captcha
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// Enabled indica si el captcha está habilitado
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateChallenge genera un captcha de imagen
func (s *CaptchaService) GenerateChallenge() (*CaptchaChallenge, error) {
	if !s.Enabled() {
		return nil, ErrCaptchaRequired
	}

	driver := base64Captcha.NewDriverString(
		s.dimension(s.cfg.Height, 80),
		s.dimension(s.cfg.Width, 240),
		s.cfg.NoiseCount,
		s.cfg.ShowLine,
		s.dimension(s.cfg.Length, 5),
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}

	return &CaptchaChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify valida la respuesta del captcha. El código se consume al usarse.
func (s *CaptchaService) Verify(captchaID, captchaCode string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	captchaCode = strings.TrimSpace(captchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	if !s.ensureStore().Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) ensureStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		maxStore := s.dimension(s.cfg.MaxStore, 10240)
		expire := time.Duration(s.dimension(s.cfg.ExpireSeconds, 300)) * time.Second
		s.store = base64Captcha.NewMemoryStore(maxStore, expire)
	}
	return s.store
}

func (s *CaptchaService) dimension(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
