package admin

import (
	"errors"

	"github.com/juan2005elpapu/webjanaypedidos/internal/http/response"
	"github.com/juan2005elpapu/webjanaypedidos/internal/service"

	"github.com/gin-gonic/gin"
)

// StaffLoginRequest solicitud de inicio de sesión del personal
type StaffLoginRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// GetCaptcha genera el desafío de captcha para el inicio de sesión
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}

	challenge, err := h.CaptchaService.GenerateChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible generar el captcha", err)
		return
	}

	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// StaffLogin inicia sesión del personal del negocio
func (h *Handler) StaffLogin(c *gin.Context) {
	var req StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "solicitud inválida", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.StaffLogin(req.Email, req.Password, req.CaptchaID, req.CaptchaCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaRequired):
			respondError(c, response.CodeBadRequest, "el captcha es obligatorio", nil)
		case errors.Is(err, service.ErrCaptchaInvalid):
			respondError(c, response.CodeBadRequest, "captcha incorrecto", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "correo o contraseña incorrectos", nil)
		case errors.Is(err, service.ErrStaffOnly):
			respondError(c, response.CodeForbidden, "la cuenta no pertenece al personal", nil)
		default:
			respondError(c, response.CodeInternal, "no fue posible iniciar sesión", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Me devuelve el perfil del miembro del personal autenticado
func (h *Handler) Me(c *gin.Context) {
	staffID, ok := getStaffID(c)
	if !ok {
		return
	}

	user, err := h.UserRepo.GetByID(staffID)
	if err != nil {
		respondError(c, response.CodeInternal, "no fue posible consultar el perfil", err)
		return
	}
	if user == nil || !user.IsStaff {
		respondError(c, response.CodeNotFound, "usuario no encontrado", nil)
		return
	}

	response.Success(c, user)
}
