package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bymsoft/inventario-lotes/internal/application/auth"
	"github.com/bymsoft/inventario-lotes/internal/application/dto"
)

// AuthHandler maneja el login.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "usuario y contraseña"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, rol, err := h.uc.Login(in.Usuario, in.Contrasena)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token, Usuario: in.Usuario, Rol: rol})
}
