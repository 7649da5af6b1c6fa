package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rastreio-doces-api/internal/application/auth"
	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
)

// AuthHandler cadastro por convite, login e perfil da sessão.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Signup godoc
// @Summary      Cadastro com código de convite
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "E-mail, senha, código e nome"
// @Success      201   {object}  dto.ProfileResponse
// @Failure      400   {object}  dto.ErrorResponse  "código inválido"
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Signup(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciais"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil do usuário autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Acesso godoc
// @Summary      Verifica se a sessão tem o perfil pedido
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        perfil  query  string  true  "fabrica | distribuidor"
// @Success      200  {object}  dto.AccessResponse
// @Router       /api/me/acesso [get]
func (h *AuthHandler) Acesso(c *fiber.Ctx) error {
	out, err := h.uc.Acesso(c.UserContext(), c.Query("perfil"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LinkDistribuidor godoc
// @Summary      Vincular o perfil distribuidor a um cadastro de distribuidor
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LinkDistribuidorRequest  true  "Distribuidor"
// @Success      200   {object}  dto.ProfileResponse
// @Router       /api/me/distribuidor [post]
func (h *AuthHandler) LinkDistribuidor(c *fiber.Ctx) error {
	var in dto.LinkDistribuidorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.LinkDistribuidor(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
