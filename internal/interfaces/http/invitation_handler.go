package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/invitation"
)

// InvitationHandler convites de cadastro (perfil fábrica).
type InvitationHandler struct {
	uc *invitation.UseCase
}

// NewInvitationHandler constrói o handler.
func NewInvitationHandler(uc *invitation.UseCase) *InvitationHandler {
	return &InvitationHandler{uc: uc}
}

// Create godoc
// @Summary      Enviar convite
// @Description  Gera o código, grava por e-mail (substituindo o anterior) e envia o e-mail.
// @Tags         convites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvitationRequest  true  "E-mail e perfil"
// @Success      200   {object}  dto.CreateInvitationResponse
// @Failure      400   {object}  dto.CreateInvitationResponse
// @Failure      500   {object}  dto.CreateInvitationResponse
// @Router       /api/convites [post]
func (h *InvitationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateInvitationResponse{Error: "corpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		status, body := errorStatus(c, err)
		return c.Status(status).JSON(dto.CreateInvitationResponse{Error: body.Message})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar convites
// @Tags         convites
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InvitationResponse
// @Router       /api/convites [get]
func (h *InvitationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Revogar convite não usado
// @Tags         convites
// @Security     Bearer
// @Param        id   path  string  true  "ID do convite"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "convite já utilizado"
// @Router       /api/convites/{id} [delete]
func (h *InvitationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
