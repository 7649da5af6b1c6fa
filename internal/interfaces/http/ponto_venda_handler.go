package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/usecase"
)

// PontoVendaHandler pontos de venda do distribuidor e vendas registradas neles.
type PontoVendaHandler struct {
	uc *usecase.PontoVendaUseCase
}

// NewPontoVendaHandler constrói o handler.
func NewPontoVendaHandler(uc *usecase.PontoVendaUseCase) *PontoVendaHandler {
	return &PontoVendaHandler{uc: uc}
}

// List godoc
// @Summary      Listar pontos de venda
// @Description  Distribuidor vê os próprios; fábrica informa distribuidor_id.
// @Tags         pontos-venda
// @Security     Bearer
// @Produce      json
// @Param        distribuidor_id  query  string  false  "Obrigatório para o perfil fábrica"
// @Success      200  {array}  dto.PontoVendaResponse
// @Router       /api/pontos-venda [get]
func (h *PontoVendaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("distribuidor_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Cadastrar ponto de venda
// @Tags         pontos-venda
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PontoVendaRequest  true  "Ponto de venda"
// @Success      201   {object}  dto.PontoVendaResponse
// @Router       /api/pontos-venda [post]
func (h *PontoVendaHandler) Create(c *fiber.Ctx) error {
	var in dto.PontoVendaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Atualizar ponto de venda
// @Tags         pontos-venda
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do ponto de venda"
// @Param        body  body  dto.PontoVendaRequest  true  "Ponto de venda"
// @Success      200   {object}  dto.PontoVendaResponse
// @Router       /api/pontos-venda/{id} [put]
func (h *PontoVendaHandler) Update(c *fiber.Ctx) error {
	var in dto.PontoVendaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir ponto de venda sem vendas
// @Tags         pontos-venda
// @Security     Bearer
// @Param        id   path  string  true  "ID do ponto de venda"
// @Success      204
// @Router       /api/pontos-venda/{id} [delete]
func (h *PontoVendaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListVendas godoc
// @Summary      Listar vendas
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        distribuidor_id  query  string  false  "Obrigatório para o perfil fábrica"
// @Param        ponto_venda_id   query  string  false  "Filtra por ponto de venda"
// @Success      200  {array}  dto.VendaResponse
// @Router       /api/vendas [get]
func (h *PontoVendaHandler) ListVendas(c *fiber.Ctx) error {
	out, err := h.uc.ListVendas(c.UserContext(), c.Query("distribuidor_id"), c.Query("ponto_venda_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateVenda godoc
// @Summary      Registrar venda no ponto de venda
// @Description  valor_total = quantidade × valor_unitario.
// @Tags         vendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVendaRequest  true  "Venda"
// @Success      201   {object}  dto.VendaResponse
// @Router       /api/vendas [post]
func (h *PontoVendaHandler) CreateVenda(c *fiber.Ctx) error {
	var in dto.CreateVendaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateVenda(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteVenda godoc
// @Summary      Excluir venda
// @Tags         vendas
// @Security     Bearer
// @Param        id   path  string  true  "ID da venda"
// @Success      204
// @Router       /api/vendas/{id} [delete]
func (h *PontoVendaHandler) DeleteVenda(c *fiber.Ctx) error {
	if err := h.uc.DeleteVenda(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
