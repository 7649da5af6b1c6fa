package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/usecase"
)

// DistribuidorHandler cadastro de distribuidores e registro de distribuições.
type DistribuidorHandler struct {
	distribuidores *usecase.DistribuidorUseCase
	distribuicoes  *usecase.DistribuicaoUseCase
}

// NewDistribuidorHandler constrói o handler.
func NewDistribuidorHandler(distribuidores *usecase.DistribuidorUseCase, distribuicoes *usecase.DistribuicaoUseCase) *DistribuidorHandler {
	return &DistribuidorHandler{distribuidores: distribuidores, distribuicoes: distribuicoes}
}

// List godoc
// @Summary      Listar distribuidores
// @Tags         distribuidores
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DistribuidorResponse
// @Router       /api/distribuidores [get]
func (h *DistribuidorHandler) List(c *fiber.Ctx) error {
	out, err := h.distribuidores.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter distribuidor
// @Tags         distribuidores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do distribuidor"
// @Success      200  {object}  dto.DistribuidorResponse
// @Router       /api/distribuidores/{id} [get]
func (h *DistribuidorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.distribuidores.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Cadastrar distribuidor
// @Tags         distribuidores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DistribuidorRequest  true  "Distribuidor"
// @Success      201   {object}  dto.DistribuidorResponse
// @Failure      400   {object}  dto.ErrorResponse  "CNPJ inválido"
// @Failure      409   {object}  dto.ErrorResponse  "CNPJ já cadastrado"
// @Router       /api/distribuidores [post]
func (h *DistribuidorHandler) Create(c *fiber.Ctx) error {
	var in dto.DistribuidorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.distribuidores.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Atualizar distribuidor
// @Tags         distribuidores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do distribuidor"
// @Param        body  body  dto.DistribuidorRequest  true  "Distribuidor"
// @Success      200   {object}  dto.DistribuidorResponse
// @Router       /api/distribuidores/{id} [put]
func (h *DistribuidorHandler) Update(c *fiber.Ctx) error {
	var in dto.DistribuidorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.distribuidores.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir distribuidor sem movimentação
// @Tags         distribuidores
// @Security     Bearer
// @Param        id   path  string  true  "ID do distribuidor"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/distribuidores/{id} [delete]
func (h *DistribuidorHandler) Delete(c *fiber.Ctx) error {
	if err := h.distribuidores.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListDistribuicoes godoc
// @Summary      Listar distribuições
// @Description  Perfil distribuidor vê apenas as próprias.
// @Tags         distribuicoes
// @Security     Bearer
// @Produce      json
// @Param        lote_id          query  string  false  "Filtra por lote"
// @Param        distribuidor_id  query  string  false  "Filtra por distribuidor"
// @Success      200  {array}  dto.DistribuicaoResponse
// @Router       /api/distribuicoes [get]
func (h *DistribuidorHandler) ListDistribuicoes(c *fiber.Ctx) error {
	out, err := h.distribuicoes.List(c.UserContext(), c.Query("lote_id"), c.Query("distribuidor_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateDistribuicao godoc
// @Summary      Registrar distribuição de lote
// @Tags         distribuicoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDistribuicaoRequest  true  "Distribuição"
// @Success      201   {object}  dto.DistribuicaoResponse
// @Failure      409   {object}  dto.ErrorResponse  "lote inativo ou quantidade acima do produzido"
// @Router       /api/distribuicoes [post]
func (h *DistribuidorHandler) CreateDistribuicao(c *fiber.Ctx) error {
	var in dto.CreateDistribuicaoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.distribuicoes.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteDistribuicao godoc
// @Summary      Excluir distribuição
// @Tags         distribuicoes
// @Security     Bearer
// @Param        id   path  string  true  "ID da distribuição"
// @Success      204
// @Router       /api/distribuicoes/{id} [delete]
func (h *DistribuidorHandler) DeleteDistribuicao(c *fiber.Ctx) error {
	if err := h.distribuicoes.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
