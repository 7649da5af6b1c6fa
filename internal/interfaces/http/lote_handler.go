package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/qrcode"
	"github.com/jhoicas/rastreio-doces-api/internal/application/usecase"
)

// LoteHandler lotes de produção, rastreio e QR code.
type LoteHandler struct {
	uc *usecase.LoteUseCase
	qr *qrcode.UseCase
}

// NewLoteHandler constrói o handler.
func NewLoteHandler(uc *usecase.LoteUseCase, qr *qrcode.UseCase) *LoteHandler {
	return &LoteHandler{uc: uc, qr: qr}
}

// List godoc
// @Summary      Listar lotes
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "ativo | inativo"
// @Param        limit   query  int     false  "Limite"  default(100)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.LoteListResponse
// @Router       /api/lotes [get]
func (h *LoteHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(c.UserContext(), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter lote com itens
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do lote"
// @Success      200  {object}  dto.LoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lotes/{id} [get]
func (h *LoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Cadastrar lote com itens
// @Tags         lotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLoteRequest  true  "Lote"
// @Success      201   {object}  dto.LoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "código de lote já existe"
// @Router       /api/lotes [post]
func (h *LoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoteRequest
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
// @Summary      Atualizar cabeçalho do lote
// @Tags         lotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do lote"
// @Param        body  body  dto.UpdateLoteRequest  true  "Campos alterados"
// @Success      200   {object}  dto.LoteResponse
// @Router       /api/lotes/{id} [put]
func (h *LoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Ativar ou inativar lote
// @Tags         lotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do lote"
// @Param        body  body  dto.UpdateLoteStatusRequest  true  "Novo status"
// @Success      200   {object}  dto.LoteResponse
// @Router       /api/lotes/{id}/status [patch]
func (h *LoteHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateLoteStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir lote (itens, distribuições e vendas juntos)
// @Tags         lotes
// @Security     Bearer
// @Param        id   path  string  true  "ID do lote"
// @Success      204
// @Router       /api/lotes/{id} [delete]
func (h *LoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Rastreio godoc
// @Summary      Rastreio do lote
// @Description  Itens, distribuições, localização atual (distribuição mais recente) e vendas.
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do lote"
// @Success      200  {object}  dto.RastreioResponse
// @Router       /api/lotes/{id}/rastreio [get]
func (h *LoteHandler) Rastreio(c *fiber.Ctx) error {
	out, err := h.uc.Rastreio(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// QRCode godoc
// @Summary      PNG do QR code do lote
// @Tags         qrcode
// @Security     Bearer
// @Produce      png
// @Param        id   path  string  true  "ID do lote"
// @Success      200  {file}  binary
// @Router       /api/lotes/{id}/qrcode [get]
func (h *LoteHandler) QRCode(c *fiber.Ctx) error {
	img, err := h.qr.PNG(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Type("png")
	return c.Send(img)
}

// QRPayload godoc
// @Summary      Conteúdo gravado no QR code do lote
// @Tags         qrcode
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do lote"
// @Success      200  {object}  qrcode.Payload
// @Router       /api/lotes/{id}/qrcode/payload [get]
func (h *LoteHandler) QRPayload(c *fiber.Ctx) error {
	out, err := h.qr.Payload(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Etiqueta godoc
// @Summary      Etiqueta PDF do lote com QR code
// @Tags         qrcode
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID do lote"
// @Success      200  {file}  binary
// @Router       /api/lotes/{id}/etiqueta [get]
func (h *LoteHandler) Etiqueta(c *fiber.Ctx) error {
	doc, codigo, err := h.qr.Label(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="etiqueta-`+codigo+`.pdf"`)
	return c.Send(doc)
}

// Publicar godoc
// @Summary      Publicar o PNG do QR no armazenamento de objetos
// @Tags         qrcode
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do lote"
// @Success      200  {object}  dto.PublishQRResponse
// @Failure      503  {object}  dto.ErrorResponse  "armazenamento não configurado"
// @Router       /api/lotes/{id}/qrcode/publicar [post]
func (h *LoteHandler) Publicar(c *fiber.Ctx) error {
	url, err := h.qr.Publish(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PublishQRResponse{URL: url})
}
