package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/qrcode"
)

// DecodeQR godoc
// @Summary      Interpretar o texto lido de um QR code
// @Tags         qrcode
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DecodeQRRequest  true  "Texto lido"
// @Success      200   {object}  qrcode.Payload
// @Failure      400   {object}  dto.ErrorResponse  "INVALID_QR"
// @Router       /api/qrcode/decode [post]
func DecodeQR(c *fiber.Ctx) error {
	var in dto.DecodeQRRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := qrcode.Decode(in.Payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// ScanError godoc
// @Summary      Mensagem para falha ao abrir a câmera
// @Tags         qrcode
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanErrorRequest  true  "Nome do erro do navegador"
// @Success      200   {object}  qrcode.ScanError
// @Router       /api/qrcode/scan-error [post]
func ScanError(c *fiber.Ctx) error {
	var in dto.ScanErrorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(qrcode.ClassifyScanError(in.Name))
}
