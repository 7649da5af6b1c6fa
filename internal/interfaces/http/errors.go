package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/pkg/validation"
)

// statusFor traduz o erro do caso de uso em status HTTP e corpo de erro.
func statusFor(err error) (int, dto.ErrorResponse) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "campos inválidos ou ausentes", Fields: verr.Fields}
	case errors.Is(err, domain.ErrInvalidQR):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_QR", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInviteCode):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_CODE", Message: domain.ErrInvalidInviteCode.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciais inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "Acesso restrito"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()}
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, domain.ErrProductInUse):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "PRODUCT_IN_USE", Message: err.Error()}
	case errors.Is(err, domain.ErrInvitationUsed):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVITATION_USED", Message: err.Error()}
	case errors.Is(err, domain.ErrChatBusy):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CHAT_BUSY", Message: err.Error()}
	case errors.Is(err, domain.ErrLotInactive):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "LOT_INACTIVE", Message: err.Error()}
	case errors.Is(err, domain.ErrQuantityExceeded):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "QUANTITY_EXCEEDED", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrStorageDisabled):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "STORAGE_DISABLED", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"}
	}
}

// respondError escreve a resposta de erro; erros não mapeados são registrados no log.
func respondError(c *fiber.Ctx, err error) error {
	status, body := errorStatus(c, err)
	return c.Status(status).JSON(body)
}

// errorStatus é statusFor com registro em log dos erros 500. Handlers com corpo de erro próprio usam este.
func errorStatus(c *fiber.Ctx, err error) (int, dto.ErrorResponse) {
	status, body := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("erro não tratado")
	}
	return status, body
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
}
