package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rastreio-doces-api/internal/application/chat"
	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	domainchat "github.com/jhoicas/rastreio-doces-api/internal/domain/chat"
)

// ChatHandler assistente por regras e a função de dados que ele consulta.
type ChatHandler struct {
	assistant *chat.Assistant
	data      *chat.DataService
}

// NewChatHandler constrói o handler.
func NewChatHandler(assistant *chat.Assistant, data *chat.DataService) *ChatHandler {
	return &ChatHandler{assistant: assistant, data: data}
}

// Ask godoc
// @Summary      Pergunta ao assistente
// @Description  Uma pergunta por vez por usuário; falha na busca vira resposta genérica com error=true.
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Pergunta"
// @Success      200   {object}  dto.ChatReply
// @Failure      409   {object}  dto.ErrorResponse  "pergunta anterior em andamento"
// @Router       /api/chat [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.assistant.Ask(c.UserContext(), in.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Histórico da conversa
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ChatMessage
// @Router       /api/chat/historico [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	out, err := h.assistant.History(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Apagar o histórico da conversa
// @Tags         chat
// @Security     Bearer
// @Success      204
// @Router       /api/chat/historico [delete]
func (h *ChatHandler) Clear(c *fiber.Ctx) error {
	if err := h.assistant.Clear(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Data godoc
// @Summary      Função de dados do assistente
// @Description  action: get_all_data | search_orders | get_order_details | general_query.
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatbotDataRequest  true  "Pergunta e ação"
// @Success      200   {object}  dto.ChatbotDataResponse
// @Failure      400   {object}  dto.ChatbotDataResponse
// @Router       /api/chatbot-data [post]
func (h *ChatHandler) Data(c *fiber.Ctx) error {
	var in dto.ChatbotDataRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ChatbotDataResponse{Error: "corpo inválido"})
	}
	data, err := h.data.Payload(c.UserContext(), in.Query, domainchat.Intent(strings.TrimSpace(in.Action)))
	if err != nil {
		status, body := errorStatus(c, err)
		return c.Status(status).JSON(dto.ChatbotDataResponse{Error: body.Message})
	}
	return c.JSON(dto.ChatbotDataResponse{Success: true, Data: data})
}
