package dto

import "time"

// ChatRequest pergunta livre enviada ao assistente.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// ChatReply resposta renderizada e a intenção usada.
type ChatReply struct {
	Intent string `json:"intent"`
	Reply  string `json:"reply"`
	Error  bool   `json:"error"` // true quando a busca falhou e a resposta é a mensagem genérica
}

// ChatMessage entrada do histórico da conversa.
type ChatMessage struct {
	Role      string    `json:"role"` // user | assistant
	Content   string    `json:"content"`
	Error     bool      `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatbotDataRequest corpo da função de dados: {query, action}.
type ChatbotDataRequest struct {
	Query  string `json:"query"`
	Action string `json:"action" validate:"required"`
}

// ChatbotDataResponse {success:true, data} ou {success:false, error}.
type ChatbotDataResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}
