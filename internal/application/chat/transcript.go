package chat

import (
	"sync"
	"time"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type conversation struct {
	messages []dto.ChatMessage
	inFlight bool
}

// Transcripts histórico por usuário, só cresce. Cada usuário tem no máximo uma pergunta em andamento.
type Transcripts struct {
	mu    sync.Mutex
	users map[string]*conversation
	now   func() time.Time
}

// NewTranscripts cria o armazenamento vazio.
func NewTranscripts() *Transcripts {
	return &Transcripts{users: make(map[string]*conversation), now: time.Now}
}

// Begin registra a pergunta e marca a conversa como ocupada.
// Com outra pergunta em andamento devolve ErrChatBusy e não registra nada.
func (t *Transcripts) Begin(userID, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.users[userID]
	if !ok {
		c = &conversation{}
		t.users[userID] = c
	}
	if c.inFlight {
		return domain.ErrChatBusy
	}
	c.inFlight = true
	c.messages = append(c.messages, dto.ChatMessage{Role: RoleUser, Content: text, CreatedAt: t.now()})
	return nil
}

// Finish grava a resposta (ou a mensagem de erro) e libera a conversa.
func (t *Transcripts) Finish(userID, reply string, failed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.users[userID]
	if !ok {
		return
	}
	c.inFlight = false
	c.messages = append(c.messages, dto.ChatMessage{Role: RoleAssistant, Content: reply, Error: failed, CreatedAt: t.now()})
}

// History cópia do histórico em ordem de envio.
func (t *Transcripts) History(userID string) []dto.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.users[userID]
	if !ok {
		return []dto.ChatMessage{}
	}
	out := make([]dto.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Clear apaga o histórico do usuário (logout). Pergunta em andamento mantém a conversa.
func (t *Transcripts) Clear(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.users[userID]; ok && !c.inFlight {
		delete(t.users, userID)
	}
}
