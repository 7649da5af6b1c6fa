package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/chat"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/policy"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
)

const defaultTimeout = 15 * time.Second

// Assistant classifica a pergunta, consulta a função de dados com prazo e renderiza a resposta.
// Sem nova tentativa: uma falha vira ErrorReply no histórico.
type Assistant struct {
	data        DataSource
	transcripts *Transcripts
	timeout     time.Duration
	log         *logger.Logger
}

// NewAssistant constrói o assistente. timeout <= 0 usa 15s.
func NewAssistant(data DataSource, transcripts *Transcripts, timeout time.Duration, log *logger.Logger) *Assistant {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Assistant{data: data, transcripts: transcripts, timeout: timeout, log: log}
}

// Ask responde a pergunta do usuário da sessão.
func (a *Assistant) Ask(ctx context.Context, text string) (*dto.ChatReply, error) {
	s, err := policy.Authorize(ctx, policy.ChatUse)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: mensagem vazia", domain.ErrInvalidInput)
	}
	if err := a.transcripts.Begin(s.UserID, text); err != nil {
		return nil, err
	}

	intent := chat.Classify(text)
	fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.data.Fetch(fetchCtx, text, intent)
	if err != nil {
		a.log.Error().Err(err).Str("intent", string(intent)).Str("user_id", s.UserID).Msg("chat: falha na função de dados")
		a.transcripts.Finish(s.UserID, ErrorReply, true)
		return &dto.ChatReply{Intent: string(intent), Reply: ErrorReply, Error: true}, nil
	}
	reply := Render(text, raw)
	a.transcripts.Finish(s.UserID, reply, false)
	return &dto.ChatReply{Intent: string(intent), Reply: reply}, nil
}

// History histórico do usuário da sessão.
func (a *Assistant) History(ctx context.Context) ([]dto.ChatMessage, error) {
	s, err := policy.Authorize(ctx, policy.ChatUse)
	if err != nil {
		return nil, err
	}
	return a.transcripts.History(s.UserID), nil
}

// Clear apaga o histórico do usuário da sessão.
func (a *Assistant) Clear(ctx context.Context) error {
	s, err := policy.Authorize(ctx, policy.ChatUse)
	if err != nil {
		return err
	}
	a.transcripts.Clear(s.UserID)
	return nil
}
