package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/rastreio-doces-api/pkg/config"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
)

func TestSendInvitation_SemSMTPSomenteLoga(t *testing.T) {
	s := NewSender(config.SMTPConfig{}, "", logger.Nop())
	assert.Nil(t, s.dial)
	assert.NoError(t, s.SendInvitation(context.Background(), "ana@doces.com", "123456", "fabrica"))
}

func TestSendInvitation_Cabecalhos(t *testing.T) {
	s := NewSender(config.SMTPConfig{From: "convites@doces.com"}, "https://app/cadastro", logger.Nop())
	var sent *gomail.Message
	s.dial = func(m *gomail.Message) error { sent = m; return nil }

	require.NoError(t, s.SendInvitation(context.Background(), "ana@doces.com", "AB12CD34", "distribuidor"))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"ana@doces.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"convites@doces.com"}, sent.GetHeader("From"))
}

func TestRenderInvitation(t *testing.T) {
	s := NewSender(config.SMTPConfig{}, "https://app/cadastro", logger.Nop())
	body, err := s.renderInvitation("AB12CD34", "distribuidor")
	require.NoError(t, err)
	assert.Contains(t, body, "AB12CD34")
	assert.Contains(t, body, "<strong>Distribuidor</strong>")
	assert.Contains(t, body, `href="https://app/cadastro"`)
}

func TestSendInvitation_FalhaDoSMTP(t *testing.T) {
	s := NewSender(config.SMTPConfig{}, "", logger.Nop())
	s.dial = func(*gomail.Message) error { return errors.New("connection refused") }
	err := s.SendInvitation(context.Background(), "ana@doces.com", "123456", "fabrica")
	assert.ErrorContains(t, err, "connection refused")
}

func TestSendInvitation_ContextoCancelado(t *testing.T) {
	s := NewSender(config.SMTPConfig{}, "", logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.SendInvitation(ctx, "ana@doces.com", "123456", "fabrica"), context.Canceled)
}
