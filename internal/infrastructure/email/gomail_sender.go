// Package email envia os e-mails de convite via SMTP (gomail).
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/rastreio-doces-api/pkg/config"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
)

var inviteTmpl = template.Must(template.New("convite").Parse(`<p>Olá!</p>
<p>Você foi convidado para acessar o sistema de rastreio como <strong>{{.Perfil}}</strong>.</p>
<p>Seu código de convite é: <strong style="font-size:20px;letter-spacing:2px">{{.Code}}</strong></p>
{{if .SignupURL}}<p>Cadastre-se em <a href="{{.SignupURL}}">{{.SignupURL}}</a> usando este e-mail e o código acima.</p>{{end}}
<p>O código vale para um único cadastro.</p>`))

// Sender implementa invitation.Mailer. Sem SMTP_HOST o envio é apenas registrado em log.
type Sender struct {
	cfg       config.SMTPConfig
	signupURL string
	log       *logger.Logger
	dial      func(m *gomail.Message) error
}

// NewSender constrói o remetente.
func NewSender(cfg config.SMTPConfig, signupURL string, log *logger.Logger) *Sender {
	s := &Sender{cfg: cfg, signupURL: signupURL, log: log}
	if cfg.Host != "" {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		s.dial = func(m *gomail.Message) error { return d.DialAndSend(m) }
	}
	return s
}

// SendInvitation envia o código ao convidado.
func (s *Sender) SendInvitation(ctx context.Context, to, code, tipoUsuario string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := s.renderInvitation(code, tipoUsuario)
	if err != nil {
		return err
	}

	if s.dial == nil {
		s.log.Warn().Str("to", to).Str("tipo_usuario", tipoUsuario).Msg("SMTP não configurado; convite não enviado por e-mail")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Seu convite de acesso")
	m.SetBody("text/html", body)

	if err := s.dial(m); err != nil {
		return fmt.Errorf("email: enviar convite: %w", err)
	}
	s.log.Info().Str("to", to).Msg("convite enviado")
	return nil
}

func (s *Sender) renderInvitation(code, tipoUsuario string) (string, error) {
	var body bytes.Buffer
	err := inviteTmpl.Execute(&body, struct {
		Perfil, Code, SignupURL string
	}{perfilLabel(tipoUsuario), code, s.signupURL})
	if err != nil {
		return "", fmt.Errorf("email: montar convite: %w", err)
	}
	return body.String(), nil
}

func perfilLabel(tipo string) string {
	switch tipo {
	case "fabrica":
		return "Fábrica"
	case "distribuidor":
		return "Distribuidor"
	default:
		return tipo
	}
}
