// migrate aplica as migrations embutidas e, opcionalmente, emite o primeiro convite de fábrica.
//
// Uso: go run ./cmd/migrate [email-da-fabrica]
// Com e-mail, grava (ou reemite) o convite com perfil fabrica e imprime o código no log,
// já que antes do primeiro cadastro ninguém tem permissão para convidar.
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rastreio-doces-api/internal/application/invitation"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/infrastructure/postgres"
	"github.com/jhoicas/rastreio-doces-api/pkg/config"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
	"github.com/jhoicas/rastreio-doces-api/pkg/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"}).Component("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Strs("aplicadas", applied).Msg("migrations")
	}
	log.Info().Strs("aplicadas", applied).Msg("migrations concluídas")

	if len(os.Args) < 2 {
		return
	}
	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	if !validation.Email(email) {
		log.Fatal().Str("email", email).Msg("e-mail inválido")
	}
	code, err := invitation.GeneratorFor(cfg.Invite.CodeFormat)()
	if err != nil {
		log.Fatal().Err(err).Msg("gerar código")
	}
	now := time.Now().UTC()
	inv := &entity.SignUpInvitation{
		ID:          uuid.New().String(),
		Email:       email,
		Code:        code,
		TipoUsuario: entity.RoleFabrica,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := postgres.NewInvitationRepository(pool).Upsert(ctx, inv); err != nil {
		log.Fatal().Err(err).Msg("gravar convite")
	}
	log.Info().Str("email", email).Str("code", code).Msg("convite de fábrica emitido")
}
