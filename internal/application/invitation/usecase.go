// Package invitation emite, lista e revoga convites de cadastro.
package invitation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/policy"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
	"github.com/jhoicas/rastreio-doces-api/pkg/validation"
)

// Mailer entrega o código ao convidado.
type Mailer interface {
	SendInvitation(ctx context.Context, to, code, tipoUsuario string) error
}

// TxRunner confirma o convite apenas se o e-mail sair.
type TxRunner interface {
	RunInvitation(ctx context.Context, fn func(invitations repository.InvitationRepository) error) error
}

// UseCase casos de uso de convite (somente perfil fábrica).
type UseCase struct {
	invitations repository.InvitationRepository
	tx          TxRunner
	mailer      Mailer
	generate    CodeGenerator
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase constrói o caso de uso. generate nil usa NumericCode.
func NewUseCase(invitations repository.InvitationRepository, tx TxRunner, mailer Mailer, generate CodeGenerator, log *logger.Logger) *UseCase {
	if generate == nil {
		generate = NumericCode
	}
	return &UseCase{invitations: invitations, tx: tx, mailer: mailer, generate: generate, log: log, now: time.Now}
}

// Create gera o código, grava (sobrescrevendo o convite anterior do e-mail) e envia o e-mail.
// Se o envio falhar nada fica gravado.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateInvitationRequest) (*dto.CreateInvitationResponse, error) {
	if _, err := policy.Authorize(ctx, policy.ConviteManage); err != nil {
		return nil, err
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !validation.Email(in.Email) {
		return nil, &validation.Error{Fields: []string{"email:email"}}
	}
	code, err := uc.generate()
	if err != nil {
		return nil, err
	}

	now := uc.now()
	inv := &entity.SignUpInvitation{
		ID:          uuid.New().String(),
		Email:       in.Email,
		Code:        code,
		TipoUsuario: in.TipoUsuario,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.RunInvitation(ctx, func(invitations repository.InvitationRepository) error {
		if err := invitations.Upsert(ctx, inv); err != nil {
			return fmt.Errorf("convites.Upsert: %w", err)
		}
		return uc.mailer.SendInvitation(ctx, inv.Email, code, inv.TipoUsuario)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("email", in.Email).Msg("convite não emitido")
		return nil, err
	}
	uc.log.Info().Str("email", in.Email).Str("tipo_usuario", in.TipoUsuario).Msg("convite emitido")
	return &dto.CreateInvitationResponse{Success: true, Email: in.Email}, nil
}

// List devolve todos os convites, sem o código.
func (uc *UseCase) List(ctx context.Context) ([]dto.InvitationResponse, error) {
	if _, err := policy.Authorize(ctx, policy.ConviteManage); err != nil {
		return nil, err
	}
	list, err := uc.invitations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("convites.List: %w", err)
	}
	out := make([]dto.InvitationResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.NewInvitationResponse(inv))
	}
	return out, nil
}

// Delete revoga um convite ainda não usado. Convite usado devolve ErrInvitationUsed.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := policy.Authorize(ctx, policy.ConviteManage); err != nil {
		return err
	}
	inv, err := uc.invitations.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("convites.Delete: %w", err)
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if inv.Used {
		return domain.ErrInvitationUsed
	}
	if err := uc.invitations.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// consumido entre a leitura e a exclusão
			return domain.ErrInvitationUsed
		}
		return fmt.Errorf("convites.Delete: %w", err)
	}
	return nil
}
