// Package auth cadastra usuários por convite, autentica e expõe o perfil da sessão.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/session"
	"github.com/jhoicas/rastreio-doces-api/pkg/jwt"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
	"github.com/jhoicas/rastreio-doces-api/pkg/validation"
)

const userActive = "active"

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SignupTxRunner usuário, perfil e consumo do convite na mesma transação.
type SignupTxRunner interface {
	RunSignup(ctx context.Context, fn func(
		users repository.UserRepository,
		profiles repository.ProfileRepository,
		invitations repository.InvitationRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticação.
type AuthUseCase struct {
	users          repository.UserRepository
	profiles       repository.ProfileRepository
	distribuidores repository.DistribuidorRepository
	tx             SignupTxRunner
	jwtCfg         JWTConfig
	hashCost       int
	log            *logger.Logger
	now            func() time.Time
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	distribuidores repository.DistribuidorRepository,
	tx SignupTxRunner,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:          users,
		profiles:       profiles,
		distribuidores: distribuidores,
		tx:             tx,
		jwtCfg:         jwtCfg,
		hashCost:       bcrypt.DefaultCost,
		log:            log,
		now:            time.Now,
	}
}

// WithHashCost ajusta o custo do bcrypt (testes usam bcrypt.MinCost).
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.hashCost = cost
	return uc
}

// Signup consome o convite (email, code) e cria usuário e perfil com o tipo do convite.
// Convite inexistente, já usado ou de outro e-mail devolve ErrInvalidInviteCode.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.ProfileResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Nome = strings.TrimSpace(in.Nome)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Status:       userActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var profile *entity.Profile
	err = uc.tx.RunSignup(ctx, func(users repository.UserRepository, profiles repository.ProfileRepository, invitations repository.InvitationRepository) error {
		inv, err := invitations.FindActive(ctx, in.Email, in.Code)
		if err != nil {
			return fmt.Errorf("auth.Signup: %w", err)
		}
		if inv == nil {
			return domain.ErrInvalidInviteCode
		}
		existing, err := users.GetByEmail(ctx, in.Email)
		if err != nil {
			return fmt.Errorf("auth.Signup: %w", err)
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("auth.Signup: %w", err)
		}
		profile = &entity.Profile{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			Nome:        in.Nome,
			TipoUsuario: inv.TipoUsuario,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := profiles.Create(ctx, profile); err != nil {
			return fmt.Errorf("auth.Signup: %w", err)
		}
		if err := invitations.MarkUsed(ctx, inv.ID, now); err != nil {
			if errors.Is(err, domain.ErrInvitationUsed) {
				// outro cadastro consumiu o convite primeiro
				return domain.ErrInvalidInviteCode
			}
			return fmt.Errorf("auth.Signup: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("tipo_usuario", profile.TipoUsuario).Msg("usuário cadastrado por convite")
	return profileResponse(user, profile), nil
}

// Login verifica e-mail e senha e emite o JWT com perfil e distribuidor vinculado.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != userActive {
		return nil, domain.ErrForbidden
	}
	profile, err := uc.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if profile == nil || !entity.ValidRole(profile.TipoUsuario) {
		return nil, fmt.Errorf("%w: usuário sem perfil", domain.ErrForbidden)
	}

	sub := jwt.Subject{UserID: user.ID, Email: user.Email, Role: profile.TipoUsuario}
	if profile.DistribuidorID != nil {
		sub.DistribuidorID = *profile.DistribuidorID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, sub)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Profile: *profileResponse(user, profile)}, nil
}

// Me devolve o perfil do usuário da sessão.
func (uc *AuthUseCase) Me(ctx context.Context) (*dto.ProfileResponse, error) {
	s, ok := session.From(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	user, profile, err := uc.load(ctx, s.UserID)
	if err != nil {
		return nil, err
	}
	return profileResponse(user, profile), nil
}

// Acesso responde se o perfil da sessão é o pedido. Usado pelo cliente para esconder telas.
func (uc *AuthUseCase) Acesso(ctx context.Context, perfil string) (*dto.AccessResponse, error) {
	s, ok := session.From(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !entity.ValidRole(perfil) {
		return nil, &validation.Error{Fields: []string{"perfil:oneof"}}
	}
	return &dto.AccessResponse{Permitido: s.Role == perfil, TipoUsuario: s.Role}, nil
}

// LinkDistribuidor vincula o perfil distribuidor da sessão a um cadastro de distribuidor.
// O token atual continua sem o claim até o próximo login; o escopo lê o perfil enquanto isso.
func (uc *AuthUseCase) LinkDistribuidor(ctx context.Context, in dto.LinkDistribuidorRequest) (*dto.ProfileResponse, error) {
	s, ok := session.From(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if s.Role != entity.RoleDistribuidor {
		return nil, domain.ErrForbidden
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	d, err := uc.distribuidores.GetByID(ctx, in.DistribuidorID)
	if err != nil {
		return nil, fmt.Errorf("auth.LinkDistribuidor: %w", err)
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.profiles.SetDistribuidor(ctx, s.UserID, d.ID); err != nil {
		return nil, fmt.Errorf("auth.LinkDistribuidor: %w", err)
	}
	return uc.Me(ctx)
}

func (uc *AuthUseCase) load(ctx context.Context, userID string) (*entity.User, *entity.Profile, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("auth.Me: %w", err)
	}
	profile, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("auth.Me: %w", err)
	}
	if user == nil || profile == nil {
		return nil, nil, domain.ErrNotFound
	}
	return user, profile, nil
}

func profileResponse(u *entity.User, p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		UserID:         u.ID,
		Email:          u.Email,
		Nome:           p.Nome,
		TipoUsuario:    p.TipoUsuario,
		DistribuidorID: p.DistribuidorID,
		CreatedAt:      p.CreatedAt,
	}
}
