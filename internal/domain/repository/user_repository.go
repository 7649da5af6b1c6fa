package repository

import (
	"context"
	"time"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// UserRepository identidades autenticáveis.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// ProfileRepository perfis 1:1 com User.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	SetDistribuidor(ctx context.Context, userID, distribuidorID string) error
}

// InvitationRepository convites de cadastro.
type InvitationRepository interface {
	// Upsert insere ou sobrescreve o convite do e-mail (code, tipo_usuario, used=false, used_at=NULL).
	Upsert(ctx context.Context, inv *entity.SignUpInvitation) error
	// FindActive busca pelo par exato (email, code) ainda não usado.
	FindActive(ctx context.Context, email, code string) (*entity.SignUpInvitation, error)
	MarkUsed(ctx context.Context, id string, at time.Time) error
	GetByID(ctx context.Context, id string) (*entity.SignUpInvitation, error)
	List(ctx context.Context) ([]*entity.SignUpInvitation, error)
	Delete(ctx context.Context, id string) error
}
