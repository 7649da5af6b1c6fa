package memory

import (
	"context"
	"time"

	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

var (
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.ProfileRepository    = (*ProfileRepo)(nil)
	_ repository.InvitationRepository = (*InvitationRepo)(nil)
)

// UserRepo usuários em memória; e-mail único.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.Create"); err != nil {
		return err
	}
	for _, x := range r.s.data.users {
		if x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.data.users = append(r.s.data.users, *u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email }), nil
}

func (r *UserRepo) find(match func(entity.User) bool) *entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if match(u) {
			u := u
			return &u
		}
	}
	return nil
}

// ProfileRepo perfis em memória, 1:1 com usuário.
type ProfileRepo struct{ s *Store }

func (r *ProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("profiles.Create"); err != nil {
		return err
	}
	for _, x := range r.s.data.profiles {
		if x.UserID == p.UserID {
			return domain.ErrDuplicate
		}
	}
	r.s.data.profiles = append(r.s.data.profiles, *p)
	return nil
}

func (r *ProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.profiles {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProfileRepo) SetDistribuidor(_ context.Context, userID, distribuidorID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.distribuidor(func(d entity.Distribuidor) bool { return d.ID == distribuidorID }) == nil {
		return domain.ErrInvalidInput
	}
	for i := range r.s.data.profiles {
		if r.s.data.profiles[i].UserID == userID {
			id := distribuidorID
			r.s.data.profiles[i].DistribuidorID = &id
			return nil
		}
	}
	return domain.ErrNotFound
}

// InvitationRepo convites em memória; um por e-mail.
type InvitationRepo struct{ s *Store }

func (r *InvitationRepo) Upsert(_ context.Context, inv *entity.SignUpInvitation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("invitations.Upsert"); err != nil {
		return err
	}
	inv.Used, inv.UsedAt = false, nil
	for i := range r.s.data.invitations {
		x := &r.s.data.invitations[i]
		if x.Email == inv.Email {
			x.Code, x.TipoUsuario, x.Used, x.UsedAt, x.UpdatedAt = inv.Code, inv.TipoUsuario, false, nil, inv.UpdatedAt
			inv.ID, inv.CreatedAt = x.ID, x.CreatedAt
			return nil
		}
	}
	r.s.data.invitations = append(r.s.data.invitations, *inv)
	return nil
}

func (r *InvitationRepo) FindActive(_ context.Context, email, code string) (*entity.SignUpInvitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.data.invitations {
		if inv.Email == email && inv.Code == code && !inv.Used {
			inv := inv
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *InvitationRepo) MarkUsed(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.invitations {
		x := &r.s.data.invitations[i]
		if x.ID == id && !x.Used {
			x.Used, x.UsedAt, x.UpdatedAt = true, &at, at
			return nil
		}
	}
	return domain.ErrInvitationUsed
}

func (r *InvitationRepo) GetByID(_ context.Context, id string) (*entity.SignUpInvitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.data.invitations {
		if inv.ID == id {
			inv := inv
			return &inv, nil
		}
	}
	return nil, nil
}

// List devolve do convite atualizado mais recentemente para o mais antigo.
func (r *InvitationRepo) List(_ context.Context) ([]*entity.SignUpInvitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.SignUpInvitation, 0, len(r.s.data.invitations))
	for i := len(r.s.data.invitations) - 1; i >= 0; i-- {
		inv := r.s.data.invitations[i]
		out = append(out, &inv)
	}
	return out, nil
}

func (r *InvitationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, inv := range r.s.data.invitations {
		if inv.ID == id && !inv.Used {
			r.s.data.invitations = append(r.s.data.invitations[:i], r.s.data.invitations[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
