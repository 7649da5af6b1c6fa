package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

var (
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.ProfileRepository    = (*ProfileRepo)(nil)
	_ repository.InvitationRepository = (*InvitationRepo)(nil)
)

// UserRepo usuários sobre PostgreSQL. E-mails chegam normalizados (minúsculas) pelo caso de uso.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o repositório.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.PasswordHash, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, where, arg string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, `
		SELECT id, email, password_hash, status, created_at, updated_at
		FROM users `+where, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ProfileRepo perfis sobre PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository constrói o repositório.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO profiles (id, user_id, nome, tipo_usuario, distribuidor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.UserID, p.Nome, p.TipoUsuario, p.DistribuidorID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var p entity.Profile
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, nome, tipo_usuario, distribuidor_id, created_at, updated_at
		FROM profiles WHERE user_id = $1`, userID).Scan(
		&p.ID, &p.UserID, &p.Nome, &p.TipoUsuario, &p.DistribuidorID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepo) SetDistribuidor(ctx context.Context, userID, distribuidorID string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE profiles SET distribuidor_id = $2, updated_at = now() WHERE user_id = $1`,
		userID, distribuidorID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("vincular distribuidor: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("vincular distribuidor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InvitationRepo convites sobre PostgreSQL. Uma linha por e-mail.
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository constrói o repositório.
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

const invitationColumns = `id, email, code, tipo_usuario, used, used_at, created_at, updated_at`

func scanInvitation(row pgx.Row) (*entity.SignUpInvitation, error) {
	var inv entity.SignUpInvitation
	if err := row.Scan(&inv.ID, &inv.Email, &inv.Code, &inv.TipoUsuario, &inv.Used, &inv.UsedAt,
		&inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Upsert reemite o convite: novo código, novo perfil, used volta a false. O ID final é gravado em inv.ID.
func (r *InvitationRepo) Upsert(ctx context.Context, inv *entity.SignUpInvitation) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO signup_invitations (id, email, code, tipo_usuario, used, used_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, false, NULL, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET code = EXCLUDED.code, tipo_usuario = EXCLUDED.tipo_usuario, used = false, used_at = NULL,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`,
		inv.ID, inv.Email, inv.Code, inv.TipoUsuario, inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert convite: %w", err)
	}
	inv.Used = false
	inv.UsedAt = nil
	return nil
}

// FindActive trava a linha encontrada (FOR UPDATE) para que dois cadastros simultâneos não consumam o mesmo convite.
func (r *InvitationRepo) FindActive(ctx context.Context, email, code string) (*entity.SignUpInvitation, error) {
	inv, err := scanInvitation(r.q.QueryRow(ctx, `
		SELECT `+invitationColumns+` FROM signup_invitations
		WHERE email = $1 AND code = $2 AND used = false
		FOR UPDATE`, email, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar convite: %w", err)
	}
	return inv, nil
}

func (r *InvitationRepo) MarkUsed(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE signup_invitations SET used = true, used_at = $2, updated_at = $2
		WHERE id = $1 AND used = false`, id, at)
	if err != nil {
		return fmt.Errorf("consumir convite: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvitationUsed
	}
	return nil
}

func (r *InvitationRepo) GetByID(ctx context.Context, id string) (*entity.SignUpInvitation, error) {
	inv, err := scanInvitation(r.q.QueryRow(ctx, `SELECT `+invitationColumns+` FROM signup_invitations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get convite: %w", err)
	}
	return inv, nil
}

func (r *InvitationRepo) List(ctx context.Context) ([]*entity.SignUpInvitation, error) {
	rows, err := r.q.Query(ctx, `SELECT `+invitationColumns+` FROM signup_invitations ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list convites: %w", err)
	}
	defer rows.Close()
	var out []*entity.SignUpInvitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan convite: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Delete remove apenas convites não consumidos.
func (r *InvitationRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM signup_invitations WHERE id = $1 AND used = false`, id)
	if err != nil {
		return fmt.Errorf("delete convite: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
