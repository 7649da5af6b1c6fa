package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

var _ repository.DistribuidorRepository = (*DistribuidorRepo)(nil)

// DistribuidorRepo distribuidores sobre PostgreSQL.
type DistribuidorRepo struct {
	q Querier
}

// NewDistribuidorRepository constrói o repositório.
func NewDistribuidorRepository(q Querier) *DistribuidorRepo {
	return &DistribuidorRepo{q: q}
}

const distribuidorColumns = `id, nome, cnpj, email, telefone, endereco, cidade, estado, created_at, updated_at`

func scanDistribuidor(row pgx.Row) (*entity.Distribuidor, error) {
	var d entity.Distribuidor
	err := row.Scan(&d.ID, &d.Nome, &d.CNPJ, &d.Email, &d.Telefone, &d.Endereco, &d.Cidade, &d.Estado,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DistribuidorRepo) Create(ctx context.Context, d *entity.Distribuidor) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO distribuidores (`+distribuidorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.Nome, d.CNPJ, d.Email, d.Telefone, d.Endereco, d.Cidade, d.Estado, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert distribuidor: %w", err)
	}
	return nil
}

func (r *DistribuidorRepo) GetByID(ctx context.Context, id string) (*entity.Distribuidor, error) {
	return r.getOne(ctx, `SELECT `+distribuidorColumns+` FROM distribuidores WHERE id = $1`, id)
}

func (r *DistribuidorRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Distribuidor, error) {
	return r.getOne(ctx, `SELECT `+distribuidorColumns+` FROM distribuidores WHERE cnpj = $1`, cnpj)
}

func (r *DistribuidorRepo) getOne(ctx context.Context, query, arg string) (*entity.Distribuidor, error) {
	d, err := scanDistribuidor(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get distribuidor: %w", err)
	}
	return d, nil
}

func (r *DistribuidorRepo) List(ctx context.Context) ([]*entity.Distribuidor, error) {
	rows, err := r.q.Query(ctx, `SELECT `+distribuidorColumns+` FROM distribuidores ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("list distribuidores: %w", err)
	}
	defer rows.Close()
	var out []*entity.Distribuidor
	for rows.Next() {
		d, err := scanDistribuidor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan distribuidor: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DistribuidorRepo) Update(ctx context.Context, d *entity.Distribuidor) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE distribuidores
		SET nome = $2, cnpj = $3, email = $4, telefone = $5, endereco = $6, cidade = $7, estado = $8, updated_at = $9
		WHERE id = $1`,
		d.ID, d.Nome, d.CNPJ, d.Email, d.Telefone, d.Endereco, d.Cidade, d.Estado, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update distribuidor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete falha com ErrConflict se houver distribuições, PDVs ou perfis apontando para o distribuidor.
func (r *DistribuidorRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM distribuidores WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete distribuidor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DistribuidorRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM distribuidores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count distribuidores: %w", err)
	}
	return n, nil
}
