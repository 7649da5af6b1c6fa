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

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo catálogo sobre PostgreSQL (pool ou tx).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o repositório.
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

const produtoColumns = `id, nome, tipo, sabor, created_at, updated_at`

func scanProduto(row pgx.Row) (*entity.Produto, error) {
	var p entity.Produto
	if err := row.Scan(&p.ID, &p.Nome, &p.Tipo, &p.Sabor, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProdutoRepo) Create(ctx context.Context, p *entity.Produto) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO produtos (id, nome, tipo, sabor, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Nome, p.Tipo, p.Sabor, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert produto: %w", err)
	}
	return nil
}

func (r *ProdutoRepo) GetByID(ctx context.Context, id string) (*entity.Produto, error) {
	p, err := scanProduto(r.q.QueryRow(ctx, `SELECT `+produtoColumns+` FROM produtos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return p, nil
}

// List devolve o catálogo ordenado por nome; tipo vazio = todos.
func (r *ProdutoRepo) List(ctx context.Context, tipo string) ([]*entity.Produto, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+produtoColumns+` FROM produtos
		WHERE ($1 = '' OR tipo = $1)
		ORDER BY nome`, tipo)
	if err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	return collectProdutos(rows)
}

// Search busca por substring no nome, sem diferenciar maiúsculas.
func (r *ProdutoRepo) Search(ctx context.Context, term string, limit int) ([]*entity.Produto, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+produtoColumns+` FROM produtos
		WHERE nome ILIKE $1
		ORDER BY nome LIMIT $2`, likePattern(term), limit)
	if err != nil {
		return nil, fmt.Errorf("search produtos: %w", err)
	}
	return collectProdutos(rows)
}

func (r *ProdutoRepo) Update(ctx context.Context, p *entity.Produto) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE produtos SET nome = $2, tipo = $3, sabor = $4, updated_at = $5
		WHERE id = $1`,
		p.ID, p.Nome, p.Tipo, p.Sabor, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update produto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProdutoRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductInUse
		}
		return fmt.Errorf("delete produto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProdutoRepo) IsReferenced(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM lote_itens WHERE produto_id = $1)
		    OR EXISTS (SELECT 1 FROM vendas_pdv WHERE produto_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("produto referenciado: %w", err)
	}
	return exists, nil
}

func collectProdutos(rows pgx.Rows) ([]*entity.Produto, error) {
	defer rows.Close()
	var out []*entity.Produto
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan produto: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
