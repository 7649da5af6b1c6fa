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

var (
	_ repository.PontoVendaRepository = (*PontoVendaRepo)(nil)
	_ repository.VendaPdvRepository   = (*VendaPdvRepo)(nil)
)

// PontoVendaRepo PDVs sobre PostgreSQL.
type PontoVendaRepo struct {
	q Querier
}

// NewPontoVendaRepository constrói o repositório.
func NewPontoVendaRepository(q Querier) *PontoVendaRepo {
	return &PontoVendaRepo{q: q}
}

const pontoVendaColumns = `id, distribuidor_id, nome, endereco, cidade, estado, created_at, updated_at`

func scanPontoVenda(row pgx.Row) (*entity.PontoVenda, error) {
	var p entity.PontoVenda
	if err := row.Scan(&p.ID, &p.DistribuidorID, &p.Nome, &p.Endereco, &p.Cidade, &p.Estado,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PontoVendaRepo) Create(ctx context.Context, p *entity.PontoVenda) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO pontos_venda (`+pontoVendaColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.DistribuidorID, p.Nome, p.Endereco, p.Cidade, p.Estado, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert ponto de venda: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert ponto de venda: %w", err)
	}
	return nil
}

func (r *PontoVendaRepo) GetByID(ctx context.Context, id string) (*entity.PontoVenda, error) {
	p, err := scanPontoVenda(r.q.QueryRow(ctx, `SELECT `+pontoVendaColumns+` FROM pontos_venda WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ponto de venda: %w", err)
	}
	return p, nil
}

func (r *PontoVendaRepo) ListByDistribuidor(ctx context.Context, distribuidorID string) ([]*entity.PontoVenda, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+pontoVendaColumns+` FROM pontos_venda
		WHERE distribuidor_id = $1 ORDER BY nome`, distribuidorID)
	if err != nil {
		return nil, fmt.Errorf("list pontos de venda: %w", err)
	}
	defer rows.Close()
	var out []*entity.PontoVenda
	for rows.Next() {
		p, err := scanPontoVenda(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ponto de venda: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PontoVendaRepo) Update(ctx context.Context, p *entity.PontoVenda) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE pontos_venda SET nome = $2, endereco = $3, cidade = $4, estado = $5, updated_at = $6
		WHERE id = $1`,
		p.ID, p.Nome, p.Endereco, p.Cidade, p.Estado, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ponto de venda: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete falha com ErrConflict quando o PDV já tem vendas.
func (r *PontoVendaRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM pontos_venda WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete ponto de venda: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// VendaPdvRepo vendas em PDV sobre PostgreSQL.
type VendaPdvRepo struct {
	q Querier
}

// NewVendaPdvRepository constrói o repositório.
func NewVendaPdvRepository(q Querier) *VendaPdvRepo {
	return &VendaPdvRepo{q: q}
}

const selectVenda = `
	SELECT v.id, v.ponto_venda_id, v.lote_id, v.produto_id, v.quantidade, v.valor_unitario, v.valor_total,
	       v.data_venda, v.created_at, v.updated_at,
	       pv.id, pv.distribuidor_id, pv.nome, pv.endereco, pv.cidade, pv.estado, pv.created_at, pv.updated_at,
	       p.id, p.nome, p.tipo, p.sabor, p.created_at, p.updated_at,
	       l.codigo_lote
	FROM vendas_pdv v
	JOIN pontos_venda pv ON pv.id = v.ponto_venda_id
	JOIN produtos p ON p.id = v.produto_id
	JOIN lotes_producao l ON l.id = v.lote_id`

func scanVenda(row pgx.Row) (*entity.VendaPdv, error) {
	var v entity.VendaPdv
	var pv entity.PontoVenda
	var p entity.Produto
	err := row.Scan(
		&v.ID, &v.PontoVendaID, &v.LoteID, &v.ProdutoID, &v.Quantidade, &v.ValorUnitario, &v.ValorTotal,
		&v.DataVenda, &v.CreatedAt, &v.UpdatedAt,
		&pv.ID, &pv.DistribuidorID, &pv.Nome, &pv.Endereco, &pv.Cidade, &pv.Estado, &pv.CreatedAt, &pv.UpdatedAt,
		&p.ID, &p.Nome, &p.Tipo, &p.Sabor, &p.CreatedAt, &p.UpdatedAt,
		&v.CodigoLote,
	)
	if err != nil {
		return nil, err
	}
	v.PontoVenda = &pv
	v.Produto = &p
	return &v, nil
}

func (r *VendaPdvRepo) Create(ctx context.Context, v *entity.VendaPdv) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO vendas_pdv (id, ponto_venda_id, lote_id, produto_id, quantidade, valor_unitario, valor_total, data_venda, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID, v.PontoVendaID, v.LoteID, v.ProdutoID, v.Quantidade, v.ValorUnitario, v.ValorTotal,
		v.DataVenda, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert venda: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert venda: %w", err)
	}
	return nil
}

func (r *VendaPdvRepo) GetByID(ctx context.Context, id string) (*entity.VendaPdv, error) {
	v, err := scanVenda(r.q.QueryRow(ctx, selectVenda+` WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venda: %w", err)
	}
	return v, nil
}

func (r *VendaPdvRepo) List(ctx context.Context, f repository.VendaFilter) ([]*entity.VendaPdv, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 500
	}
	rows, err := r.q.Query(ctx, selectVenda+`
		WHERE ($1 = '' OR pv.distribuidor_id::text = $1)
		  AND ($2 = '' OR v.ponto_venda_id::text = $2)
		  AND ($3 = '' OR v.lote_id::text = $3)
		ORDER BY v.data_venda DESC, v.created_at DESC
		LIMIT $4`, f.DistribuidorID, f.PontoVendaID, f.LoteID, limit)
	if err != nil {
		return nil, fmt.Errorf("list vendas: %w", err)
	}
	defer rows.Close()
	var out []*entity.VendaPdv
	for rows.Next() {
		v, err := scanVenda(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venda: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VendaPdvRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM vendas_pdv WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venda: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VendaPdvRepo) DeleteByLote(ctx context.Context, loteID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM vendas_pdv WHERE lote_id = $1`, loteID); err != nil {
		return fmt.Errorf("delete vendas do lote: %w", err)
	}
	return nil
}

func (r *VendaPdvRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM vendas_pdv`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vendas: %w", err)
	}
	return n, nil
}
