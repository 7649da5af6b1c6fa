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

var _ repository.DistribuicaoRepository = (*DistribuicaoRepo)(nil)

// DistribuicaoRepo distribuições sobre PostgreSQL.
type DistribuicaoRepo struct {
	q Querier
}

// NewDistribuicaoRepository constrói o repositório.
func NewDistribuicaoRepository(q Querier) *DistribuicaoRepo {
	return &DistribuicaoRepo{q: q}
}

// selectDistribuicao junta lote e distribuidor para as telas e para o agrupamento por região.
const selectDistribuicao = `
	SELECT d.id, d.lote_id, d.distribuidor_id, d.quantidade, d.data_distribuicao, d.responsavel, d.observacoes,
	       d.created_at, d.updated_at,
	       l.id, l.codigo_lote, l.data_producao, l.data_validade, l.responsavel, l.nota_fiscal, l.observacoes,
	       l.status, l.created_at, l.updated_at,
	       ds.id, ds.nome, ds.cnpj, ds.email, ds.telefone, ds.endereco, ds.cidade, ds.estado, ds.created_at, ds.updated_at
	FROM distribuicoes d
	JOIN lotes_producao l ON l.id = d.lote_id
	JOIN distribuidores ds ON ds.id = d.distribuidor_id`

func scanDistribuicao(row pgx.Row) (*entity.Distribuicao, error) {
	var d entity.Distribuicao
	var l entity.LoteProducao
	var ds entity.Distribuidor
	err := row.Scan(
		&d.ID, &d.LoteID, &d.DistribuidorID, &d.Quantidade, &d.DataDistribuicao, &d.Responsavel, &d.Observacoes,
		&d.CreatedAt, &d.UpdatedAt,
		&l.ID, &l.CodigoLote, &l.DataProducao, &l.DataValidade, &l.Responsavel, &l.NotaFiscal, &l.Observacoes,
		&l.Status, &l.CreatedAt, &l.UpdatedAt,
		&ds.ID, &ds.Nome, &ds.CNPJ, &ds.Email, &ds.Telefone, &ds.Endereco, &ds.Cidade, &ds.Estado,
		&ds.CreatedAt, &ds.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Lote = &l
	d.Distribuidor = &ds
	return &d, nil
}

func (r *DistribuicaoRepo) Create(ctx context.Context, d *entity.Distribuicao) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO distribuicoes (id, lote_id, distribuidor_id, quantidade, data_distribuicao, responsavel, observacoes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.LoteID, d.DistribuidorID, d.Quantidade, d.DataDistribuicao, d.Responsavel, d.Observacoes,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert distribuicao: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert distribuicao: %w", err)
	}
	return nil
}

func (r *DistribuicaoRepo) GetByID(ctx context.Context, id string) (*entity.Distribuicao, error) {
	d, err := scanDistribuicao(r.q.QueryRow(ctx, selectDistribuicao+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get distribuicao: %w", err)
	}
	return d, nil
}

func (r *DistribuicaoRepo) List(ctx context.Context, f repository.DistribuicaoFilter) ([]*entity.Distribuicao, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 500
	}
	rows, err := r.q.Query(ctx, selectDistribuicao+`
		WHERE ($1 = '' OR d.lote_id::text = $1)
		  AND ($2 = '' OR d.distribuidor_id::text = $2)
		ORDER BY d.data_distribuicao DESC, d.created_at DESC
		LIMIT $3`, f.LoteID, f.DistribuidorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list distribuicoes: %w", err)
	}
	defer rows.Close()
	var out []*entity.Distribuicao
	for rows.Next() {
		d, err := scanDistribuicao(rows)
		if err != nil {
			return nil, fmt.Errorf("scan distribuicao: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DistribuicaoRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM distribuicoes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete distribuicao: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DistribuicaoRepo) DeleteByLote(ctx context.Context, loteID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM distribuicoes WHERE lote_id = $1`, loteID); err != nil {
		return fmt.Errorf("delete distribuicoes do lote: %w", err)
	}
	return nil
}

func (r *DistribuicaoRepo) SumByLote(ctx context.Context, loteID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantidade), 0) FROM distribuicoes WHERE lote_id = $1`, loteID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sum distribuicoes: %w", err)
	}
	return n, nil
}

func (r *DistribuicaoRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM distribuicoes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count distribuicoes: %w", err)
	}
	return n, nil
}
