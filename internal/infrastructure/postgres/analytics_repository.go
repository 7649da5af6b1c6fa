package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas somente-leitura dos dashboards.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository constrói o adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) ActiveLotes(ctx context.Context) ([]entity.LoteProducao, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+loteColumns+` FROM lotes_producao
		WHERE status = 'ativo'
		ORDER BY data_validade, codigo_lote`)
	if err != nil {
		return nil, fmt.Errorf("analytics.ActiveLotes: %w", err)
	}
	lotes, err := collectLotes(rows)
	if err != nil {
		return nil, fmt.Errorf("analytics.ActiveLotes: %w", err)
	}
	if err := loadItens(ctx, r.q, lotes); err != nil {
		return nil, fmt.Errorf("analytics.ActiveLotes: %w", err)
	}
	out := make([]entity.LoteProducao, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, *l)
	}
	return out, nil
}

func (r *AnalyticsRepo) CountDistribuidores(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM distribuidores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountDistribuidores: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) Distribuicoes(ctx context.Context) ([]entity.Distribuicao, error) {
	rows, err := r.q.Query(ctx, selectDistribuicao+` ORDER BY d.created_at, d.id`)
	if err != nil {
		return nil, fmt.Errorf("analytics.Distribuicoes: %w", err)
	}
	defer rows.Close()
	var out []entity.Distribuicao
	for rows.Next() {
		d, err := scanDistribuicao(rows)
		if err != nil {
			return nil, fmt.Errorf("analytics.Distribuicoes: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.Distribuicoes: %w", err)
	}
	return out, nil
}

// DistribuidorMetrics usa COALESCE para devolver zero quando não há movimento.
func (r *AnalyticsRepo) DistribuidorMetrics(ctx context.Context, distribuidorID string) (repository.DistribuidorMetrics, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*)                      FROM distribuicoes WHERE distribuidor_id = $1) AS distribuicoes,
	    (SELECT COALESCE(SUM(quantidade), 0)  FROM distribuicoes WHERE distribuidor_id = $1) AS unidades_recebidas,
	    (SELECT COUNT(*)                      FROM pontos_venda  WHERE distribuidor_id = $1) AS pontos_venda,
	    COALESCE(SUM(v.quantidade), 0)                                                         AS unidades_vendidas,
	    COALESCE(SUM(v.valor_total), 0)                                                        AS faturamento
	FROM vendas_pdv v
	JOIN pontos_venda pv ON pv.id = v.ponto_venda_id
	WHERE pv.distribuidor_id = $1`

	var m repository.DistribuidorMetrics
	err := r.q.QueryRow(ctx, query, distribuidorID).Scan(
		&m.Distribuicoes, &m.UnidadesRecebidas, &m.PontosVenda, &m.UnidadesVendidas, &m.Faturamento,
	)
	if err != nil {
		return repository.DistribuidorMetrics{}, fmt.Errorf("analytics.DistribuidorMetrics: %w", err)
	}
	return m, nil
}
