package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// DistribuidorMetrics totais de um distribuidor. Produzido pela DB; o caso de uso converte em DTO.
type DistribuidorMetrics struct {
	Distribuicoes     int
	UnidadesRecebidas int
	PontosVenda       int
	UnidadesVendidas  int
	Faturamento       decimal.Decimal // soma de valor_total das vendas dos PDVs do distribuidor
}

// AnalyticsRepository consultas somente-leitura dos dashboards.
// As agregações em si (contagens, agrupamentos, vencimento) são feitas em memória pelo pacote lot.
type AnalyticsRepository interface {
	// ActiveLotes lotes com status ativo, itens e produtos carregados, por data_validade crescente.
	ActiveLotes(ctx context.Context) ([]entity.LoteProducao, error)

	CountDistribuidores(ctx context.Context) (int, error)

	// Distribuicoes todas as distribuições com o distribuidor carregado, na ordem de registro.
	Distribuicoes(ctx context.Context) ([]entity.Distribuicao, error)

	DistribuidorMetrics(ctx context.Context, distribuidorID string) (DistribuidorMetrics, error)
}
