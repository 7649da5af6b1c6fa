package dto

import "github.com/shopspring/decimal"

// StatsDTO contadores do dashboard da fábrica.
type StatsDTO struct {
	LotesAtivos         int    `json:"lotes_ativos"`
	TotalProduzido      int    `json:"total_produzido"`
	TotalDistribuidores int    `json:"total_distribuidores"`
	ProximosVencimento  int    `json:"proximos_vencimento"`
	Categoria           string `json:"categoria,omitempty"`
}

// GroupDTO entrada de agrupamento (sabor ou região), em ordem de primeira ocorrência.
type GroupDTO struct {
	Chave      string `json:"chave"`
	Quantidade int    `json:"quantidade"`
}

// ExpiringLotDTO linha do relatório de vencimento.
type ExpiringLotDTO struct {
	LoteID        string `json:"lote_id"`
	CodigoLote    string `json:"codigo_lote"`
	DataValidade  string `json:"data_validade"`
	DiasRestantes int    `json:"diasRestantes"`
	Urgencia      string `json:"urgencia"` // critico | atencao | seguro
}

// FabricaDashboardDTO resposta de GET /api/dashboard/fabrica.
type FabricaDashboardDTO struct {
	Stats          StatsDTO         `json:"stats"`
	ProximosVencer []ExpiringLotDTO `json:"proximos_vencer"`
	PorSabor       []GroupDTO       `json:"por_sabor"`
	PorRegiao      []GroupDTO       `json:"por_regiao"`
	LotesRecentes  []LoteResponse   `json:"lotes_recentes"`
}

// DistribuidorStatsDTO contadores do distribuidor.
type DistribuidorStatsDTO struct {
	Distribuicoes     int             `json:"distribuicoes"`
	UnidadesRecebidas int             `json:"unidades_recebidas"`
	PontosVenda       int             `json:"pontos_venda"`
	UnidadesVendidas  int             `json:"unidades_vendidas"`
	Faturamento       decimal.Decimal `json:"faturamento"`
}

// DistribuidorDashboardDTO resposta de GET /api/dashboard/distribuidor.
type DistribuidorDashboardDTO struct {
	Distribuidor   DistribuidorResponse   `json:"distribuidor"`
	Fallback       bool                   `json:"fallback"` // true quando veio da configuração estática
	Stats          DistribuidorStatsDTO   `json:"stats"`
	Recebidas      []DistribuicaoResponse `json:"recebidas"`
	PontosVenda    []PontoVendaResponse   `json:"pontos_venda"`
	VendasRecentes []VendaResponse        `json:"vendas_recentes"`
}
