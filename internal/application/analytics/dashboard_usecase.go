// Package analytics monta os dashboards da fábrica e do distribuidor a partir das leituras
// do AnalyticsRepository e das regras puras de internal/domain/lot.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/scope"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/lot"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/policy"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

const (
	recentLotes  = 5  // lotes no widget "recentes"
	recentVendas = 10 // vendas no dashboard do distribuidor
)

// DashboardUseCase agrega os dados dos dashboards.
//
// As consultas de cada dashboard são independentes e rodam em paralelo; qualquer falha
// aborta a agregação inteira (não há resultado parcial).
type DashboardUseCase struct {
	analytics repository.AnalyticsRepository
	lotes     repository.LoteRepository
	dists     repository.DistribuicaoRepository
	pontos    repository.PontoVendaRepository
	vendas    repository.VendaPdvRepository
	scope     *scope.Resolver
	now       func() time.Time
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(
	analytics repository.AnalyticsRepository,
	lotes repository.LoteRepository,
	dists repository.DistribuicaoRepository,
	pontos repository.PontoVendaRepository,
	vendas repository.VendaPdvRepository,
	resolver *scope.Resolver,
) *DashboardUseCase {
	return &DashboardUseCase{
		analytics: analytics,
		lotes:     lotes,
		dists:     dists,
		pontos:    pontos,
		vendas:    vendas,
		scope:     resolver,
		now:       time.Now,
	}
}

// WithClock troca o relógio (testes).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// FabricaDashboard contadores, vencimentos, agrupamentos e lotes recentes.
// tipo (categoria de produto) vazio = sem filtro.
//
// Quatro chamadas em paralelo:
//  1. ActiveLotes          -> stats, vencimentos, por sabor
//  2. CountDistribuidores  -> stats
//  3. Distribuicoes        -> por região
//  4. lotes.List(5)        -> recentes
func (uc *DashboardUseCase) FabricaDashboard(ctx context.Context, tipo string) (*dto.FabricaDashboardDTO, error) {
	if _, err := policy.Authorize(ctx, policy.AnalyticsRead); err != nil {
		return nil, err
	}
	now := uc.now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type lotesResult struct {
		rows []entity.LoteProducao
		err  error
	}
	type countResult struct {
		n   int
		err error
	}
	type distsResult struct {
		rows []entity.Distribuicao
		err  error
	}
	type recentResult struct {
		rows []*entity.LoteProducao
		err  error
	}

	lotesCh := make(chan lotesResult, 1)
	countCh := make(chan countResult, 1)
	distsCh := make(chan distsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		rows, err := uc.analytics.ActiveLotes(ctx)
		lotesCh <- lotesResult{rows, err}
	}()
	go func() {
		n, err := uc.analytics.CountDistribuidores(ctx)
		countCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.analytics.Distribuicoes(ctx)
		distsCh <- distsResult{rows, err}
	}()
	go func() {
		rows, err := uc.lotes.List(ctx, repository.LoteFilter{Limit: recentLotes})
		recentCh <- recentResult{rows, err}
	}()

	ativos := <-lotesCh
	count := <-countCh
	dists := <-distsCh
	recent := <-recentCh

	if ativos.err != nil {
		return nil, fmt.Errorf("dashboard: lotes ativos: %w", ativos.err)
	}
	if count.err != nil {
		return nil, fmt.Errorf("dashboard: distribuidores: %w", count.err)
	}
	if dists.err != nil {
		return nil, fmt.Errorf("dashboard: distribuições: %w", dists.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: lotes recentes: %w", recent.err)
	}

	st := lot.ComputeStats(ativos.rows, count.n, tipo, now)
	scoped := narrowToCategory(ativos.rows, tipo)

	out := &dto.FabricaDashboardDTO{
		Stats: dto.StatsDTO{
			LotesAtivos:         st.LotesAtivos,
			TotalProduzido:      st.TotalProduzido,
			TotalDistribuidores: st.TotalDistribuidores,
			ProximosVencimento:  st.ProximosVencimento,
			Categoria:           tipo,
		},
		ProximosVencer: make([]dto.ExpiringLotDTO, 0),
		PorSabor:       toGroups(lot.GroupByFlavor(scoped)),
		PorRegiao:      toGroups(lot.GroupByRegion(dists.rows)),
		LotesRecentes:  make([]dto.LoteResponse, 0, len(recent.rows)),
	}
	for _, e := range lot.NearExpiry(scoped, now) {
		out.ProximosVencer = append(out.ProximosVencer, dto.ExpiringLotDTO{
			LoteID:        e.Lote.ID,
			CodigoLote:    e.Lote.CodigoLote,
			DataValidade:  e.Lote.DataValidade.Format(dto.DateLayout),
			DiasRestantes: e.DiasRestantes,
			Urgencia:      string(e.Urgencia),
		})
	}
	for _, l := range recent.rows {
		out.LotesRecentes = append(out.LotesRecentes, dto.NewLoteResponse(l))
	}
	return out, nil
}

// DistribuidorDashboard métricas, recebimentos, PDVs e vendas do distribuidor da sessão.
// Sem vínculo, usa o distribuidor estático configurado (fallback).
func (uc *DashboardUseCase) DistribuidorDashboard(ctx context.Context) (*dto.DistribuidorDashboardDTO, error) {
	s, err := policy.Authorize(ctx, policy.DistribuicaoRead)
	if err != nil {
		return nil, err
	}
	d, fallback, err := uc.scope.Distribuidor(ctx, s)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type metricsResult struct {
		m   repository.DistribuidorMetrics
		err error
	}
	type distsResult struct {
		rows []*entity.Distribuicao
		err  error
	}
	type pontosResult struct {
		rows []*entity.PontoVenda
		err  error
	}
	type vendasResult struct {
		rows []*entity.VendaPdv
		err  error
	}

	metricsCh := make(chan metricsResult, 1)
	distsCh := make(chan distsResult, 1)
	pontosCh := make(chan pontosResult, 1)
	vendasCh := make(chan vendasResult, 1)

	go func() {
		m, err := uc.analytics.DistribuidorMetrics(ctx, d.ID)
		metricsCh <- metricsResult{m, err}
	}()
	go func() {
		rows, err := uc.dists.List(ctx, repository.DistribuicaoFilter{DistribuidorID: d.ID})
		distsCh <- distsResult{rows, err}
	}()
	go func() {
		rows, err := uc.pontos.ListByDistribuidor(ctx, d.ID)
		pontosCh <- pontosResult{rows, err}
	}()
	go func() {
		rows, err := uc.vendas.List(ctx, repository.VendaFilter{DistribuidorID: d.ID, Limit: recentVendas})
		vendasCh <- vendasResult{rows, err}
	}()

	metrics := <-metricsCh
	dists := <-distsCh
	pontos := <-pontosCh
	vendas := <-vendasCh

	if metrics.err != nil {
		return nil, fmt.Errorf("dashboard: métricas do distribuidor: %w", metrics.err)
	}
	if dists.err != nil {
		return nil, fmt.Errorf("dashboard: distribuições recebidas: %w", dists.err)
	}
	if pontos.err != nil {
		return nil, fmt.Errorf("dashboard: pontos de venda: %w", pontos.err)
	}
	if vendas.err != nil {
		return nil, fmt.Errorf("dashboard: vendas: %w", vendas.err)
	}

	out := &dto.DistribuidorDashboardDTO{
		Distribuidor: dto.NewDistribuidorResponse(d),
		Fallback:     fallback,
		Stats: dto.DistribuidorStatsDTO{
			Distribuicoes:     metrics.m.Distribuicoes,
			UnidadesRecebidas: metrics.m.UnidadesRecebidas,
			PontosVenda:       metrics.m.PontosVenda,
			UnidadesVendidas:  metrics.m.UnidadesVendidas,
			Faturamento:       metrics.m.Faturamento.Round(2),
		},
		Recebidas:      make([]dto.DistribuicaoResponse, 0, len(dists.rows)),
		PontosVenda:    make([]dto.PontoVendaResponse, 0, len(pontos.rows)),
		VendasRecentes: make([]dto.VendaResponse, 0, len(vendas.rows)),
	}
	for _, x := range dists.rows {
		out.Recebidas = append(out.Recebidas, dto.NewDistribuicaoResponse(x))
	}
	for _, p := range pontos.rows {
		out.PontosVenda = append(out.PontosVenda, dto.NewPontoVendaResponse(p))
	}
	for _, v := range vendas.rows {
		out.VendasRecentes = append(out.VendasRecentes, dto.NewVendaResponse(v))
	}
	return out, nil
}

// narrowToCategory mantém só os itens do tipo pedido e descarta lotes que ficaram sem itens.
func narrowToCategory(lotes []entity.LoteProducao, tipo string) []entity.LoteProducao {
	if tipo == "" {
		return lotes
	}
	out := make([]entity.LoteProducao, 0, len(lotes))
	for _, l := range lotes {
		var itens []entity.LoteItem
		for _, it := range l.Itens {
			if it.Produto != nil && it.Produto.Tipo == tipo {
				itens = append(itens, it)
			}
		}
		if len(itens) == 0 {
			continue
		}
		l.Itens = itens
		out = append(out, l)
	}
	return out
}

func toGroups(groups []lot.Group) []dto.GroupDTO {
	out := make([]dto.GroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.GroupDTO{Chave: g.Key, Quantidade: g.Total})
	}
	return out
}
