package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

var (
	_ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)
	_ repository.ChatDataRepository  = (*ChatDataRepo)(nil)
)

// AnalyticsRepo leituras dos dashboards. Cada método pode ser forçado a falhar com FailOn("analytics.<Método>").
type AnalyticsRepo struct{ s *Store }

func (r *AnalyticsRepo) ActiveLotes(_ context.Context) ([]entity.LoteProducao, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("analytics.ActiveLotes"); err != nil {
		return nil, err
	}
	var out []entity.LoteProducao
	for _, l := range r.s.data.lotes {
		if l.Ativo() {
			out = append(out, *r.s.withItens(l))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DataValidade.Equal(out[j].DataValidade) {
			return out[i].DataValidade.Before(out[j].DataValidade)
		}
		return out[i].CodigoLote < out[j].CodigoLote
	})
	return out, nil
}

func (r *AnalyticsRepo) CountDistribuidores(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("analytics.CountDistribuidores"); err != nil {
		return 0, err
	}
	return len(r.s.data.distribuidores), nil
}

func (r *AnalyticsRepo) Distribuicoes(_ context.Context) ([]entity.Distribuicao, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("analytics.Distribuicoes"); err != nil {
		return nil, err
	}
	out := make([]entity.Distribuicao, 0, len(r.s.data.distribuicoes))
	for _, d := range r.s.data.distribuicoes {
		out = append(out, *r.s.joinDistribuicao(d))
	}
	return out, nil
}

func (r *AnalyticsRepo) DistribuidorMetrics(_ context.Context, distribuidorID string) (repository.DistribuidorMetrics, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("analytics.DistribuidorMetrics"); err != nil {
		return repository.DistribuidorMetrics{}, err
	}
	m := repository.DistribuidorMetrics{Faturamento: decimal.Zero}
	for _, d := range r.s.data.distribuicoes {
		if d.DistribuidorID == distribuidorID {
			m.Distribuicoes++
			m.UnidadesRecebidas += d.Quantidade
		}
	}
	for _, p := range r.s.data.pontos {
		if p.DistribuidorID == distribuidorID {
			m.PontosVenda++
		}
	}
	for _, v := range r.s.data.vendas {
		if p := r.s.ponto(v.PontoVendaID); p != nil && p.DistribuidorID == distribuidorID {
			m.UnidadesVendidas += v.Quantidade
			m.Faturamento = m.Faturamento.Add(v.ValorTotal)
		}
	}
	return m, nil
}

// ChatDataRepo leituras do assistente, compostas sobre os demais repositórios.
type ChatDataRepo struct{ s *Store }

func (r *ChatDataRepo) Summary(_ context.Context) (repository.ChatSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("chat.Summary"); err != nil {
		return repository.ChatSummary{}, err
	}
	return repository.ChatSummary{
		TotalLotes:          len(r.s.data.lotes),
		TotalDistribuicoes:  len(r.s.data.distribuicoes),
		TotalVendas:         len(r.s.data.vendas),
		TotalDistribuidores: len(r.s.data.distribuidores),
	}, nil
}

func (r *ChatDataRepo) RecentLotes(ctx context.Context, limit int) ([]*entity.LoteProducao, error) {
	return r.s.Lotes().List(ctx, repository.LoteFilter{Limit: limit})
}

func (r *ChatDataRepo) SearchLotes(ctx context.Context, term string, limit int) ([]*entity.LoteProducao, error) {
	return r.s.Lotes().Search(ctx, term, limit)
}

func (r *ChatDataRepo) SearchProdutos(ctx context.Context, term string, limit int) ([]*entity.Produto, error) {
	return r.s.Produtos().Search(ctx, term, limit)
}

func (r *ChatDataRepo) LoteDetail(ctx context.Context, idOrCodigo string) (*entity.LoteProducao, []*entity.Distribuicao, error) {
	var (
		l   *entity.LoteProducao
		err error
	)
	if _, perr := uuid.Parse(idOrCodigo); perr == nil {
		l, err = r.s.Lotes().GetByID(ctx, idOrCodigo)
	} else {
		l, err = r.s.Lotes().GetByCodigo(ctx, idOrCodigo)
	}
	if err != nil || l == nil {
		return nil, nil, err
	}
	dists, err := r.s.Distribuicoes().List(ctx, repository.DistribuicaoFilter{LoteID: l.ID})
	if err != nil {
		return nil, nil, err
	}
	return l, dists, nil
}

func (r *ChatDataRepo) RecentDistribuicoes(ctx context.Context, limit int) ([]*entity.Distribuicao, error) {
	return r.s.Distribuicoes().List(ctx, repository.DistribuicaoFilter{Limit: limit})
}

func (r *ChatDataRepo) RecentVendas(ctx context.Context, limit int) ([]*entity.VendaPdv, error) {
	return r.s.Vendas().List(ctx, repository.VendaFilter{Limit: limit})
}
