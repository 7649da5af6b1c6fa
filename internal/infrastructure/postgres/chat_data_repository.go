package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

var _ repository.ChatDataRepository = (*ChatDataRepo)(nil)

// ChatDataRepo leituras do assistente. Reaproveita os repositórios de cada entidade sobre o mesmo Querier.
type ChatDataRepo struct {
	q      Querier
	lotes  *LoteRepo
	prods  *ProdutoRepo
	dists  *DistribuicaoRepo
	vendas *VendaPdvRepo
}

// NewChatDataRepository constrói o adaptador.
func NewChatDataRepository(q Querier) *ChatDataRepo {
	return &ChatDataRepo{
		q:      q,
		lotes:  NewLoteRepository(q),
		prods:  NewProdutoRepository(q),
		dists:  NewDistribuicaoRepository(q),
		vendas: NewVendaPdvRepository(q),
	}
}

func (r *ChatDataRepo) Summary(ctx context.Context) (repository.ChatSummary, error) {
	var s repository.ChatSummary
	err := r.q.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM lotes_producao),
		       (SELECT COUNT(*) FROM distribuicoes),
		       (SELECT COUNT(*) FROM vendas_pdv),
		       (SELECT COUNT(*) FROM distribuidores)`).Scan(
		&s.TotalLotes, &s.TotalDistribuicoes, &s.TotalVendas, &s.TotalDistribuidores,
	)
	if err != nil {
		return repository.ChatSummary{}, fmt.Errorf("chat.Summary: %w", err)
	}
	return s, nil
}

func (r *ChatDataRepo) RecentLotes(ctx context.Context, limit int) ([]*entity.LoteProducao, error) {
	return r.lotes.List(ctx, repository.LoteFilter{Limit: limit})
}

func (r *ChatDataRepo) SearchLotes(ctx context.Context, term string, limit int) ([]*entity.LoteProducao, error) {
	return r.lotes.Search(ctx, term, limit)
}

func (r *ChatDataRepo) SearchProdutos(ctx context.Context, term string, limit int) ([]*entity.Produto, error) {
	return r.prods.Search(ctx, term, limit)
}

// LoteDetail aceita o UUID do lote ou o código. Lote inexistente devolve (nil, nil, nil).
func (r *ChatDataRepo) LoteDetail(ctx context.Context, idOrCodigo string) (*entity.LoteProducao, []*entity.Distribuicao, error) {
	var (
		l   *entity.LoteProducao
		err error
	)
	if _, perr := uuid.Parse(idOrCodigo); perr == nil {
		l, err = r.lotes.GetByID(ctx, idOrCodigo)
	} else {
		l, err = r.lotes.GetByCodigo(ctx, idOrCodigo)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("chat.LoteDetail: %w", err)
	}
	if l == nil {
		return nil, nil, nil
	}
	dists, err := r.dists.List(ctx, repository.DistribuicaoFilter{LoteID: l.ID})
	if err != nil {
		return nil, nil, fmt.Errorf("chat.LoteDetail: %w", err)
	}
	return l, dists, nil
}

func (r *ChatDataRepo) RecentDistribuicoes(ctx context.Context, limit int) ([]*entity.Distribuicao, error) {
	return r.dists.List(ctx, repository.DistribuicaoFilter{Limit: limit})
}

func (r *ChatDataRepo) RecentVendas(ctx context.Context, limit int) ([]*entity.VendaPdv, error) {
	return r.vendas.List(ctx, repository.VendaFilter{Limit: limit})
}
