package repository

import (
	"context"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// ChatSummary totais usados pela resposta "todos os lotes".
type ChatSummary struct {
	TotalLotes          int
	TotalDistribuicoes  int
	TotalVendas         int
	TotalDistribuidores int
}

// ChatDataRepository leituras somente-leitura usadas pela função de dados do assistente.
type ChatDataRepository interface {
	Summary(ctx context.Context) (ChatSummary, error)
	RecentLotes(ctx context.Context, limit int) ([]*entity.LoteProducao, error)
	SearchLotes(ctx context.Context, term string, limit int) ([]*entity.LoteProducao, error)
	SearchProdutos(ctx context.Context, term string, limit int) ([]*entity.Produto, error)
	LoteDetail(ctx context.Context, idOrCodigo string) (*entity.LoteProducao, []*entity.Distribuicao, error)
	RecentDistribuicoes(ctx context.Context, limit int) ([]*entity.Distribuicao, error)
	RecentVendas(ctx context.Context, limit int) ([]*entity.VendaPdv, error)
}
