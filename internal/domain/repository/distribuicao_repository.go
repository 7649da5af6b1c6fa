package repository

import (
	"context"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// DistribuicaoFilter filtros combináveis; campos vazios são ignorados.
type DistribuicaoFilter struct {
	LoteID         string
	DistribuidorID string
	Limit          int
}

// DistribuicaoRepository porta de persistência das distribuições.
// List devolve do mais recente para o mais antigo, com lote e distribuidor carregados.
type DistribuicaoRepository interface {
	Create(ctx context.Context, d *entity.Distribuicao) error
	GetByID(ctx context.Context, id string) (*entity.Distribuicao, error)
	List(ctx context.Context, f DistribuicaoFilter) ([]*entity.Distribuicao, error)
	Delete(ctx context.Context, id string) error
	DeleteByLote(ctx context.Context, loteID string) error
	// SumByLote total já distribuído de um lote.
	SumByLote(ctx context.Context, loteID string) (int, error)
	Count(ctx context.Context) (int, error)
}
