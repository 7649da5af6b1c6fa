package repository

import (
	"context"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// PontoVendaRepository porta de persistência dos PDVs.
type PontoVendaRepository interface {
	Create(ctx context.Context, p *entity.PontoVenda) error
	GetByID(ctx context.Context, id string) (*entity.PontoVenda, error)
	ListByDistribuidor(ctx context.Context, distribuidorID string) ([]*entity.PontoVenda, error)
	Update(ctx context.Context, p *entity.PontoVenda) error
	Delete(ctx context.Context, id string) error
}

// VendaFilter filtros de vendas. DistribuidorID filtra pelo dono do PDV.
type VendaFilter struct {
	DistribuidorID string
	PontoVendaID   string
	LoteID         string
	Limit          int
}

// VendaPdvRepository porta de persistência das vendas em PDV.
// List devolve da mais recente para a mais antiga, com PDV, produto e código do lote.
type VendaPdvRepository interface {
	Create(ctx context.Context, v *entity.VendaPdv) error
	GetByID(ctx context.Context, id string) (*entity.VendaPdv, error)
	List(ctx context.Context, f VendaFilter) ([]*entity.VendaPdv, error)
	Delete(ctx context.Context, id string) error
	DeleteByLote(ctx context.Context, loteID string) error
	Count(ctx context.Context) (int, error)
}
