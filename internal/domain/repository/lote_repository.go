package repository

import (
	"context"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// LoteFilter filtros de listagem. Status vazio = todos.
type LoteFilter struct {
	Status string
	Limit  int
	Offset int
}

// LoteRepository porta de persistência de lotes.
// As consultas de leitura devolvem os itens com o produto já carregado.
type LoteRepository interface {
	Create(ctx context.Context, l *entity.LoteProducao) error
	GetByID(ctx context.Context, id string) (*entity.LoteProducao, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.LoteProducao, error)
	// GetForUpdate trava a linha do lote até o fim da transação (sem itens).
	GetForUpdate(ctx context.Context, id string) (*entity.LoteProducao, error)
	List(ctx context.Context, f LoteFilter) ([]*entity.LoteProducao, error)
	Search(ctx context.Context, term string, limit int) ([]*entity.LoteProducao, error)
	Update(ctx context.Context, l *entity.LoteProducao) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// LoteItemRepository linhas dos lotes.
type LoteItemRepository interface {
	CreateBatch(ctx context.Context, itens []entity.LoteItem) error
	ListByLote(ctx context.Context, loteID string) ([]entity.LoteItem, error)
	DeleteByLote(ctx context.Context, loteID string) error
}
