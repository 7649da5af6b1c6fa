package repository

import (
	"context"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// ProdutoRepository porta de persistência do catálogo.
// GetByID devolve (nil, nil) quando não existe.
type ProdutoRepository interface {
	Create(ctx context.Context, p *entity.Produto) error
	GetByID(ctx context.Context, id string) (*entity.Produto, error)
	List(ctx context.Context, tipo string) ([]*entity.Produto, error)
	Search(ctx context.Context, term string, limit int) ([]*entity.Produto, error)
	Update(ctx context.Context, p *entity.Produto) error
	Delete(ctx context.Context, id string) error
	// IsReferenced indica se algum lote_item aponta para o produto.
	IsReferenced(ctx context.Context, id string) (bool, error)
}
