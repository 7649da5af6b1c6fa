package repository

import (
	"context"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// DistribuidorRepository porta de persistência de distribuidores.
type DistribuidorRepository interface {
	Create(ctx context.Context, d *entity.Distribuidor) error
	GetByID(ctx context.Context, id string) (*entity.Distribuidor, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Distribuidor, error)
	List(ctx context.Context) ([]*entity.Distribuidor, error)
	Update(ctx context.Context, d *entity.Distribuidor) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
