package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/policy"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

// ProdutoUseCase CRUD do catálogo. Produto referenciado por lote ou venda não muda mais.
type ProdutoUseCase struct {
	repo repository.ProdutoRepository
}

// NewProdutoUseCase constrói o caso de uso.
func NewProdutoUseCase(repo repository.ProdutoRepository) *ProdutoUseCase {
	return &ProdutoUseCase{repo: repo}
}

// Create cadastra um produto.
func (uc *ProdutoUseCase) Create(ctx context.Context, in dto.CreateProdutoRequest) (*dto.ProdutoResponse, error) {
	if _, err := policy.Authorize(ctx, policy.ProdutoWrite); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Produto{
		ID:        uuid.New().String(),
		Nome:      strings.TrimSpace(in.Nome),
		Tipo:      strings.TrimSpace(in.Tipo),
		Sabor:     trimPtr(in.Sabor),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Nome == "" || p.Tipo == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("produtos.Create: %w", err)
	}
	out := dto.NewProdutoResponse(p)
	return &out, nil
}

// GetByID devolve ErrNotFound se o produto não existir.
func (uc *ProdutoUseCase) GetByID(ctx context.Context, id string) (*dto.ProdutoResponse, error) {
	if _, err := policy.Authorize(ctx, policy.ProdutoRead); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("produtos.GetByID: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewProdutoResponse(p)
	return &out, nil
}

// List lista o catálogo, opcionalmente filtrado por tipo.
func (uc *ProdutoUseCase) List(ctx context.Context, tipo string) ([]dto.ProdutoResponse, error) {
	if _, err := policy.Authorize(ctx, policy.ProdutoRead); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, strings.TrimSpace(tipo))
	if err != nil {
		return nil, fmt.Errorf("produtos.List: %w", err)
	}
	out := make([]dto.ProdutoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProdutoResponse(p))
	}
	return out, nil
}

// Update altera campos informados. Produto já usado em lote devolve ErrProductInUse.
func (uc *ProdutoUseCase) Update(ctx context.Context, id string, in dto.UpdateProdutoRequest) (*dto.ProdutoResponse, error) {
	if _, err := policy.Authorize(ctx, policy.ProdutoWrite); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("produtos.Update: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	used, err := uc.repo.IsReferenced(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("produtos.Update: %w", err)
	}
	if used {
		return nil, domain.ErrProductInUse
	}
	if in.Nome != nil {
		p.Nome = strings.TrimSpace(*in.Nome)
	}
	if in.Tipo != nil {
		p.Tipo = strings.TrimSpace(*in.Tipo)
	}
	if in.Sabor != nil {
		p.Sabor = trimPtr(in.Sabor)
	}
	if p.Nome == "" || p.Tipo == "" {
		return nil, domain.ErrInvalidInput
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("produtos.Update: %w", err)
	}
	out := dto.NewProdutoResponse(p)
	return &out, nil
}

// Delete remove o produto se ninguém o referencia.
func (uc *ProdutoUseCase) Delete(ctx context.Context, id string) error {
	if _, err := policy.Authorize(ctx, policy.ProdutoWrite); err != nil {
		return err
	}
	used, err := uc.repo.IsReferenced(ctx, id)
	if err != nil {
		return fmt.Errorf("produtos.Delete: %w", err)
	}
	if used {
		return domain.ErrProductInUse
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("produtos.Delete: %w", err)
	}
	return nil
}
