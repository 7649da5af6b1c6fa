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
	"github.com/jhoicas/rastreio-doces-api/pkg/cnpj"
)

// DistribuidorUseCase CRUD de distribuidores. O CNPJ é gravado só com dígitos.
type DistribuidorUseCase struct {
	repo repository.DistribuidorRepository
}

// NewDistribuidorUseCase constrói o caso de uso.
func NewDistribuidorUseCase(repo repository.DistribuidorRepository) *DistribuidorUseCase {
	return &DistribuidorUseCase{repo: repo}
}

func (uc *DistribuidorUseCase) Create(ctx context.Context, in dto.DistribuidorRequest) (*dto.DistribuidorResponse, error) {
	if _, err := policy.Authorize(ctx, policy.DistribuidorWrite); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	d := &entity.Distribuidor{ID: uuid.New().String(), CreatedAt: now}
	if err := fillDistribuidor(d, in); err != nil {
		return nil, err
	}
	d.UpdatedAt = now
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("distribuidores.Create: %w", err)
	}
	out := dto.NewDistribuidorResponse(d)
	return &out, nil
}

func (uc *DistribuidorUseCase) GetByID(ctx context.Context, id string) (*dto.DistribuidorResponse, error) {
	if _, err := policy.Authorize(ctx, policy.DistribuidorRead); err != nil {
		return nil, err
	}
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("distribuidores.GetByID: %w", err)
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewDistribuidorResponse(d)
	return &out, nil
}

func (uc *DistribuidorUseCase) List(ctx context.Context) ([]dto.DistribuidorResponse, error) {
	if _, err := policy.Authorize(ctx, policy.DistribuidorRead); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("distribuidores.List: %w", err)
	}
	out := make([]dto.DistribuidorResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.NewDistribuidorResponse(d))
	}
	return out, nil
}

// Update substitui todos os campos editáveis.
func (uc *DistribuidorUseCase) Update(ctx context.Context, id string, in dto.DistribuidorRequest) (*dto.DistribuidorResponse, error) {
	if _, err := policy.Authorize(ctx, policy.DistribuidorWrite); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("distribuidores.Update: %w", err)
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if err := fillDistribuidor(d, in); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("distribuidores.Update: %w", err)
	}
	out := dto.NewDistribuidorResponse(d)
	return &out, nil
}

// Delete falha com ErrConflict se houver distribuições ou PDVs vinculados.
func (uc *DistribuidorUseCase) Delete(ctx context.Context, id string) error {
	if _, err := policy.Authorize(ctx, policy.DistribuidorWrite); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("distribuidores.Delete: %w", err)
	}
	return nil
}

func fillDistribuidor(d *entity.Distribuidor, in dto.DistribuidorRequest) error {
	if err := cnpj.Validate(in.CNPJ); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	d.Nome = strings.TrimSpace(in.Nome)
	d.CNPJ = cnpj.Normalize(in.CNPJ)
	d.Email = strings.ToLower(strings.TrimSpace(in.Email))
	d.Telefone = strings.TrimSpace(in.Telefone)
	d.Endereco = strings.TrimSpace(in.Endereco)
	d.Cidade = strings.TrimSpace(in.Cidade)
	d.Estado = strings.ToUpper(strings.TrimSpace(in.Estado))
	if d.Nome == "" {
		return fmt.Errorf("%w: nome obrigatório", domain.ErrInvalidInput)
	}
	return nil
}
