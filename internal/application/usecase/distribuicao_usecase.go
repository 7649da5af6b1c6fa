package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/scope"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/policy"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
)

const defaultDistribuicaoLimit = 500

// DistribuicaoUseCase saídas de lote para distribuidores.
type DistribuicaoUseCase struct {
	dists          repository.DistribuicaoRepository
	distribuidores repository.DistribuidorRepository
	tx             LoteTxRunner
	scope          *scope.Resolver
	log            *logger.Logger
}

// NewDistribuicaoUseCase constrói o caso de uso.
func NewDistribuicaoUseCase(
	dists repository.DistribuicaoRepository,
	distribuidores repository.DistribuidorRepository,
	tx LoteTxRunner,
	resolver *scope.Resolver,
	log *logger.Logger,
) *DistribuicaoUseCase {
	return &DistribuicaoUseCase{dists: dists, distribuidores: distribuidores, tx: tx, scope: resolver, log: log}
}

// Create registra a saída. O lote é travado durante a conferência para que duas saídas
// simultâneas não ultrapassem a quantidade produzida.
func (uc *DistribuicaoUseCase) Create(ctx context.Context, in dto.CreateDistribuicaoRequest) (*dto.DistribuicaoResponse, error) {
	if _, err := policy.Authorize(ctx, policy.DistribuicaoWrite); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	if in.Quantidade <= 0 {
		return nil, fmt.Errorf("%w: quantidade deve ser positiva", domain.ErrInvalidInput)
	}
	data, err := parseDate("data_distribuicao", in.DataDistribuicao)
	if err != nil {
		return nil, err
	}
	distribuidor, err := uc.distribuidores.GetByID(ctx, in.DistribuidorID)
	if err != nil {
		return nil, fmt.Errorf("distribuicoes.Create: %w", err)
	}
	if distribuidor == nil {
		return nil, fmt.Errorf("%w: distribuidor não existe", domain.ErrInvalidInput)
	}

	now := time.Now()
	d := &entity.Distribuicao{
		ID:               uuid.New().String(),
		LoteID:           in.LoteID,
		DistribuidorID:   in.DistribuidorID,
		Quantidade:       in.Quantidade,
		DataDistribuicao: data,
		Responsavel:      strings.TrimSpace(in.Responsavel),
		Observacoes:      in.Observacoes,
		CreatedAt:        now,
		UpdatedAt:        now,
		Distribuidor:     distribuidor,
	}
	err = uc.tx.RunLote(ctx, func(lotes repository.LoteRepository, itens repository.LoteItemRepository,
		dists repository.DistribuicaoRepository, _ repository.VendaPdvRepository) error {
		l, err := lotes.GetForUpdate(ctx, in.LoteID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		if !l.Ativo() {
			return domain.ErrLotInactive
		}
		l.Itens, err = itens.ListByLote(ctx, l.ID)
		if err != nil {
			return err
		}
		ja, err := dists.SumByLote(ctx, l.ID)
		if err != nil {
			return err
		}
		if ja+d.Quantidade > l.QuantidadeTotal() {
			return fmt.Errorf("%w: produzido %d, distribuído %d, solicitado %d",
				domain.ErrQuantityExceeded, l.QuantidadeTotal(), ja, d.Quantidade)
		}
		d.Lote = l
		return dists.Create(ctx, d)
	})
	if err != nil {
		return nil, fmt.Errorf("distribuicoes.Create: %w", err)
	}
	uc.log.Info().Str("codigo_lote", d.Lote.CodigoLote).Str("distribuidor", distribuidor.Nome).
		Int("quantidade", d.Quantidade).Msg("distribuição registrada")
	out := dto.NewDistribuicaoResponse(d)
	return &out, nil
}

// List filtra por lote e/ou distribuidor. Perfil distribuidor só enxerga as próprias.
func (uc *DistribuicaoUseCase) List(ctx context.Context, loteID, distribuidorID string) ([]dto.DistribuicaoResponse, error) {
	s, err := policy.Authorize(ctx, policy.DistribuicaoRead)
	if err != nil {
		return nil, err
	}
	if s.Role == entity.RoleDistribuidor {
		d, _, err := uc.scope.Distribuidor(ctx, s)
		if err != nil {
			return nil, err
		}
		distribuidorID = d.ID
	}
	list, err := uc.dists.List(ctx, repository.DistribuicaoFilter{
		LoteID:         loteID,
		DistribuidorID: distribuidorID,
		Limit:          defaultDistribuicaoLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("distribuicoes.List: %w", err)
	}
	out := make([]dto.DistribuicaoResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.NewDistribuicaoResponse(d))
	}
	return out, nil
}

func (uc *DistribuicaoUseCase) Delete(ctx context.Context, id string) error {
	if _, err := policy.Authorize(ctx, policy.DistribuicaoWrite); err != nil {
		return err
	}
	if err := uc.dists.Delete(ctx, id); err != nil {
		return fmt.Errorf("distribuicoes.Delete: %w", err)
	}
	return nil
}
