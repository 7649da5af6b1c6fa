package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/scope"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/policy"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/session"
)

const defaultVendaLimit = 200

// PontoVendaUseCase PDVs e vendas, sempre no escopo do distribuidor da sessão.
// A fábrica consulta informando o distribuidor; só o distribuidor escreve.
type PontoVendaUseCase struct {
	pontos repository.PontoVendaRepository
	vendas repository.VendaPdvRepository
	lotes  repository.LoteRepository
	dists  repository.DistribuicaoRepository
	scope  *scope.Resolver
}

// NewPontoVendaUseCase constrói o caso de uso.
func NewPontoVendaUseCase(
	pontos repository.PontoVendaRepository,
	vendas repository.VendaPdvRepository,
	lotes repository.LoteRepository,
	dists repository.DistribuicaoRepository,
	resolver *scope.Resolver,
) *PontoVendaUseCase {
	return &PontoVendaUseCase{pontos: pontos, vendas: vendas, lotes: lotes, dists: dists, scope: resolver}
}

// distribuidorID resolve o distribuidor alvo: o da sessão para perfil distribuidor,
// o informado (obrigatório) para a fábrica.
func (uc *PontoVendaUseCase) distribuidorID(ctx context.Context, s session.Session, requested string) (string, error) {
	if s.Role != entity.RoleDistribuidor {
		if requested == "" {
			return "", fmt.Errorf("%w: distribuidor_id obrigatório", domain.ErrInvalidInput)
		}
		return requested, nil
	}
	d, _, err := uc.scope.Distribuidor(ctx, s)
	if err != nil {
		return "", err
	}
	return d.ID, nil
}

// ownPonto carrega o PDV e confere que pertence ao distribuidor da sessão.
func (uc *PontoVendaUseCase) ownPonto(ctx context.Context, s session.Session, id string) (*entity.PontoVenda, error) {
	distID, err := uc.distribuidorID(ctx, s, "")
	if err != nil {
		return nil, err
	}
	p, err := uc.pontos.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("pontos_venda.Get: %w", err)
	}
	if p == nil || p.DistribuidorID != distID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *PontoVendaUseCase) List(ctx context.Context, distribuidorID string) ([]dto.PontoVendaResponse, error) {
	s, err := policy.Authorize(ctx, policy.PontoVendaRead)
	if err != nil {
		return nil, err
	}
	distID, err := uc.distribuidorID(ctx, s, distribuidorID)
	if err != nil {
		return nil, err
	}
	list, err := uc.pontos.ListByDistribuidor(ctx, distID)
	if err != nil {
		return nil, fmt.Errorf("pontos_venda.List: %w", err)
	}
	out := make([]dto.PontoVendaResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewPontoVendaResponse(p))
	}
	return out, nil
}

func (uc *PontoVendaUseCase) Create(ctx context.Context, in dto.PontoVendaRequest) (*dto.PontoVendaResponse, error) {
	s, err := policy.Authorize(ctx, policy.PontoVendaWrite)
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	distID, err := uc.distribuidorID(ctx, s, "")
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.PontoVenda{
		ID:             uuid.New().String(),
		DistribuidorID: distID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	fillPonto(p, in)
	if p.Nome == "" {
		return nil, fmt.Errorf("%w: nome obrigatório", domain.ErrInvalidInput)
	}
	if err := uc.pontos.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("pontos_venda.Create: %w", err)
	}
	out := dto.NewPontoVendaResponse(p)
	return &out, nil
}

func (uc *PontoVendaUseCase) Update(ctx context.Context, id string, in dto.PontoVendaRequest) (*dto.PontoVendaResponse, error) {
	s, err := policy.Authorize(ctx, policy.PontoVendaWrite)
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	p, err := uc.ownPonto(ctx, s, id)
	if err != nil {
		return nil, err
	}
	fillPonto(p, in)
	if p.Nome == "" {
		return nil, fmt.Errorf("%w: nome obrigatório", domain.ErrInvalidInput)
	}
	p.UpdatedAt = time.Now()
	if err := uc.pontos.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("pontos_venda.Update: %w", err)
	}
	out := dto.NewPontoVendaResponse(p)
	return &out, nil
}

// Delete recusa PDV com vendas (ErrConflict).
func (uc *PontoVendaUseCase) Delete(ctx context.Context, id string) error {
	s, err := policy.Authorize(ctx, policy.PontoVendaWrite)
	if err != nil {
		return err
	}
	if _, err := uc.ownPonto(ctx, s, id); err != nil {
		return err
	}
	if err := uc.pontos.Delete(ctx, id); err != nil {
		return fmt.Errorf("pontos_venda.Delete: %w", err)
	}
	return nil
}

func fillPonto(p *entity.PontoVenda, in dto.PontoVendaRequest) {
	p.Nome = strings.TrimSpace(in.Nome)
	p.Endereco = strings.TrimSpace(in.Endereco)
	p.Cidade = strings.TrimSpace(in.Cidade)
	p.Estado = strings.ToUpper(strings.TrimSpace(in.Estado))
}

// CreateVenda registra venda num PDV próprio. O produto precisa ser item do lote e o lote
// precisa ter sido distribuído ao distribuidor. valor_total = quantidade × valor_unitario.
func (uc *PontoVendaUseCase) CreateVenda(ctx context.Context, in dto.CreateVendaRequest) (*dto.VendaResponse, error) {
	s, err := policy.Authorize(ctx, policy.VendaWrite)
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	if in.Quantidade <= 0 {
		return nil, fmt.Errorf("%w: quantidade deve ser positiva", domain.ErrInvalidInput)
	}
	if in.ValorUnitario.IsNegative() {
		return nil, fmt.Errorf("%w: valor_unitario negativo", domain.ErrInvalidInput)
	}
	data, err := parseDate("data_venda", in.DataVenda)
	if err != nil {
		return nil, err
	}
	p, err := uc.ownPonto(ctx, s, in.PontoVendaID)
	if err != nil {
		return nil, err
	}
	l, err := uc.lotes.GetByID(ctx, in.LoteID)
	if err != nil {
		return nil, fmt.Errorf("vendas.Create: %w", err)
	}
	if l == nil {
		return nil, fmt.Errorf("%w: lote não existe", domain.ErrInvalidInput)
	}
	var produto *entity.Produto
	for _, it := range l.Itens {
		if it.ProdutoID == in.ProdutoID {
			produto = it.Produto
		}
	}
	if produto == nil {
		return nil, fmt.Errorf("%w: produto não pertence ao lote %s", domain.ErrInvalidInput, l.CodigoLote)
	}
	recebidas, err := uc.dists.List(ctx, repository.DistribuicaoFilter{LoteID: l.ID, DistribuidorID: p.DistribuidorID, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("vendas.Create: %w", err)
	}
	if len(recebidas) == 0 {
		return nil, fmt.Errorf("%w: lote %s não foi distribuído a este distribuidor", domain.ErrInvalidInput, l.CodigoLote)
	}

	now := time.Now()
	v := &entity.VendaPdv{
		ID:            uuid.New().String(),
		PontoVendaID:  p.ID,
		LoteID:        l.ID,
		ProdutoID:     in.ProdutoID,
		Quantidade:    in.Quantidade,
		ValorUnitario: in.ValorUnitario.Round(2),
		ValorTotal:    in.ValorUnitario.Mul(decimal.NewFromInt(int64(in.Quantidade))).Round(2),
		DataVenda:     data,
		CreatedAt:     now,
		UpdatedAt:     now,
		PontoVenda:    p,
		Produto:       produto,
		CodigoLote:    l.CodigoLote,
	}
	if err := uc.vendas.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("vendas.Create: %w", err)
	}
	out := dto.NewVendaResponse(v)
	return &out, nil
}

// ListVendas vendas do distribuidor, opcionalmente de um PDV.
func (uc *PontoVendaUseCase) ListVendas(ctx context.Context, distribuidorID, pontoVendaID string) ([]dto.VendaResponse, error) {
	s, err := policy.Authorize(ctx, policy.PontoVendaRead)
	if err != nil {
		return nil, err
	}
	distID, err := uc.distribuidorID(ctx, s, distribuidorID)
	if err != nil {
		return nil, err
	}
	list, err := uc.vendas.List(ctx, repository.VendaFilter{
		DistribuidorID: distID,
		PontoVendaID:   pontoVendaID,
		Limit:          defaultVendaLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("vendas.List: %w", err)
	}
	out := make([]dto.VendaResponse, 0, len(list))
	for _, v := range list {
		out = append(out, dto.NewVendaResponse(v))
	}
	return out, nil
}

func (uc *PontoVendaUseCase) DeleteVenda(ctx context.Context, id string) error {
	s, err := policy.Authorize(ctx, policy.VendaWrite)
	if err != nil {
		return err
	}
	v, err := uc.vendas.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("vendas.Delete: %w", err)
	}
	if v == nil {
		return domain.ErrNotFound
	}
	if _, err := uc.ownPonto(ctx, s, v.PontoVendaID); err != nil {
		return err
	}
	if err := uc.vendas.Delete(ctx, id); err != nil {
		return fmt.Errorf("vendas.Delete: %w", err)
	}
	return nil
}
