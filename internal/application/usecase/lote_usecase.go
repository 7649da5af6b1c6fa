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
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
)

const defaultLoteLimit = 100

// LoteUseCase cadastro, manutenção e rastreabilidade de lotes de produção.
type LoteUseCase struct {
	lotes    repository.LoteRepository
	produtos repository.ProdutoRepository
	dists    repository.DistribuicaoRepository
	vendas   repository.VendaPdvRepository
	tx       LoteTxRunner
	log      *logger.Logger
}

// NewLoteUseCase constrói o caso de uso.
func NewLoteUseCase(
	lotes repository.LoteRepository,
	produtos repository.ProdutoRepository,
	dists repository.DistribuicaoRepository,
	vendas repository.VendaPdvRepository,
	tx LoteTxRunner,
	log *logger.Logger,
) *LoteUseCase {
	return &LoteUseCase{lotes: lotes, produtos: produtos, dists: dists, vendas: vendas, tx: tx, log: log}
}

// Create grava o cabeçalho e os itens na mesma transação. Código repetido devolve ErrDuplicate.
func (uc *LoteUseCase) Create(ctx context.Context, in dto.CreateLoteRequest) (*dto.LoteResponse, error) {
	if _, err := policy.Authorize(ctx, policy.LoteWrite); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	producao, err := parseDate("data_producao", in.DataProducao)
	if err != nil {
		return nil, err
	}
	validade, err := parseDate("data_validade", in.DataValidade)
	if err != nil {
		return nil, err
	}
	if validade.Before(producao) {
		return nil, fmt.Errorf("%w: data_validade anterior à data_producao", domain.ErrInvalidInput)
	}
	if len(in.Itens) == 0 {
		return nil, fmt.Errorf("%w: o lote precisa de ao menos um item", domain.ErrInvalidInput)
	}

	now := time.Now()
	l := &entity.LoteProducao{
		ID:           uuid.New().String(),
		CodigoLote:   strings.TrimSpace(in.CodigoLote),
		DataProducao: producao,
		DataValidade: validade,
		Responsavel:  strings.TrimSpace(in.Responsavel),
		NotaFiscal:   trimPtr(in.NotaFiscal),
		Observacoes:  in.Observacoes,
		Status:       entity.LoteAtivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	itens := make([]entity.LoteItem, 0, len(in.Itens))
	for _, it := range in.Itens {
		if it.Quantidade <= 0 {
			return nil, fmt.Errorf("%w: quantidade deve ser positiva", domain.ErrInvalidInput)
		}
		p, err := uc.produtos.GetByID(ctx, it.ProdutoID)
		if err != nil {
			return nil, fmt.Errorf("lotes.Create: %w", err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: produto %s não existe", domain.ErrInvalidInput, it.ProdutoID)
		}
		itens = append(itens, entity.LoteItem{
			ID:         uuid.New().String(),
			LoteID:     l.ID,
			ProdutoID:  it.ProdutoID,
			Quantidade: it.Quantidade,
			CreatedAt:  now,
			Produto:    p,
		})
	}

	err = uc.tx.RunLote(ctx, func(lotes repository.LoteRepository, itemRepo repository.LoteItemRepository,
		_ repository.DistribuicaoRepository, _ repository.VendaPdvRepository) error {
		if err := lotes.Create(ctx, l); err != nil {
			return err
		}
		return itemRepo.CreateBatch(ctx, itens)
	})
	if err != nil {
		return nil, fmt.Errorf("lotes.Create: %w", err)
	}
	l.Itens = itens
	uc.log.Info().Str("codigo_lote", l.CodigoLote).Int("itens", len(itens)).Msg("lote cadastrado")
	out := dto.NewLoteResponse(l)
	return &out, nil
}

// GetByID lote com itens.
func (uc *LoteUseCase) GetByID(ctx context.Context, id string) (*dto.LoteResponse, error) {
	if _, err := policy.Authorize(ctx, policy.LoteRead); err != nil {
		return nil, err
	}
	l, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewLoteResponse(l)
	return &out, nil
}

func (uc *LoteUseCase) get(ctx context.Context, id string) (*entity.LoteProducao, error) {
	l, err := uc.lotes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lotes.Get: %w", err)
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// List lista do mais recente para o mais antigo, opcionalmente por status.
func (uc *LoteUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.LoteListResponse, error) {
	if _, err := policy.Authorize(ctx, policy.LoteRead); err != nil {
		return nil, err
	}
	if status != "" && !entity.ValidStatus(status) {
		return nil, fmt.Errorf("%w: status deve ser ativo ou inativo", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultLoteLimit
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.lotes.List(ctx, repository.LoteFilter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("lotes.List: %w", err)
	}
	items := make([]dto.LoteResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.NewLoteResponse(l))
	}
	return &dto.LoteListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Update altera apenas o cabeçalho; itens são fixos depois do cadastro.
func (uc *LoteUseCase) Update(ctx context.Context, id string, in dto.UpdateLoteRequest) (*dto.LoteResponse, error) {
	if _, err := policy.Authorize(ctx, policy.LoteWrite); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	l, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.DataProducao != nil {
		if l.DataProducao, err = parseDate("data_producao", *in.DataProducao); err != nil {
			return nil, err
		}
	}
	if in.DataValidade != nil {
		if l.DataValidade, err = parseDate("data_validade", *in.DataValidade); err != nil {
			return nil, err
		}
	}
	if l.DataValidade.Before(l.DataProducao) {
		return nil, fmt.Errorf("%w: data_validade anterior à data_producao", domain.ErrInvalidInput)
	}
	if in.Responsavel != nil {
		l.Responsavel = strings.TrimSpace(*in.Responsavel)
	}
	if in.NotaFiscal != nil {
		l.NotaFiscal = trimPtr(in.NotaFiscal)
	}
	if in.Observacoes != nil {
		l.Observacoes = *in.Observacoes
	}
	l.UpdatedAt = time.Now()
	if err := uc.lotes.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("lotes.Update: %w", err)
	}
	out := dto.NewLoteResponse(l)
	return &out, nil
}

// UpdateStatus alterna ativo <-> inativo.
func (uc *LoteUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.LoteResponse, error) {
	if _, err := policy.Authorize(ctx, policy.LoteWrite); err != nil {
		return nil, err
	}
	if !entity.ValidStatus(status) {
		return nil, fmt.Errorf("%w: status deve ser ativo ou inativo", domain.ErrInvalidInput)
	}
	if err := uc.lotes.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("lotes.UpdateStatus: %w", err)
	}
	return uc.GetByID(ctx, id)
}

// Delete remove vendas, distribuições, itens e o lote numa única transação.
func (uc *LoteUseCase) Delete(ctx context.Context, id string) error {
	if _, err := policy.Authorize(ctx, policy.LoteWrite); err != nil {
		return err
	}
	err := uc.tx.RunLote(ctx, func(lotes repository.LoteRepository, itens repository.LoteItemRepository,
		dists repository.DistribuicaoRepository, vendas repository.VendaPdvRepository) error {
		if err := vendas.DeleteByLote(ctx, id); err != nil {
			return err
		}
		if err := dists.DeleteByLote(ctx, id); err != nil {
			return err
		}
		if err := itens.DeleteByLote(ctx, id); err != nil {
			return err
		}
		return lotes.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("lotes.Delete: %w", err)
	}
	uc.log.Info().Str("lote_id", id).Msg("lote excluído com distribuições e vendas")
	return nil
}

// Rastreio junta lote, distribuições e vendas. A localização atual é a distribuição mais recente.
func (uc *LoteUseCase) Rastreio(ctx context.Context, id string) (*dto.RastreioResponse, error) {
	if _, err := policy.Authorize(ctx, policy.LoteRead); err != nil {
		return nil, err
	}
	l, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	dists, err := uc.dists.List(ctx, repository.DistribuicaoFilter{LoteID: id})
	if err != nil {
		return nil, fmt.Errorf("lotes.Rastreio: %w", err)
	}
	vendas, err := uc.vendas.List(ctx, repository.VendaFilter{LoteID: id})
	if err != nil {
		return nil, fmt.Errorf("lotes.Rastreio: %w", err)
	}

	out := &dto.RastreioResponse{
		Lote:          dto.NewLoteResponse(l),
		Distribuicoes: make([]dto.DistribuicaoResponse, 0, len(dists)),
		Vendas:        make([]dto.VendaResponse, 0, len(vendas)),
	}
	distribuido := 0
	var atual *entity.Distribuicao
	for _, d := range dists {
		out.Distribuicoes = append(out.Distribuicoes, dto.NewDistribuicaoResponse(d))
		distribuido += d.Quantidade
		if atual == nil || mostRecent(d, atual) {
			atual = d
		}
	}
	if atual != nil {
		r := dto.NewDistribuicaoResponse(atual)
		out.LocalizacaoAtual = &r
	}
	for _, v := range vendas {
		out.Vendas = append(out.Vendas, dto.NewVendaResponse(v))
		out.QuantidadeVendida += v.Quantidade
	}
	out.SaldoFabrica = l.QuantidadeTotal() - distribuido
	return out, nil
}

func mostRecent(a, b *entity.Distribuicao) bool {
	if !a.DataDistribuicao.Equal(b.DataDistribuicao) {
		return a.DataDistribuicao.After(b.DataDistribuicao)
	}
	return a.CreatedAt.After(b.CreatedAt)
}
