package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
	"github.com/jhoicas/rastreio-doces-api/pkg/validation"
)

// LoteTxRunner executa fluxos de lote que precisam de uma única transação
// (cadastro com itens, exclusão em cascata, registro de distribuição).
type LoteTxRunner interface {
	RunLote(ctx context.Context, fn func(
		lotes repository.LoteRepository,
		itens repository.LoteItemRepository,
		dists repository.DistribuicaoRepository,
		vendas repository.VendaPdvRepository,
	) error) error
}

// validate roda as tags `validate` do DTO. O erro casa com *validation.Error e com ErrInvalidInput.
func validate(in any) error {
	if err := validation.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// parseDate lê datas YYYY-MM-DD da API.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s deve estar no formato AAAA-MM-DD", domain.ErrInvalidInput, field)
	}
	return t, nil
}

// trimPtr normaliza strings opcionais: vazio vira nil.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
