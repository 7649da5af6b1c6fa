package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

var (
	_ repository.ProdutoRepository  = (*ProdutoRepo)(nil)
	_ repository.LoteRepository     = (*LoteRepo)(nil)
	_ repository.LoteItemRepository = (*LoteItemRepo)(nil)
)

// ProdutoRepo catálogo em memória.
type ProdutoRepo struct{ s *Store }

func (r *ProdutoRepo) Create(_ context.Context, p *entity.Produto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.produtos = append(r.s.data.produtos, *p)
	return nil
}

func (r *ProdutoRepo) GetByID(_ context.Context, id string) (*entity.Produto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.produto(id), nil
}

func (r *ProdutoRepo) List(_ context.Context, tipo string) ([]*entity.Produto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Produto
	for _, p := range r.s.data.produtos {
		if tipo == "" || p.Tipo == tipo {
			p := p
			out = append(out, &p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *ProdutoRepo) Search(_ context.Context, term string, limit int) ([]*entity.Produto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Produto
	for _, p := range r.s.data.produtos {
		if contains(p.Nome, term) && len(out) < limit {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *ProdutoRepo) Update(_ context.Context, p *entity.Produto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.produtos {
		if r.s.data.produtos[i].ID == p.ID {
			r.s.data.produtos[i] = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ProdutoRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.produtoReferenced(id) {
		return domain.ErrProductInUse
	}
	for i, p := range r.s.data.produtos {
		if p.ID == id {
			r.s.data.produtos = append(r.s.data.produtos[:i], r.s.data.produtos[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ProdutoRepo) IsReferenced(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.produtoReferenced(id), nil
}

func (s *Store) produto(id string) *entity.Produto {
	for _, p := range s.data.produtos {
		if p.ID == id {
			p := p
			return &p
		}
	}
	return nil
}

func (s *Store) produtoReferenced(id string) bool {
	for _, it := range s.data.itens {
		if it.ProdutoID == id {
			return true
		}
	}
	for _, v := range s.data.vendas {
		if v.ProdutoID == id {
			return true
		}
	}
	return false
}

// LoteRepo lotes em memória. Listagens devolvem do mais recente (último inserido) para o mais antigo.
type LoteRepo struct{ s *Store }

func (r *LoteRepo) Create(_ context.Context, l *entity.LoteProducao) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.data.lotes {
		if x.CodigoLote == l.CodigoLote {
			return domain.ErrDuplicate
		}
	}
	c := *l
	c.Itens = nil
	r.s.data.lotes = append(r.s.data.lotes, c)
	return nil
}

func (r *LoteRepo) GetByID(_ context.Context, id string) (*entity.LoteProducao, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.lote(func(l entity.LoteProducao) bool { return l.ID == id }), nil
}

func (r *LoteRepo) GetByCodigo(_ context.Context, codigo string) (*entity.LoteProducao, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l := r.s.lote(func(l entity.LoteProducao) bool { return l.CodigoLote == codigo }); l != nil {
		return l, nil
	}
	return r.s.lote(func(l entity.LoteProducao) bool { return strings.EqualFold(l.CodigoLote, codigo) }), nil
}

func (r *LoteRepo) GetForUpdate(ctx context.Context, id string) (*entity.LoteProducao, error) {
	l, err := r.GetByID(ctx, id)
	if l != nil {
		l.Itens = nil
	}
	return l, err
}

func (r *LoteRepo) List(_ context.Context, f repository.LoteFilter) ([]*entity.LoteProducao, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LoteProducao
	for i := len(r.s.data.lotes) - 1; i >= 0; i-- {
		l := r.s.data.lotes[i]
		if f.Status == "" || l.Status == f.Status {
			out = append(out, r.s.withItens(l))
		}
	}
	return page(out, f.Limit, f.Offset), nil
}

func (r *LoteRepo) Search(_ context.Context, term string, limit int) ([]*entity.LoteProducao, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LoteProducao
	for i := len(r.s.data.lotes) - 1; i >= 0 && len(out) < limit; i-- {
		l := r.s.withItens(r.s.data.lotes[i])
		match := contains(l.CodigoLote, term)
		for _, it := range l.Itens {
			if it.Produto != nil && contains(it.Produto.Nome, term) {
				match = true
			}
		}
		if match {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *LoteRepo) Update(_ context.Context, l *entity.LoteProducao) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.lotes {
		x := &r.s.data.lotes[i]
		if x.ID == l.ID {
			x.DataProducao, x.DataValidade = l.DataProducao, l.DataValidade
			x.Responsavel, x.NotaFiscal, x.Observacoes = l.Responsavel, l.NotaFiscal, l.Observacoes
			x.UpdatedAt = l.UpdatedAt
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *LoteRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.lotes {
		if r.s.data.lotes[i].ID == id {
			r.s.data.lotes[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete recusa lotes ainda referenciados, como a FK do Postgres.
func (r *LoteRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.data.itens {
		if it.LoteID == id {
			return domain.ErrConflict
		}
	}
	for i, l := range r.s.data.lotes {
		if l.ID == id {
			r.s.data.lotes = append(r.s.data.lotes[:i], r.s.data.lotes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *LoteRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.data.lotes), nil
}

func (s *Store) lote(match func(entity.LoteProducao) bool) *entity.LoteProducao {
	for _, l := range s.data.lotes {
		if match(l) {
			return s.withItens(l)
		}
	}
	return nil
}

func (s *Store) withItens(l entity.LoteProducao) *entity.LoteProducao {
	l.Itens = []entity.LoteItem{}
	for _, it := range s.data.itens {
		if it.LoteID == l.ID {
			it.Produto = s.produto(it.ProdutoID)
			l.Itens = append(l.Itens, it)
		}
	}
	return &l
}

// LoteItemRepo linhas de lote em memória.
type LoteItemRepo struct{ s *Store }

func (r *LoteItemRepo) CreateBatch(_ context.Context, itens []entity.LoteItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("lote_itens.CreateBatch"); err != nil {
		return err
	}
	for _, it := range itens {
		if r.s.produto(it.ProdutoID) == nil {
			return domain.ErrInvalidInput
		}
		if it.Quantidade <= 0 {
			return domain.ErrInvalidInput
		}
	}
	r.s.data.itens = append(r.s.data.itens, itens...)
	return nil
}

func (r *LoteItemRepo) ListByLote(_ context.Context, loteID string) ([]entity.LoteItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.withItens(entity.LoteProducao{ID: loteID}).Itens, nil
}

func (r *LoteItemRepo) DeleteByLote(_ context.Context, loteID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.data.itens[:0]
	for _, it := range r.s.data.itens {
		if it.LoteID != loteID {
			kept = append(kept, it)
		}
	}
	r.s.data.itens = kept
	return nil
}

func contains(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
