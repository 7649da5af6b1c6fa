package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

var (
	_ repository.DistribuidorRepository = (*DistribuidorRepo)(nil)
	_ repository.DistribuicaoRepository = (*DistribuicaoRepo)(nil)
	_ repository.PontoVendaRepository   = (*PontoVendaRepo)(nil)
	_ repository.VendaPdvRepository     = (*VendaPdvRepo)(nil)
)

// DistribuidorRepo distribuidores em memória; CNPJ único.
type DistribuidorRepo struct{ s *Store }

func (r *DistribuidorRepo) Create(_ context.Context, d *entity.Distribuidor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.data.distribuidores {
		if x.CNPJ == d.CNPJ {
			return domain.ErrDuplicate
		}
	}
	r.s.data.distribuidores = append(r.s.data.distribuidores, *d)
	return nil
}

func (r *DistribuidorRepo) GetByID(_ context.Context, id string) (*entity.Distribuidor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.distribuidor(func(d entity.Distribuidor) bool { return d.ID == id }), nil
}

func (r *DistribuidorRepo) GetByCNPJ(_ context.Context, cnpj string) (*entity.Distribuidor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.distribuidor(func(d entity.Distribuidor) bool { return d.CNPJ == cnpj }), nil
}

func (r *DistribuidorRepo) List(_ context.Context) ([]*entity.Distribuidor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Distribuidor, 0, len(r.s.data.distribuidores))
	for _, d := range r.s.data.distribuidores {
		d := d
		out = append(out, &d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *DistribuidorRepo) Update(_ context.Context, d *entity.Distribuidor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	idx := -1
	for i, x := range r.s.data.distribuidores {
		if x.ID == d.ID {
			idx = i
		} else if x.CNPJ == d.CNPJ {
			return domain.ErrDuplicate
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	r.s.data.distribuidores[idx] = *d
	return nil
}

func (r *DistribuidorRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.data.distribuicoes {
		if d.DistribuidorID == id {
			return domain.ErrConflict
		}
	}
	for _, p := range r.s.data.pontos {
		if p.DistribuidorID == id {
			return domain.ErrConflict
		}
	}
	for i, d := range r.s.data.distribuidores {
		if d.ID == id {
			r.s.data.distribuidores = append(r.s.data.distribuidores[:i], r.s.data.distribuidores[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *DistribuidorRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.data.distribuidores), nil
}

func (s *Store) distribuidor(match func(entity.Distribuidor) bool) *entity.Distribuidor {
	for _, d := range s.data.distribuidores {
		if match(d) {
			d := d
			return &d
		}
	}
	return nil
}

// DistribuicaoRepo distribuições em memória, com os joins de lote e distribuidor preenchidos na leitura.
type DistribuicaoRepo struct{ s *Store }

func (r *DistribuicaoRepo) Create(_ context.Context, d *entity.Distribuicao) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.lote(func(l entity.LoteProducao) bool { return l.ID == d.LoteID }) == nil ||
		r.s.distribuidor(func(x entity.Distribuidor) bool { return x.ID == d.DistribuidorID }) == nil {
		return domain.ErrInvalidInput
	}
	c := *d
	c.Lote, c.Distribuidor = nil, nil
	r.s.data.distribuicoes = append(r.s.data.distribuicoes, c)
	return nil
}

func (r *DistribuicaoRepo) GetByID(_ context.Context, id string) (*entity.Distribuicao, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.data.distribuicoes {
		if d.ID == id {
			return r.s.joinDistribuicao(d), nil
		}
	}
	return nil, nil
}

func (r *DistribuicaoRepo) List(_ context.Context, f repository.DistribuicaoFilter) ([]*entity.Distribuicao, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Distribuicao
	for i := len(r.s.data.distribuicoes) - 1; i >= 0; i-- {
		d := r.s.data.distribuicoes[i]
		if f.LoteID != "" && d.LoteID != f.LoteID {
			continue
		}
		if f.DistribuidorID != "" && d.DistribuidorID != f.DistribuidorID {
			continue
		}
		out = append(out, r.s.joinDistribuicao(d))
	}
	return page(out, f.Limit, 0), nil
}

func (r *DistribuicaoRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, d := range r.s.data.distribuicoes {
		if d.ID == id {
			r.s.data.distribuicoes = append(r.s.data.distribuicoes[:i], r.s.data.distribuicoes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *DistribuicaoRepo) DeleteByLote(_ context.Context, loteID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.data.distribuicoes[:0]
	for _, d := range r.s.data.distribuicoes {
		if d.LoteID != loteID {
			kept = append(kept, d)
		}
	}
	r.s.data.distribuicoes = kept
	return nil
}

func (r *DistribuicaoRepo) SumByLote(_ context.Context, loteID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := 0
	for _, d := range r.s.data.distribuicoes {
		if d.LoteID == loteID {
			total += d.Quantidade
		}
	}
	return total, nil
}

func (r *DistribuicaoRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.data.distribuicoes), nil
}

func (s *Store) joinDistribuicao(d entity.Distribuicao) *entity.Distribuicao {
	if l := s.lote(func(l entity.LoteProducao) bool { return l.ID == d.LoteID }); l != nil {
		l.Itens = nil
		d.Lote = l
	}
	d.Distribuidor = s.distribuidor(func(x entity.Distribuidor) bool { return x.ID == d.DistribuidorID })
	return &d
}

// PontoVendaRepo PDVs em memória.
type PontoVendaRepo struct{ s *Store }

func (r *PontoVendaRepo) Create(_ context.Context, p *entity.PontoVenda) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.distribuidor(func(d entity.Distribuidor) bool { return d.ID == p.DistribuidorID }) == nil {
		return domain.ErrInvalidInput
	}
	r.s.data.pontos = append(r.s.data.pontos, *p)
	return nil
}

func (r *PontoVendaRepo) GetByID(_ context.Context, id string) (*entity.PontoVenda, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.ponto(id), nil
}

func (r *PontoVendaRepo) ListByDistribuidor(_ context.Context, distribuidorID string) ([]*entity.PontoVenda, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PontoVenda
	for _, p := range r.s.data.pontos {
		if p.DistribuidorID == distribuidorID {
			p := p
			out = append(out, &p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *PontoVendaRepo) Update(_ context.Context, p *entity.PontoVenda) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.pontos {
		if r.s.data.pontos[i].ID == p.ID {
			r.s.data.pontos[i] = *p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *PontoVendaRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.data.vendas {
		if v.PontoVendaID == id {
			return domain.ErrConflict
		}
	}
	for i, p := range r.s.data.pontos {
		if p.ID == id {
			r.s.data.pontos = append(r.s.data.pontos[:i], r.s.data.pontos[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) ponto(id string) *entity.PontoVenda {
	for _, p := range s.data.pontos {
		if p.ID == id {
			p := p
			return &p
		}
	}
	return nil
}

// VendaPdvRepo vendas em memória.
type VendaPdvRepo struct{ s *Store }

func (r *VendaPdvRepo) Create(_ context.Context, v *entity.VendaPdv) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ponto(v.PontoVendaID) == nil || r.s.produto(v.ProdutoID) == nil ||
		r.s.lote(func(l entity.LoteProducao) bool { return l.ID == v.LoteID }) == nil {
		return domain.ErrInvalidInput
	}
	c := *v
	c.PontoVenda, c.Produto, c.CodigoLote = nil, nil, ""
	r.s.data.vendas = append(r.s.data.vendas, c)
	return nil
}

func (r *VendaPdvRepo) GetByID(_ context.Context, id string) (*entity.VendaPdv, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.data.vendas {
		if v.ID == id {
			return r.s.joinVenda(v), nil
		}
	}
	return nil, nil
}

func (r *VendaPdvRepo) List(_ context.Context, f repository.VendaFilter) ([]*entity.VendaPdv, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.VendaPdv
	for i := len(r.s.data.vendas) - 1; i >= 0; i-- {
		v := r.s.joinVenda(r.s.data.vendas[i])
		if f.PontoVendaID != "" && v.PontoVendaID != f.PontoVendaID {
			continue
		}
		if f.LoteID != "" && v.LoteID != f.LoteID {
			continue
		}
		if f.DistribuidorID != "" && (v.PontoVenda == nil || v.PontoVenda.DistribuidorID != f.DistribuidorID) {
			continue
		}
		out = append(out, v)
	}
	return page(out, f.Limit, 0), nil
}

func (r *VendaPdvRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, v := range r.s.data.vendas {
		if v.ID == id {
			r.s.data.vendas = append(r.s.data.vendas[:i], r.s.data.vendas[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *VendaPdvRepo) DeleteByLote(_ context.Context, loteID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.data.vendas[:0]
	for _, v := range r.s.data.vendas {
		if v.LoteID != loteID {
			kept = append(kept, v)
		}
	}
	r.s.data.vendas = kept
	return nil
}

func (r *VendaPdvRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.data.vendas), nil
}

func (s *Store) joinVenda(v entity.VendaPdv) *entity.VendaPdv {
	v.PontoVenda = s.ponto(v.PontoVendaID)
	v.Produto = s.produto(v.ProdutoID)
	for _, l := range s.data.lotes {
		if l.ID == v.LoteID {
			v.CodigoLote = l.CodigoLote
		}
	}
	return &v
}
