package lot

import (
	"time"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// Group chave derivada (sabor, região) e o volume acumulado.
type Group struct {
	Key   string
	Total int
}

// Accumulator agrupa mantendo a ordem da primeira ocorrência de cada chave (não ordena).
type Accumulator struct {
	index  map[string]int
	groups []Group
}

// NewAccumulator cria um acumulador vazio.
func NewAccumulator() *Accumulator {
	return &Accumulator{index: make(map[string]int)}
}

// Add soma qty na chave, criando-a no fim se ainda não existir.
func (a *Accumulator) Add(key string, qty int) {
	i, ok := a.index[key]
	if !ok {
		a.index[key] = len(a.groups)
		a.groups = append(a.groups, Group{Key: key, Total: qty})
		return
	}
	a.groups[i].Total += qty
}

// Groups devolve os grupos em ordem de inserção.
func (a *Accumulator) Groups() []Group {
	out := make([]Group, len(a.groups))
	copy(out, a.groups)
	return out
}

// Stats contadores do dashboard da fábrica.
type Stats struct {
	LotesAtivos         int
	TotalProduzido      int
	TotalDistribuidores int
	ProximosVencimento  int
}

// ComputeStats calcula os contadores sobre lotes com itens e produtos carregados.
// category vazio = sem filtro; com filtro, só contam itens daquele tipo e lotes com ao menos um deles.
func ComputeStats(lotes []entity.LoteProducao, distribuidores int, category string, now time.Time) Stats {
	st := Stats{TotalDistribuidores: distribuidores}
	for _, l := range lotes {
		if !l.Ativo() {
			continue
		}
		matched := category == ""
		for _, it := range l.Itens {
			if category != "" && (it.Produto == nil || it.Produto.Tipo != category) {
				continue
			}
			matched = true
			st.TotalProduzido += it.Quantidade
		}
		if !matched {
			continue
		}
		st.LotesAtivos++
		if InHorizon(l.DataValidade, now) {
			st.ProximosVencimento++
		}
	}
	return st
}

// GroupByFlavor soma as quantidades dos lotes ativos por sabor.
func GroupByFlavor(lotes []entity.LoteProducao) []Group {
	acc := NewAccumulator()
	for _, l := range lotes {
		if !l.Ativo() {
			continue
		}
		for _, it := range l.Itens {
			key := entity.SemSabor
			if it.Produto != nil {
				key = it.Produto.SaborOuPadrao()
			}
			acc.Add(key, it.Quantidade)
		}
	}
	return acc.Groups()
}

// GroupByRegion soma o volume distribuído por nome do distribuidor.
func GroupByRegion(distribuicoes []entity.Distribuicao) []Group {
	acc := NewAccumulator()
	for _, d := range distribuicoes {
		key := d.DistribuidorID
		if d.Distribuidor != nil && d.Distribuidor.Nome != "" {
			key = d.Distribuidor.Nome
		}
		acc.Add(key, d.Quantidade)
	}
	return acc.Groups()
}
