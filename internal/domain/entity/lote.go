package entity

import "time"

// Status possíveis de um lote. A transição é binária (ativo <-> inativo).
const (
	LoteAtivo   = "ativo"
	LoteInativo = "inativo"
)

// LoteProducao lote produzido pela fábrica, identificado por CodigoLote (chave de negócio única).
type LoteProducao struct {
	ID           string
	CodigoLote   string
	DataProducao time.Time
	DataValidade time.Time
	Responsavel  string
	NotaFiscal   *string
	Observacoes  string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Itens []LoteItem // preenchido apenas nas consultas com itens
}

// Ativo indica se o lote participa das agregações.
func (l LoteProducao) Ativo() bool {
	return l.Status == LoteAtivo
}

// QuantidadeTotal soma as quantidades dos itens carregados.
func (l LoteProducao) QuantidadeTotal() int {
	total := 0
	for _, it := range l.Itens {
		total += it.Quantidade
	}
	return total
}

// LoteItem linha do lote: um produto e a quantidade produzida.
type LoteItem struct {
	ID         string
	LoteID     string
	ProdutoID  string
	Quantidade int
	CreatedAt  time.Time

	Produto *Produto // join opcional
}

// ValidStatus confere se o status é um dos dois aceitos.
func ValidStatus(s string) bool {
	return s == LoteAtivo || s == LoteInativo
}
