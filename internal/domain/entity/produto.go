package entity

import "time"

// Produto item do catálogo da fábrica. Imutável depois de referenciado por um LoteItem.
type Produto struct {
	ID        string
	Nome      string
	Tipo      string  // categoria (ex. "brigadeiro", "bolo")
	Sabor     *string // opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaborOuPadrao devolve o sabor ou o rótulo usado nos agrupamentos quando não há sabor.
func (p Produto) SaborOuPadrao() string {
	if p.Sabor == nil || *p.Sabor == "" {
		return SemSabor
	}
	return *p.Sabor
}

// SemSabor rótulo de agrupamento para produtos sem sabor cadastrado.
const SemSabor = "Sem sabor"
