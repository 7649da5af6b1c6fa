package entity

import "time"

// Distribuidor empresa que recebe lotes da fábrica.
type Distribuidor struct {
	ID        string
	Nome      string
	CNPJ      string // somente dígitos
	Email     string
	Telefone  string
	Endereco  string
	Cidade    string
	Estado    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Distribuicao saída de uma quantidade de um lote para um distribuidor.
type Distribuicao struct {
	ID               string
	LoteID           string
	DistribuidorID   string
	Quantidade       int
	DataDistribuicao time.Time
	Responsavel      string
	Observacoes      string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Lote         *LoteProducao // joins opcionais
	Distribuidor *Distribuidor
}
