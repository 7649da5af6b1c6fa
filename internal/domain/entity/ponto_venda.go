package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PontoVenda (PDV) loja de varejo atendida por um distribuidor.
type PontoVenda struct {
	ID             string
	DistribuidorID string
	Nome           string
	Endereco       string
	Cidade         string
	Estado         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// VendaPdv venda registrada em um ponto de venda.
type VendaPdv struct {
	ID            string
	PontoVendaID  string
	LoteID        string
	ProdutoID     string
	Quantidade    int
	ValorUnitario decimal.Decimal
	ValorTotal    decimal.Decimal // Quantidade * ValorUnitario
	DataVenda     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	PontoVenda *PontoVenda
	Produto    *Produto
	CodigoLote string // join opcional
}
