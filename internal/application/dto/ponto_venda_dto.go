package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PontoVendaRequest cadastro/edição de PDV.
type PontoVendaRequest struct {
	Nome     string `json:"nome" validate:"required,max=200"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	Estado   string `json:"estado" validate:"omitempty,len=2"`
}

// PontoVendaResponse saída de PDV.
type PontoVendaResponse struct {
	ID             string    `json:"id"`
	DistribuidorID string    `json:"distribuidor_id"`
	Nome           string    `json:"nome"`
	Endereco       string    `json:"endereco"`
	Cidade         string    `json:"cidade"`
	Estado         string    `json:"estado"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateVendaRequest registro de venda em PDV.
type CreateVendaRequest struct {
	PontoVendaID  string          `json:"ponto_venda_id" validate:"required,uuid"`
	LoteID        string          `json:"lote_id" validate:"required,uuid"`
	ProdutoID     string          `json:"produto_id" validate:"required,uuid"`
	Quantidade    int             `json:"quantidade" validate:"required,gt=0"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	DataVenda     string          `json:"data_venda" validate:"required"` // YYYY-MM-DD
}

// VendaResponse saída de venda.
type VendaResponse struct {
	ID            string          `json:"id"`
	PontoVendaID  string          `json:"ponto_venda_id"`
	PontoVenda    string          `json:"ponto_venda,omitempty"`
	LoteID        string          `json:"lote_id"`
	CodigoLote    string          `json:"codigo_lote,omitempty"`
	ProdutoID     string          `json:"produto_id"`
	Produto       string          `json:"produto,omitempty"`
	Quantidade    int             `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	DataVenda     string          `json:"data_venda"`
}
