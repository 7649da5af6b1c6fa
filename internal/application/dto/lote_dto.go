package dto

import "time"

// LoteItemRequest linha informada no cadastro do lote.
type LoteItemRequest struct {
	ProdutoID  string `json:"produto_id" validate:"required,uuid"`
	Quantidade int    `json:"quantidade" validate:"required,gt=0"`
}

// CreateLoteRequest entrada para cadastrar lote com seus itens.
type CreateLoteRequest struct {
	CodigoLote   string            `json:"codigo_lote" validate:"required,max=50"`
	DataProducao string            `json:"data_producao" validate:"required"` // YYYY-MM-DD
	DataValidade string            `json:"data_validade" validate:"required"` // YYYY-MM-DD
	Responsavel  string            `json:"responsavel" validate:"required,max=200"`
	NotaFiscal   *string           `json:"nota_fiscal"`
	Observacoes  string            `json:"observacoes"`
	Itens        []LoteItemRequest `json:"itens" validate:"required,min=1,dive"`
}

// UpdateLoteRequest campos de cabeçalho editáveis. Itens não mudam depois do cadastro.
type UpdateLoteRequest struct {
	DataProducao *string `json:"data_producao"`
	DataValidade *string `json:"data_validade"`
	Responsavel  *string `json:"responsavel" validate:"omitempty,min=1,max=200"`
	NotaFiscal   *string `json:"nota_fiscal"`
	Observacoes  *string `json:"observacoes"`
}

// UpdateLoteStatusRequest troca ativo <-> inativo.
type UpdateLoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ativo inativo"`
}

// LoteItemResponse item com o produto resumido.
type LoteItemResponse struct {
	ID         string  `json:"id"`
	ProdutoID  string  `json:"produto_id"`
	Produto    string  `json:"produto"`
	Tipo       string  `json:"tipo"`
	Sabor      *string `json:"sabor"`
	Quantidade int     `json:"quantidade"`
}

// LoteResponse saída de lote.
type LoteResponse struct {
	ID              string             `json:"id"`
	CodigoLote      string             `json:"codigo_lote"`
	DataProducao    string             `json:"data_producao"`
	DataValidade    string             `json:"data_validade"`
	Responsavel     string             `json:"responsavel"`
	NotaFiscal      *string            `json:"nota_fiscal"`
	Observacoes     string             `json:"observacoes"`
	Status          string             `json:"status"`
	QuantidadeTotal int                `json:"quantidade_total"`
	Itens           []LoteItemResponse `json:"itens"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// LoteListResponse listagem paginada.
type LoteListResponse struct {
	Items []LoteResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// RastreioResponse visão completa de rastreabilidade de um lote.
type RastreioResponse struct {
	Lote              LoteResponse           `json:"lote"`
	Distribuicoes     []DistribuicaoResponse `json:"distribuicoes"`
	Vendas            []VendaResponse        `json:"vendas"`
	LocalizacaoAtual  *DistribuicaoResponse  `json:"localizacao_atual"` // distribuição mais recente; nil = na fábrica
	QuantidadeVendida int                    `json:"quantidade_vendida"`
	SaldoFabrica      int                    `json:"saldo_fabrica"`
}
