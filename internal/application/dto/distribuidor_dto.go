package dto

import "time"

// DistribuidorRequest entrada de cadastro/edição de distribuidor.
type DistribuidorRequest struct {
	Nome     string `json:"nome" validate:"required,max=200"`
	CNPJ     string `json:"cnpj" validate:"required,cnpj"`
	Email    string `json:"email" validate:"omitempty,email"`
	Telefone string `json:"telefone" validate:"omitempty,max=30"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	Estado   string `json:"estado" validate:"omitempty,len=2"`
}

// DistribuidorResponse saída de distribuidor.
type DistribuidorResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	CNPJ      string    `json:"cnpj"` // formatado 00.000.000/0000-00
	Email     string    `json:"email"`
	Telefone  string    `json:"telefone"`
	Endereco  string    `json:"endereco"`
	Cidade    string    `json:"cidade"`
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDistribuicaoRequest registro de saída de lote.
type CreateDistribuicaoRequest struct {
	LoteID           string `json:"lote_id" validate:"required,uuid"`
	DistribuidorID   string `json:"distribuidor_id" validate:"required,uuid"`
	Quantidade       int    `json:"quantidade" validate:"required,gt=0"`
	DataDistribuicao string `json:"data_distribuicao" validate:"required"` // YYYY-MM-DD
	Responsavel      string `json:"responsavel" validate:"required,max=200"`
	Observacoes      string `json:"observacoes"`
}

// DistribuicaoResponse saída de distribuição.
type DistribuicaoResponse struct {
	ID               string    `json:"id"`
	LoteID           string    `json:"lote_id"`
	CodigoLote       string    `json:"codigo_lote,omitempty"`
	DistribuidorID   string    `json:"distribuidor_id"`
	Distribuidor     string    `json:"distribuidor,omitempty"`
	Quantidade       int       `json:"quantidade"`
	DataDistribuicao string    `json:"data_distribuicao"`
	Responsavel      string    `json:"responsavel"`
	Observacoes      string    `json:"observacoes"`
	CreatedAt        time.Time `json:"created_at"`
}
