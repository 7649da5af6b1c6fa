package dto

import "time"

// CreateProdutoRequest entrada para cadastrar produto.
type CreateProdutoRequest struct {
	Nome  string  `json:"nome" validate:"required,max=200"`
	Tipo  string  `json:"tipo" validate:"required,max=100"`
	Sabor *string `json:"sabor" validate:"omitempty,max=100"`
}

// UpdateProdutoRequest entrada parcial para atualizar produto.
type UpdateProdutoRequest struct {
	Nome  *string `json:"nome" validate:"omitempty,min=1,max=200"`
	Tipo  *string `json:"tipo" validate:"omitempty,min=1,max=100"`
	Sabor *string `json:"sabor" validate:"omitempty,max=100"`
}

// ProdutoResponse saída de produto.
type ProdutoResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Tipo      string    `json:"tipo"`
	Sabor     *string   `json:"sabor"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
