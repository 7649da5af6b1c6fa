package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/pkg/validation"
)

type item struct {
	ProdutoID  string `json:"produto_id" validate:"required"`
	Quantidade int    `json:"quantidade" validate:"required,gt=0"`
}

type pedido struct {
	Codigo string `json:"codigo_lote" validate:"required"`
	CNPJ   string `json:"cnpj" validate:"omitempty,cnpj"`
	Itens  []item `json:"itens" validate:"required,min=1,dive"`
}

func TestStruct_ListaCamposAusentes(t *testing.T) {
	err := validation.Struct(pedido{Itens: []item{{ProdutoID: "p1", Quantidade: -1}}})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"codigo_lote", "itens[0].quantidade:gt"}, verr.Fields)
}

func TestStruct_CNPJ(t *testing.T) {
	assert.NoError(t, validation.Struct(pedido{Codigo: "L1", CNPJ: "11.222.333/0001-81", Itens: []item{{"p", 1}}}))

	err := validation.Struct(pedido{Codigo: "L1", CNPJ: "11.222.333/0001-82", Itens: []item{{"p", 1}}})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"cnpj:cnpj"}, verr.Fields)
}

func TestEmail(t *testing.T) {
	assert.True(t, validation.Email("ana@doces.com.br"))
	assert.False(t, validation.Email("ana@"))
	assert.False(t, validation.Email(""))
}
