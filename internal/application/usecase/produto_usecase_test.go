package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
)

func TestProduto_CreateAndList(t *testing.T) {
	f := newFixture(t)
	f.produto(t, "Brigadeiro", "doce", "chocolate")
	f.produto(t, "Bolo de cenoura", "bolo", "")

	doces, err := f.produtos.List(fabrica(), "doce")
	require.NoError(t, err)
	require.Len(t, doces, 1)
	assert.Equal(t, "Brigadeiro", doces[0].Nome)

	todos, err := f.produtos.List(distribuidorCtx(""), "")
	require.NoError(t, err)
	assert.Len(t, todos, 2)
	assert.Nil(t, todos[0].Sabor, "sabor vazio vira nulo")
}

func TestProduto_SemSessaoOuSemPermissao(t *testing.T) {
	f := newFixture(t)

	_, err := f.produtos.Create(context.Background(), dto.CreateProdutoRequest{Nome: "X", Tipo: "doce"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.produtos.Create(distribuidorCtx("d1"), dto.CreateProdutoRequest{Nome: "X", Tipo: "doce"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProduto_ImutavelDepoisDeReferenciado(t *testing.T) {
	f := newFixture(t)
	p := f.produto(t, "Brigadeiro", "doce", "chocolate")
	f.lote(t, "LOT001", dto.LoteItemRequest{ProdutoID: p.ID, Quantidade: 100})

	_, err := f.produtos.Update(fabrica(), p.ID, dto.UpdateProdutoRequest{Nome: strPtr("Outro")})
	assert.ErrorIs(t, err, domain.ErrProductInUse)

	err = f.produtos.Delete(fabrica(), p.ID)
	assert.ErrorIs(t, err, domain.ErrProductInUse)
}

func TestProduto_UpdateEDelete(t *testing.T) {
	f := newFixture(t)
	p := f.produto(t, "Brigadeiro", "doce", "chocolate")

	got, err := f.produtos.Update(fabrica(), p.ID, dto.UpdateProdutoRequest{Sabor: strPtr("morango")})
	require.NoError(t, err)
	assert.Equal(t, "morango", *got.Sabor)

	require.NoError(t, f.produtos.Delete(fabrica(), p.ID))
	_, err = f.produtos.GetByID(fabrica(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
