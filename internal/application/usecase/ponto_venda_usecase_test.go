package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
)

type vendaFixture struct {
	*fixture
	produtoID, loteID, norteID, sulID string
}

func newVendaFixture(t *testing.T) vendaFixture {
	f := newFixture(t)
	p := f.produto(t, "Brigadeiro", "doce", "chocolate")
	l := f.lote(t, "LOT001", dto.LoteItemRequest{ProdutoID: p.ID, Quantidade: 100})
	norte := f.distribuidorNovo(t, "Doces Norte", cnpjValido)
	sul := f.distribuidorNovo(t, "Doces Sul", "45.723.174/0001-10")
	f.distribuir(t, l.ID, norte.ID, 40, "2026-03-02")
	return vendaFixture{fixture: f, produtoID: p.ID, loteID: l.ID, norteID: norte.ID, sulID: sul.ID}
}

func TestPontoVenda_EscopoDoDistribuidor(t *testing.T) {
	f := newVendaFixture(t)
	pv, err := f.pontos.Create(distribuidorCtx(f.norteID), dto.PontoVendaRequest{Nome: "Mercado Central", Estado: "rj"})
	require.NoError(t, err)
	assert.Equal(t, f.norteID, pv.DistribuidorID)
	assert.Equal(t, "RJ", pv.Estado)

	// outro distribuidor não enxerga nem altera
	_, err = f.pontos.Update(distribuidorCtx(f.sulID), pv.ID, dto.PontoVendaRequest{Nome: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	lista, err := f.pontos.List(distribuidorCtx(f.sulID), f.norteID)
	require.NoError(t, err)
	assert.Empty(t, lista)

	// a fábrica consulta informando o distribuidor, mas não cadastra
	lista, err = f.pontos.List(fabrica(), f.norteID)
	require.NoError(t, err)
	assert.Len(t, lista, 1)
	_, err = f.pontos.List(fabrica(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.pontos.Create(fabrica(), dto.PontoVendaRequest{Nome: "Y"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVenda_ValorTotalEmDecimal(t *testing.T) {
	f := newVendaFixture(t)
	ctx := distribuidorCtx(f.norteID)
	pv, err := f.pontos.Create(ctx, dto.PontoVendaRequest{Nome: "Mercado Central"})
	require.NoError(t, err)

	v, err := f.pontos.CreateVenda(ctx, dto.CreateVendaRequest{
		PontoVendaID: pv.ID, LoteID: f.loteID, ProdutoID: f.produtoID,
		Quantidade: 3, ValorUnitario: money("0.10"), DataVenda: "2026-03-04",
	})
	require.NoError(t, err)
	assert.True(t, money("0.30").Equal(v.ValorTotal), "got %s", v.ValorTotal)
	assert.Equal(t, "Brigadeiro", v.Produto)

	vendas, err := f.pontos.ListVendas(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, vendas, 1)
	assert.Equal(t, "Mercado Central", vendas[0].PontoVenda)

	// PDV com venda não pode ser excluído
	assert.ErrorIs(t, f.pontos.Delete(ctx, pv.ID), domain.ErrConflict)
	require.NoError(t, f.pontos.DeleteVenda(ctx, v.ID))
	require.NoError(t, f.pontos.Delete(ctx, pv.ID))
}

func TestVenda_RegrasDeConsistencia(t *testing.T) {
	f := newVendaFixture(t)
	norte := distribuidorCtx(f.norteID)
	sul := distribuidorCtx(f.sulID)
	pvNorte, err := f.pontos.Create(norte, dto.PontoVendaRequest{Nome: "PDV Norte"})
	require.NoError(t, err)
	pvSul, err := f.pontos.Create(sul, dto.PontoVendaRequest{Nome: "PDV Sul"})
	require.NoError(t, err)
	outro := f.produto(t, "Bolo", "bolo", "")

	base := dto.CreateVendaRequest{
		PontoVendaID: pvNorte.ID, LoteID: f.loteID, ProdutoID: f.produtoID,
		Quantidade: 1, ValorUnitario: money("2"), DataVenda: "2026-03-04",
	}

	req := base
	req.ProdutoID = outro.ID
	_, err = f.pontos.CreateVenda(norte, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "produto fora do lote")

	req = base
	req.ValorUnitario = money("-1")
	_, err = f.pontos.CreateVenda(norte, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = base
	req.PontoVendaID = pvSul.ID
	_, err = f.pontos.CreateVenda(norte, req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "PDV de outro distribuidor")

	req.PontoVendaID = pvSul.ID
	_, err = f.pontos.CreateVenda(sul, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "lote não distribuído ao sul")
}
