package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

func TestLote_CreateComItens(t *testing.T) {
	f := newFixture(t)
	brig := f.produto(t, "Brigadeiro", "doce", "chocolate")
	bei := f.produto(t, "Beijinho", "doce", "coco")

	l := f.lote(t, "LOT001",
		dto.LoteItemRequest{ProdutoID: brig.ID, Quantidade: 100},
		dto.LoteItemRequest{ProdutoID: bei.ID, Quantidade: 50},
	)

	assert.Equal(t, entity.LoteAtivo, l.Status)
	assert.Equal(t, 150, l.QuantidadeTotal)
	assert.Equal(t, "2026-06-01", l.DataValidade)

	got, err := f.lotes.GetByID(fabrica(), l.ID)
	require.NoError(t, err)
	require.Len(t, got.Itens, 2)
	assert.Equal(t, "Brigadeiro", got.Itens[0].Produto)
}

func TestLote_CodigoDuplicado(t *testing.T) {
	f := newFixture(t)
	p := f.produto(t, "Brigadeiro", "doce", "")
	f.lote(t, "LOT001", dto.LoteItemRequest{ProdutoID: p.ID, Quantidade: 1})

	_, err := f.lotes.Create(fabrica(), dto.CreateLoteRequest{
		CodigoLote: "LOT001", DataProducao: "2026-03-01", DataValidade: "2026-04-01", Responsavel: "Ana",
		Itens: []dto.LoteItemRequest{{ProdutoID: p.ID, Quantidade: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLote_EntradasInvalidas(t *testing.T) {
	f := newFixture(t)
	p := f.produto(t, "Brigadeiro", "doce", "")
	base := dto.CreateLoteRequest{
		CodigoLote: "L", DataProducao: "2026-03-01", DataValidade: "2026-04-01", Responsavel: "Ana",
		Itens: []dto.LoteItemRequest{{ProdutoID: p.ID, Quantidade: 1}},
	}

	req := base
	req.DataValidade = "01/04/2026"
	_, err := f.lotes.Create(fabrica(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = base
	req.DataValidade = "2026-02-01"
	_, err = f.lotes.Create(fabrica(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = base
	req.Itens = []dto.LoteItemRequest{{ProdutoID: p.ID, Quantidade: 0}}
	_, err = f.lotes.Create(fabrica(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = base
	req.Itens = []dto.LoteItemRequest{{ProdutoID: "00000000-0000-0000-0000-000000000000", Quantidade: 1}}
	_, err = f.lotes.Create(fabrica(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLote_FalhaNosItensDesfazCabecalho(t *testing.T) {
	f := newFixture(t)
	p := f.produto(t, "Brigadeiro", "doce", "")
	boom := errors.New("conexão perdida")
	f.store.FailOn("lote_itens.CreateBatch", boom)

	_, err := f.lotes.Create(fabrica(), dto.CreateLoteRequest{
		CodigoLote: "LOT009", DataProducao: "2026-03-01", DataValidade: "2026-04-01", Responsavel: "Ana",
		Itens: []dto.LoteItemRequest{{ProdutoID: p.ID, Quantidade: 5}},
	})
	require.ErrorIs(t, err, boom)

	list, err := f.lotes.List(fabrica(), "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestLote_StatusEListagem(t *testing.T) {
	f := newFixture(t)
	p := f.produto(t, "Brigadeiro", "doce", "")
	a := f.lote(t, "A", dto.LoteItemRequest{ProdutoID: p.ID, Quantidade: 1})
	f.lote(t, "B", dto.LoteItemRequest{ProdutoID: p.ID, Quantidade: 1})

	got, err := f.lotes.UpdateStatus(fabrica(), a.ID, entity.LoteInativo)
	require.NoError(t, err)
	assert.Equal(t, entity.LoteInativo, got.Status)

	_, err = f.lotes.UpdateStatus(fabrica(), a.ID, "vencido")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ativos, err := f.lotes.List(fabrica(), entity.LoteAtivo, 0, 0)
	require.NoError(t, err)
	require.Len(t, ativos.Items, 1)
	assert.Equal(t, "B", ativos.Items[0].CodigoLote)
	assert.Equal(t, 100, ativos.Page.Limit)
}

func TestLote_UpdateCabecalho(t *testing.T) {
	f := newFixture(t)
	p := f.produto(t, "Brigadeiro", "doce", "")
	l := f.lote(t, "A", dto.LoteItemRequest{ProdutoID: p.ID, Quantidade: 1})

	got, err := f.lotes.Update(fabrica(), l.ID, dto.UpdateLoteRequest{
		DataValidade: strPtr("2026-07-15"),
		NotaFiscal:   strPtr(" NF-123 "),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-07-15", got.DataValidade)
	assert.Equal(t, "NF-123", *got.NotaFiscal)

	_, err = f.lotes.Update(distribuidorCtx("d"), l.ID, dto.UpdateLoteRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLote_DeleteEmCascata(t *testing.T) {
	f := newFixture(t)
	p := f.produto(t, "Brigadeiro", "doce", "")
	l := f.lote(t, "A", dto.LoteItemRequest{ProdutoID: p.ID, Quantidade: 10})
	d := f.distribuidorNovo(t, "Doces Norte", cnpjValido)
	f.distribuir(t, l.ID, d.ID, 4, "2026-03-02")

	require.NoError(t, f.lotes.Delete(fabrica(), l.ID))

	_, err := f.lotes.GetByID(fabrica(), l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	dists, err := f.distribuicoes.List(fabrica(), "", d.ID)
	require.NoError(t, err)
	assert.Empty(t, dists)

	// produto liberado depois da exclusão
	require.NoError(t, f.produtos.Delete(fabrica(), p.ID))
}

func TestLote_Rastreio(t *testing.T) {
	f := newFixture(t)
	p := f.produto(t, "Brigadeiro", "doce", "")
	l := f.lote(t, "LOT001", dto.LoteItemRequest{ProdutoID: p.ID, Quantidade: 100})
	norte := f.distribuidorNovo(t, "Doces Norte", cnpjValido)
	sul := f.distribuidorNovo(t, "Doces Sul", "45.723.174/0001-10")
	f.distribuir(t, l.ID, norte.ID, 30, "2026-03-02")
	f.distribuir(t, l.ID, sul.ID, 20, "2026-03-05")

	pv, err := f.pontos.Create(distribuidorCtx(sul.ID), dto.PontoVendaRequest{Nome: "Mercado Central"})
	require.NoError(t, err)
	_, err = f.pontos.CreateVenda(distribuidorCtx(sul.ID), dto.CreateVendaRequest{
		PontoVendaID: pv.ID, LoteID: l.ID, ProdutoID: p.ID, Quantidade: 5,
		ValorUnitario: money("2.50"), DataVenda: "2026-03-06",
	})
	require.NoError(t, err)

	r, err := f.lotes.Rastreio(distribuidorCtx(sul.ID), l.ID)
	require.NoError(t, err)

	assert.Len(t, r.Distribuicoes, 2)
	require.NotNil(t, r.LocalizacaoAtual)
	assert.Equal(t, "Doces Sul", r.LocalizacaoAtual.Distribuidor)
	assert.Equal(t, 5, r.QuantidadeVendida)
	assert.Equal(t, 50, r.SaldoFabrica)
	require.Len(t, r.Vendas, 1)
	assert.Equal(t, "LOT001", r.Vendas[0].CodigoLote)
}
