package qrcode_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/internal/application/qrcode"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

func loteFixture() *entity.LoteProducao {
	nf := "NF-123"
	return &entity.LoteProducao{
		ID:           "lote-1",
		CodigoLote:   "LOT001",
		DataProducao: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DataValidade: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Responsavel:  "Ana",
		NotaFiscal:   &nf,
		Status:       entity.LoteAtivo,
		Itens: []entity.LoteItem{
			{ProdutoID: "p1", Quantidade: 100, Produto: &entity.Produto{Nome: "Brigadeiro"}},
			{ProdutoID: "p2", Quantidade: 50, Produto: &entity.Produto{Nome: "Beijinho"}},
		},
	}
}

func TestBuildPayload(t *testing.T) {
	p := qrcode.BuildPayload(loteFixture())

	assert.Equal(t, "LOT001", p.CodigoLote)
	assert.Equal(t, "01/03/2026", p.DataProducao)
	assert.Equal(t, "31/03/2026", p.DataValidade)
	assert.Equal(t, qrcode.Produtos("Brigadeiro: 100 un, Beijinho: 50 un"), p.Produtos)
	assert.Equal(t, 150, p.QuantidadeTotal)
}

func TestEncodeDecode_IdaEVolta(t *testing.T) {
	orig := qrcode.BuildPayload(loteFixture())
	raw, err := qrcode.Encode(orig)
	require.NoError(t, err)

	got, err := qrcode.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, orig.CodigoLote, got.CodigoLote)
	assert.Equal(t, orig.Produtos, got.Produtos)
	assert.Equal(t, orig.QuantidadeTotal, got.QuantidadeTotal)
	assert.Equal(t, orig, got)
}

func TestDecode_ProdutosComoLista(t *testing.T) {
	got, err := qrcode.Decode(`{"codigo_lote":"LOT9","produtos":["Brigadeiro: 10 un","Cocada: 5 un"],"quantidade_total":15}`)
	require.NoError(t, err)
	assert.Equal(t, qrcode.Produtos("Brigadeiro: 10 un, Cocada: 5 un"), got.Produtos)
}

func TestDecode_Invalido(t *testing.T) {
	for _, raw := range []string{
		"",
		"LOT001",
		`{"produtos":"Brigadeiro: 1 un"}`,
		`{"codigo_lote":"LOT001"}`,
		`{"codigo_lote":"LOT001","produtos":""}`,
		`{"codigo_lote":"LOT001","produtos":42}`,
	} {
		_, err := qrcode.Decode(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidQR, raw)
	}
}

func TestClassifyScanError(t *testing.T) {
	cases := map[string]string{
		"NotAllowedError":      qrcode.ScanPermissionDenied,
		"NotFoundError":        qrcode.ScanNoCamera,
		"NotReadableError":     qrcode.ScanUnsupported,
		"OverconstrainedError": qrcode.ScanOverconstrained,
		"AbortError":           qrcode.ScanUnknown,
	}
	for name, kind := range cases {
		got := qrcode.ClassifyScanError(name)
		assert.Equal(t, kind, got.Kind, name)
		assert.True(t, got.Retry)
		assert.NotEmpty(t, got.Message)
	}
}
