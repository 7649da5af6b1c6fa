package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

func TestLoteLabel_GeraPDF(t *testing.T) {
	sabor := "Chocolate"
	l := &entity.LoteProducao{
		CodigoLote:   "LOT001",
		DataProducao: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DataValidade: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		Responsavel:  "Maria",
		Status:       entity.LoteAtivo,
		Itens: []entity.LoteItem{
			{Quantidade: 100, Produto: &entity.Produto{Nome: "Brigadeiro", Sabor: &sabor}},
		},
	}
	doc, err := NewLabelGenerator().LoteLabel(context.Background(), l, `{"codigo_lote":"LOT001"}`)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}
