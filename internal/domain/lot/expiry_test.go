package lot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/lot"
)

// agora fixo no meio do dia; validades são datas (meia-noite).
var now = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.AddDate(0, 0, offset)
}

func TestDaysRemaining_TetoEmDiasInteiros(t *testing.T) {
	assert.Equal(t, 10, lot.DaysRemaining(day(10), now))
	assert.Equal(t, 1, lot.DaysRemaining(day(1), now))
	assert.Equal(t, 0, lot.DaysRemaining(day(0), now))
	assert.Equal(t, -1, lot.DaysRemaining(day(-1), now))
}

func TestClassify_Limites(t *testing.T) {
	assert.Equal(t, lot.UrgencyCritical, lot.Classify(-3))
	assert.Equal(t, lot.UrgencyCritical, lot.Classify(15))
	assert.Equal(t, lot.UrgencyWarning, lot.Classify(16))
	assert.Equal(t, lot.UrgencyWarning, lot.Classify(29))
	assert.Equal(t, lot.UrgencySafe, lot.Classify(30))
}

func TestNearExpiry_TrintaDiasIncluidoESeguro(t *testing.T) {
	exact := now.AddDate(0, 0, 30)
	lotes := []entity.LoteProducao{
		{CodigoLote: "L30", Status: entity.LoteAtivo, DataValidade: exact},
		{CodigoLote: "L31", Status: entity.LoteAtivo, DataValidade: exact.Add(time.Second)},
	}

	got := lot.NearExpiry(lotes, now)

	require.Len(t, got, 1)
	assert.Equal(t, "L30", got[0].Lote.CodigoLote)
	assert.Equal(t, 30, got[0].DiasRestantes)
	assert.Equal(t, lot.UrgencySafe, got[0].Urgencia)
}

func TestNearExpiry_LOT001Critico(t *testing.T) {
	lotes := []entity.LoteProducao{{
		CodigoLote:   "LOT001",
		Status:       entity.LoteAtivo,
		DataValidade: day(10),
		Itens: []entity.LoteItem{{
			Quantidade: 100,
			Produto:    &entity.Produto{Nome: "Brigadeiro", Tipo: "doce"},
		}},
	}}

	got := lot.NearExpiry(lotes, now)

	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].DiasRestantes)
	assert.Equal(t, lot.UrgencyCritical, got[0].Urgencia)
}

func TestNearExpiry_IgnoraInativos(t *testing.T) {
	lotes := []entity.LoteProducao{
		{CodigoLote: "A", Status: entity.LoteInativo, DataValidade: day(5)},
		{CodigoLote: "B", Status: entity.LoteAtivo, DataValidade: day(5)},
	}
	got := lot.NearExpiry(lotes, now)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Lote.CodigoLote)
}
