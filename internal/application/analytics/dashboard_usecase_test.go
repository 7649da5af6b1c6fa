package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/internal/application/analytics"
	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/scope"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/session"
	"github.com/jhoicas/rastreio-doces-api/internal/infrastructure/memory"
)

var now = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func fabrica() context.Context {
	return session.With(context.Background(), session.Session{UserID: "u1", Role: entity.RoleFabrica})
}

type seed struct {
	t *testing.T
	s *memory.Store
}

func (sd seed) produto(nome, tipo string, sabor *string) *entity.Produto {
	p := &entity.Produto{ID: uuid.NewString(), Nome: nome, Tipo: tipo, Sabor: sabor}
	require.NoError(sd.t, sd.s.Produtos().Create(context.Background(), p))
	return p
}

func (sd seed) lote(codigo, status string, validade time.Time, itens map[*entity.Produto]int) *entity.LoteProducao {
	ctx := context.Background()
	l := &entity.LoteProducao{ID: uuid.NewString(), CodigoLote: codigo, Status: status, DataProducao: day(-5), DataValidade: validade}
	require.NoError(sd.t, sd.s.Lotes().Create(ctx, l))
	var rows []entity.LoteItem
	for p, q := range itens {
		rows = append(rows, entity.LoteItem{ID: uuid.NewString(), LoteID: l.ID, ProdutoID: p.ID, Quantidade: q})
	}
	require.NoError(sd.t, sd.s.LoteItens().CreateBatch(ctx, rows))
	return l
}

func (sd seed) distribuidor(nome, cnpj string) *entity.Distribuidor {
	d := &entity.Distribuidor{ID: uuid.NewString(), Nome: nome, CNPJ: cnpj}
	require.NoError(sd.t, sd.s.Distribuidores().Create(context.Background(), d))
	return d
}

func (sd seed) distribuir(l *entity.LoteProducao, d *entity.Distribuidor, q int) {
	require.NoError(sd.t, sd.s.Distribuicoes().Create(context.Background(), &entity.Distribuicao{
		ID: uuid.NewString(), LoteID: l.ID, DistribuidorID: d.ID, Quantidade: q, DataDistribuicao: day(0),
	}))
}

func newUseCase(s *memory.Store, fb scope.Fallback) *analytics.DashboardUseCase {
	resolver := scope.NewResolver(s.Distribuidores(), s.Profiles(), fb)
	return analytics.NewDashboardUseCase(s.Analytics(), s.Lotes(), s.Distribuicoes(), s.PontosVenda(), s.Vendas(), resolver).
		WithClock(func() time.Time { return now })
}

func TestFabricaDashboard_LOT001(t *testing.T) {
	s := memory.NewStore()
	sd := seed{t, s}
	brig := sd.produto("Brigadeiro", "doce", nil)
	sd.lote("LOT001", entity.LoteAtivo, day(10), map[*entity.Produto]int{brig: 100})

	got, err := newUseCase(s, scope.Fallback{}).FabricaDashboard(fabrica(), "")
	require.NoError(t, err)

	require.Len(t, got.ProximosVencer, 1)
	assert.Equal(t, "LOT001", got.ProximosVencer[0].CodigoLote)
	assert.Equal(t, 10, got.ProximosVencer[0].DiasRestantes)
	assert.Equal(t, "critico", got.ProximosVencer[0].Urgencia)
	assert.Equal(t, dto.StatsDTO{LotesAtivos: 1, TotalProduzido: 100, ProximosVencimento: 1}, got.Stats)
	assert.Equal(t, []dto.GroupDTO{{Chave: entity.SemSabor, Quantidade: 100}}, got.PorSabor)
	require.Len(t, got.LotesRecentes, 1)
}

func TestFabricaDashboard_InativosForaECategoria(t *testing.T) {
	s := memory.NewStore()
	sd := seed{t, s}
	choc := "chocolate"
	brig := sd.produto("Brigadeiro", "doce", &choc)
	bolo := sd.produto("Bolo", "bolo", nil)
	a := sd.lote("A", entity.LoteAtivo, day(20), map[*entity.Produto]int{brig: 10, bolo: 4})
	sd.lote("B", entity.LoteInativo, day(3), map[*entity.Produto]int{brig: 999})
	sd.lote("C", entity.LoteAtivo, day(30), map[*entity.Produto]int{bolo: 6})
	norte := sd.distribuidor("Doces Norte", "11222333000181")
	sul := sd.distribuidor("Doces Sul", "45723174000110")
	sd.distribuir(a, sul, 3)
	sd.distribuir(a, norte, 2)
	sd.distribuir(a, sul, 1)

	uc := newUseCase(s, scope.Fallback{})
	got, err := uc.FabricaDashboard(fabrica(), "")
	require.NoError(t, err)

	assert.Equal(t, 2, got.Stats.LotesAtivos)
	assert.Equal(t, 20, got.Stats.TotalProduzido)
	assert.Equal(t, 2, got.Stats.TotalDistribuidores)
	assert.Equal(t, 2, got.Stats.ProximosVencimento)
	require.Len(t, got.ProximosVencer, 2)
	assert.Equal(t, "A", got.ProximosVencer[0].CodigoLote)
	assert.Equal(t, "atencao", got.ProximosVencer[0].Urgencia)
	assert.Equal(t, "C", got.ProximosVencer[1].CodigoLote)
	assert.Equal(t, "seguro", got.ProximosVencer[1].Urgencia)
	assert.Equal(t, []dto.GroupDTO{{Chave: "Doces Sul", Quantidade: 4}, {Chave: "Doces Norte", Quantidade: 2}}, got.PorRegiao)

	bolos, err := uc.FabricaDashboard(fabrica(), "bolo")
	require.NoError(t, err)
	assert.Equal(t, 10, bolos.Stats.TotalProduzido)
	assert.Equal(t, "bolo", bolos.Stats.Categoria)
	assert.Equal(t, []dto.GroupDTO{{Chave: entity.SemSabor, Quantidade: 10}}, bolos.PorSabor)
}

func TestFabricaDashboard_FalhaAbortaTudo(t *testing.T) {
	s := memory.NewStore()
	boom := errors.New("timeout")
	s.FailOn("analytics.Distribuicoes", boom)

	got, err := newUseCase(s, scope.Fallback{}).FabricaDashboard(fabrica(), "")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, boom)
}

func TestFabricaDashboard_SomenteFabrica(t *testing.T) {
	ctx := session.With(context.Background(), session.Session{UserID: "u2", Role: entity.RoleDistribuidor})
	_, err := newUseCase(memory.NewStore(), scope.Fallback{}).FabricaDashboard(ctx, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDistribuidorDashboard_Metricas(t *testing.T) {
	s := memory.NewStore()
	sd := seed{t, s}
	brig := sd.produto("Brigadeiro", "doce", nil)
	l := sd.lote("LOT001", entity.LoteAtivo, day(40), map[*entity.Produto]int{brig: 100})
	norte := sd.distribuidor("Doces Norte", "11222333000181")
	sd.distribuir(l, norte, 40)
	pv := &entity.PontoVenda{ID: uuid.NewString(), DistribuidorID: norte.ID, Nome: "Mercado"}
	require.NoError(t, s.PontosVenda().Create(context.Background(), pv))
	require.NoError(t, s.Vendas().Create(context.Background(), &entity.VendaPdv{
		ID: uuid.NewString(), PontoVendaID: pv.ID, LoteID: l.ID, ProdutoID: brig.ID, Quantidade: 4,
		ValorUnitario: decimal.RequireFromString("2.5"), ValorTotal: decimal.RequireFromString("10"), DataVenda: day(0),
	}))

	ctx := session.With(context.Background(), session.Session{UserID: "u2", Role: entity.RoleDistribuidor, DistribuidorID: norte.ID})
	got, err := newUseCase(s, scope.Fallback{}).DistribuidorDashboard(ctx)
	require.NoError(t, err)

	assert.False(t, got.Fallback)
	assert.Equal(t, 1, got.Stats.Distribuicoes)
	assert.Equal(t, 40, got.Stats.UnidadesRecebidas)
	assert.Equal(t, 1, got.Stats.PontosVenda)
	assert.Equal(t, 4, got.Stats.UnidadesVendidas)
	assert.True(t, decimal.NewFromInt(10).Equal(got.Stats.Faturamento))
	assert.Len(t, got.Recebidas, 1)
	assert.Len(t, got.VendasRecentes, 1)
}

func TestDistribuidorDashboard_Fallback(t *testing.T) {
	s := memory.NewStore()
	norte := seed{t, s}.distribuidor("Doces Norte", "11222333000181")
	ctx := session.With(context.Background(), session.Session{UserID: "u3", Role: entity.RoleDistribuidor})

	_, err := newUseCase(s, scope.Fallback{}).DistribuidorDashboard(ctx)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := newUseCase(s, scope.Fallback{Enabled: true, CNPJ: "11.222.333/0001-81"}).DistribuidorDashboard(ctx)
	require.NoError(t, err)
	assert.True(t, got.Fallback)
	assert.Equal(t, norte.ID, got.Distribuidor.ID)
	assert.Empty(t, got.Recebidas)
}
