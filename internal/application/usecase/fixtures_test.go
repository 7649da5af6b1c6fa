package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/scope"
	"github.com/jhoicas/rastreio-doces-api/internal/application/usecase"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/session"
	"github.com/jhoicas/rastreio-doces-api/internal/infrastructure/memory"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
)

const cnpjValido = "11.222.333/0001-81"

type fixture struct {
	store         *memory.Store
	produtos      *usecase.ProdutoUseCase
	lotes         *usecase.LoteUseCase
	distribuidor  *usecase.DistribuidorUseCase
	distribuicoes *usecase.DistribuicaoUseCase
	pontos        *usecase.PontoVendaUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	resolver := scope.NewResolver(s.Distribuidores(), s.Profiles(), scope.Fallback{})
	return &fixture{
		store:         s,
		produtos:      usecase.NewProdutoUseCase(s.Produtos()),
		lotes:         usecase.NewLoteUseCase(s.Lotes(), s.Produtos(), s.Distribuicoes(), s.Vendas(), s.TxRunner(), logger.Nop()),
		distribuidor:  usecase.NewDistribuidorUseCase(s.Distribuidores()),
		distribuicoes: usecase.NewDistribuicaoUseCase(s.Distribuicoes(), s.Distribuidores(), s.TxRunner(), resolver, logger.Nop()),
		pontos:        usecase.NewPontoVendaUseCase(s.PontosVenda(), s.Vendas(), s.Lotes(), s.Distribuicoes(), resolver),
	}
}

func fabrica() context.Context {
	return session.With(context.Background(), session.Session{UserID: "u-fabrica", Role: entity.RoleFabrica})
}

func distribuidorCtx(id string) context.Context {
	return session.With(context.Background(), session.Session{UserID: "u-dist", Role: entity.RoleDistribuidor, DistribuidorID: id})
}

func strPtr(s string) *string { return &s }

func (f *fixture) produto(t *testing.T, nome, tipo, sabor string) dto.ProdutoResponse {
	t.Helper()
	p, err := f.produtos.Create(fabrica(), dto.CreateProdutoRequest{Nome: nome, Tipo: tipo, Sabor: strPtr(sabor)})
	require.NoError(t, err)
	return *p
}

func (f *fixture) lote(t *testing.T, codigo string, itens ...dto.LoteItemRequest) dto.LoteResponse {
	t.Helper()
	l, err := f.lotes.Create(fabrica(), dto.CreateLoteRequest{
		CodigoLote:   codigo,
		DataProducao: "2026-03-01",
		DataValidade: "2026-06-01",
		Responsavel:  "Ana",
		Itens:        itens,
	})
	require.NoError(t, err)
	return *l
}

func (f *fixture) distribuidorNovo(t *testing.T, nome, doc string) dto.DistribuidorResponse {
	t.Helper()
	d, err := f.distribuidor.Create(fabrica(), dto.DistribuidorRequest{Nome: nome, CNPJ: doc, Estado: "sp"})
	require.NoError(t, err)
	return *d
}

func (f *fixture) distribuir(t *testing.T, loteID, distID string, qtd int, data string) dto.DistribuicaoResponse {
	t.Helper()
	d, err := f.distribuicoes.Create(fabrica(), dto.CreateDistribuicaoRequest{
		LoteID:           loteID,
		DistribuidorID:   distID,
		Quantidade:       qtd,
		DataDistribuicao: data,
		Responsavel:      "Ana",
	})
	require.NoError(t, err)
	return *d
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }
