// Package policy aplica as permissões por perfil na fronteira de acesso a dados.
// Os casos de uso chamam Authorize antes de qualquer repositório, independente do middleware HTTP.
package policy

import (
	"context"

	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/session"
)

// Action operação protegida.
type Action string

const (
	ProdutoRead  Action = "produtos.read"
	ProdutoWrite Action = "produtos.write"

	LoteRead  Action = "lotes.read"
	LoteWrite Action = "lotes.write"

	DistribuidorRead  Action = "distribuidores.read"
	DistribuidorWrite Action = "distribuidores.write"

	DistribuicaoRead  Action = "distribuicoes.read"
	DistribuicaoWrite Action = "distribuicoes.write"

	PontoVendaRead  Action = "pontos_venda.read"
	PontoVendaWrite Action = "pontos_venda.write"
	VendaWrite      Action = "vendas.write"

	ConviteManage Action = "convites.manage"
	AnalyticsRead Action = "analytics.read"
	ChatUse       Action = "chat.use"
)

var rolePermissions = map[string][]Action{
	entity.RoleFabrica: {
		ProdutoRead, ProdutoWrite,
		LoteRead, LoteWrite,
		DistribuidorRead, DistribuidorWrite,
		DistribuicaoRead, DistribuicaoWrite,
		PontoVendaRead,
		ConviteManage,
		AnalyticsRead,
		ChatUse,
	},
	entity.RoleDistribuidor: {
		ProdutoRead,
		LoteRead,
		DistribuidorRead,
		DistribuicaoRead,
		PontoVendaRead, PontoVendaWrite,
		VendaWrite,
		ChatUse,
	},
}

// Allowed indica se o perfil tem a permissão.
func Allowed(role string, action Action) bool {
	for _, a := range rolePermissions[role] {
		if a == action {
			return true
		}
	}
	return false
}

// Authorize recupera a sessão do contexto e confere a permissão.
// Sem sessão devolve ErrUnauthorized; sem permissão, ErrForbidden.
func Authorize(ctx context.Context, action Action) (session.Session, error) {
	s, ok := session.From(ctx)
	if !ok {
		return session.Session{}, domain.ErrUnauthorized
	}
	if !Allowed(s.Role, action) {
		return s, domain.ErrForbidden
	}
	return s, nil
}
