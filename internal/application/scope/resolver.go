// Package scope resolve a qual distribuidor uma sessão de perfil distribuidor está vinculada.
package scope

import (
	"context"
	"fmt"

	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/session"
	"github.com/jhoicas/rastreio-doces-api/pkg/cnpj"
)

// Fallback distribuidor estático usado quando o perfil ainda não foi vinculado.
type Fallback struct {
	Enabled bool
	CNPJ    string
}

// Resolver ordem: claim do token, perfil no banco, fallback configurado.
type Resolver struct {
	distribuidores repository.DistribuidorRepository
	profiles       repository.ProfileRepository
	fallback       Fallback
}

// NewResolver constrói o resolvedor.
func NewResolver(distribuidores repository.DistribuidorRepository, profiles repository.ProfileRepository, fallback Fallback) *Resolver {
	return &Resolver{distribuidores: distribuidores, profiles: profiles, fallback: fallback}
}

// Distribuidor devolve o distribuidor da sessão e se ele veio do fallback.
// Sem vínculo e sem fallback devolve ErrForbidden.
func (r *Resolver) Distribuidor(ctx context.Context, s session.Session) (*entity.Distribuidor, bool, error) {
	id := s.DistribuidorID
	if id == "" {
		p, err := r.profiles.GetByUserID(ctx, s.UserID)
		if err != nil {
			return nil, false, fmt.Errorf("scope: perfil: %w", err)
		}
		if p != nil && p.DistribuidorID != nil {
			id = *p.DistribuidorID
		}
	}
	if id != "" {
		d, err := r.distribuidores.GetByID(ctx, id)
		if err != nil {
			return nil, false, fmt.Errorf("scope: distribuidor: %w", err)
		}
		if d == nil {
			return nil, false, domain.ErrNotFound
		}
		return d, false, nil
	}

	if !r.fallback.Enabled || r.fallback.CNPJ == "" {
		return nil, false, fmt.Errorf("%w: perfil sem distribuidor vinculado", domain.ErrForbidden)
	}
	d, err := r.distribuidores.GetByCNPJ(ctx, cnpj.Normalize(r.fallback.CNPJ))
	if err != nil {
		return nil, false, fmt.Errorf("scope: distribuidor fallback: %w", err)
	}
	if d == nil {
		return nil, false, fmt.Errorf("scope: distribuidor fallback %s: %w", r.fallback.CNPJ, domain.ErrNotFound)
	}
	return d, true, nil
}
