package policy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/policy"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/session"
)

func TestAllowed(t *testing.T) {
	assert.True(t, policy.Allowed("fabrica", policy.LoteWrite))
	assert.True(t, policy.Allowed("fabrica", policy.ConviteManage))
	assert.False(t, policy.Allowed("distribuidor", policy.LoteWrite))
	assert.False(t, policy.Allowed("distribuidor", policy.ConviteManage))
	assert.True(t, policy.Allowed("distribuidor", policy.VendaWrite))
	assert.False(t, policy.Allowed("fabrica", policy.VendaWrite))
	assert.False(t, policy.Allowed("visitante", policy.LoteRead))
}

func TestAuthorize_SemSessao(t *testing.T) {
	_, err := policy.Authorize(context.Background(), policy.LoteRead)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthorize_PerfilSemPermissao(t *testing.T) {
	ctx := session.With(context.Background(), session.Session{UserID: "u1", Role: "distribuidor"})
	_, err := policy.Authorize(ctx, policy.LoteWrite)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthorize_Permitido(t *testing.T) {
	ctx := session.With(context.Background(), session.Session{UserID: "u1", Role: "fabrica"})
	s, err := policy.Authorize(ctx, policy.LoteWrite)
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
}
