package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rastreio-doces-api/internal/application/auth"
	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/session"
	"github.com/jhoicas/rastreio-doces-api/internal/infrastructure/memory"
	"github.com/jhoicas/rastreio-doces-api/pkg/jwt"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
)

const secret = "segredo-de-teste"

func newAuth(s *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(s.Users(), s.Profiles(), s.Distribuidores(), s.TxRunner(),
		auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "teste"}, logger.Nop()).WithHashCost(bcrypt.MinCost)
}

func invite(t *testing.T, s *memory.Store, email, code, tipo string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, s.Invitations().Upsert(context.Background(), &entity.SignUpInvitation{
		ID: email + "-inv", Email: email, Code: code, TipoUsuario: tipo, CreatedAt: now, UpdatedAt: now,
	}))
}

func signupReq(email, code string) dto.SignupRequest {
	return dto.SignupRequest{Email: email, Password: "senha-forte", Code: code, Nome: "Ana"}
}

func TestSignup_ConsomeConvite(t *testing.T) {
	s := memory.NewStore()
	invite(t, s, "ana@doces.com", "482913", entity.RoleDistribuidor)
	uc := newAuth(s)

	p, err := uc.Signup(context.Background(), signupReq("Ana@Doces.com", "482913"))
	require.NoError(t, err)
	assert.Equal(t, "ana@doces.com", p.Email)
	assert.Equal(t, entity.RoleDistribuidor, p.TipoUsuario)

	inv, _ := s.Invitations().GetByID(context.Background(), "ana@doces.com-inv")
	require.NotNil(t, inv)
	assert.True(t, inv.Used)
	assert.NotNil(t, inv.UsedAt)
}

func TestSignup_SegundoCadastroRejeitado(t *testing.T) {
	s := memory.NewStore()
	invite(t, s, "ana@doces.com", "482913", entity.RoleFabrica)
	uc := newAuth(s)

	_, err := uc.Signup(context.Background(), signupReq("ana@doces.com", "482913"))
	require.NoError(t, err)

	_, err = uc.Signup(context.Background(), signupReq("ana@doces.com", "482913"))
	assert.ErrorIs(t, err, domain.ErrInvalidInviteCode)
}

func TestSignup_CodigoOuEmailErrado(t *testing.T) {
	s := memory.NewStore()
	invite(t, s, "ana@doces.com", "482913", entity.RoleFabrica)
	uc := newAuth(s)

	_, err := uc.Signup(context.Background(), signupReq("ana@doces.com", "000000"))
	assert.ErrorIs(t, err, domain.ErrInvalidInviteCode)
	_, err = uc.Signup(context.Background(), signupReq("bia@doces.com", "482913"))
	assert.ErrorIs(t, err, domain.ErrInvalidInviteCode)
}

func TestSignup_FalhaNoPerfilNaoDeixaUsuarioOrfao(t *testing.T) {
	s := memory.NewStore()
	invite(t, s, "ana@doces.com", "482913", entity.RoleFabrica)
	s.FailOn("profiles.Create", errors.New("conexão perdida"))
	uc := newAuth(s)

	_, err := uc.Signup(context.Background(), signupReq("ana@doces.com", "482913"))
	require.Error(t, err)

	u, _ := s.Users().GetByEmail(context.Background(), "ana@doces.com")
	assert.Nil(t, u)
	inv, _ := s.Invitations().FindActive(context.Background(), "ana@doces.com", "482913")
	assert.NotNil(t, inv, "o convite continua válido")
}

func TestLogin_TokenComPerfil(t *testing.T) {
	s := memory.NewStore()
	invite(t, s, "ana@doces.com", "482913", entity.RoleDistribuidor)
	uc := newAuth(s)
	p, err := uc.Signup(context.Background(), signupReq("ana@doces.com", "482913"))
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@doces.com", Password: "senha-forte"})
	require.NoError(t, err)
	sub, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, sub.UserID)
	assert.Equal(t, entity.RoleDistribuidor, sub.Role)
	assert.Empty(t, sub.DistribuidorID)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@doces.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nao@existe.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLinkDistribuidorEMe(t *testing.T) {
	s := memory.NewStore()
	invite(t, s, "ana@doces.com", "482913", entity.RoleDistribuidor)
	uc := newAuth(s)
	p, err := uc.Signup(context.Background(), signupReq("ana@doces.com", "482913"))
	require.NoError(t, err)

	d := &entity.Distribuidor{ID: "7d1c4a52-39f4-4d55-9a3e-0d6f2b8e1c11", Nome: "Doces Norte", CNPJ: "11222333000181"}
	require.NoError(t, s.Distribuidores().Create(context.Background(), d))

	ctx := session.With(context.Background(), session.Session{UserID: p.UserID, Role: entity.RoleDistribuidor})
	linked, err := uc.LinkDistribuidor(ctx, dto.LinkDistribuidorRequest{DistribuidorID: d.ID})
	require.NoError(t, err)
	require.NotNil(t, linked.DistribuidorID)
	assert.Equal(t, d.ID, *linked.DistribuidorID)

	me, err := uc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Nome)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@doces.com", Password: "senha-forte"})
	require.NoError(t, err)
	sub, _ := jwt.Parse(secret, out.Token)
	assert.Equal(t, d.ID, sub.DistribuidorID)

	fab := session.With(context.Background(), session.Session{UserID: "x", Role: entity.RoleFabrica})
	_, err = uc.LinkDistribuidor(fab, dto.LinkDistribuidorRequest{DistribuidorID: d.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAcesso(t *testing.T) {
	uc := newAuth(memory.NewStore())
	ctx := session.With(context.Background(), session.Session{UserID: "u", Role: entity.RoleDistribuidor})

	got, err := uc.Acesso(ctx, entity.RoleFabrica)
	require.NoError(t, err)
	assert.False(t, got.Permitido)

	got, err = uc.Acesso(ctx, entity.RoleDistribuidor)
	require.NoError(t, err)
	assert.True(t, got.Permitido)

	_, err = uc.Acesso(context.Background(), entity.RoleFabrica)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
