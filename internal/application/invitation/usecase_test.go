package invitation_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/invitation"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/session"
	"github.com/jhoicas/rastreio-doces-api/internal/infrastructure/memory"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
	"github.com/jhoicas/rastreio-doces-api/pkg/validation"
)

type sentMail struct{ to, code, tipo string }

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendInvitation(_ context.Context, to, code, tipo string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, code, tipo})
	return nil
}

func fabricaCtx() context.Context {
	return session.With(context.Background(), session.Session{UserID: "u-fab", Role: entity.RoleFabrica})
}

func newUseCase(s *memory.Store, m *fakeMailer) *invitation.UseCase {
	return invitation.NewUseCase(s.Invitations(), s.TxRunner(), m, invitation.NumericCode, logger.Nop())
}

func TestCodeGenerators(t *testing.T) {
	for i := 0; i < 50; i++ {
		n, err := invitation.NumericCode()
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^[1-9][0-9]{5}$`), n)

		a, err := invitation.AlphanumericCode()
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^[0-9A-Z]{8}$`), a)
	}
	code, _ := invitation.GeneratorFor(invitation.FormatAlphanumeric)()
	assert.Len(t, code, 8)
	code, _ = invitation.GeneratorFor("qualquer")()
	assert.Len(t, code, 6)
}

func TestCreate_GravaEEnvia(t *testing.T) {
	s := memory.NewStore()
	m := &fakeMailer{}
	uc := newUseCase(s, m)

	out, err := uc.Create(fabricaCtx(), dto.CreateInvitationRequest{Email: " Ana@Doces.com ", TipoUsuario: entity.RoleDistribuidor})
	require.NoError(t, err)
	assert.Equal(t, &dto.CreateInvitationResponse{Success: true, Email: "ana@doces.com"}, out)

	require.Len(t, m.sent, 1)
	assert.Equal(t, "ana@doces.com", m.sent[0].to)
	assert.Equal(t, entity.RoleDistribuidor, m.sent[0].tipo)

	inv, err := s.Invitations().FindActive(context.Background(), "ana@doces.com", m.sent[0].code)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.False(t, inv.Used)
}

func TestCreate_ReconviteSobrescreve(t *testing.T) {
	s := memory.NewStore()
	m := &fakeMailer{}
	uc := newUseCase(s, m)
	ctx := fabricaCtx()

	_, err := uc.Create(ctx, dto.CreateInvitationRequest{Email: "ana@doces.com", TipoUsuario: entity.RoleDistribuidor})
	require.NoError(t, err)
	list, _ := uc.List(ctx)
	require.Len(t, list, 1)
	require.NoError(t, s.Invitations().MarkUsed(context.Background(), list[0].ID, time.Now()))

	_, err = uc.Create(ctx, dto.CreateInvitationRequest{Email: "ana@doces.com", TipoUsuario: entity.RoleFabrica})
	require.NoError(t, err)

	list, err = uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "um convite por e-mail")
	assert.False(t, list[0].Used)
	assert.Nil(t, list[0].UsedAt)
	assert.Equal(t, entity.RoleFabrica, list[0].TipoUsuario)

	inv, _ := s.Invitations().FindActive(context.Background(), "ana@doces.com", m.sent[1].code)
	assert.NotNil(t, inv, "o código novo vale")
}

func TestCreate_FalhaNoEmailDesfazGravacao(t *testing.T) {
	s := memory.NewStore()
	uc := newUseCase(s, &fakeMailer{err: errors.New("smtp fora")})

	_, err := uc.Create(fabricaCtx(), dto.CreateInvitationRequest{Email: "ana@doces.com", TipoUsuario: entity.RoleFabrica})
	require.Error(t, err)

	list, err := s.Invitations().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_Validacao(t *testing.T) {
	uc := newUseCase(memory.NewStore(), &fakeMailer{})

	_, err := uc.Create(fabricaCtx(), dto.CreateInvitationRequest{Email: "sem-arroba", TipoUsuario: entity.RoleFabrica})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"email:email"}, verr.Fields)

	_, err = uc.Create(fabricaCtx(), dto.CreateInvitationRequest{Email: "ana@doces.com", TipoUsuario: "admin"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"tipo_usuario:oneof"}, verr.Fields)
}

func TestCreate_SomenteFabrica(t *testing.T) {
	uc := newUseCase(memory.NewStore(), &fakeMailer{})
	ctx := session.With(context.Background(), session.Session{UserID: "u", Role: entity.RoleDistribuidor})

	_, err := uc.Create(ctx, dto.CreateInvitationRequest{Email: "ana@doces.com", TipoUsuario: entity.RoleFabrica})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDelete(t *testing.T) {
	s := memory.NewStore()
	uc := newUseCase(s, &fakeMailer{})
	ctx := fabricaCtx()

	_, err := uc.Create(ctx, dto.CreateInvitationRequest{Email: "a@doces.com", TipoUsuario: entity.RoleFabrica})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateInvitationRequest{Email: "b@doces.com", TipoUsuario: entity.RoleFabrica})
	require.NoError(t, err)
	list, _ := uc.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "b@doces.com", list[0].Email)

	usado := list[1]
	require.NoError(t, s.Invitations().MarkUsed(context.Background(), usado.ID, time.Now()))
	assert.ErrorIs(t, uc.Delete(ctx, usado.ID), domain.ErrInvitationUsed)

	require.NoError(t, uc.Delete(ctx, list[0].ID))
	assert.ErrorIs(t, uc.Delete(ctx, list[0].ID), domain.ErrNotFound)
}
