package qrcode_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/internal/application/qrcode"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/session"
	"github.com/jhoicas/rastreio-doces-api/internal/infrastructure/memory"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
)

type fakeImages struct{ content string }

func (f *fakeImages) PNG(content string, size int) ([]byte, error) {
	f.content = content
	return []byte("png"), nil
}

type fakeLabels struct{}

func (fakeLabels) LoteLabel(_ context.Context, l *entity.LoteProducao, _ string) ([]byte, error) {
	return []byte("%PDF " + l.CodigoLote), nil
}

type fakeStorage struct {
	enabled bool
	keys    []string
}

func (f *fakeStorage) Enabled() bool { return f.enabled }

func (f *fakeStorage) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	f.keys = append(f.keys, key)
	return "https://cdn.exemplo/" + key, nil
}

func fabrica() context.Context {
	return session.With(context.Background(), session.Session{UserID: "u", Role: entity.RoleFabrica})
}

func seed(t *testing.T) (*memory.Store, string) {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	p := &entity.Produto{ID: uuid.NewString(), Nome: "Brigadeiro", Tipo: "doce"}
	require.NoError(t, s.Produtos().Create(ctx, p))
	l := &entity.LoteProducao{ID: uuid.NewString(), CodigoLote: "LOT001", Status: entity.LoteAtivo,
		DataProducao: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), DataValidade: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Lotes().Create(ctx, l))
	require.NoError(t, s.LoteItens().CreateBatch(ctx, []entity.LoteItem{{ID: uuid.NewString(), LoteID: l.ID, ProdutoID: p.ID, Quantidade: 100}}))
	return s, l.ID
}

func TestUseCase_PNGUsaOPayloadDoLote(t *testing.T) {
	s, id := seed(t)
	img := &fakeImages{}
	uc := qrcode.NewUseCase(s.Lotes(), img, fakeLabels{}, nil, logger.Nop())

	out, err := uc.PNG(fabrica(), id)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), out)

	decoded, err := qrcode.Decode(img.content)
	require.NoError(t, err)
	assert.Equal(t, qrcode.Produtos("Brigadeiro: 100 un"), decoded.Produtos)

	_, err = uc.PNG(fabrica(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUseCase_Label(t *testing.T) {
	s, id := seed(t)
	uc := qrcode.NewUseCase(s.Lotes(), &fakeImages{}, fakeLabels{}, nil, logger.Nop())

	doc, codigo, err := uc.Label(fabrica(), id)
	require.NoError(t, err)
	assert.Equal(t, "LOT001", codigo)
	assert.Contains(t, string(doc), "LOT001")
}

func TestUseCase_Publish(t *testing.T) {
	s, id := seed(t)

	off := qrcode.NewUseCase(s.Lotes(), &fakeImages{}, fakeLabels{}, &fakeStorage{}, logger.Nop())
	_, err := off.Publish(fabrica(), id)
	assert.ErrorIs(t, err, domain.ErrStorageDisabled)

	st := &fakeStorage{enabled: true}
	uc := qrcode.NewUseCase(s.Lotes(), &fakeImages{}, fakeLabels{}, st, logger.Nop())
	url, err := uc.Publish(fabrica(), id)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.exemplo/qrcodes/LOT001.png", url)

	dist := session.With(context.Background(), session.Session{UserID: "d", Role: entity.RoleDistribuidor})
	_, err = uc.Publish(dist, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
