package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	appanalytics "github.com/jhoicas/rastreio-doces-api/internal/application/analytics"
	"github.com/jhoicas/rastreio-doces-api/internal/application/auth"
	"github.com/jhoicas/rastreio-doces-api/internal/application/chat"
	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/application/invitation"
	"github.com/jhoicas/rastreio-doces-api/internal/application/qrcode"
	"github.com/jhoicas/rastreio-doces-api/internal/application/scope"
	"github.com/jhoicas/rastreio-doces-api/internal/application/usecase"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/infrastructure/memory"
	"github.com/jhoicas/rastreio-doces-api/internal/infrastructure/pdf"
	"github.com/jhoicas/rastreio-doces-api/internal/infrastructure/qr"
	apphttp "github.com/jhoicas/rastreio-doces-api/internal/interfaces/http"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
)

type capturingMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *capturingMailer) SendInvitation(_ context.Context, to, code, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	return nil
}

func (m *capturingMailer) code(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[to]
}

type noStorage struct{}

func (noStorage) Enabled() bool { return false }
func (noStorage) Put(context.Context, string, string, []byte) (string, error) {
	return "", nil
}

type testServer struct {
	app    *fiber.App
	store  *memory.Store
	mailer *capturingMailer
}

// newTestServer monta a API completa sobre o store em memória.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := memory.NewStore()
	log := logger.Nop()
	resolver := scope.NewResolver(s.Distribuidores(), s.Profiles(), scope.Fallback{})
	mailer := &capturingMailer{codes: map[string]string{}}
	limiter := apphttp.NewRateLimiter(rate.Inf, 1000)
	t.Cleanup(limiter.Close)

	authUC := auth.NewAuthUseCase(s.Users(), s.Profiles(), s.Distribuidores(), s.TxRunner(),
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, log).
		WithHashCost(bcrypt.MinCost)
	chatData := chat.NewDataService(s.ChatData())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProdutoUC:      usecase.NewProdutoUseCase(s.Produtos()),
		LoteUC:         usecase.NewLoteUseCase(s.Lotes(), s.Produtos(), s.Distribuicoes(), s.Vendas(), s.TxRunner(), log),
		DistribuidorUC: usecase.NewDistribuidorUseCase(s.Distribuidores()),
		DistribuicaoUC: usecase.NewDistribuicaoUseCase(s.Distribuicoes(), s.Distribuidores(), s.TxRunner(), resolver, log),
		PontoVendaUC:   usecase.NewPontoVendaUseCase(s.PontosVenda(), s.Vendas(), s.Lotes(), s.Distribuicoes(), resolver),
		QRCodeUC:       qrcode.NewUseCase(s.Lotes(), qr.NewPNGEncoder(), pdf.NewLabelGenerator(), noStorage{}, log),
		InvitationUC:   invitation.NewUseCase(s.Invitations(), s.TxRunner(), mailer, invitation.NumericCode, log),
		AuthUC:         authUC,
		DashboardUC:    appanalytics.NewDashboardUseCase(s.Analytics(), s.Lotes(), s.Distribuicoes(), s.PontosVenda(), s.Vendas(), resolver),
		Assistant:      chat.NewAssistant(chatData, chat.NewTranscripts(), 0, log),
		ChatData:       chatData,
		JWTSecret:      testJWTSecret,
		AuthLimiter:    limiter,
	})
	return &testServer{app: app, store: s, mailer: mailer}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (ts *testServer) produtoELote(t *testing.T, tok, codigo string) (dto.ProdutoResponse, dto.LoteResponse) {
	t.Helper()
	resp, raw := ts.do(t, http.MethodPost, "/api/produtos", tok, dto.CreateProdutoRequest{Nome: "Brigadeiro", Tipo: "doce"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	p := decode[dto.ProdutoResponse](t, raw)

	resp, raw = ts.do(t, http.MethodPost, "/api/lotes", tok, dto.CreateLoteRequest{
		CodigoLote:   codigo,
		DataProducao: "2026-03-01",
		DataValidade: "2026-06-01",
		Responsavel:  "Ana",
		Itens:        []dto.LoteItemRequest{{ProdutoID: p.ID, Quantidade: 10}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	return p, decode[dto.LoteResponse](t, raw)
}

func TestRouter_ConviteCadastroELogin(t *testing.T) {
	ts := newTestServer(t)
	fab := tokenFor(t, testUserID, entity.RoleFabrica, "")

	resp, raw := ts.do(t, http.MethodPost, "/api/convites", fab,
		dto.CreateInvitationRequest{Email: " Joao@Doces.com ", TipoUsuario: entity.RoleDistribuidor})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	out := decode[dto.CreateInvitationResponse](t, raw)
	assert.True(t, out.Success)
	assert.Equal(t, "joao@doces.com", out.Email)

	code := ts.mailer.code("joao@doces.com")
	require.Regexp(t, `^\d{6}$`, code)

	signup := dto.SignupRequest{Email: "joao@doces.com", Password: "segredo123", Code: code, Nome: "João"}
	resp, raw = ts.do(t, http.MethodPost, "/api/auth/signup", "", signup)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, entity.RoleDistribuidor, decode[dto.ProfileResponse](t, raw).TipoUsuario)

	// o código já foi consumido
	signup.Email = "outro@doces.com"
	resp, raw = ts.do(t, http.MethodPost, "/api/auth/signup", "", signup)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_CODE", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = ts.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "joao@doces.com", Password: "segredo123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	login := decode[dto.LoginResponse](t, raw)
	require.NotEmpty(t, login.Token)

	resp, raw = ts.do(t, http.MethodGet, "/api/me/acesso?perfil=fabrica", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.False(t, decode[dto.AccessResponse](t, raw).Permitido)

	resp, _ = ts.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "joao@doces.com", Password: "errada"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ConviteApenasFabrica(t *testing.T) {
	ts := newTestServer(t)
	dist := tokenFor(t, testUserID, entity.RoleDistribuidor, testDistID)

	resp, _ := ts.do(t, http.MethodPost, "/api/convites", dist,
		dto.CreateInvitationRequest{Email: "x@doces.com", TipoUsuario: entity.RoleFabrica})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := ts.do(t, http.MethodPost, "/api/convites", tokenFor(t, testUserID, entity.RoleFabrica, ""),
		dto.CreateInvitationRequest{Email: "nao-e-email", TipoUsuario: entity.RoleFabrica})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, decode[dto.CreateInvitationResponse](t, raw).Error)
}

func TestRouter_ProdutoValidacaoEPermissao(t *testing.T) {
	ts := newTestServer(t)
	fab := tokenFor(t, testUserID, entity.RoleFabrica, "")

	resp, raw := ts.do(t, http.MethodPost, "/api/produtos", fab, map[string]string{"nome": "Cocada"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Fields, "tipo")

	resp, _ = ts.do(t, http.MethodPost, "/api/produtos", tokenFor(t, testUserID, entity.RoleDistribuidor, testDistID),
		dto.CreateProdutoRequest{Nome: "Cocada", Tipo: "doce"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/api/produtos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ProdutoEmUsoNaoPodeSerRemovido(t *testing.T) {
	ts := newTestServer(t)
	fab := tokenFor(t, testUserID, entity.RoleFabrica, "")
	p, _ := ts.produtoELote(t, fab, "L001")

	resp, raw := ts.do(t, http.MethodDelete, "/api/produtos/"+p.ID, fab, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "PRODUCT_IN_USE", decode[dto.ErrorResponse](t, raw).Code)
}

func TestRouter_QRCodeDoLote(t *testing.T) {
	ts := newTestServer(t)
	fab := tokenFor(t, testUserID, entity.RoleFabrica, "")
	_, l := ts.produtoELote(t, fab, "L001")

	resp, raw := ts.do(t, http.MethodGet, "/api/lotes/"+l.ID+"/qrcode", fab, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG")))

	resp, raw = ts.do(t, http.MethodGet, "/api/lotes/"+l.ID+"/qrcode/payload", fab, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	p := decode[qrcode.Payload](t, raw)
	assert.Equal(t, "L001", p.CodigoLote)
	assert.Equal(t, "01/06/2026", p.DataValidade)
	assert.Equal(t, 10, p.QuantidadeTotal)

	content, err := qrcode.Encode(p)
	require.NoError(t, err)
	resp, raw = ts.do(t, http.MethodPost, "/api/qrcode/decode", fab, dto.DecodeQRRequest{Payload: content})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, p, decode[qrcode.Payload](t, raw))

	resp, raw = ts.do(t, http.MethodPost, "/api/qrcode/decode", fab, dto.DecodeQRRequest{Payload: "não é json"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QR", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = ts.do(t, http.MethodGet, "/api/lotes/"+l.ID+"/etiqueta", fab, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, raw = ts.do(t, http.MethodPost, "/api/lotes/"+l.ID+"/qrcode/publicar", fab, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "STORAGE_DISABLED", decode[dto.ErrorResponse](t, raw).Code)
}

func TestRouter_Chat(t *testing.T) {
	ts := newTestServer(t)
	fab := tokenFor(t, testUserID, entity.RoleFabrica, "")
	ts.produtoELote(t, fab, "L001")

	resp, raw := ts.do(t, http.MethodPost, "/api/chat", fab, dto.ChatRequest{Message: "quero ver todos os lotes"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	reply := decode[dto.ChatReply](t, raw)
	assert.Equal(t, "get_all_data", reply.Intent)
	assert.Contains(t, reply.Reply, "Total de lotes: 1")

	resp, raw = ts.do(t, http.MethodGet, "/api/chat/historico", fab, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ChatMessage](t, raw), 2)

	resp, _ = ts.do(t, http.MethodDelete, "/api/chat/historico", fab, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw = ts.do(t, http.MethodPost, "/api/chatbot-data", fab, dto.ChatbotDataRequest{Action: "drop_tables"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ChatbotDataResponse](t, raw)
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Error)

	resp, raw = ts.do(t, http.MethodPost, "/api/chatbot-data", fab, dto.ChatbotDataRequest{Query: "L001", Action: "search_orders"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.True(t, decode[dto.ChatbotDataResponse](t, raw).Success)
}

func TestRouter_DashboardFabrica(t *testing.T) {
	ts := newTestServer(t)
	fab := tokenFor(t, testUserID, entity.RoleFabrica, "")
	ts.produtoELote(t, fab, "L001")

	resp, raw := ts.do(t, http.MethodGet, "/api/dashboard/fabrica", fab, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, _ = ts.do(t, http.MethodGet, "/api/dashboard/fabrica", tokenFor(t, testUserID, entity.RoleDistribuidor, testDistID), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// captureLog troca o logger global por um buffer até o fim do teste.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestRouter_Erro500ComCorpoProprioEhRegistrado(t *testing.T) {
	ts := newTestServer(t)
	fab := tokenFor(t, testUserID, entity.RoleFabrica, "")
	buf := captureLog(t)

	ts.store.FailOn("chat.Summary", errors.New("conexão perdida"))
	resp, raw := ts.do(t, http.MethodPost, "/api/chatbot-data", fab, dto.ChatbotDataRequest{Action: "get_all_data"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, decode[dto.ChatbotDataResponse](t, raw).Success)
	assert.Contains(t, buf.String(), "conexão perdida")
	assert.Contains(t, buf.String(), "/api/chatbot-data")

	buf.Reset()
	ts.store.FailOn("invitations.Upsert", errors.New("disco cheio"))
	resp, raw = ts.do(t, http.MethodPost, "/api/convites", fab,
		dto.CreateInvitationRequest{Email: "ana@doces.com", TipoUsuario: entity.RoleDistribuidor})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEmpty(t, decode[dto.CreateInvitationResponse](t, raw).Error)
	assert.Contains(t, buf.String(), "disco cheio")
	assert.Contains(t, buf.String(), "/api/convites")

	// 4xx não vai para o log
	buf.Reset()
	resp, _ = ts.do(t, http.MethodPost, "/api/chatbot-data", fab, dto.ChatbotDataRequest{Action: "drop_tables"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, buf.String())
}
