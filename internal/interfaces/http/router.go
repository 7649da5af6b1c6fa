package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	appanalytics "github.com/jhoicas/rastreio-doces-api/internal/application/analytics"
	"github.com/jhoicas/rastreio-doces-api/internal/application/auth"
	"github.com/jhoicas/rastreio-doces-api/internal/application/chat"
	"github.com/jhoicas/rastreio-doces-api/internal/application/invitation"
	"github.com/jhoicas/rastreio-doces-api/internal/application/qrcode"
	"github.com/jhoicas/rastreio-doces-api/internal/application/usecase"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// Limite padrão de /api/auth e /api/convites: 5 requisições por minuto por IP.
var (
	DefaultAuthRate  = rate.Every(time.Minute / 5)
	DefaultAuthBurst = 5
)

// RouterDeps dependências do router.
type RouterDeps struct {
	ProdutoUC      *usecase.ProdutoUseCase
	LoteUC         *usecase.LoteUseCase
	DistribuidorUC *usecase.DistribuidorUseCase
	DistribuicaoUC *usecase.DistribuicaoUseCase
	PontoVendaUC   *usecase.PontoVendaUseCase
	QRCodeUC       *qrcode.UseCase
	InvitationUC   *invitation.UseCase
	AuthUC         *auth.AuthUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	Assistant      *chat.Assistant
	ChatData       *chat.DataService
	JWTSecret      string
	// AuthLimiter limita /api/auth e /api/convites por IP; nil usa DefaultAuthRate.
	AuthLimiter *RateLimiter
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	limiter := deps.AuthLimiter
	if limiter == nil {
		limiter = NewRateLimiter(DefaultAuthRate, DefaultAuthBurst)
	}
	fabrica := RequireRole(entity.RoleFabrica)
	distribuidor := RequireRole(entity.RoleDistribuidor)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth", limiter.Middleware())
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	me := protected.Group("/me")
	me.Get("/", authHandler.Me)
	me.Get("/acesso", authHandler.Acesso)
	me.Post("/distribuidor", distribuidor, authHandler.LinkDistribuidor)

	produtos := protected.Group("/produtos")
	produtoHandler := NewProdutoHandler(deps.ProdutoUC)
	produtos.Get("/", produtoHandler.List)
	produtos.Get("/:id", produtoHandler.GetByID)
	produtos.Post("/", fabrica, produtoHandler.Create)
	produtos.Put("/:id", fabrica, produtoHandler.Update)
	produtos.Delete("/:id", fabrica, produtoHandler.Delete)

	lotes := protected.Group("/lotes")
	loteHandler := NewLoteHandler(deps.LoteUC, deps.QRCodeUC)
	lotes.Get("/", loteHandler.List)
	lotes.Get("/:id", loteHandler.GetByID)
	lotes.Get("/:id/rastreio", loteHandler.Rastreio)
	lotes.Get("/:id/qrcode", loteHandler.QRCode)
	lotes.Get("/:id/qrcode/payload", loteHandler.QRPayload)
	lotes.Get("/:id/etiqueta", loteHandler.Etiqueta)
	lotes.Post("/", fabrica, loteHandler.Create)
	lotes.Put("/:id", fabrica, loteHandler.Update)
	lotes.Patch("/:id/status", fabrica, loteHandler.UpdateStatus)
	lotes.Delete("/:id", fabrica, loteHandler.Delete)
	lotes.Post("/:id/qrcode/publicar", fabrica, loteHandler.Publicar)

	distHandler := NewDistribuidorHandler(deps.DistribuidorUC, deps.DistribuicaoUC)
	distribuidores := protected.Group("/distribuidores")
	distribuidores.Get("/", distHandler.List)
	distribuidores.Get("/:id", distHandler.GetByID)
	distribuidores.Post("/", fabrica, distHandler.Create)
	distribuidores.Put("/:id", fabrica, distHandler.Update)
	distribuidores.Delete("/:id", fabrica, distHandler.Delete)

	distribuicoes := protected.Group("/distribuicoes")
	distribuicoes.Get("/", distHandler.ListDistribuicoes)
	distribuicoes.Post("/", fabrica, distHandler.CreateDistribuicao)
	distribuicoes.Delete("/:id", fabrica, distHandler.DeleteDistribuicao)

	pvHandler := NewPontoVendaHandler(deps.PontoVendaUC)
	pontos := protected.Group("/pontos-venda")
	pontos.Get("/", pvHandler.List)
	pontos.Post("/", distribuidor, pvHandler.Create)
	pontos.Put("/:id", distribuidor, pvHandler.Update)
	pontos.Delete("/:id", distribuidor, pvHandler.Delete)

	vendas := protected.Group("/vendas")
	vendas.Get("/", pvHandler.ListVendas)
	vendas.Post("/", distribuidor, pvHandler.CreateVenda)
	vendas.Delete("/:id", distribuidor, pvHandler.DeleteVenda)

	convites := protected.Group("/convites", fabrica, limiter.Middleware())
	invHandler := NewInvitationHandler(deps.InvitationUC)
	convites.Get("/", invHandler.List)
	convites.Post("/", invHandler.Create)
	convites.Delete("/:id", invHandler.Delete)

	dashHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/fabrica", fabrica, dashHandler.Fabrica)
	protected.Get("/dashboard/distribuidor", distribuidor, dashHandler.Distribuidor)

	chatHandler := NewChatHandler(deps.Assistant, deps.ChatData)
	protected.Post("/chat", chatHandler.Ask)
	protected.Get("/chat/historico", chatHandler.History)
	protected.Delete("/chat/historico", chatHandler.Clear)
	protected.Post("/chatbot-data", chatHandler.Data)

	protected.Post("/qrcode/decode", DecodeQR)
	protected.Post("/qrcode/scan-error", ScanError)
}
