package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/rastreio-doces-api/internal/application/analytics"
	"github.com/jhoicas/rastreio-doces-api/internal/application/auth"
	"github.com/jhoicas/rastreio-doces-api/internal/application/chat"
	"github.com/jhoicas/rastreio-doces-api/internal/application/invitation"
	"github.com/jhoicas/rastreio-doces-api/internal/application/qrcode"
	"github.com/jhoicas/rastreio-doces-api/internal/application/scope"
	"github.com/jhoicas/rastreio-doces-api/internal/application/usecase"
	infraemail "github.com/jhoicas/rastreio-doces-api/internal/infrastructure/email"
	infrapdf "github.com/jhoicas/rastreio-doces-api/internal/infrastructure/pdf"
	"github.com/jhoicas/rastreio-doces-api/internal/infrastructure/postgres"
	infraqr "github.com/jhoicas/rastreio-doces-api/internal/infrastructure/qr"
	"github.com/jhoicas/rastreio-doces-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/rastreio-doces-api/internal/interfaces/http"
	"github.com/jhoicas/rastreio-doces-api/pkg/config"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET não configurado")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}
	if len(applied) > 0 {
		log.Info().Strs("migrations", applied).Msg("migrations aplicadas")
	}

	produtoRepo := postgres.NewProdutoRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	distribuidorRepo := postgres.NewDistribuidorRepository(pool)
	distribuicaoRepo := postgres.NewDistribuicaoRepository(pool)
	pontoVendaRepo := postgres.NewPontoVendaRepository(pool)
	vendaRepo := postgres.NewVendaPdvRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	chatDataRepo := postgres.NewChatDataRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Perfil distribuidor sem vínculo cai no distribuidor de fallback, quando habilitado.
	resolver := scope.NewResolver(distribuidorRepo, profileRepo, scope.Fallback{
		Enabled: cfg.Fallback.Enabled,
		CNPJ:    cfg.Fallback.DistributorCNPJ,
	})
	if cfg.Fallback.Enabled {
		log.Warn().Str("cnpj", cfg.Fallback.DistributorCNPJ).Msg("fallback de distribuidor habilitado")
	}

	produtoUC := usecase.NewProdutoUseCase(produtoRepo)
	loteUC := usecase.NewLoteUseCase(loteRepo, produtoRepo, distribuicaoRepo, vendaRepo, txRunner, log.Component("lotes"))
	distribuidorUC := usecase.NewDistribuidorUseCase(distribuidorRepo)
	distribuicaoUC := usecase.NewDistribuicaoUseCase(distribuicaoRepo, distribuidorRepo, txRunner, resolver, log.Component("distribuicoes"))
	pontoVendaUC := usecase.NewPontoVendaUseCase(pontoVendaRepo, vendaRepo, loteRepo, distribuicaoRepo, resolver)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, loteRepo, distribuicaoRepo, pontoVendaRepo, vendaRepo, resolver)

	objectStorage, err := storage.NewS3Storage(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("storage S3")
	}
	qrUC := qrcode.NewUseCase(loteRepo, infraqr.NewPNGEncoder(), infrapdf.NewLabelGenerator(), objectStorage, log.Component("qrcode"))

	mailer := infraemail.NewSender(cfg.SMTP, cfg.Invite.SignupURL, log.Component("email"))
	invitationUC := invitation.NewUseCase(invitationRepo, txRunner, mailer,
		invitation.GeneratorFor(cfg.Invite.CodeFormat), log.Component("convites"))

	authUC := auth.NewAuthUseCase(userRepo, profileRepo, distribuidorRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	chatData := chat.NewDataService(chatDataRepo)
	assistant := chat.NewAssistant(chatData, chat.NewTranscripts(),
		time.Duration(cfg.Chat.TimeoutSeconds)*time.Second, log.Component("chat"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Rastreio Doces API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	authLimiter := httpRouter.NewRateLimiter(httpRouter.DefaultAuthRate, httpRouter.DefaultAuthBurst)
	defer authLimiter.Close()

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProdutoUC:      produtoUC,
		LoteUC:         loteUC,
		DistribuidorUC: distribuidorUC,
		DistribuicaoUC: distribuicaoUC,
		PontoVendaUC:   pontoVendaUC,
		QRCodeUC:       qrUC,
		InvitationUC:   invitationUC,
		AuthUC:         authUC,
		DashboardUC:    dashboardUC,
		Assistant:      assistant,
		ChatData:       chatData,
		JWTSecret:      cfg.JWT.Secret,
		AuthLimiter:    authLimiter,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
