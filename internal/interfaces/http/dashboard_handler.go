package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/rastreio-doces-api/internal/application/analytics"
)

// DashboardHandler painéis por perfil.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Fabrica devolve o painel da fábrica.
// GET /api/dashboard/fabrica?tipo=brigadeiro
//
// Resposta: FabricaDashboardDTO (stats, proximos_vencer, por_sabor, por_regiao, lotes_recentes).
// As quatro consultas rodam em paralelo; qualquer falha aborta o painel inteiro.
func (h *DashboardHandler) Fabrica(c *fiber.Ctx) error {
	out, err := h.uc.FabricaDashboard(c.UserContext(), c.Query("tipo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Distribuidor devolve o painel do distribuidor da sessão.
// GET /api/dashboard/distribuidor
//
// Resposta: DistribuidorDashboardDTO. fallback=true indica que o distribuidor veio da configuração.
func (h *DashboardHandler) Distribuidor(c *fiber.Ctx) error {
	out, err := h.uc.DistribuidorDashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
