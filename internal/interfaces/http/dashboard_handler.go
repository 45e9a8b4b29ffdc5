package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Botiquin-api/internal/application/analytics"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los conteos por dominio y los totales del buque.
// GET /api/dashboard
//
// Respuesta: DashboardSummaryDTO (vessel_name, totals, domains[], warning_days).
// Solo cuenta las dotaciones activas.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}
