package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/usecase"
)

// VesselHandler ajustes del buque.
type VesselHandler struct {
	uc *usecase.VesselUseCase
}

// NewVesselHandler construye el handler.
func NewVesselHandler(uc *usecase.VesselUseCase) *VesselHandler {
	return &VesselHandler{uc: uc}
}

// Get godoc
// @Summary      Ajustes del buque
// @Tags         vessel
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VesselResponse
// @Router       /api/vessel [get]
func (h *VesselHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar ajustes del buque
// @Tags         vessel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VesselRequest  true  "name, imo, call_sign, flag, expiry_warning_days"
// @Success      200   {object}  dto.VesselResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vessel [put]
func (h *VesselHandler) Save(c *fiber.Ctx) error {
	var in dto.VesselRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}
