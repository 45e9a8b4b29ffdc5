package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/inventory"
)

// InventoryHandler estado de inventario, reposición, caducidades y movimientos (protegido).
type InventoryHandler struct {
	status   *inventory.StatusUseCase
	shortage *inventory.ShortageUseCase
	expiry   *inventory.ExpiryUseCase
	register *inventory.RegisterTransactionUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	status *inventory.StatusUseCase,
	shortage *inventory.ShortageUseCase,
	expiry *inventory.ExpiryUseCase,
	register *inventory.RegisterTransactionUseCase,
) *InventoryHandler {
	return &InventoryHandler{status: status, shortage: shortage, expiry: expiry, register: register}
}

// GetStatus godoc
// @Summary      Estado del inventario frente a las dotaciones
// @Description  Sin domain devuelve todos los dominios. allowance_id se puede repetir
//
//	para restringir el cálculo a un subconjunto de dotaciones.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        domain        query  string  false  "molecule | equipment | first_aid_kit | rescue_bag | telemedical | laboratory"
// @Param        allowance_id  query  []string  false  "IDs de dotación"
// @Success      200  {object}  dto.DomainStatusDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/status [get]
func (h *InventoryHandler) GetStatus(c *fiber.Ctx) error {
	filter, ok, err := statusFilter(c)
	if !ok {
		return err
	}
	if d := c.Query("domain"); d != "" {
		out, err := h.status.DomainStatus(c.UserContext(), d, filter)
		if err != nil {
			return respondError(c, err, "")
		}
		return c.JSON(out)
	}
	out, err := h.status.FullStatus(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// GetShortages godoc
// @Summary      Lista de reposición
// @Description  Elementos con faltante en todos los dominios, con prioridad 1..n.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        allowance_id  query  []string  false  "IDs de dotación"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/shortages [get]
func (h *InventoryHandler) GetShortages(c *fiber.Ctx) error {
	filter, ok, err := statusFilter(c)
	if !ok {
		return err
	}
	list, err := h.shortage.ListShortages(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(fiber.Map{
		"total":     len(list),
		"shortages": list,
	})
}

// GetExpiring godoc
// @Summary      Unidades caducadas o próximas a caducar
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        days    query  int     false  "Ventana en días (por defecto la del buque)"
// @Param        before  query  string  false  "Fecha límite YYYY-MM-DD (excluida)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/expiring [get]
func (h *InventoryHandler) GetExpiring(c *fiber.Ctx) error {
	var q inventory.ExpiryQuery
	if s := c.Query("days"); s != "" {
		days, err := strconv.Atoi(s)
		if err != nil || days < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "days debe ser un entero >= 0"})
		}
		q.Days = &days
	}
	if s := c.Query("before"); s != "" {
		before, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "before debe tener formato YYYY-MM-DD"})
		}
		q.Before = &before
	}
	list, err := h.expiry.ListExpiring(c.UserContext(), q)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}

// RegisterTransaction godoc
// @Summary      Registrar movimiento de cantidad
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterTransactionRequest  true  "item_id, type, value, date, remark"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) RegisterTransaction(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterTransactionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.register.RegisterFromRequest(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, err, "unidad no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func statusFilter(c *fiber.Ctx) (dto.StatusFilter, bool, error) {
	var filter dto.StatusFilter
	if err := c.QueryParser(&filter); err != nil {
		return filter, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	ok, err := validateStruct(c, &filter)
	return filter, ok, err
}
