package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/inventory"
	"github.com/jhoicas/Botiquin-api/internal/application/usecase"
)

// ItemHandler unidades en stock y su libro de movimientos (protegido).
type ItemHandler struct {
	uc       *usecase.ItemUseCase
	register *inventory.RegisterTransactionUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, register *inventory.RegisterTransactionUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, register: register}
}

// Create godoc
// @Summary      Dar de alta una unidad
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos de la unidad; initial_quantity registra un recuento inicial"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err, "referencia, contenedor o ubicación no encontrados")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar unidades de un dominio
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        domain        query  string  true   "Dominio"
// @Param        container_id  query  string  false  "Filtrar por contenedor"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	domainName := c.Query("domain")
	if domainName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "domain es requerido"})
	}
	list, err := h.uc.List(c.UserContext(), domainName, c.Query("container_id"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener unidad
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "unidad no encontrada")
	}
	if out == nil {
		return notFound(c, "unidad no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar unidad
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la unidad"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err, "contenedor o ubicación no encontrados")
	}
	if out == nil {
		return notFound(c, "unidad no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar unidad y su libro
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID de la unidad"
// @Success      204
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, "unidad no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transactions godoc
// @Summary      Libro de movimientos de una unidad
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.ItemHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/transactions [get]
func (h *ItemHandler) Transactions(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.register.History(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "unidad no encontrada")
	}
	return c.JSON(out)
}

// Perish godoc
// @Summary      Dar de baja toda la cantidad de una unidad
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la unidad"
// @Param        body  body  dto.PerishItemRequest  false  "Observación"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/perish [post]
func (h *ItemHandler) Perish(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.PerishItemRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &in); !ok {
			return err
		}
	}
	t, err := h.register.PerishItem(c.UserContext(), id, GetUserID(c), in.Remark)
	if err != nil {
		return respondError(c, err, "unidad no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToTransactionResponse(t))
}
