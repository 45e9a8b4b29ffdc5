package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/usecase"
)

// CatalogHandler catálogo de moléculas y material (protegido).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateMolecule godoc
// @Summary      Crear molécula
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoleculeRequest  true  "Datos de la molécula"
// @Success      201   {object}  dto.MoleculeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/molecules [post]
func (h *CatalogHandler) CreateMolecule(c *fiber.Ctx) error {
	var in dto.MoleculeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateMolecule(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetMolecule godoc
// @Summary      Obtener molécula por ID
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la molécula"
// @Success      200  {object}  dto.MoleculeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/molecules/{id} [get]
func (h *CatalogHandler) GetMolecule(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetMolecule(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "molécula no encontrada")
	}
	if out == nil {
		return notFound(c, "molécula no encontrada")
	}
	return c.JSON(out)
}

// ListMolecules godoc
// @Summary      Listar moléculas
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MoleculeResponse
// @Router       /api/molecules [get]
func (h *CatalogHandler) ListMolecules(c *fiber.Ctx) error {
	list, err := h.uc.ListMolecules(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(list)
}

// UpdateMolecule godoc
// @Summary      Actualizar molécula
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la molécula"
// @Param        body  body  dto.MoleculeRequest  true  "Datos de la molécula"
// @Success      200   {object}  dto.MoleculeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/molecules/{id} [put]
func (h *CatalogHandler) UpdateMolecule(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.MoleculeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateMolecule(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err, "molécula no encontrada")
	}
	if out == nil {
		return notFound(c, "molécula no encontrada")
	}
	return c.JSON(out)
}

// DeleteMolecule godoc
// @Summary      Eliminar molécula (sin unidades ni requerimientos)
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID de la molécula"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/molecules/{id} [delete]
func (h *CatalogHandler) DeleteMolecule(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.DeleteMolecule(c.UserContext(), id); err != nil {
		return respondError(c, err, "molécula no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateEquipment godoc
// @Summary      Crear material
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EquipmentRequest  true  "Datos del material"
// @Success      201   {object}  dto.EquipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipments [post]
func (h *CatalogHandler) CreateEquipment(c *fiber.Ctx) error {
	var in dto.EquipmentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateEquipment(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetEquipment godoc
// @Summary      Obtener material por ID
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.EquipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipments/{id} [get]
func (h *CatalogHandler) GetEquipment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetEquipment(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "material no encontrado")
	}
	if out == nil {
		return notFound(c, "material no encontrado")
	}
	return c.JSON(out)
}

// ListEquipments godoc
// @Summary      Listar material
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EquipmentResponse
// @Router       /api/equipments [get]
func (h *CatalogHandler) ListEquipments(c *fiber.Ctx) error {
	list, err := h.uc.ListEquipments(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(list)
}

// UpdateEquipment godoc
// @Summary      Actualizar material
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del material"
// @Param        body  body  dto.EquipmentRequest  true  "Datos del material"
// @Success      200   {object}  dto.EquipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/equipments/{id} [put]
func (h *CatalogHandler) UpdateEquipment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.EquipmentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateEquipment(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err, "material no encontrado")
	}
	if out == nil {
		return notFound(c, "material no encontrado")
	}
	return c.JSON(out)
}

// DeleteEquipment godoc
// @Summary      Eliminar material (sin unidades ni requerimientos)
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID del material"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/equipments/{id} [delete]
func (h *CatalogHandler) DeleteEquipment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.DeleteEquipment(c.UserContext(), id); err != nil {
		return respondError(c, err, "material no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
