package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/usecase"
)

// LocationHandler árbol de ubicaciones y contenedores del buque (protegido).
type LocationHandler struct {
	locations  *usecase.LocationUseCase
	containers *usecase.ContainerUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(locations *usecase.LocationUseCase, containers *usecase.ContainerUseCase) *LocationHandler {
	return &LocationHandler{locations: locations, containers: containers}
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "name, parent_id, is_rescue_bag"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.locations.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "ubicación padre no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLocations godoc
// @Summary      Listar ubicaciones (ordenadas por ruta)
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *LocationHandler) ListLocations(c *fiber.Ctx) error {
	list, err := h.locations.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(list)
}

// GetLocation godoc
// @Summary      Obtener ubicación
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetLocation(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.locations.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "ubicación no encontrada")
	}
	if out == nil {
		return notFound(c, "ubicación no encontrada")
	}
	return c.JSON(out)
}

// UpdateLocation godoc
// @Summary      Actualizar o mover ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la ubicación"
// @Param        body  body  dto.UpdateLocationRequest  true  "parent_id vacío la mueve a la raíz"
// @Success      200   {object}  dto.LocationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [put]
func (h *LocationHandler) UpdateLocation(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateLocationRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.locations.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err, "ubicación padre no encontrada")
	}
	if out == nil {
		return notFound(c, "ubicación no encontrada")
	}
	return c.JSON(out)
}

// DeleteLocation godoc
// @Summary      Eliminar ubicación
// @Tags         locations
// @Security     Bearer
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      204
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) DeleteLocation(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.locations.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, "ubicación no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateContainer godoc
// @Summary      Crear botiquín o bolsa de rescate
// @Tags         containers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContainerRequest  true  "kind, name, location_id"
// @Success      201   {object}  dto.ContainerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/containers [post]
func (h *LocationHandler) CreateContainer(c *fiber.Ctx) error {
	var in dto.CreateContainerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.containers.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "ubicación no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListContainers godoc
// @Summary      Listar contenedores
// @Tags         containers
// @Security     Bearer
// @Produce      json
// @Param        kind  query  string  false  "first_aid_kit | rescue_bag"
// @Success      200  {array}  dto.ContainerResponse
// @Router       /api/containers [get]
func (h *LocationHandler) ListContainers(c *fiber.Ctx) error {
	list, err := h.containers.List(c.UserContext(), c.Query("kind"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(list)
}

// GetContainer godoc
// @Summary      Obtener contenedor
// @Tags         containers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contenedor"
// @Success      200  {object}  dto.ContainerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/containers/{id} [get]
func (h *LocationHandler) GetContainer(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.containers.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "contenedor no encontrado")
	}
	if out == nil {
		return notFound(c, "contenedor no encontrado")
	}
	return c.JSON(out)
}

// UpdateContainer godoc
// @Summary      Actualizar contenedor
// @Tags         containers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del contenedor"
// @Param        body  body  dto.UpdateContainerRequest  true  "name, location_id"
// @Success      200   {object}  dto.ContainerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/containers/{id} [put]
func (h *LocationHandler) UpdateContainer(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateContainerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.containers.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err, "ubicación no encontrada")
	}
	if out == nil {
		return notFound(c, "contenedor no encontrado")
	}
	return c.JSON(out)
}

// DeleteContainer godoc
// @Summary      Eliminar contenedor (sus unidades quedan sin contenedor)
// @Tags         containers
// @Security     Bearer
// @Param        id   path  string  true  "ID del contenedor"
// @Success      204
// @Router       /api/containers/{id} [delete]
func (h *LocationHandler) DeleteContainer(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.containers.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, "contenedor no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
