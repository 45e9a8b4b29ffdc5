package http

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/allowance"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
)

// maxPackageSize límite de un paquete de dotación subido por HTTP.
const maxPackageSize = 8 << 20

// BodyLimit límite de cuerpo para fiber.Config: un paquete completo más el sobre multipart.
const BodyLimit = maxPackageSize + 1<<20

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// AllowanceHandler dotaciones, sus requerimientos y paquetes de intercambio (admin).
type AllowanceHandler struct {
	uc *allowance.UseCase
}

// NewAllowanceHandler construye el handler.
func NewAllowanceHandler(uc *allowance.UseCase) *AllowanceHandler {
	return &AllowanceHandler{uc: uc}
}

// Create godoc
// @Summary      Crear dotación
// @Tags         allowances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllowanceRequest  true  "name, author, version, additional"
// @Success      201   {object}  dto.AllowanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allowances [post]
func (h *AllowanceHandler) Create(c *fiber.Ctx) error {
	var in dto.AllowanceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar dotaciones instaladas
// @Tags         allowances
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AllowanceResponse
// @Router       /api/allowances [get]
func (h *AllowanceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener dotación
// @Tags         allowances
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la dotación"
// @Success      200  {object}  dto.AllowanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/allowances/{id} [get]
func (h *AllowanceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "dotación no encontrada")
	}
	if out == nil {
		return notFound(c, "dotación no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar dotación
// @Tags         allowances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la dotación"
// @Param        body  body  dto.AllowanceRequest  true  "Datos de la dotación"
// @Success      200   {object}  dto.AllowanceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allowances/{id} [put]
func (h *AllowanceHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.AllowanceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err, "dotación no encontrada")
	}
	if out == nil {
		return notFound(c, "dotación no encontrada")
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Activar o desactivar dotación
// @Description  Una dotación inactiva no cuenta para los requerimientos del buque.
// @Tags         allowances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la dotación"
// @Param        body  body  dto.SetActiveRequest  true  "active"
// @Success      200   {object}  dto.AllowanceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/allowances/{id}/active [patch]
func (h *AllowanceHandler) SetActive(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.SetActiveRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetActive(c.UserContext(), id, in.Active)
	if err != nil {
		return respondError(c, err, "dotación no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar dotación y sus filas
// @Tags         allowances
// @Security     Bearer
// @Param        id   path  string  true  "ID de la dotación"
// @Success      204
// @Router       /api/allowances/{id} [delete]
func (h *AllowanceHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, "dotación no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetRequirements godoc
// @Summary      Filas de requerimiento de una dotación
// @Tags         allowances
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la dotación"
// @Success      200  {array}   dto.RequirementRowDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/allowances/{id}/requirements [get]
func (h *AllowanceHandler) GetRequirements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	rows, err := h.uc.Requirements(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "dotación no encontrada")
	}
	return c.JSON(rows)
}

// SetRequirements godoc
// @Summary      Reemplazar las filas de requerimiento
// @Tags         allowances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la dotación"
// @Param        body  body  dto.SetRequirementsRequest  true  "rows"
// @Success      200   {array}   dto.RequirementRowDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/allowances/{id}/requirements [put]
func (h *AllowanceHandler) SetRequirements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.SetRequirementsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.uc.SetRequirements(c.UserContext(), id, in); err != nil {
		return respondError(c, err, "dotación o elemento no encontrado")
	}
	rows, err := h.uc.Requirements(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "dotación no encontrada")
	}
	return c.JSON(rows)
}

// Export godoc
// @Summary      Exportar dotación como paquete .tar.gz
// @Tags         allowances
// @Security     Bearer
// @Produce      application/gzip
// @Param        id   path  string  true  "ID de la dotación"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/allowances/{id}/export [get]
func (h *AllowanceHandler) Export(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var buf bytes.Buffer
	a, err := h.uc.Export(c.UserContext(), id, &buf)
	if err != nil {
		return respondError(c, err, "dotación no encontrada")
	}
	c.Set(fiber.HeaderContentType, "application/gzip")
	c.Attachment(packageFilename(a))
	return c.Send(buf.Bytes())
}

// Import godoc
// @Summary      Importar paquete de dotación
// @Description  Acepta multipart (campo "file") o el .tar.gz como cuerpo.
// @Description  Un paquete con versión más antigua que la instalada se rechaza con 409.
// @Tags         allowances
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  false  "Paquete .tar.gz"
// @Success      201   {object}  dto.ImportResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allowances/import [post]
func (h *AllowanceHandler) Import(c *fiber.Ctx) error {
	r, closeFn, err := packageReader(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	defer closeFn()
	out, err := h.uc.Import(c.UserContext(), r)
	if err != nil {
		return respondError(c, err, "")
	}
	status := fiber.StatusOK
	if out.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

func packageReader(c *fiber.Ctx) (io.Reader, func(), error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "campo file requerido")
		}
		if fh.Size > maxPackageSize {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "paquete demasiado grande")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	body := c.Body()
	if len(body) == 0 {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "paquete vacío")
	}
	if len(body) > maxPackageSize {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "paquete demasiado grande")
	}
	return bytes.NewReader(body), func() {}, nil
}

func packageFilename(a *dto.AllowanceResponse) string {
	name := unsafeFilename.ReplaceAllString(strings.TrimSpace(a.Name), "_")
	if name == "" {
		name = "allowance"
	}
	return name + ".tar.gz"
}
