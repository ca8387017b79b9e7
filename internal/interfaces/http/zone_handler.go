package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/usecase"
)

// ZoneHandler maneja las peticiones HTTP del registro de zonas (protegido).
type ZoneHandler struct {
	uc *usecase.ZoneUseCase
}

// NewZoneHandler construye el handler de zonas.
func NewZoneHandler(uc *usecase.ZoneUseCase) *ZoneHandler {
	return &ZoneHandler{uc: uc}
}

// Create godoc
// @Summary      Crear zona geográfica
// @Tags         zones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateZoneRequest  true  "Datos de la zona"
// @Success      201   {object}  dto.ZoneResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/zones [post]
func (h *ZoneHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateZoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener zona por ID
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la zona"
// @Success      200  {object}  dto.ZoneResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/zones/{id} [get]
func (h *ZoneHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "zona no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar zona
// @Tags         zones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la zona"
// @Param        body  body  dto.UpdateZoneRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ZoneResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/zones/{id} [put]
func (h *ZoneHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateZoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "zona no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar zonas
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ZoneListResponse
// @Router       /api/zones [get]
func (h *ZoneHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListActive godoc
// @Summary      Listar zonas activas
// @Description  Lista completa sin paginación, para los selects de la consola.
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ZoneResponse
// @Router       /api/zones/active [get]
func (h *ZoneHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.uc.ListActive()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// AssignPincodes godoc
// @Summary      Agregar pincodes a una zona
// @Tags         zones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la zona"
// @Param        body  body  dto.AssignPincodesRequest  true  "Pincodes a agregar"
// @Success      200   {object}  dto.ZoneResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/zones/{id}/pincodes [post]
func (h *ZoneHandler) AssignPincodes(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.AssignPincodesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AssignPincodes(c.UserContext(), id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "zona no encontrada"})
	}
	return c.JSON(out)
}

// LookupByPincode godoc
// @Summary      Buscar la zona dueña de un pincode
// @Tags         zones
// @Security     Bearer
// @Produce      json
// @Param        pincode  query  string  true  "Pincode a buscar"
// @Success      200  {object}  dto.ZoneResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/zones/lookup [get]
func (h *ZoneHandler) LookupByPincode(c *fiber.Ctx) error {
	pincode := c.Query("pincode")
	if pincode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pincode es requerido"})
	}
	out, err := h.uc.LookupByPincode(pincode)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pincode sin zona asignada"})
	}
	return c.JSON(out)
}

// pageParams lee limit/offset de la query con los topes del resto de la API.
func pageParams(c *fiber.Ctx) (int, int) {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
