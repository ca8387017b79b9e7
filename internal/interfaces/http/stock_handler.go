package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/usecase"
)

// StockHandler maneja los ajustes manuales y consultas del libro de stock (protegido).
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajustar stock de un producto en una bodega
// @Description  Operaciones set, increment y decrement. El decremento es condicional: nunca deja la cantidad negativa.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "Ajuste a aplicar"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Adjust(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de stock de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock-summary [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.Summary(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
