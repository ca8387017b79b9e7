package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/fulfillment"
	"github.com/jhoicas/Logistica-api/internal/domain"
)

// FulfillmentHandler expone la resolución de pedidos contra la cadena de
// fallback (protegido).
type FulfillmentHandler struct {
	uc *fulfillment.ResolveUseCase
}

// NewFulfillmentHandler construye el handler de fulfillment.
func NewFulfillmentHandler(uc *fulfillment.ResolveUseCase) *FulfillmentHandler {
	return &FulfillmentHandler{uc: uc}
}

// Resolve godoc
// @Summary      Resolver bodega de despacho para un pedido
// @Description  Recorre división → zonales primarias → fallbacks y devuelve la primera bodega con stock suficiente. Solo lectura: no decrementa stock.
// @Tags         fulfillment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolveFulfillmentRequest  true  "Producto, pincode y cantidad"
// @Success      200   {object}  dto.ResolveFulfillmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/fulfillment/resolve [post]
func (h *FulfillmentHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveFulfillmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Resolve(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrOutOfStock) {
			// La cadena consultada viaja en details para que la consola la muestre.
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "OUT_OF_STOCK",
				Message: "ninguna bodega de la cadena tiene stock suficiente",
				Details: out,
			})
		}
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
