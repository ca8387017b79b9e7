package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
)

// respondDomainError traduce errores de dominio a códigos HTTP estables.
// Los handlers lo usan como última rama después de sus chequeos propios.
func respondDomainError(c *fiber.Ctx, err error) error {
	var conflict *domain.PincodeConflictError
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "PINCODE_CONFLICT",
			Message: conflict.Error(),
			Details: fiber.Map{"pincode": conflict.Pincode, "owner_warehouse_id": conflict.OwnerID},
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrEmptyPrimarySelection):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_PRIMARY_SELECTION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownWarehouse):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNKNOWN_WAREHOUSE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnroutablePincode):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNROUTABLE_PINCODE", Message: err.Error()})
	case errors.Is(err, domain.ErrPincodeConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PINCODE_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrPincodeAlreadyAssigned):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PINCODE_ALREADY_ASSIGNED", Message: err.Error()})
	case errors.Is(err, domain.ErrHasDependents):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HAS_DEPENDENTS", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
