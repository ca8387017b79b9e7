package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrPincodeAlreadyAssigned = errors.New("el pincode ya pertenece a otra zona")
	ErrPincodeConflict        = errors.New("el pincode ya está asignado a otra bodega de división")
	ErrHasDependents          = errors.New("la bodega tiene dependientes y no puede eliminarse")
	ErrEmptyPrimarySelection  = errors.New("la estrategia requiere una selección primaria no vacía")
	ErrUnknownWarehouse       = errors.New("bodega inexistente o inactiva")
	ErrUnroutablePincode      = errors.New("ninguna zona atiende el pincode")
	ErrOutOfStock             = errors.New("sin stock en toda la cadena de fallback")
)

// PincodeConflictError detalla qué pincode entra en conflicto y qué bodega de
// división lo posee actualmente. Envuelve ErrPincodeConflict para errors.Is.
type PincodeConflictError struct {
	Pincode string
	OwnerID string
}

func (e *PincodeConflictError) Error() string {
	return fmt.Sprintf("pincode %s ya asignado a la bodega %s", e.Pincode, e.OwnerID)
}

func (e *PincodeConflictError) Unwrap() error { return ErrPincodeConflict }
