package distribution

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el reemplazo de asignaciones y
// la siembra de stock de un producto sean todo-o-nada: un fallo deja intactas
// las asignaciones anteriores.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		assignRepo repository.AssignmentRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}
