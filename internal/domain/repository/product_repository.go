package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStrategy(id, strategy string) error
	List(limit, offset int) ([]*entity.Product, error)
}
