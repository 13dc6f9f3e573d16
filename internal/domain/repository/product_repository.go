package repository

import "github.com/pmt-online/magazin-api/internal/domain/entity"

// ProductRepository definește portul de persistență pentru catalogul de produse.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	ListByCategory(category string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
