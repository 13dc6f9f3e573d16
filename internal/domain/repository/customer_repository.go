package repository

import "github.com/pmt-online/magazin-api/internal/domain/entity"

// CustomerRepository definește portul de persistență pentru clienți.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetByTaxCode caută după CIF (firme) sau CNP (persoane fizice).
	GetByTaxCode(code string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
