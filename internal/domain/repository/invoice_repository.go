package repository

import "github.com/pmt-online/magazin-api/internal/domain/entity"

// InvoiceRepository definește portul de persistență pentru facturi.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	// UpdateAnaf actualizează doar plicul ANAF al facturii:
	// upload_id, anaf_status, anaf_errors, xml, digest.
	UpdateAnaf(invoice *entity.Invoice) error
	UpdatePayment(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetByNumber(series string, number int) (*entity.Invoice, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	// NextNumber alocă atomic următorul număr din serie (pornind de la 1).
	NextNumber(series string) (int, error)
}
