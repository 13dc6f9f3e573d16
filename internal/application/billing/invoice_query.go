package billing

import (
	"context"

	"github.com/pmt-online/magazin-api/internal/application/dto"
	"github.com/pmt-online/magazin-api/internal/domain"
	"github.com/pmt-online/magazin-api/internal/domain/efactura"
	"github.com/pmt-online/magazin-api/internal/domain/repository"
)

// InvoiceQueryUseCase citiri și revalidare pentru facturi deja emise.
type InvoiceQueryUseCase struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceQueryUseCase construiește cazul de utilizare.
func NewInvoiceQueryUseCase(invoiceRepo repository.InvoiceRepository) *InvoiceQueryUseCase {
	return &InvoiceQueryUseCase{invoiceRepo: invoiceRepo}
}

// Get întoarce factura după ID.
func (uc *InvoiceQueryUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return InvoiceToResponse(inv), nil
}

// GetByFullNumber întoarce factura după numărul complet (ex. PMT000042).
func (uc *InvoiceQueryUseCase) GetByFullNumber(ctx context.Context, fullNumber string) (*dto.InvoiceResponse, error) {
	series, number, err := efactura.ParseNumber(fullNumber)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByNumber(series, number)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return InvoiceToResponse(inv), nil
}

// List listează facturile paginat.
func (uc *InvoiceQueryUseCase) List(ctx context.Context, limit, offset int) ([]*dto.InvoiceResponse, error) {
	list, err := uc.invoiceRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, InvoiceToResponse(inv))
	}
	return out, nil
}

// Validate rulează din nou validarea completă pe o factură stocată și
// întoarce rezultatul ca atare, fără să schimbe nimic.
func (uc *InvoiceQueryUseCase) Validate(ctx context.Context, id string) (*dto.ValidationResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ValidationResponse{
		FullNumber: efactura.FormatNumber(inv.Series, inv.Number),
		Result:     efactura.ValidateInvoice(inv),
	}, nil
}
