package billing

import (
	"context"
	"fmt"

	"github.com/pmt-online/magazin-api/internal/domain"
	"github.com/pmt-online/magazin-api/internal/domain/efactura"
	"github.com/pmt-online/magazin-api/internal/domain/repository"
)

// PDFUseCase generează reprezentarea grafică (PDF) a unei facturi.
// Se randează numai facturi care trec validarea completă: PDF-ul este un
// document fiscal, nu o previzualizare.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construiește cazul de utilizare.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, generator: generator}
}

// DownloadInvoicePDF încarcă factura, o revalidează și generează PDF-ul.
//
// Întoarce:
//   - (pdfBytes, filename, nil)  dacă totul e în regulă.
//   - domain.ErrNotFound         dacă factura nu există.
//   - *ValidationError           dacă factura nu mai trece validarea.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obținere factură: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	if result := efactura.ValidateInvoice(inv); !result.Valid {
		return nil, "", &ValidationError{Result: result}
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generare eșuată: %w", err)
	}

	filename = fmt.Sprintf("factura_%s.pdf", efactura.FormatNumber(inv.Series, inv.Number))
	return pdfBytes, filename, nil
}
