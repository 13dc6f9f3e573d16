package billing

import (
	"context"

	"github.com/pmt-online/magazin-api/internal/domain/entity"
	"github.com/pmt-online/magazin-api/internal/domain/repository"
)

// BillingTxRunner execută o funcție într-o tranzacție care cuprinde
// alocarea numărului și persistarea facturii (același Querier).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoicePDFGenerator randează reprezentarea grafică (PDF) a unei facturi.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
}

// UBLGenerator produce documentul UBL 2.1 (CIUS-RO) pentru o factură.
type UBLGenerator interface {
	Build(invoice *entity.Invoice) ([]byte, error)
}
