package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pmt-online/magazin-api/internal/domain"
	"github.com/pmt-online/magazin-api/internal/domain/efactura"
	"github.com/pmt-online/magazin-api/internal/domain/entity"
	"github.com/pmt-online/magazin-api/internal/domain/repository"
	"github.com/pmt-online/magazin-api/internal/infrastructure/anaf"
	"github.com/pmt-online/magazin-api/pkg/logger"
)

// AnafUseCase ține evidența ciclului de viață SPV al unei facturi:
//
//	DRAFT → UPLOADED → VALIDATED | REJECTED
//
// Răspunsurile SPV (upload și interogare stare) se aplică pe plicul ANAF al
// facturii așa cum vin de la serviciu, parsate de infrastructura anaf.
type AnafUseCase struct {
	invoiceRepo repository.InvoiceRepository
	log         *logger.Logger
}

// NewAnafUseCase construiește cazul de utilizare.
func NewAnafUseCase(invoiceRepo repository.InvoiceRepository, log *logger.Logger) *AnafUseCase {
	return &AnafUseCase{invoiceRepo: invoiceRepo, log: log}
}

// ApplyUploadResponse aplică răspunsul de încărcare SPV pe factură.
// Factura trebuie să fie în DRAFT (cu XML generat) sau respinsă anterior.
func (uc *AnafUseCase) ApplyUploadResponse(ctx context.Context, invoiceID string, responseXML []byte) (*entity.AnafSubmission, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Anaf.XML == "" {
		return nil, fmt.Errorf("%w: factura nu are XML generat", domain.ErrConflict)
	}
	if inv.Anaf.Status == entity.AnafStatusValidated {
		return nil, fmt.Errorf("%w: factura este deja validată în SPV", domain.ErrConflict)
	}

	result, err := anaf.ParseUploadResponse(responseXML)
	if err != nil {
		return nil, err
	}
	inv.Anaf.UploadID = result.UploadID
	inv.Anaf.Status = result.Status
	inv.Anaf.Errors = strings.Join(result.Errors, "; ")
	inv.UpdatedAt = time.Now()

	if err := uc.invoiceRepo.UpdateAnaf(inv); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("factura", efactura.FormatNumber(inv.Series, inv.Number)).
		Str("upload_id", inv.Anaf.UploadID).
		Str("stare", inv.Anaf.Status).
		Msg("răspuns de încărcare SPV aplicat")
	return &inv.Anaf, nil
}

// ApplyStatusResponse aplică răspunsul de interogare a stării SPV pe factură.
func (uc *AnafUseCase) ApplyStatusResponse(ctx context.Context, invoiceID string, responseXML []byte) (*entity.AnafSubmission, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Anaf.UploadID == "" {
		return nil, fmt.Errorf("%w: factura nu a fost încărcată în SPV", domain.ErrConflict)
	}

	result, err := anaf.ParseStatusResponse(responseXML)
	if err != nil {
		return nil, err
	}
	inv.Anaf.Status = result.Status
	inv.UpdatedAt = time.Now()

	if err := uc.invoiceRepo.UpdateAnaf(inv); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("factura", efactura.FormatNumber(inv.Series, inv.Number)).
		Str("stare", inv.Anaf.Status).
		Str("id_descarcare", result.DownloadID).
		Msg("stare SPV actualizată")
	return &inv.Anaf, nil
}
