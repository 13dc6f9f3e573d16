package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/pmt-online/magazin-api/internal/application/billing"
	"github.com/pmt-online/magazin-api/internal/application/dto"
	"github.com/pmt-online/magazin-api/internal/domain"
)

// InvoiceHandler tratează cererile HTTP de facturare.
type InvoiceHandler struct {
	createUC *billing.CreateInvoiceUseCase
	queryUC  *billing.InvoiceQueryUseCase
	pdfUC    *billing.PDFUseCase
	anafUC   *billing.AnafUseCase
}

// NewInvoiceHandler construiește handlerul.
func NewInvoiceHandler(
	createUC *billing.CreateInvoiceUseCase,
	queryUC *billing.InvoiceQueryUseCase,
	pdfUC *billing.PDFUseCase,
	anafUC *billing.AnafUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{createUC: createUC, queryUC: queryUC, pdfUC: pdfUC, anafUC: anafUC}
}

// Create emite o factură nouă.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corp invalid"})
	}
	invoice, err := h.createUC.CreateInvoice(c.Context(), in)
	if err != nil {
		var vErr *billing.ValidationError
		if errors.As(err, &vErr) {
			// 422: documentul e bine format dar încalcă regulile fiscale
			return c.Status(fiber.StatusUnprocessableEntity).JSON(vErr.Result)
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetByID întoarce o factură după ID.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.queryUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// GetByNumber întoarce o factură după numărul complet (ex. PMT000042).
// GET /api/invoices/number/:number
func (h *InvoiceHandler) GetByNumber(c *fiber.Ctx) error {
	invoice, err := h.queryUC.GetByFullNumber(c.Context(), c.Params("number"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// List listează facturile paginat.
// GET /api/invoices?limit=&offset=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginare invalidă"})
	}
	page.DefaultPage()
	invoices, err := h.queryUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoices)
}

// Validate rulează validarea completă pe o factură stocată.
// GET /api/invoices/:id/validate
func (h *InvoiceHandler) Validate(c *fiber.Ctx) error {
	result, err := h.queryUC.Validate(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// DownloadPDF generează și descarcă reprezentarea grafică a facturii.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		var vErr *billing.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(vErr.Result)
		}
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// ApplyAnafUpload aplică pe factură răspunsul SPV de încărcare.
// POST /api/invoices/:id/anaf/upload-response  (corp: XML-ul întors de SPV)
func (h *InvoiceHandler) ApplyAnafUpload(c *fiber.Ctx) error {
	submission, err := h.anafUC.ApplyUploadResponse(c.Context(), c.Params("id"), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(submission)
}

// ApplyAnafStatus aplică pe factură răspunsul SPV de interogare a stării.
// POST /api/invoices/:id/anaf/status-response  (corp: XML-ul întors de SPV)
func (h *InvoiceHandler) ApplyAnafStatus(c *fiber.Ctx) error {
	submission, err := h.anafUC.ApplyStatusResponse(c.Context(), c.Params("id"), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(submission)
}

// respondError mapează erorile de domeniu pe statusuri HTTP.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
