package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pmt-online/magazin-api/internal/application/billing"
	"github.com/pmt-online/magazin-api/internal/application/usecase"
)

// RouterDeps dependențele routerului.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	CustomerUC    *billing.CustomerUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	InvoiceQuery  *billing.InvoiceQueryUseCase
	InvoicePDF    *billing.PDFUseCase
	AnafUC        *billing.AnafUseCase
}

// Router înregistrează rutele API-ului.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Validatoare de identificatori fiscali (stateless)
	fiscalHandler := NewFiscalHandler()
	fiscalGroup := api.Group("/fiscal")
	fiscalGroup.Get("/cif/:value", fiscalHandler.CheckCIF)
	fiscalGroup.Get("/cnp/:value", fiscalHandler.CheckCNP)
	fiscalGroup.Get("/iban/:value", fiscalHandler.CheckIBAN)

	// Catalog de produse
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Clienți
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Facturi
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoiceQuery, deps.InvoicePDF, deps.AnafUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/number/:number", invoiceHandler.GetByNumber)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/validate", invoiceHandler.Validate)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/anaf/upload-response", invoiceHandler.ApplyAnafUpload)
	invoices.Post("/:id/anaf/status-response", invoiceHandler.ApplyAnafStatus)
}
