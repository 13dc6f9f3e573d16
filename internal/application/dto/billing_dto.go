package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pmt-online/magazin-api/internal/domain/efactura"
)

// AddressRequest adresa unui client, folosită la creare și la actualizare.
type AddressRequest struct {
	Street     string `json:"street"`
	Number     string `json:"number,omitempty"`
	City       string `json:"city"`
	County     string `json:"county"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country,omitempty"` // implicit RO
}

// CreateCustomerRequest body pentru POST /api/customers.
// Pentru firme se dă cif (și opțional reg_com); pentru persoane fizice cnp (opțional).
type CreateCustomerRequest struct {
	Kind     string         `json:"kind"` // company | person
	Name     string         `json:"name"`
	CIF      string         `json:"cif,omitempty"`
	RegCom   string         `json:"reg_com,omitempty"`
	CNP      string         `json:"cnp,omitempty"`
	VATPayer bool           `json:"vat_payer,omitempty"`
	Address  AddressRequest `json:"address"`
	Email    string         `json:"email,omitempty"`
	Phone    string         `json:"phone,omitempty"`
}

// CustomerResponse client în răspunsuri.
type CustomerResponse struct {
	ID       string         `json:"id"`
	Kind     string         `json:"kind"`
	Name     string         `json:"name"`
	CIF      string         `json:"cif,omitempty"`
	RegCom   string         `json:"reg_com,omitempty"`
	CNP      string         `json:"cnp,omitempty"`
	VATPayer bool           `json:"vat_payer"`
	Address  AddressRequest `json:"address"`
	Email    string         `json:"email,omitempty"`
	Phone    string         `json:"phone,omitempty"`
}

// CreateProductRequest body pentru POST /api/products.
type CreateProductRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Finish      string          `json:"finish,omitempty"`
	Unit        string          `json:"unit"`
	SqmPerBox   decimal.Decimal `json:"sqm_per_box,omitempty"`
	Price       decimal.Decimal `json:"price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// ProductResponse produs în răspunsuri.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Finish      string          `json:"finish,omitempty"`
	Unit        string          `json:"unit"`
	SqmPerBox   decimal.Decimal `json:"sqm_per_box"`
	Price       decimal.Decimal `json:"price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	Active      bool            `json:"active"`
}

// CreateInvoiceRequest body pentru POST /api/invoices.
// Liniile trimit produse din catalog; prețul unitar poate fi omis (se ia din catalog).
type CreateInvoiceRequest struct {
	CustomerID    string               `json:"customer_id"`
	Type          string               `json:"type,omitempty"`       // implicit FACTURA
	StornoRef     string               `json:"storno_ref,omitempty"` // obligatoriu pentru STORNO
	Series        string               `json:"series,omitempty"`     // implicit seria configurată
	Currency      string               `json:"currency,omitempty"`   // implicit RON
	ExchangeRate  decimal.Decimal      `json:"exchange_rate,omitempty"`
	PaymentMethod string               `json:"payment_method,omitempty"`
	DueDays       int                  `json:"due_days,omitempty"` // implicit termenul configurat
	Notes         string               `json:"notes,omitempty"`
	Items         []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest o linie de factură.
type InvoiceItemRequest struct {
	ProductID       string          `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price,omitempty"` // zero = prețul din catalog
	DiscountPercent decimal.Decimal `json:"discount_percent,omitempty"`
}

// InvoiceItemResponse o linie în răspuns, cu valorile calculate.
type InvoiceItemResponse struct {
	Name            string          `json:"name"`
	Code            string          `json:"code,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	VATRate         decimal.Decimal `json:"vat_rate"`
	VATAmount       decimal.Decimal `json:"vat_amount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
	DiscountPercent decimal.Decimal `json:"discount_percent,omitempty"`
	DiscountAmount  decimal.Decimal `json:"discount_amount,omitempty"`
}

// VATSummaryResponse o intrare din desfășurătorul de TVA.
type VATSummaryResponse struct {
	Rate   decimal.Decimal `json:"rate"`
	Base   decimal.Decimal `json:"base"`
	Amount decimal.Decimal `json:"amount"`
}

// InvoiceResponse factura pentru GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	FullNumber    string                `json:"full_number"` // ex. PMT000042
	Series        string                `json:"series"`
	Number        int                   `json:"number"`
	Date          string                `json:"date"`
	DueDate       string                `json:"due_date"`
	Type          string                `json:"type"`
	StornoRef     string                `json:"storno_ref,omitempty"`
	CustomerName  string                `json:"customer_name"`
	Items         []InvoiceItemResponse `json:"items"`
	VATBreakdown  []VATSummaryResponse  `json:"vat_breakdown"`
	Currency      string                `json:"currency"`
	ExchangeRate  decimal.Decimal       `json:"exchange_rate,omitempty"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TotalDiscount decimal.Decimal       `json:"total_discount"`
	TotalVAT      decimal.Decimal       `json:"total_vat"`
	Total         decimal.Decimal       `json:"total"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	PaymentStatus string                `json:"payment_status"`
	Notes         string                `json:"notes,omitempty"`
	AnafStatus    string                `json:"anaf_status"`
	AnafUploadID  string                `json:"anaf_upload_id,omitempty"`
	AnafErrors    string                `json:"anaf_errors,omitempty"`
	Warnings      []efactura.Warning    `json:"warnings,omitempty"`
}

// ValidationResponse rezultatul validării unei facturi, ca atare spre client.
type ValidationResponse struct {
	FullNumber string                    `json:"full_number"`
	Result     efactura.ValidationResult `json:"result"`
}

// FiscalCheckResponse răspunsul validatoarelor de identificatori fiscali.
type FiscalCheckResponse struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}
