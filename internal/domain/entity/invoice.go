package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType tipul documentului fiscal.
type InvoiceType string

const (
	TypeFactura  InvoiceType = "FACTURA"  // factură fiscală
	TypeProforma InvoiceType = "PROFORMA" // factură proformă (nu produce obligații)
	TypeStorno   InvoiceType = "STORNO"   // stornare: anulează o factură anterioară
	TypeAviz     InvoiceType = "AVIZ"     // aviz de însoțire a mărfii
)

// Modalități de plată acceptate de magazin.
const (
	PaymentCash     = "NUMERAR"
	PaymentTransfer = "TRANSFER"
	PaymentCard     = "CARD"
	PaymentRamburs  = "RAMBURS"
)

// Stări de plată.
const (
	PaymentStatusUnpaid  = "NEPLATITA"
	PaymentStatusPartial = "PARTIALA"
	PaymentStatusPaid    = "PLATITA"
)

// Stări ale trimiterii către ANAF (SPV e-Factura).
const (
	AnafStatusDraft     = "DRAFT"
	AnafStatusUploaded  = "UPLOADED"
	AnafStatusValidated = "VALIDATED"
	AnafStatusRejected  = "REJECTED"
)

// InvoiceItem o linie de factură. Subtotal, VATAmount și Total sunt valori
// furnizate de cel care construiește factura; validatorul de reguli de
// business le verifică, nu le recalculează autoritar.
type InvoiceItem struct {
	Name            string
	Code            string
	Description     string
	Quantity        decimal.Decimal
	Unit            string          // cod unitate de măsură (efactura.ValidUnits)
	UnitPrice       decimal.Decimal // fără TVA
	VATRate         decimal.Decimal // procent: 0, 5, 9 sau 19
	VATAmount       decimal.Decimal
	Subtotal        decimal.Decimal // = Quantity × UnitPrice
	Total           decimal.Decimal // = Subtotal + VATAmount
	DiscountPercent decimal.Decimal // zero = fără discount
	DiscountAmount  decimal.Decimal
}

// VATSummary o intrare din desfășurătorul de TVA: (cotă, bază impozabilă,
// TVA). Câte o intrare pentru fiecare cotă distinctă prezentă pe linii —
// cache denormalizat, ținut coerent de validatorul de business.
type VATSummary struct {
	Rate   decimal.Decimal
	Base   decimal.Decimal
	Amount decimal.Decimal
}

// AnafSubmission plicul de trimitere către SPV e-Factura. Câmpuri opace
// pentru nucleul de validare: se completează de infrastructura ANAF și se
// transportă ca atare.
type AnafSubmission struct {
	UploadID string
	Status   string // vezi constantele AnafStatus*
	Errors   string // mesajele de respingere returnate de ANAF
	XML      string // documentul UBL generat
	Digest   string // SHA-256 peste forma canonică a XML-ului
}

// Invoice agregatul rădăcină al facturii. Se construiește o singură dată din
// datele comenzii, se validează explicit (poate exista în stare invalidă) și,
// dacă e validă, se randează. Nucleul nu o mută și nu o persistă.
type Invoice struct {
	ID     string
	Series string // cod scurt alfanumeric (ex. "PMT")
	Number int    // pozitiv, unic per serie

	Date    time.Time
	DueDate time.Time // ≥ Date

	Type      InvoiceType
	StornoRef string // numărul facturii stornate; obligatoriu ⟺ Type == STORNO

	Supplier CompanyDetails // emitentul, întotdeauna firmă
	Customer Party

	Items        []InvoiceItem // cel puțin una; ordinea este ordinea de afișare
	VATBreakdown []VATSummary

	Currency     string          // cod ISO 4217
	ExchangeRate decimal.Decimal // obligatoriu dacă Currency != RON; zero = absent

	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalVAT      decimal.Decimal
	Total         decimal.Decimal // = Subtotal + TotalVAT − TotalDiscount

	PaymentMethod string
	PaymentStatus string
	PaymentRef    string

	Notes string

	Anaf AnafSubmission

	CreatedAt time.Time
	UpdatedAt time.Time
}
