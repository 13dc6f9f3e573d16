package efactura

import (
	"fmt"
	"regexp"

	"github.com/pmt-online/magazin-api/internal/domain/entity"
	"github.com/pmt-online/magazin-api/pkg/fiscal"
)

// Coduri mașină pentru încălcările structurale.
const (
	CodeRequired             = "REQUIRED"
	CodeInvalidSeries        = "INVALID_SERIES"
	CodeInvalidNumber        = "INVALID_NUMBER"
	CodeInvalidType          = "INVALID_TYPE"
	CodeInvalidCurrency      = "INVALID_CURRENCY"
	CodeInvalidCIF           = "INVALID_CIF"
	CodeInvalidCNP           = "INVALID_CNP"
	CodeInvalidIBAN          = "INVALID_IBAN"
	CodeInvalidCounty        = "INVALID_COUNTY"
	CodeInvalidPostalCode    = "INVALID_POSTAL_CODE"
	CodeInvalidUnit          = "INVALID_UNIT"
	CodeInvalidVATRate       = "INVALID_VAT_RATE"
	CodeInvalidQuantity      = "INVALID_QUANTITY"
	CodeInvalidUnitPrice     = "INVALID_UNIT_PRICE"
	CodeInvalidDiscount      = "INVALID_DISCOUNT"
	CodeInvalidPaymentMethod = "INVALID_PAYMENT_METHOD"
	CodeInvalidCustomer      = "INVALID_CUSTOMER"
	CodeNoItems              = "NO_ITEMS"
	CodeStornoRefRequired    = "STORNO_REF_REQUIRED"
	CodeStornoRefForbidden   = "STORNO_REF_FORBIDDEN"
	CodeExchangeRateRequired = "EXCHANGE_RATE_REQUIRED"
)

// FieldError o încălcare structurală sau de business: calea câmpului,
// mesaj pentru oameni și cod mașină pentru tratare programatică.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Warning o observație care nu blochează validitatea facturii.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var postalCodePattern = regexp.MustCompile(`^\d{6}$`)

// schemaRule o regulă declarativă peste graful facturii. Fiecare regulă
// colectează toate încălcările ei; validatorul nu se oprește la prima.
type schemaRule struct {
	name string
	fn   func(inv *entity.Invoice) []FieldError
}

// invoiceSchemaRules setul complet de reguli structurale, în ordinea de
// raportare. Lista e date, nu cod: se poate parcurge, testa și documenta
// independent de motorul de validare.
var invoiceSchemaRules = []schemaRule{
	{"identificare", ruleIdentification},
	{"date-calendaristice", ruleDates},
	{"tip-document", ruleType},
	{"moneda", ruleCurrency},
	{"furnizor", ruleSupplier},
	{"client", ruleCustomer},
	{"linii", ruleItems},
	{"desfasurator-tva", ruleVATBreakdown},
	{"plata", rulePayment},
}

// ValidateSchema rulează toate regulile structurale și întoarce fiecare
// încălcare găsită. O listă goală înseamnă schemă validă.
func ValidateSchema(inv *entity.Invoice) []FieldError {
	var errs []FieldError
	for _, rule := range invoiceSchemaRules {
		errs = append(errs, rule.fn(inv)...)
	}
	return errs
}

// ── Reguli ────────────────────────────────────────────────────────────────────

func ruleIdentification(inv *entity.Invoice) []FieldError {
	var errs []FieldError
	if inv.Series == "" {
		errs = append(errs, FieldError{"series", "seria este obligatorie", CodeRequired})
	} else if !ValidSeries(inv.Series) {
		errs = append(errs, FieldError{"series", "seria trebuie să fie 1–10 litere majuscule", CodeInvalidSeries})
	}
	if inv.Number <= 0 {
		errs = append(errs, FieldError{"number", "numărul trebuie să fie un întreg pozitiv", CodeInvalidNumber})
	}
	return errs
}

func ruleDates(inv *entity.Invoice) []FieldError {
	var errs []FieldError
	if inv.Date.IsZero() {
		errs = append(errs, FieldError{"date", "data emiterii este obligatorie", CodeRequired})
	}
	if inv.DueDate.IsZero() {
		errs = append(errs, FieldError{"dueDate", "data scadenței este obligatorie", CodeRequired})
	}
	return errs
}

func ruleType(inv *entity.Invoice) []FieldError {
	var errs []FieldError
	if !ValidInvoiceTypes[string(inv.Type)] {
		errs = append(errs, FieldError{"type", fmt.Sprintf("tip de document necunoscut: %q", inv.Type), CodeInvalidType})
		return errs
	}
	// Referința de stornare există dacă și numai dacă documentul e STORNO.
	if inv.Type == entity.TypeStorno && inv.StornoRef == "" {
		errs = append(errs, FieldError{"stornoRef", "factura storno trebuie să indice factura stornată", CodeStornoRefRequired})
	}
	if inv.Type != entity.TypeStorno && inv.StornoRef != "" {
		errs = append(errs, FieldError{"stornoRef", "referința de stornare e permisă doar pe facturi STORNO", CodeStornoRefForbidden})
	}
	return errs
}

func ruleCurrency(inv *entity.Invoice) []FieldError {
	var errs []FieldError
	if len(inv.Currency) != 3 {
		errs = append(errs, FieldError{"currency", "moneda trebuie să fie un cod ISO 4217 de 3 litere", CodeInvalidCurrency})
		return errs
	}
	if inv.Currency != CurrencyRON && !inv.ExchangeRate.IsPositive() {
		errs = append(errs, FieldError{"exchangeRate", "facturile în altă monedă decât RON cer curs de schimb", CodeExchangeRateRequired})
	}
	return errs
}

func ruleSupplier(inv *entity.Invoice) []FieldError {
	return companyErrors("supplier", &inv.Supplier)
}

func ruleCustomer(inv *entity.Invoice) []FieldError {
	c := inv.Customer
	if c.IsCompany() == c.IsPerson() {
		return []FieldError{{"customer", "clientul trebuie să fie exact una dintre: firmă sau persoană fizică", CodeInvalidCustomer}}
	}
	if c.IsCompany() {
		return companyErrors("customer", c.Company)
	}
	return personErrors("customer", c.Person)
}

func ruleItems(inv *entity.Invoice) []FieldError {
	if len(inv.Items) == 0 {
		return []FieldError{{"items", "factura trebuie să aibă cel puțin o linie", CodeNoItems}}
	}
	var errs []FieldError
	for i := range inv.Items {
		errs = append(errs, itemErrors(fmt.Sprintf("items[%d]", i), &inv.Items[i])...)
	}
	return errs
}

func ruleVATBreakdown(inv *entity.Invoice) []FieldError {
	var errs []FieldError
	for i, e := range inv.VATBreakdown {
		if !ValidVATRates[e.Rate.String()] {
			errs = append(errs, FieldError{
				fmt.Sprintf("vatBreakdown[%d].rate", i),
				fmt.Sprintf("cotă de TVA necunoscută: %s%%", e.Rate),
				CodeInvalidVATRate,
			})
		}
	}
	return errs
}

func rulePayment(inv *entity.Invoice) []FieldError {
	if inv.PaymentMethod != "" && !ValidPaymentMethods[inv.PaymentMethod] {
		return []FieldError{{"paymentMethod", fmt.Sprintf("modalitate de plată necunoscută: %q", inv.PaymentMethod), CodeInvalidPaymentMethod}}
	}
	return nil
}

// ── Reguli reutilizate pe părți și linii ──────────────────────────────────────

func companyErrors(prefix string, c *entity.CompanyDetails) []FieldError {
	var errs []FieldError
	if c.Name == "" {
		errs = append(errs, FieldError{prefix + ".name", "numele firmei este obligatoriu", CodeRequired})
	}
	if c.CIF == "" {
		errs = append(errs, FieldError{prefix + ".cif", "CIF-ul este obligatoriu", CodeRequired})
	} else if !fiscal.ValidCIF(c.CIF) {
		errs = append(errs, FieldError{prefix + ".cif", "CIF cu cifră de control invalidă", CodeInvalidCIF})
	}
	errs = append(errs, addressErrors(prefix+".address", c.Address)...)
	for i, acc := range c.BankAccounts {
		if !fiscal.ValidIBAN(acc.IBAN) {
			errs = append(errs, FieldError{
				fmt.Sprintf("%s.bankAccounts[%d].iban", prefix, i),
				"IBAN invalid",
				CodeInvalidIBAN,
			})
		}
	}
	return errs
}

func personErrors(prefix string, p *entity.PersonDetails) []FieldError {
	var errs []FieldError
	if p.Name == "" {
		errs = append(errs, FieldError{prefix + ".name", "numele este obligatoriu", CodeRequired})
	}
	// Persoanele fizice nu sunt obligate să furnizeze CNP.
	if p.CNP != "" && !fiscal.ValidCNP(p.CNP) {
		errs = append(errs, FieldError{prefix + ".cnp", "CNP cu cifră de control invalidă", CodeInvalidCNP})
	}
	errs = append(errs, addressErrors(prefix+".address", p.Address)...)
	return errs
}

func addressErrors(prefix string, a entity.Address) []FieldError {
	var errs []FieldError
	if a.Street == "" {
		errs = append(errs, FieldError{prefix + ".street", "strada este obligatorie", CodeRequired})
	}
	if a.City == "" {
		errs = append(errs, FieldError{prefix + ".city", "localitatea este obligatorie", CodeRequired})
	}
	if !ValidCounties[a.County] {
		errs = append(errs, FieldError{prefix + ".county", fmt.Sprintf("județ necunoscut: %q", a.County), CodeInvalidCounty})
	}
	if !postalCodePattern.MatchString(a.PostalCode) {
		errs = append(errs, FieldError{prefix + ".postalCode", "codul poștal trebuie să aibă exact 6 cifre", CodeInvalidPostalCode})
	}
	if a.Country == "" {
		errs = append(errs, FieldError{prefix + ".country", "țara este obligatorie", CodeRequired})
	}
	return errs
}

func itemErrors(prefix string, it *entity.InvoiceItem) []FieldError {
	var errs []FieldError
	if it.Name == "" {
		errs = append(errs, FieldError{prefix + ".name", "denumirea articolului este obligatorie", CodeRequired})
	}
	if !it.Quantity.IsPositive() {
		errs = append(errs, FieldError{prefix + ".quantity", "cantitatea trebuie să fie strict pozitivă", CodeInvalidQuantity})
	}
	if !ValidUnits[it.Unit] {
		errs = append(errs, FieldError{prefix + ".unit", fmt.Sprintf("unitate de măsură necunoscută: %q", it.Unit), CodeInvalidUnit})
	}
	if it.UnitPrice.IsNegative() {
		errs = append(errs, FieldError{prefix + ".unitPrice", "prețul unitar nu poate fi negativ", CodeInvalidUnitPrice})
	}
	if !ValidVATRates[it.VATRate.String()] {
		errs = append(errs, FieldError{prefix + ".vatRate", fmt.Sprintf("cotă de TVA necunoscută: %s%%", it.VATRate), CodeInvalidVATRate})
	}
	if it.DiscountPercent.IsNegative() || it.DiscountPercent.GreaterThan(hundred) {
		errs = append(errs, FieldError{prefix + ".discountPercent", "discountul procentual trebuie să fie între 0 și 100", CodeInvalidDiscount})
	}
	if it.DiscountAmount.IsNegative() {
		errs = append(errs, FieldError{prefix + ".discountAmount", "discountul valoric nu poate fi negativ", CodeInvalidDiscount})
	}
	return errs
}
