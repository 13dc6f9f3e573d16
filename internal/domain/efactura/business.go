package efactura

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pmt-online/magazin-api/internal/domain/entity"
)

// Coduri mașină pentru erorile de aritmetică.
const (
	CodeCalcError      = "CALC_ERROR"     // linie: subtotal ≠ cantitate × preț unitar
	CodeVATCalcError   = "VAT_CALC_ERROR" // linie: TVA ≠ subtotal × cotă/100
	CodeVATMismatch    = "VAT_MISMATCH"   // desfășurător: cotă lipsă sau în plus
	CodeVATBaseError   = "VAT_BASE_ERROR" // desfășurător: bază impozabilă greșită
	CodeVATAmountError = "VAT_AMOUNT_ERROR"
	CodeSubtotalError  = "SUBTOTAL_ERROR"
	CodeTotalVATError  = "TOTAL_VAT_ERROR"
	CodeTotalError     = "TOTAL_ERROR"
	CodeDueDateError   = "DUE_DATE_ERROR"
)

var (
	// tolerance absoarbe zgomotul de rotunjire din aritmetica apelantului.
	// Constantă de proiectare fixă, nu parametru de apel.
	tolerance = decimal.NewFromFloat(0.01)

	hundred = decimal.NewFromInt(100)

	// personTotalReviewThreshold: facturile către persoane fizice peste acest
	// total se marchează pentru verificare manuală, fără a fi respinse.
	personTotalReviewThreshold = decimal.NewFromInt(10000)

	// longPaymentTermDays: scadența la mai mult de atâtea zile de la emitere
	// generează un avertisment.
	longPaymentTermDays = 90
)

// ValidationResult rezultatul validării complete a unei facturi.
// Valid este adevărat exact când Errors e goală; avertismentele nu
// influențează niciodată validitatea.
type ValidationResult struct {
	Valid    bool         `json:"valid"`
	Errors   []FieldError `json:"errors"`
	Warnings []Warning    `json:"warnings,omitempty"`
}

// ValidateInvoice validează factura: întâi schema, apoi — doar dacă schema
// e curată — regulile de business. Nu aruncă niciodată pentru date proaste;
// descrie structurat tot ce e în neregulă. Apeluri repetate pe aceeași
// valoare produc rezultate identice.
func ValidateInvoice(inv *entity.Invoice) ValidationResult {
	if errs := ValidateSchema(inv); len(errs) > 0 {
		return ValidationResult{Valid: false, Errors: errs}
	}
	errs, warns := ValidateBusinessRules(inv)
	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
	}
}

// ValidateBusinessRules rederivă aritmetica facturii din linii și o compară
// cu agregatele declarate, în toleranța fixă de ±0.01. Precondiție: factura
// a trecut de ValidateSchema.
func ValidateBusinessRules(inv *entity.Invoice) ([]FieldError, []Warning) {
	var errs []FieldError

	// ── Aritmetica pe linii ───────────────────────────────────────────────────
	sumSubtotal := decimal.Zero
	sumVAT := decimal.Zero
	byRate := map[string]*entity.VATSummary{}
	rateOrder := []string{} // cotele în ordinea primei apariții, pentru raportare stabilă

	for i, it := range inv.Items {
		prefix := fmt.Sprintf("items[%d]", i)

		expectedSubtotal := it.Quantity.Mul(it.UnitPrice)
		if !withinTolerance(it.Subtotal, expectedSubtotal) {
			errs = append(errs, FieldError{
				prefix + ".subtotal",
				fmt.Sprintf("subtotalul declarat %s diferă de cantitate × preț unitar = %s", it.Subtotal, expectedSubtotal.Round(2)),
				CodeCalcError,
			})
		}
		expectedVAT := it.Subtotal.Mul(it.VATRate).Div(hundred)
		if !withinTolerance(it.VATAmount, expectedVAT) {
			errs = append(errs, FieldError{
				prefix + ".vatAmount",
				fmt.Sprintf("TVA declarat %s diferă de subtotal × %s%% = %s", it.VATAmount, it.VATRate, expectedVAT.Round(2)),
				CodeVATCalcError,
			})
		}

		sumSubtotal = sumSubtotal.Add(it.Subtotal)
		sumVAT = sumVAT.Add(it.VATAmount)

		key := it.VATRate.String()
		if agg, ok := byRate[key]; ok {
			agg.Base = agg.Base.Add(it.Subtotal)
			agg.Amount = agg.Amount.Add(it.VATAmount)
		} else {
			byRate[key] = &entity.VATSummary{Rate: it.VATRate, Base: it.Subtotal, Amount: it.VATAmount}
			rateOrder = append(rateOrder, key)
		}
	}

	// ── Desfășurătorul de TVA: exact o intrare per cotă prezentă pe linii ─────
	seen := map[string]bool{}
	for i, e := range inv.VATBreakdown {
		key := e.Rate.String()
		prefix := fmt.Sprintf("vatBreakdown[%d]", i)

		expected, ok := byRate[key]
		if !ok || seen[key] {
			errs = append(errs, FieldError{
				prefix + ".rate",
				fmt.Sprintf("cota %s%% nu corespunde liniilor facturii sau e duplicată", e.Rate),
				CodeVATMismatch,
			})
			continue
		}
		seen[key] = true

		if !withinTolerance(e.Base, expected.Base) {
			errs = append(errs, FieldError{
				prefix + ".base",
				fmt.Sprintf("baza impozabilă %s diferă de suma subtotalurilor la cota %s%% (%s)", e.Base, e.Rate, expected.Base.Round(2)),
				CodeVATBaseError,
			})
		}
		if !withinTolerance(e.Amount, expected.Amount) {
			errs = append(errs, FieldError{
				prefix + ".amount",
				fmt.Sprintf("TVA-ul %s diferă de suma TVA-urilor la cota %s%% (%s)", e.Amount, e.Rate, expected.Amount.Round(2)),
				CodeVATAmountError,
			})
		}
	}
	for _, key := range rateOrder {
		if !seen[key] {
			errs = append(errs, FieldError{
				"vatBreakdown",
				fmt.Sprintf("lipsește intrarea pentru cota %s%%", key),
				CodeVATMismatch,
			})
		}
	}

	// ── Agregatele din antet ──────────────────────────────────────────────────
	if !withinTolerance(inv.Subtotal, sumSubtotal) {
		errs = append(errs, FieldError{
			"subtotal",
			fmt.Sprintf("subtotalul %s diferă de suma liniilor (%s)", inv.Subtotal, sumSubtotal.Round(2)),
			CodeSubtotalError,
		})
	}
	if !withinTolerance(inv.TotalVAT, sumVAT) {
		errs = append(errs, FieldError{
			"totalVat",
			fmt.Sprintf("totalul de TVA %s diferă de suma TVA-urilor pe linii (%s)", inv.TotalVAT, sumVAT.Round(2)),
			CodeTotalVATError,
		})
	}
	expectedTotal := inv.Subtotal.Add(inv.TotalVAT).Sub(inv.TotalDiscount)
	if !withinTolerance(inv.Total, expectedTotal) {
		errs = append(errs, FieldError{
			"total",
			fmt.Sprintf("totalul %s diferă de subtotal + TVA − discount = %s", inv.Total, expectedTotal.Round(2)),
			CodeTotalError,
		})
	}

	if inv.DueDate.Before(inv.Date) {
		errs = append(errs, FieldError{
			"dueDate",
			"scadența nu poate fi înaintea datei de emitere",
			CodeDueDateError,
		})
	}

	return errs, businessWarnings(inv)
}

// businessWarnings observații care cer atenție, dar nu blochează factura.
func businessWarnings(inv *entity.Invoice) []Warning {
	var warns []Warning

	if inv.Type == entity.TypeFactura && inv.PaymentMethod == "" {
		warns = append(warns, Warning{"paymentMethod", "factura fiscală nu are modalitate de plată"})
	}
	if inv.Customer.IsPerson() && inv.Total.GreaterThan(personTotalReviewThreshold) {
		warns = append(warns, Warning{"total", fmt.Sprintf("factură către persoană fizică peste %s RON: de verificat manual", personTotalReviewThreshold)})
	}
	if inv.DueDate.Sub(inv.Date).Hours() > float64(longPaymentTermDays)*24 {
		warns = append(warns, Warning{"dueDate", fmt.Sprintf("termen de plată mai lung de %d zile", longPaymentTermDays)})
	}

	return warns
}

// withinTolerance compară două sume cu toleranța absolută fixă.
func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}
